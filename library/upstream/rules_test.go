package upstream

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePassesWhenNoRuleFires(t *testing.T) {
	rules := []Rule{
		MutuallyExclusive("a", "b"),
		RequiredWhenEquals("mode", "1", "extra"),
	}

	require.NoError(t, Validate(Params{"a": "x", "mode": "2"}, rules))
}

func TestMutuallyExclusiveFiresOnlyWhenBothPresent(t *testing.T) {
	rule := MutuallyExclusive("exclude_airlines", "include_airlines")

	require.Nil(t, rule.Check(Params{"exclude_airlines": "UA"}))
	require.Nil(t, rule.Check(Params{"include_airlines": "DL"}))

	v := rule.Check(Params{"exclude_airlines": "UA", "include_airlines": "DL"})
	require.NotNil(t, v)
	require.Equal(t, "exclude_airlines", v.Field)
	require.Contains(t, v.Message, "cannot both be specified")
}

func TestRequiredWhenEqualsFiresOnMissingDependent(t *testing.T) {
	rule := RequiredWhenEquals("flight_type", "1", "return_date")

	require.Nil(t, rule.Check(Params{"flight_type": "2"}))
	require.Nil(t, rule.Check(Params{"flight_type": "1", "return_date": "2026-09-01"}))

	v := rule.Check(Params{"flight_type": "1"})
	require.NotNil(t, v)
	require.Equal(t, "return_date", v.Field)
	require.Contains(t, v.Message, "required when flight_type is 1")
}

func TestValidateAggregatesEveryViolation(t *testing.T) {
	rules := []Rule{
		MutuallyExclusive("no_cache", "async_search"),
		MutuallyExclusive("departure_token", "booking_token"),
		RequiredWhenEquals("flight_type", "3", "multi_city_json"),
	}

	params := Params{
		"no_cache":        true,
		"async_search":    true,
		"departure_token": "a",
		"booking_token":   "b",
		"flight_type":     "3",
	}

	err := Validate(params, rules)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, verr.Violations, 3)
	require.Contains(t, err.Error(), "no_cache")
	require.Contains(t, err.Error(), "departure_token")
	require.Contains(t, err.Error(), "multi_city_json")
}
