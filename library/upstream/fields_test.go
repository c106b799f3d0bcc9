package upstream

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyFieldsSkipsAbsentParameters(t *testing.T) {
	fields := []Field{
		{Name: "set_cookie", Wire: "X-Set-Cookie", Encode: EncodeHeader},
		{Name: "no_cache", Wire: "X-No-Cache", Encode: EncodeHeader},
		{Name: "timeout", Wire: "X-Timeout", Encode: EncodeHeader},
	}

	header := http.Header{}
	params := Params{"timeout": 30}
	require.NoError(t, ApplyFields(fields, params, header, nil, nil))

	require.Equal(t, "30", header.Get("X-Timeout"))
	_, hasCookie := header["X-Set-Cookie"]
	require.False(t, hasCookie)
	_, hasNoCache := header["X-No-Cache"]
	require.False(t, hasNoCache)
}

func TestApplyFieldsStringifiesScalars(t *testing.T) {
	fields := []Field{
		{Name: "fallback", Encode: EncodeQuery},
		{Name: "page", Encode: EncodeQuery},
		{Name: "q", Encode: EncodeQuery},
	}

	query := url.Values{}
	params := Params{"fallback": true, "page": 2, "q": "golang"}
	require.NoError(t, ApplyFields(fields, params, nil, query, nil))

	require.Equal(t, "true", query.Get("fallback"))
	require.Equal(t, "2", query.Get("page"))
	require.Equal(t, "golang", query.Get("q"))
}

func TestApplyFieldsRenamesWireKeys(t *testing.T) {
	fields := []Field{
		{Name: "flight_type", Wire: "type", Encode: EncodeQuery},
		{Name: "async_search", Wire: "async", Encode: EncodeQuery},
	}

	query := url.Values{}
	params := Params{"flight_type": "2", "async_search": true}
	require.NoError(t, ApplyFields(fields, params, nil, query, nil))

	require.Equal(t, "2", query.Get("type"))
	require.Equal(t, "true", query.Get("async"))
	require.Empty(t, query.Get("flight_type"))
	require.Empty(t, query.Get("async_search"))
}

func TestApplyFieldsRepeatsListEntriesInOrder(t *testing.T) {
	fields := []Field{
		{Name: "site", Encode: EncodeQuery},
		{Name: "ext", Encode: EncodeQuery},
	}

	query := url.Values{}
	params := Params{
		"site": []string{"example.com", "example.org", "example.net"},
		"ext":  []string{"pdf"},
	}
	require.NoError(t, ApplyFields(fields, params, nil, query, nil))

	require.Equal(t, []string{"example.com", "example.org", "example.net"}, query["site"])
	require.Equal(t, []string{"pdf"}, query["ext"])
}

func TestApplyFieldsRejectsListOutsideQuery(t *testing.T) {
	fields := []Field{{Name: "site", Encode: EncodeHeader}}

	err := ApplyFields(fields, Params{"site": []string{"a"}}, http.Header{}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "site")
}

func TestApplyFieldsFormEncoding(t *testing.T) {
	fields := []Field{{Name: "url", Encode: EncodeForm}}

	form := url.Values{}
	require.NoError(t, ApplyFields(fields, Params{"url": "https://example.com/#frag"}, nil, nil, form))
	require.Equal(t, "https://example.com/#frag", form.Get("url"))
}
