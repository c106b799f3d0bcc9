package tools

import (
	"context"
	"strconv"
	"strings"

	"github.com/Laisky/web-mcp/library/upstream"
)

// resolveAPIKey prefers an explicit api_key argument over the transport
// bearer token supplied by the provider.
func resolveAPIKey(ctx context.Context, args map[string]any, provider APIKeyProvider) string {
	if raw, ok := args["api_key"]; ok {
		if value, ok := asString(raw); ok && strings.TrimSpace(value) != "" {
			return strings.TrimSpace(value)
		}
	}
	if provider != nil {
		return strings.TrimSpace(provider(ctx))
	}
	return ""
}

// argumentsMap normalises the raw MCP arguments payload into a plain map.
func argumentsMap(raw any) map[string]any {
	if args, ok := raw.(map[string]any); ok {
		return args
	}
	return map[string]any{}
}

// collectStrings copies each named string argument into params when present,
// so that absence stays observable downstream.
func collectStrings(params upstream.Params, args map[string]any, names ...string) {
	for _, name := range names {
		if raw, ok := args[name]; ok {
			if value, ok := asString(raw); ok {
				params[name] = value
			}
		}
	}
}

// collectBools copies each named boolean argument into params when present.
func collectBools(params upstream.Params, args map[string]any, names ...string) {
	for _, name := range names {
		if raw, ok := args[name]; ok {
			params[name] = parseOptionalBool(raw)
		}
	}
}

// collectInts copies each named integer argument into params when present.
func collectInts(params upstream.Params, args map[string]any, names ...string) {
	for _, name := range names {
		if raw, ok := args[name]; ok {
			if value, ok := asInt(raw); ok {
				params[name] = value
			}
		}
	}
}

// collectStringLists copies each named array argument into params when
// present, preserving element order.
func collectStringLists(params upstream.Params, args map[string]any, names ...string) {
	for _, name := range names {
		raw, ok := args[name]
		if !ok {
			continue
		}
		switch v := raw.(type) {
		case []string:
			params[name] = v
		case []any:
			items := make([]string, 0, len(v))
			for _, item := range v {
				if s, ok := asString(item); ok {
					items = append(items, s)
				}
			}
			params[name] = items
		}
	}
}

func asString(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, true
	case float64:
		// MCP JSON numbers decode into float64
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case int:
		return strconv.Itoa(v), true
	default:
		return "", false
	}
}

func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func parseOptionalBool(raw any) bool {
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		s := strings.TrimSpace(strings.ToLower(v))
		return s == "true" || s == "1" || s == "yes" || s == "y" || s == "on"
	case float64:
		// MCP JSON numbers decode into float64
		return v != 0
	case int:
		return v != 0
	case int64:
		return v != 0
	case uint64:
		return v != 0
	default:
		return false
	}
}
