package mcp

import (
	gconfig "github.com/Laisky/go-config/v2"
)

// ToolsSettings captures runtime configuration for enabling or disabling individual MCP tools.
type ToolsSettings struct {
	WebFetchEnabled     bool
	WebSearchEnabled    bool
	FlightSearchEnabled bool
}

// Enabled reports whether the named tool should be registered.
func (s ToolsSettings) Enabled(name string) bool {
	switch name {
	case "web_fetch":
		return s.WebFetchEnabled
	case "web_search":
		return s.WebSearchEnabled
	case "flight_search":
		return s.FlightSearchEnabled
	default:
		return false
	}
}

// LoadToolsSettingsFromConfig reads the MCP tools configuration and returns a ToolsSettings instance.
// By default, all tools are enabled unless explicitly disabled in the configuration.
func LoadToolsSettingsFromConfig() ToolsSettings {
	return ToolsSettings{
		WebFetchEnabled:     boolFromConfig("settings.mcp.tools.web_fetch.enabled", true),
		WebSearchEnabled:    boolFromConfig("settings.mcp.tools.web_search.enabled", true),
		FlightSearchEnabled: boolFromConfig("settings.mcp.tools.flight_search.enabled", true),
	}
}

// boolFromConfig retrieves a boolean configuration value with a default fallback.
func boolFromConfig(key string, def bool) bool {
	value := gconfig.S.Get(key)
	switch v := value.(type) {
	case nil:
		return def
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	case string:
		switch v {
		case "true", "True", "TRUE", "1", "yes", "Yes", "YES":
			return true
		case "false", "False", "FALSE", "0", "no", "No", "NO":
			return false
		default:
			return def
		}
	default:
		return def
	}
}
