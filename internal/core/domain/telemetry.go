package domain

import "strings"

// FetchOutcome records how a summary request was served.
type FetchOutcome string

const (
	// FetchOutcomeHit indicates the summary came from the cache.
	FetchOutcomeHit FetchOutcome = "hit"
	// FetchOutcomeFetched indicates the summary was fetched and cached.
	FetchOutcomeFetched FetchOutcome = "fetched"
	// FetchOutcomeFailed indicates the request failed.
	FetchOutcomeFailed FetchOutcome = "failed"
)

// LogLevel represents the severity of a vertex log line, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseResolution converts user input to a Resolution, defaulting to daily.
func ParseResolution(s string) Resolution {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "weekly", "week", "w":
		return ResolutionWeekly
	default:
		return ResolutionDaily
	}
}
