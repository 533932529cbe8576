// Package debug gates verbose logging by category.
//
// Categories select what is logged (LOADPLAN_DEBUG, e.g. "catalog,import"),
// the level selects how much (LOADPLAN_LOG_LEVEL: TRACE, DEBUG, INFO, WARN, ERROR).
// Environment values win over config values passed to Init.
//
//	debug.Log("catalog", "loaded", "path", path, "classes", len(c.Classes))
//
// Categories: engine (plan summaries from the loadplan command), catalog,
// import, config, all.
package debug

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
)

const (
	EnvCategories = "LOADPLAN_DEBUG"
	EnvLevel      = "LOADPLAN_LOG_LEVEL"
)

// LevelTrace sits below slog.LevelDebug and shows per-row and per-unit detail.
const LevelTrace = slog.LevelDebug - 4

// categories is written by Init at startup and only read afterwards.
var categories map[string]bool

func init() {
	categories = parseCategories(os.Getenv(EnvCategories))
}

// Init sets the enabled categories and installs a text slog handler on w
// at the resolved level as the default logger.
func Init(w io.Writer, configCategories, configLevel string) {
	cats := os.Getenv(EnvCategories)
	if cats == "" {
		cats = configCategories
	}
	categories = parseCategories(cats)

	level := os.Getenv(EnvLevel)
	if level == "" {
		level = configLevel
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
	})))
}

// Enabled reports whether the category (or "all") is switched on.
func Enabled(category string) bool {
	return categories["all"] || categories[category]
}

// Log emits a debug record tagged with the category.
func Log(category, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Debug(msg, append([]any{"debug", category}, args...)...)
}

// Trace emits a trace record tagged with the category.
func Trace(category, msg string, args ...any) {
	if !Enabled(category) {
		return
	}
	slog.Log(context.Background(), LevelTrace, msg, append([]any{"debug", category}, args...)...)
}

// ParseLevel converts a level name to a slog.Level. Unknown names map to INFO.
func ParseLevel(s string) slog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return LevelTrace
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Categories returns the enabled categories, sorted.
func Categories() []string {
	out := make([]string, 0, len(categories))
	for k := range categories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func parseCategories(s string) map[string]bool {
	m := make(map[string]bool)
	for _, cat := range strings.Split(s, ",") {
		cat = strings.ToLower(strings.TrimSpace(cat))
		if cat != "" {
			m[cat] = true
		}
	}
	return m
}
