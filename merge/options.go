package merge

import "io"

// Prefilter lets a caller opt a path out of merging. Returning true keeps
// the source subtree at that path untouched in the result, regardless of
// what the revision holds there. It is called before the node is classified
// or registered as an ancestor; path is only valid for the duration of the
// call (the engine reuses the backing array while walking).
type Prefilter func(path []Step, source, revision any) bool

// Options configures one merge call.
type Options struct {
	// Prefilter, when set, short-circuits whole subtrees. Default: nil.
	Prefilter Prefilter

	// Adapters are consulted, in order, before the built-in adapters for
	// map[string]any, []any, sequencedmap and yaml.Node. Default: none.
	Adapters []Adapter

	// MaxDepth guards against pathological nesting. Past this depth the
	// engine stops merging and takes the revision subtree as-is.
	// Default: 10000.
	MaxDepth int

	// Logging configuration
	Logger    Logger    // Custom logger; nil means LogLevel+LogWriter, or no logging at all
	LogLevel  string    // Log level: "error", "warn", "info", "debug" (default: no logging)
	LogWriter io.Writer // Destination when LogLevel is set (default: os.Stderr)
}

// DefaultOptions returns the default configuration for a merge.
func DefaultOptions() Options {
	return Options{
		Prefilter: nil,
		Adapters:  nil,
		MaxDepth:  10000,
	}
}

func (o Options) logger() Logger {
	if o.Logger != nil {
		return o.Logger
	}
	if o.LogLevel != "" {
		return NewLogger(ParseLogLevel(o.LogLevel), o.LogWriter)
	}
	return newNoopLogger()
}
