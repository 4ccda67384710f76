package djdb

import "log"

// Warnf is invoked for every recoverable condition encountered while
// indexing a collection: an unknown DeviceSqlString variant, a string
// offset past the row/page bounds, a dangling foreign key, a duplicate row
// ID. AnalysisFile does not call it: unrecognized analysis fourccs are
// yielded by Sections like any other section.
// It is never called for a fatal error; those are returned directly.
type Warnf func(format string, args ...interface{})

func defaultWarnf(format string, args ...interface{}) {
	log.Printf("djdb: "+format, args...)
}

// config is the resolved state every OpenOption/AnalysisOption mutates.
type config struct {
	warnf  Warnf
	lazy   bool
	unmask bool
}

func newConfig() *config {
	return &config{warnf: defaultWarnf, unmask: true}
}

// OpenOption configures Open/OpenReader.
type OpenOption func(*config)

// WithWarnf overrides the recoverable-warning hook. Passing nil silences
// warnings entirely.
func WithWarnf(fn Warnf) OpenOption {
	return func(c *config) {
		if fn == nil {
			fn = func(string, ...interface{}) {}
		}
		c.warnf = fn
	}
}

// LazyIndexing defers index.Build until the Collection's indexes are first
// queried, instead of building it eagerly inside Open. The default is
// eager: most callers open a file specifically to query it.
func LazyIndexing() OpenOption {
	return func(c *config) { c.lazy = true }
}

// AnalysisOption configures OpenAnalysis.
type AnalysisOption func(*config)

// Unmasked skips the PSSI XOR-unmasking pass, for analysis files already
// known to be stored in the clear. The default unmasks.
func Unmasked() AnalysisOption {
	return func(c *config) { c.unmask = false }
}

// WithAnalysisWarnf overrides the recoverable-warning hook for OpenAnalysis.
func WithAnalysisWarnf(fn Warnf) AnalysisOption {
	return func(c *config) {
		if fn == nil {
			fn = func(string, ...interface{}) {}
		}
		c.warnf = fn
	}
}
