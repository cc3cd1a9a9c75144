// Package debug emits optional stderr tracing for extraction runs, gated
// on the RL_DEBUG environment variable. Every line is tagged with the
// pipeline phase that produced it, so a trace reads as the pipeline's own
// narrative:
//
//	RL_DEBUG=1 rulelist -forest model.json -data train.csv
//	[rulelist] 10:04:05.120311 harvest: 42 rules from 5 trees
//	[rulelist] 10:04:05.131020 cover: picked "if x0 <= 0.5 then a" (err=0.0000 sup=0.5000 len=1), 10 rows left
//
// When RL_DEBUG is unset every function is a no-op.
package debug

import (
	"log"
	"os"
)

var (
	enabled bool
	logger  *log.Logger
)

func init() {
	if os.Getenv("RL_DEBUG") != "" {
		enabled = true
		logger = log.New(os.Stderr, "[rulelist] ", log.Ltime|log.Lmicroseconds)
	}
}

// Enabled returns whether tracing is on.
func Enabled() bool {
	return enabled
}

// SetEnabled turns tracing on or off programmatically.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = log.New(os.Stderr, "[rulelist] ", log.Ltime|log.Lmicroseconds)
	}
}

// Phasef writes one phase-tagged trace line, printf-style.
func Phasef(phase, format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(phase+": "+format, args...)
}
