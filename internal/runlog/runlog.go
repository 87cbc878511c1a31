// Package runlog provides the CLI's structured logging trail
// (compile/run lifecycle events, separate from the literal
// spec-mandated stderr error formats in internal/diag) and a per-run
// correlation ID, grounded on chazu-maggie's commonlog/uuid wiring.
package runlog

import (
	"sync"

	"github.com/google/uuid"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	once   sync.Once
	logger commonlog.Logger
)

func logging() commonlog.Logger {
	once.Do(func() {
		commonlog.Configure(1, nil)
		logger = commonlog.GetLogger("lurac")
	})
	return logger
}

// NewRunID returns a fresh identifier for one REPL session or file
// execution, used to correlate the log lines it produces.
func NewRunID() string {
	return uuid.NewString()
}

// Scanning records that a source unit is about to be lexed/parsed.
func Scanning(runID string) {
	logging().Infof("run=%s scanning source", runID)
}

// Compiled records how many bytecode bytes a run produced.
func Compiled(runID string, bytes int) {
	logging().Infof("run=%s compiled %d bytes", runID, bytes)
}

// Halted records a run's final VM status.
func Halted(runID string, status string) {
	logging().Infof("run=%s run halted: %s", runID, status)
}

// CompileFailed records that compilation itself did not produce a
// runnable chunk.
func CompileFailed(runID string) {
	logging().Warning("run=" + runID + " compile failed")
}
