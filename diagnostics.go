package flacmeta

import (
	"log"
	"os"
)

// DiagnosticsSink receives non-fatal warnings encountered while walking a
// metadata block chain: reserved/unknown block types, and more than one
// PICTURE claiming the same front/back cover role. Load never fails because
// of a diagnostic; it only reports one.
type DiagnosticsSink interface {
	Warnf(format string, args ...interface{})
}

// stdDiagnostics is the default DiagnosticsSink, writing through a
// *log.Logger the way the teacher's CLI drivers already report errors via
// the standard log package.
type stdDiagnostics struct {
	logger *log.Logger
}

// NewStdDiagnostics returns a DiagnosticsSink that writes warnings to os.Stderr
// prefixed with "flacmeta: ".
func NewStdDiagnostics() DiagnosticsSink {
	return &stdDiagnostics{logger: log.New(os.Stderr, "flacmeta: ", 0)}
}

func (s *stdDiagnostics) Warnf(format string, args ...interface{}) {
	s.logger.Printf(format, args...)
}

// discardDiagnostics silently drops every warning.
type discardDiagnostics struct{}

func (discardDiagnostics) Warnf(format string, args ...interface{}) {}

// DiscardDiagnostics returns a DiagnosticsSink that drops every warning,
// useful for callers (and tests) that don't want chain-walk warnings on
// os.Stderr.
func DiscardDiagnostics() DiagnosticsSink {
	return discardDiagnostics{}
}
