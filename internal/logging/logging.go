// Package logging adapts github.com/apex/log to the [wfqsim.Logger]
// interface, the same structured logger the wider lineage already depends
// on for its CLIs.
package logging

import (
	"github.com/apex/log"
	apexcli "github.com/apex/log/handlers/cli"

	"github.com/bassosimone/wfqsim"
)

// Logger wraps an apex/log.Interface to implement [wfqsim.Logger].
type Logger struct {
	entry log.Interface
}

var _ wfqsim.Logger = (*Logger)(nil)

// New returns a [Logger] writing through apex/log's default CLI handler,
// with the level controlled by verbose.
func New(verbose bool) *Logger {
	log.SetHandler(apexcli.Default)
	if verbose {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	return &Logger{entry: log.Log}
}

func (l *Logger) Debugf(format string, args ...any) { l.entry.Debugf(format, args...) }
func (l *Logger) Debug(msg string)                  { l.entry.Debug(msg) }
func (l *Logger) Infof(format string, args ...any)  { l.entry.Infof(format, args...) }
func (l *Logger) Info(msg string)                   { l.entry.Info(msg) }
func (l *Logger) Warnf(format string, args ...any)  { l.entry.Warnf(format, args...) }
func (l *Logger) Warn(msg string)                   { l.entry.Warn(msg) }
func (l *Logger) Errorf(format string, args ...any) { l.entry.Errorf(format, args...) }
func (l *Logger) Error(msg string)                  { l.entry.Error(msg) }
