// Package logging provides a rotating, gzip-compressing sink for
// per-run decode warnings and flight summaries.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB         = 10
	maxBackups        = 14
	defaultMaxAgeDays = 14
)

// LogRotator is a rotating, compressing sink for decode-run logs,
// backed by lumberjack instead of a hand-managed file + gzip goroutine.
type LogRotator struct {
	logger *logrus.Logger
	lj     *lumberjack.Logger
	mu     sync.RWMutex
}

// NewLogRotator creates a log rotator writing into logDir. useUTC
// selects UTC timestamps for the rotator's own backup filenames.
// maxAgeDays overrides how long rotated backups are kept; 0 selects
// the default of 14 days.
func NewLogRotator(logDir string, useUTC bool, maxAgeDays int, logger *logrus.Logger) (*LogRotator, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	if maxAgeDays == 0 {
		maxAgeDays = defaultMaxAgeDays
	}

	lj := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, "decode.log"),
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   true,
		LocalTime:  !useUTC,
	}

	logger.WithField("file", lj.Filename).Info("Decode log rotator initialized")

	return &LogRotator{logger: logger, lj: lj}, nil
}

// GetWriter returns the current log writer.
func (r *LogRotator) GetWriter() (io.Writer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.lj == nil {
		return nil, fmt.Errorf("no current log file")
	}
	return r.lj, nil
}

// Rotate forces an immediate rotation, e.g. at the start of a new batch.
func (r *LogRotator) Rotate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lj.Rotate()
}

// Close closes the underlying log file.
func (r *LogRotator) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logger.Info("Closing decode log rotator")
	return r.lj.Close()
}

// CurrentLogFile returns the active (pre-rotation) log file path.
func (r *LogRotator) CurrentLogFile() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lj.Filename
}
