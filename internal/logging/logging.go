// Package logging builds the structured logger shared by the CLI handlers.
//
// Callers depend only on [logr.Logger]; zap is the backend.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures the logger.
type Options struct {
	// Verbosity is the highest logr V-level that is emitted.
	Verbosity int

	// JSON selects the JSON encoder instead of the console encoder.
	JSON bool

	// Output receives log lines. Defaults to stderr.
	Output io.Writer
}

// New returns a logr.Logger backed by zap.
func New(opts Options) (logr.Logger, error) {
	if opts.Verbosity < 0 {
		return logr.Discard(), fmt.Errorf("verbosity must not be negative, got %d", opts.Verbosity)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var enc zapcore.Encoder
	if opts.JSON {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	var sink zapcore.WriteSyncer
	if opts.Output != nil {
		sink = zapcore.AddSync(opts.Output)
	} else {
		sink = zapcore.Lock(os.Stderr)
	}

	// logr V(n) maps to zap level -n.
	// #nosec G115
	level := zap.NewAtomicLevelAt(zapcore.Level(-opts.Verbosity))
	core := zapcore.NewCore(enc, sink, level)

	return zapr.NewLogger(zap.New(core)), nil
}
