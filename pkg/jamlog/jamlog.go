// Package jamlog provides structured logging for the consensus kernel. It
// wraps Go's log/slog with per-module child loggers so every component
// (safrole, accumulator, bandersnatch, ...) logs under its own "module"
// attribute without threading a logger through every constructor by hand,
// plus typed attribute helpers (Slot, Epoch, Validator) and named
// transition-event loggers (TicketAdmitted, TicketDropped,
// WinnersMarkerComputed, EpochRotated) so call sites log the kernel's own
// vocabulary instead of hand-assembling slog key-value pairs per callsite.
package jamlog

import (
	"log/slog"
	"os"

	"github.com/esscrypt/peanutbutterandjam-core/pkg/types"
)

// Logger wraps slog.Logger with the kernel's module-scoping convention.
type Logger struct {
	inner *slog.Logger
}

// defaultLogger is the process-wide logger used by the package-level
// convenience functions.
var defaultLogger *Logger

func init() {
	defaultLogger = New(slog.LevelInfo)
}

// New creates a Logger that writes JSON to stderr at the given level.
func New(level slog.Level) *Logger {
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{inner: slog.New(h)}
}

// NewWithHandler creates a Logger backed by the supplied slog.Handler,
// primarily for tests that want to capture or silence log output.
func NewWithHandler(h slog.Handler) *Logger {
	return &Logger{inner: slog.New(h)}
}

// SetDefault replaces the package-level default logger.
func SetDefault(l *Logger) {
	if l != nil {
		defaultLogger = l
	}
}

// Default returns the current package-level default logger.
func Default() *Logger {
	return defaultLogger
}

// Module returns a child logger with an additional "module" attribute.
// This is the primary way kernel components (safrole, accumulator,
// bandersnatch, serviceid, ...) obtain their own contextual logger.
func (l *Logger) Module(name string) *Logger {
	return &Logger{inner: l.inner.With("module", name)}
}

// With returns a child logger with additional key-value context.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{inner: l.inner.With(args...)}
}

// Slot returns a child logger tagged with the kernel's current slot
// number, the attribute nearly every Safrole/accumulator log line carries.
func (l *Logger) Slot(slot uint64) *Logger {
	return l.With("slot", slot)
}

// Epoch returns a child logger tagged with the current epoch number.
func (l *Logger) Epoch(epoch uint64) *Logger {
	return l.With("epoch", epoch)
}

// Validator returns a child logger tagged with a validator's key,
// rendered in the kernel's canonical "0x"-prefixed hex form rather than
// a raw byte slice.
func (l *Logger) Validator(v types.Hash) *Logger {
	return l.With("validator", v.String())
}

// TicketAdmitted logs a ticket's acceptance into the Safrole ticket
// accumulator.
func (l *Logger) TicketAdmitted(validator types.Hash, attempt uint32) {
	l.Validator(validator).Debug("ticket admitted", "attempt", attempt)
}

// TicketDropped logs a ticket's rejection, with the admission rule that
// rejected it.
func (l *Logger) TicketDropped(validator types.Hash, attempt uint32, reason string) {
	l.Validator(validator).Debug("ticket dropped", "attempt", attempt, "reason", reason)
}

// WinnersMarkerComputed logs the emission of H_winnersmark at an epoch
// boundary.
func (l *Logger) WinnersMarkerComputed(slot uint64, marker types.Hash) {
	l.Slot(slot).Info("winners marker computed", "marker", marker.String())
}

// EpochRotated logs a completed validator-set rotation.
func (l *Logger) EpochRotated(fromEpoch, toEpoch uint64, validatorCount int) {
	l.Info("epoch boundary crossed", "from_epoch", fromEpoch, "to_epoch", toEpoch, "validators", validatorCount)
}

// Debug logs at LevelDebug.
func (l *Logger) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }

// Info logs at LevelInfo.
func (l *Logger) Info(msg string, args ...any) { l.inner.Info(msg, args...) }

// Warn logs at LevelWarn.
func (l *Logger) Warn(msg string, args ...any) { l.inner.Warn(msg, args...) }

// Error logs at LevelError.
func (l *Logger) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

// ---------------------------------------------------------------------------
// Package-level convenience functions -- delegate to defaultLogger.
// ---------------------------------------------------------------------------

// Debug logs at LevelDebug using the default logger.
func Debug(msg string, args ...any) { defaultLogger.Debug(msg, args...) }

// Info logs at LevelInfo using the default logger.
func Info(msg string, args ...any) { defaultLogger.Info(msg, args...) }

// Warn logs at LevelWarn using the default logger.
func Warn(msg string, args ...any) { defaultLogger.Warn(msg, args...) }

// Error logs at LevelError using the default logger.
func Error(msg string, args ...any) { defaultLogger.Error(msg, args...) }
