package log

import (
	"log/slog"
	"math"
)

// Level reported by loggers that never log.
const _discardLevel = Level(math.MaxInt)

// Discard is a logger that discards all its operations.
// Loggers derived from it with WithLevel or WithName also discard.
var Discard = &Logger{slog.New(slog.DiscardHandler)}
