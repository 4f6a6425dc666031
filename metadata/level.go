package metadata

import (
	"fmt"
	"sync/atomic"
)

const (
	// Open Telemetry puts tracing as lower level than debugging, so the
	// numbers mostly map to theirs: TraceLevel is OTEL's "Debug4".
	DebugLevel Level = 5
	TraceLevel Level = 8
	InfoLevel  Level = 9
	WarnLevel  Level = 13
	ErrorLevel Level = 17
)

// Level is the verbosity level of a callsite.
type Level int32

func (level *Level) AtomicLoad() Level {
	return Level(atomic.LoadInt32((*int32)(level)))
}

func (level *Level) AtomicStore(newLevel Level) {
	atomic.StoreInt32((*int32)(level), int32(newLevel))
}

func (level Level) String() string {
	switch level {
	case DebugLevel:
		return "debug"
	case TraceLevel:
		return "trace"
	case InfoLevel:
		return "info"
	case WarnLevel:
		return "warn"
	case ErrorLevel:
		return "error"
	default:
		return fmt.Sprintf("Level(%d)", int32(level))
	}
}
