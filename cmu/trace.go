package cmu

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// TraceEvent captures a clock transition for post-mortem analysis
type TraceEvent struct {
	Kind   uint8  // Event kind (Evt*)
	Source Source // Requested source, None for divisor and tuning events
	Arg1   uint32 // Context-dependent value
	Arg2   uint32 // Context-dependent value
	Freq   uint32 // Resulting or requested frequency
}

// Event kinds
const (
	EvtSetClock   = 1 // SetClock completed; Arg1=hclkDiv Arg2=coreDiv Freq=peripheral clock
	EvtHFClockDiv = 2 // SetHFClockDivisor; Arg1=divisor Freq=core clock
	EvtPrescalers = 3 // ApplyDivisors; Arg1=core code Arg2=peripheral code Freq=core clock
	EvtTune       = 4 // Tune; Arg1=tier Arg2=read mode Freq=requested frequency
	EvtRejected   = 5 // SetClock with an invalid source
	EvtNotReady   = 6 // oscillator wait budget exhausted
)

const (
	TraceRingSize = 16 // Keep the last 16 events
)

var (
	// debugPrintln is the debug print function (can be set by platform code)
	debugPrintln DebugWriter = func(s string) {}

	// debugEnabled controls whether events are also printed as they happen
	debugEnabled = false

	// Transition ring buffer, always recorded
	traceRing [TraceRingSize]TraceEvent
	traceHead uint8
)

// SetDebugWriter sets the platform-specific debug output function
func SetDebugWriter(writer DebugWriter) {
	if writer == nil {
		writer = func(string) {}
	}
	debugPrintln = writer
}

// SetDebugEnabled enables or disables printing events as they are recorded
func SetDebugEnabled(enabled bool) {
	debugEnabled = enabled
}

// IsDebugEnabled returns whether debug output is enabled
func IsDebugEnabled() bool {
	return debugEnabled
}

func record(kind uint8, src Source, arg1, arg2, freq uint32) {
	idx := traceHead
	traceRing[idx] = TraceEvent{
		Kind:   kind,
		Source: src,
		Arg1:   arg1,
		Arg2:   arg2,
		Freq:   freq,
	}
	traceHead = (idx + 1) % TraceRingSize
	if debugEnabled {
		debugPrintln(traceEvent(&traceRing[idx]))
	}
}

// Trace returns the recorded events, oldest first.
func Trace() []TraceEvent {
	events := make([]TraceEvent, 0, TraceRingSize)
	start := traceHead
	for i := uint8(0); i < TraceRingSize; i++ {
		evt := traceRing[(start+i)%TraceRingSize]
		if evt.Kind == 0 {
			continue // Empty slot
		}
		events = append(events, evt)
	}
	return events
}

// DumpTrace writes the trace ring through the debug writer
func DumpTrace() {
	debugPrintln("[CMU] === Trace Dump ===")
	for _, evt := range Trace() {
		debugPrintln(traceEvent(&evt))
	}
	debugPrintln("[CMU] === End Dump ===")
}

// ClearTrace clears the trace ring
func ClearTrace() {
	for i := range traceRing {
		traceRing[i] = TraceEvent{}
	}
	traceHead = 0
}

func traceEvent(evt *TraceEvent) string {
	var name string
	switch evt.Kind {
	case EvtSetClock:
		name = "SET_CLOCK"
	case EvtHFClockDiv:
		name = "HFCLK_DIV"
	case EvtPrescalers:
		name = "PRESCALE"
	case EvtTune:
		name = "TUNE"
	case EvtRejected:
		name = "REJECTED!"
	case EvtNotReady:
		name = "NOT_READY!"
	default:
		name = "UNKNOWN"
	}
	return "[CMU] " + name +
		" src=" + evt.Source.String() +
		" a1=" + utoa(evt.Arg1) +
		" a2=" + utoa(evt.Arg2) +
		" freq=" + utoa(evt.Freq)
}

// utoa formats n in decimal. Trace lines are built without fmt so the
// firmware does not pull it in just for debug output.
func utoa(n uint32) string {
	var buf [10]byte // max uint32 has 10 digits
	i := len(buf)
	for {
		i--
		buf[i] = '0' + byte(n%10)
		n /= 10
		if n == 0 {
			break
		}
	}
	return string(buf[i:])
}
