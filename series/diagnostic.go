package series

import "fmt"

// DiagnosticKind classifies a data-integrity problem found at construction.
type DiagnosticKind uint8

const (
	// DiagnosticMisaligned means the data length is not a multiple of the time length.
	DiagnosticMisaligned DiagnosticKind = iota + 1
	// DiagnosticUnsorted means the time index decreases somewhere.
	DiagnosticUnsorted
)

func (k DiagnosticKind) String() string {
	switch k {
	case DiagnosticMisaligned:
		return "misaligned"
	case DiagnosticUnsorted:
		return "unsorted"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", uint8(k))
	}
}

// Diagnostic describes a soft failure. The series is still usable; queries
// run against the floored width and the time index as given.
type Diagnostic struct {
	Kind    DiagnosticKind
	Message string
	TimeLen int
	DataLen int
	// Index is the first position where the time index decreases. Only set
	// for DiagnosticUnsorted.
	Index int
}

func (d Diagnostic) String() string {
	return d.Kind.String() + ": " + d.Message
}

func checkAlignment(timeLen, dataLen int) (Diagnostic, bool) {
	if timeLen == 0 {
		if dataLen == 0 {
			return Diagnostic{}, false
		}

		return Diagnostic{
			Kind:    DiagnosticMisaligned,
			Message: fmt.Sprintf("%d data values with an empty time index", dataLen),
			DataLen: dataLen,
		}, true
	}

	if dataLen%timeLen == 0 {
		return Diagnostic{}, false
	}

	return Diagnostic{
		Kind: DiagnosticMisaligned,
		Message: fmt.Sprintf("data length %d is not a multiple of time length %d, width floored to %d",
			dataLen, timeLen, dataLen/timeLen),
		TimeLen: timeLen,
		DataLen: dataLen,
	}, true
}

func checkOrder(time []float64) (Diagnostic, bool) {
	for i := 1; i < len(time); i++ {
		if time[i] < time[i-1] {
			return Diagnostic{
				Kind:    DiagnosticUnsorted,
				Message: fmt.Sprintf("time[%d]=%v is before time[%d]=%v", i, time[i], i-1, time[i-1]),
				TimeLen: len(time),
				Index:   i,
			}, true
		}
	}

	return Diagnostic{}, false
}
