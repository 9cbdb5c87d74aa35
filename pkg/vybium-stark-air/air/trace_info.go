package air

import (
	"github.com/vybium/vybium-stark-air/internal/vybium-stark-air/utils"
)

const (
	// MinTraceLength is the smallest supported execution trace length
	MinTraceLength = 8

	// MaxTraceWidth is the largest supported number of trace registers
	MaxTraceWidth = 255
)

// TraceInfo describes the shape of an execution trace: the number of
// registers (width) and the number of steps (length). The length must be a
// power of two so that the trace domain is a multiplicative subgroup
// suitable for NTT operations.
type TraceInfo struct {
	width  int
	length int
}

// NewTraceInfo creates trace shape metadata for a trace with the given
// number of registers and steps
func NewTraceInfo(width, length int) (TraceInfo, error) {
	if width < 1 || width > MaxTraceWidth {
		return TraceInfo{}, newError(ErrInvalidTraceInfo,
			"trace width must be between 1 and %d, got %d", MaxTraceWidth, width)
	}
	if length < MinTraceLength {
		return TraceInfo{}, newError(ErrInvalidTraceInfo,
			"trace length must be at least %d, got %d", MinTraceLength, length)
	}
	if !utils.IsPowerOfTwo(length) {
		return TraceInfo{}, newError(ErrInvalidTraceInfo,
			"trace length must be a power of 2, got %d", length)
	}

	return TraceInfo{width: width, length: length}, nil
}

// Width returns the number of registers in the trace
func (t TraceInfo) Width() int {
	return t.width
}

// Length returns the number of steps in the trace
func (t TraceInfo) Length() int {
	return t.length
}
