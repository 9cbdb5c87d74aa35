package air

import (
	"github.com/vybium/vybium-crypto/pkg/vybium-crypto/field"
)

// EvaluationFrame is the window of trace state exposed to transition
// constraint evaluation: the register values at the current step and at the
// next step.
//
// A frame is a read-only view from the evaluator's perspective. Workers
// evaluating transitions concurrently each hold their own frame and refill
// it per step via ReadFrom; nothing is shared between steps.
type EvaluationFrame struct {
	current []field.Element
	next    []field.Element
}

// NewEvaluationFrame creates an empty frame for a trace of the given width
func NewEvaluationFrame(width int) *EvaluationFrame {
	return &EvaluationFrame{
		current: make([]field.Element, width),
		next:    make([]field.Element, width),
	}
}

// FrameFromRows creates a frame directly from two register rows; both rows
// are copied
func FrameFromRows(current, next []field.Element) *EvaluationFrame {
	frame := NewEvaluationFrame(len(current))
	copy(frame.current, current)
	copy(frame.next, next)
	return frame
}

// ReadFrom fills the frame with rows step and step+1 of the given trace;
// the trace is laid out one row per step, one column per register
func (f *EvaluationFrame) ReadFrom(trace [][]field.Element, step int) {
	copy(f.current, trace[step])
	copy(f.next, trace[step+1])
}

// Current returns the register values at the current step
func (f *EvaluationFrame) Current() []field.Element {
	return f.current
}

// Next returns the register values at the next step
func (f *EvaluationFrame) Next() []field.Element {
	return f.next
}
