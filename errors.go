package animtransfer

import (
	"errors"
	"fmt"
)

var (
	ErrTopologyMismatch = errors.New("animtransfer: topology mismatch")
	ErrNumerical        = errors.New("animtransfer: numerical error")
	ErrHostIO           = errors.New("animtransfer: host i/o error")
	ErrBusy             = errors.New("animtransfer: transfer already running")
)

// Side tells which skeleton a joint belongs to
type Side uint8

const (
	SOURCE Side = iota
	TARGET
)

func (s Side) String() string {
	if s == SOURCE {
		return "source"
	}

	return "target"
}

// TopologyMismatchError is returned before any frame when the ordered joint lists differ in length
type TopologyMismatchError struct {
	SourceJoints int
	TargetJoints int
}

func (e *TopologyMismatchError) Error() string {
	return fmt.Sprintf("animtransfer: topology mismatch: source has %d joints, target has %d", e.SourceJoints, e.TargetJoints)
}

func (e *TopologyMismatchError) Is(target error) bool {
	return target == ErrTopologyMismatch
}

// NumericalError reports a singular matrix for one joint at one frame.
// The joint is left untouched for that frame, the run goes on.
type NumericalError struct {
	Frame int
	Index int
	Joint string
	Side  Side
	Err   error
}

func (e *NumericalError) Error() string {
	return fmt.Sprintf("animtransfer: frame %d: %s joint %d (%s): %v", e.Frame, e.Side, e.Index, e.Joint, e.Err)
}

func (e *NumericalError) Is(target error) bool {
	return target == ErrNumerical
}

func (e *NumericalError) Unwrap() error {
	return e.Err
}

// HostIOError wraps a failed scene graph call; it ends the run
type HostIOError struct {
	Op    string
	Frame int
	Err   error
}

func (e *HostIOError) Error() string {
	if e.Frame < 0 {
		return fmt.Sprintf("animtransfer: %s: %v", e.Op, e.Err)
	}

	return fmt.Sprintf("animtransfer: frame %d: %s: %v", e.Frame, e.Op, e.Err)
}

func (e *HostIOError) Is(target error) bool {
	return target == ErrHostIO
}

func (e *HostIOError) Unwrap() error {
	return e.Err
}
