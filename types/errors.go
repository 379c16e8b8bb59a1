package types

import (
	"fmt"
)

// InvalidHandle is returned by operations on an object that was freed, either
// directly or by the owner it was attached to.
type InvalidHandle struct {
	Object string `json:"object,omitempty"`
}

func (e InvalidHandle) Error() string {
	return fmt.Sprintf("invalid handle: %s was freed", e.Object)
}

// UnknownSlot is returned when registering under a name the object does not have.
type UnknownSlot struct {
	Object string `json:"object,omitempty"`
	Slot   string `json:"slot,omitempty"`
}

func (e UnknownSlot) Error() string {
	return fmt.Sprintf("%s has no callback slot %q", e.Object, e.Slot)
}

// NativeStatus wraps a failing return flag of the native engine. Cause holds
// the interop failure recorded while the call ran, if any.
type NativeStatus struct {
	Op    string `json:"op,omitempty"`
	Code  int    `json:"code"`
	Cause error  `json:"-"`
}

var (
	_ error = InvalidHandle{}
	_ error = UnknownSlot{}
	_ error = NativeStatus{}
)

func (e NativeStatus) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed with flag %d (%s): %s", e.Op, e.Code, StatusName(e.Code), e.Cause)
	}
	return fmt.Sprintf("%s failed with flag %d (%s)", e.Op, e.Code, StatusName(e.Code))
}

func (e NativeStatus) Unwrap() error {
	return e.Cause
}
