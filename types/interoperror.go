package types

import (
	"errors"
	"fmt"
	"reflect"
)

// InteropError captures every failure raised while a native hook is routed to
// a host callable. Exactly one of the fields should be set.
type InteropError struct {
	OutOfMemory          *OutOfMemory          `json:"out_of_memory,omitempty"`
	MissingCallbackTable *MissingCallbackTable `json:"missing_callback_table,omitempty"`
	UnboundCallback      *UnboundCallback      `json:"unbound_callback,omitempty"`
	SignatureMismatch    *SignatureMismatch    `json:"signature_mismatch,omitempty"`
	HostCallableFailure  *HostCallableFailure  `json:"host_callable_failure,omitempty"`
}

var (
	_ error = InteropError{}
	_ error = OutOfMemory{}
	_ error = MissingCallbackTable{}
	_ error = UnboundCallback{}
	_ error = SignatureMismatch{}
	_ error = HostCallableFailure{}
)

func (a InteropError) Error() string {
	switch {
	case a.OutOfMemory != nil:
		return a.OutOfMemory.Error()
	case a.MissingCallbackTable != nil:
		return a.MissingCallbackTable.Error()
	case a.UnboundCallback != nil:
		return a.UnboundCallback.Error()
	case a.SignatureMismatch != nil:
		return a.SignatureMismatch.Error()
	case a.HostCallableFailure != nil:
		return a.HostCallableFailure.Error()
	default:
		panic("unknown error variant")
	}
}

// Kind names the variant that is set, in snake case.
func (a InteropError) Kind() string {
	switch {
	case a.OutOfMemory != nil:
		return "out_of_memory"
	case a.MissingCallbackTable != nil:
		return "missing_callback_table"
	case a.UnboundCallback != nil:
		return "unbound_callback"
	case a.SignatureMismatch != nil:
		return "signature_mismatch"
	case a.HostCallableFailure != nil:
		return "host_callable_failure"
	default:
		return "unknown"
	}
}

// OutOfMemory is returned when the native allocation of a callback table fails.
type OutOfMemory struct {
	Object string `json:"object,omitempty"`
}

func (e OutOfMemory) Error() string {
	return fmt.Sprintf("out of memory: cannot allocate callback table for %s", e.Object)
}

// MissingCallbackTable is raised when the context pointer of a hook does not
// lead to a live callback table.
type MissingCallbackTable struct {
	Slot   string `json:"slot,omitempty"`
	Reason string `json:"reason,omitempty"`
}

func (e MissingCallbackTable) Error() string {
	return fmt.Sprintf("missing callback table for %s: %s", e.Slot, e.Reason)
}

// UnboundCallback is raised when the engine calls a hook whose slot is empty.
type UnboundCallback struct {
	Slot string `json:"slot,omitempty"`
}

func (e UnboundCallback) Error() string {
	return fmt.Sprintf("no callable bound to slot %s", e.Slot)
}

// SignatureMismatch is raised when the stored callable cannot be used as the
// hook's function type.
type SignatureMismatch struct {
	Slot string `json:"slot,omitempty"`
	Want string `json:"want,omitempty"`
	Got  string `json:"got,omitempty"`
}

func (e SignatureMismatch) Error() string {
	return fmt.Sprintf("callable in slot %s has type %s, want %s", e.Slot, e.Got, e.Want)
}

// HostCallableFailure is raised when the host callable panics.
type HostCallableFailure struct {
	Slot  string `json:"slot,omitempty"`
	Panic string `json:"panic,omitempty"`
}

func (e HostCallableFailure) Error() string {
	return fmt.Sprintf("callable in slot %s panicked: %s", e.Slot, e.Panic)
}

// convertSpecificError converts a specific error type to an InteropError
func convertSpecificError(err error) *InteropError {
	switch t := err.(type) {
	case InteropError:
		return &t
	case *InteropError:
		return t
	case OutOfMemory:
		return &InteropError{OutOfMemory: &t}
	case *OutOfMemory:
		return &InteropError{OutOfMemory: t}
	case MissingCallbackTable:
		return &InteropError{MissingCallbackTable: &t}
	case *MissingCallbackTable:
		return &InteropError{MissingCallbackTable: t}
	case UnboundCallback:
		return &InteropError{UnboundCallback: &t}
	case *UnboundCallback:
		return &InteropError{UnboundCallback: t}
	case SignatureMismatch:
		return &InteropError{SignatureMismatch: &t}
	case *SignatureMismatch:
		return &InteropError{SignatureMismatch: t}
	case HostCallableFailure:
		return &InteropError{HostCallableFailure: &t}
	case *HostCallableFailure:
		return &InteropError{HostCallableFailure: t}
	default:
		return nil
	}
}

// ToInteropError will try to convert the given error to an InteropError,
// looking through wrapped errors.
//
// If it is anything else, **return nil**
func ToInteropError(err error) *InteropError {
	for e := err; !isNil(e); e = errors.Unwrap(e) {
		if result := convertSpecificError(e); result != nil {
			return result
		}
	}
	return nil
}

// check if an interface is nil (even if it has type info).
func isNil(i any) bool {
	if i == nil {
		return true
	}
	if reflect.TypeOf(i).Kind() == reflect.Ptr {
		// IsNil panics if you try it on a struct (not a pointer)
		return reflect.ValueOf(i).IsNil()
	}
	// if we aren't a pointer, can't be nil, can we?
	return false
}
