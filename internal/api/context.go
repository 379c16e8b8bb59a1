package api

/*
#include <stdlib.h>
#include "callbacks.h"
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/sunbind/sunbind/types"
)

// allocTable reserves an ID, allocates the native context cell with the
// engine's allocator and publishes table under the ID. Ownership of the cell
// passes to the native object it is attached to; the engine's destructor
// runs the release hook and then frees the cell.
func allocTable(kind TableKind, table any) (*C.SBFnTable, *entry, error) {
	id := nextTableID()
	cell := C.SBFnTableAlloc(C.uint64_t(id), C.uint32_t(kind))
	if cell == nil {
		return nil, nil, types.OutOfMemory{Object: kind.String()}
	}
	return cell, storeTable(id, kind, table), nil
}

// discardCell undoes allocTable when the cell could not be attached.
func discardCell(cell *C.SBFnTable) {
	releaseTable(TableID(cell.id))
	cell.magic = 0
	C.free(unsafe.Pointer(cell))
}

// releaseHook is registered next to every cell; see sbTableRelease.
func releaseHook() C.SBTableDestroyFn {
	return C.SBTableDestroyFn(C.sbTableRelease_cgo)
}

// lookupCell validates a context cell and returns its registry entry.
func lookupCell(cell *C.SBFnTable, kind TableKind) (*entry, error) {
	if cell == nil {
		return nil, types.MissingCallbackTable{Reason: "no table attached"}
	}
	if cell.magic != C.SB_TABLE_MAGIC {
		return nil, types.MissingCallbackTable{Reason: "context does not point at a callback table"}
	}
	if got := TableKind(cell.kind); got != kind {
		return nil, types.MissingCallbackTable{Reason: fmt.Sprintf("table belongs to %s, want %s", got, kind)}
	}
	e, ok := retrieveTable(TableID(cell.id))
	if !ok {
		return nil, types.MissingCallbackTable{Reason: fmt.Sprintf("table %d was released", uint64(cell.id))}
	}
	return e, nil
}

// direct: the context argument is the cell itself.
func direct(kind TableKind) locator {
	return func(ctx any) (*entry, error) {
		p, _ := ctx.(unsafe.Pointer)
		return lookupCell((*C.SBFnTable)(p), kind)
	}
}

// viaOwner: the context argument is the integrator memory that owns the
// cell in its python field.
func viaOwner(kind TableKind) locator {
	return func(ctx any) (*entry, error) {
		p, _ := ctx.(unsafe.Pointer)
		mem := C.SBIntegratorMem(p)
		if mem == nil {
			return nil, types.MissingCallbackTable{Reason: "null user data"}
		}
		return lookupCell((*C.SBFnTable)(mem.python), kind)
	}
}

// viaObject: the context argument is the inner stepper, which keeps the cell
// as its content.
func viaObject(kind TableKind) locator {
	return func(ctx any) (*entry, error) {
		p, _ := ctx.(unsafe.Pointer)
		stepper := C.SBInnerStepper(p)
		if stepper == nil {
			return nil, types.MissingCallbackTable{Reason: "null stepper"}
		}
		return lookupCell((*C.SBFnTable)(stepper.content), kind)
	}
}

// failNextTableAllocs makes the next n cell allocations fail.
func failNextTableAllocs(n int) {
	C.SBFnTableFailNextAllocs(C.int(n))
}

func currentThread() uint64 { return uint64(C.SBThreadID()) }
