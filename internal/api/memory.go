package api

/*
#include "bindings.h"
#include <stdlib.h>
*/
import "C"

import (
	"sync/atomic"
	"unsafe"

	"github.com/sunbind/sunbind/types"
)

// Value types
type (
	cint  = C.int
	creal = C.sunrealtype
)

// vectorView exposes the storage of a native vector to Go without copying.
// The view is only valid while the engine keeps the vector alive, which for
// hook arguments means the duration of the call.
func vectorView(v C.N_Vector) types.Vector {
	if v == nil {
		return nil
	}
	// In Go, accessing the 0-th element of an empty array triggers a panic, and
	// the engine leaves data NULL for empty vectors.
	if v.length == 0 || v.data == nil {
		return types.Vector{}
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(v.data)), int(v.length))
}

// vectorRun groups a native run of n vectors (N_Vector* plus a count) into
// one Go value.
func vectorRun(vs *C.N_Vector, n C.int) []types.Vector {
	if vs == nil || n <= 0 {
		return nil
	}
	natives := unsafe.Slice(vs, int(n))
	out := make([]types.Vector, len(natives))
	for i, v := range natives {
		out[i] = vectorView(v)
	}
	return out
}

// realView exposes n reals behind p, see vectorView.
func realView(p *C.sunrealtype, n int) []float64 {
	if p == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(p)), n)
}

// For tracking vectors created on behalf of Go callers
var (
	totalVectorsCreated   uint64
	totalVectorsDestroyed uint64
)

// newVector copies data into a vector allocated by the engine. Returns nil
// when the engine is out of memory.
func newVector(data []float64) C.N_Vector {
	v := C.SBVectorNew(C.int64_t(len(data)))
	if v == nil {
		return nil
	}
	atomic.AddUint64(&totalVectorsCreated, 1)
	copy(vectorView(v), data)
	return v
}

func destroyVector(v C.N_Vector) {
	if v == nil {
		return
	}
	C.SBVectorDestroy(v)
	atomic.AddUint64(&totalVectorsDestroyed, 1)
}

// newVectorArray copies rows into an engine allocated array of vectors. All
// rows must have the same length.
func newVectorArray(rows [][]float64) *C.N_Vector {
	if len(rows) == 0 {
		return nil
	}
	vs := C.SBVectorArrayNew(C.int(len(rows)), C.int64_t(len(rows[0])))
	if vs == nil {
		return nil
	}
	atomic.AddUint64(&totalVectorsCreated, uint64(len(rows)))
	for i, v := range unsafe.Slice(vs, len(rows)) {
		copy(vectorView(v), rows[i])
	}
	return vs
}

func destroyVectorArray(vs *C.N_Vector, n int) {
	if vs == nil {
		return
	}
	C.SBVectorArrayDestroy(vs, C.int(n))
	atomic.AddUint64(&totalVectorsDestroyed, uint64(n))
}

// copyVector returns a Go owned copy of a native vector.
func copyVector(v C.N_Vector) []float64 {
	view := vectorView(v)
	if view == nil {
		return nil
	}
	out := make([]float64, len(view))
	copy(out, view)
	return out
}

// GetVectorStats returns how many vectors were created and destroyed on
// behalf of Go callers.
func GetVectorStats() (created, destroyed uint64) {
	return atomic.LoadUint64(&totalVectorsCreated), atomic.LoadUint64(&totalVectorsDestroyed)
}
