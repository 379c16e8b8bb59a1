package api

/*
#include "bindings.h"
*/
import "C"

import (
	"reflect"

	"github.com/sunbind/sunbind/types"
)

// Structured results are plain structs: field 0 is the status returned to the
// engine, every further field is written to the out-parameter at the same
// position in outs. Missing fields and failed calls write neutral defaults
// (false, 0), never leaving an out-parameter untouched.

// resultStatus reads field 0 of a structured result.
func resultStatus[R any](res R) int {
	rv := reflect.ValueOf(res)
	if rv.Kind() != reflect.Struct || rv.NumField() == 0 {
		return types.StatusHookFailure
	}
	f := rv.Field(0)
	switch f.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(f.Int())
	default:
		return types.StatusHookFailure
	}
}

// unmarshalOuts writes fields 1.. of res into outs. Supported out-parameters
// are *C.int (bool or integer fields) and *C.sunrealtype (float fields).
func unmarshalOuts[R any](res R, outs ...any) {
	rv := reflect.ValueOf(res)
	for i, out := range outs {
		var f reflect.Value
		if rv.Kind() == reflect.Struct && i+1 < rv.NumField() {
			f = rv.Field(i + 1)
		}
		writeOut(out, f)
	}
}

func writeOut(out any, f reflect.Value) {
	switch p := out.(type) {
	case *C.int:
		if p == nil {
			return
		}
		var v C.int
		if f.IsValid() {
			switch f.Kind() {
			case reflect.Bool:
				if f.Bool() {
					v = 1
				}
			case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
				v = C.int(f.Int())
			}
		}
		*p = v
	case *C.sunrealtype:
		if p == nil {
			return
		}
		var v C.sunrealtype
		if f.IsValid() && (f.Kind() == reflect.Float64 || f.Kind() == reflect.Float32) {
			v = C.sunrealtype(f.Float())
		}
		*p = v
	}
}

// zeroedReals returns a view of the n reals behind p after filling them with
// zeros, for host filled array outputs.
func zeroedReals(p *C.sunrealtype, n int) []float64 {
	view := realView(p, n)
	clear(view)
	return view
}
