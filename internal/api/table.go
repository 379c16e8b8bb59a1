package api

/*
#include "callbacks.h"
*/
import "C"

import (
	"reflect"
	"unsafe"

	"github.com/sunbind/sunbind/types"
)

// Slot names accepted by Register.
const (
	SlotRhs         = "rhs"
	SlotRoot        = "root"
	SlotEwt         = "ewt"
	SlotPrecSetup   = "precsetup"
	SlotPrecSolve   = "precsolve"
	SlotJacTimes    = "jtimes"
	SlotQuadRhs     = "quadrhs"
	SlotSensRhs     = "sensrhs"
	SlotSensRhs1    = "sensrhs1"
	SlotPostprocess = "postprocess"

	SlotRhsB       = "rhsB"
	SlotRhsBS      = "rhsBS"
	SlotQuadRhsB   = "quadrhsB"
	SlotPrecSetupB = "precsetupB"

	SlotInnerEvolve           = "evolve"
	SlotInnerFullRhs          = "fullrhs"
	SlotInnerReset            = "reset"
	SlotInnerAccumulatedError = "accumulatederror"

	SlotNlsSys      = "sys"
	SlotNlsLSetup   = "lsetup"
	SlotNlsLSolve   = "lsolve"
	SlotNlsConvTest = "convtest"
)

// Callback tables hold one host callable per slot; nil means empty.

type integratorTable struct {
	rhs, root, ewt, precsetup, precsolve, jtimes, quadrhs, sensrhs, sensrhs1, postprocess any
}

type backwardTable struct {
	rhsB, rhsBS, quadrhsB, precsetupB any
}

type innerStepperTable struct {
	evolve, fullrhs, reset, accumulatederror any
}

type nonlinSolTable struct {
	sys, lsetup, lsolve, convtest any
}

// slotSpec describes one slot of a T table: where the callable lives and how
// to (re)issue the native registration. install passes the gateway when bound
// and NULL otherwise, so the engine skips empty hooks.
type slotSpec[T any] struct {
	field   func(*T) *any
	install func(obj unsafe.Pointer, bound bool) C.int
}

// gateway returns fn when bound and the NULL function pointer otherwise.
func gateway[P any](bound bool, fn P) P {
	if bound {
		return fn
	}
	var null P
	return null
}

func imem(obj unsafe.Pointer) C.SBIntegratorMem { return C.SBIntegratorMem(obj) }

func istepper(obj unsafe.Pointer) C.SBInnerStepper { return C.SBInnerStepper(obj) }

func inls(obj unsafe.Pointer) C.SBNonlinearSolver { return C.SBNonlinearSolver(obj) }

var integratorSlots = map[string]slotSpec[integratorTable]{
	SlotRhs: {
		field: func(t *integratorTable) *any { return &t.rhs },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetRhsFn(imem(obj), gateway(bound, C.SBRhsFn(C.sbRhs_cgo)))
		},
	},
	SlotRoot: {
		field: func(t *integratorTable) *any { return &t.root },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			m := imem(obj)
			return C.SBIntegratorRootInit(m, m.nrtfn, gateway(bound, C.SBRootFn(C.sbRoot_cgo)))
		},
	},
	SlotEwt: {
		field: func(t *integratorTable) *any { return &t.ewt },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetEwtFn(imem(obj), gateway(bound, C.SBEwtFn(C.sbEwt_cgo)))
		},
	},
	SlotPrecSetup: {
		field: func(t *integratorTable) *any { return &t.precsetup },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetPrecSetupFn(imem(obj), gateway(bound, C.SBPrecSetupFn(C.sbPrecSetup_cgo)))
		},
	},
	SlotPrecSolve: {
		field: func(t *integratorTable) *any { return &t.precsolve },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetPrecSolveFn(imem(obj), gateway(bound, C.SBPrecSolveFn(C.sbPrecSolve_cgo)))
		},
	},
	SlotJacTimes: {
		field: func(t *integratorTable) *any { return &t.jtimes },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetJacTimesFn(imem(obj), gateway(bound, C.SBJacTimesFn(C.sbJacTimes_cgo)))
		},
	},
	SlotQuadRhs: {
		field: func(t *integratorTable) *any { return &t.quadrhs },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetQuadRhsFn(imem(obj), gateway(bound, C.SBQuadRhsFn(C.sbQuadRhs_cgo)))
		},
	},
	SlotSensRhs: {
		field: func(t *integratorTable) *any { return &t.sensrhs },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetSensRhsFn(imem(obj), gateway(bound, C.SBSensRhsFn(C.sbSensRhs_cgo)))
		},
	},
	SlotSensRhs1: {
		field: func(t *integratorTable) *any { return &t.sensrhs1 },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetSensRhs1Fn(imem(obj), gateway(bound, C.SBSensRhs1Fn(C.sbSensRhs1_cgo)))
		},
	},
	SlotPostprocess: {
		field: func(t *integratorTable) *any { return &t.postprocess },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetPostprocessFn(imem(obj), gateway(bound, C.SBPostprocessFn(C.sbPostprocess_cgo)))
		},
	},
}

var backwardSlots = map[string]slotSpec[backwardTable]{
	SlotRhsB: {
		field: func(t *backwardTable) *any { return &t.rhsB },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetRhsFnB(imem(obj), gateway(bound, C.SBRhsFnB(C.sbRhsB_cgo)))
		},
	},
	SlotRhsBS: {
		field: func(t *backwardTable) *any { return &t.rhsBS },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetRhsFnBS(imem(obj), gateway(bound, C.SBRhsFnBS(C.sbRhsBS_cgo)))
		},
	},
	SlotQuadRhsB: {
		field: func(t *backwardTable) *any { return &t.quadrhsB },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetQuadRhsFnB(imem(obj), gateway(bound, C.SBQuadRhsFnB(C.sbQuadRhsB_cgo)))
		},
	},
	SlotPrecSetupB: {
		field: func(t *backwardTable) *any { return &t.precsetupB },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBIntegratorSetPrecSetupFnB(imem(obj), gateway(bound, C.SBPrecSetupFnB(C.sbPrecSetupB_cgo)))
		},
	},
}

var innerStepperSlots = map[string]slotSpec[innerStepperTable]{
	SlotInnerEvolve: {
		field: func(t *innerStepperTable) *any { return &t.evolve },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBInnerStepperSetEvolveFn(istepper(obj), gateway(bound, C.SBInnerEvolveFn(C.sbInnerEvolve_cgo)))
		},
	},
	SlotInnerFullRhs: {
		field: func(t *innerStepperTable) *any { return &t.fullrhs },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBInnerStepperSetFullRhsFn(istepper(obj), gateway(bound, C.SBInnerFullRhsFn(C.sbInnerFullRhs_cgo)))
		},
	},
	SlotInnerReset: {
		field: func(t *innerStepperTable) *any { return &t.reset },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBInnerStepperSetResetFn(istepper(obj), gateway(bound, C.SBInnerResetFn(C.sbInnerReset_cgo)))
		},
	},
	SlotInnerAccumulatedError: {
		field: func(t *innerStepperTable) *any { return &t.accumulatederror },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBInnerStepperSetAccumulatedErrorGetFn(istepper(obj),
				gateway(bound, C.SBInnerGetAccumulatedErrorFn(C.sbInnerAccumulatedError_cgo)))
		},
	},
}

var nonlinSolSlots = map[string]slotSpec[nonlinSolTable]{
	SlotNlsSys: {
		field: func(t *nonlinSolTable) *any { return &t.sys },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBNonlinSolSetSysFn(inls(obj), gateway(bound, C.SBNlsSysFn(C.sbNlsSys_cgo)))
		},
	},
	SlotNlsLSetup: {
		field: func(t *nonlinSolTable) *any { return &t.lsetup },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBNonlinSolSetLSetupFn(inls(obj), gateway(bound, C.SBNlsLSetupFn(C.sbNlsLSetup_cgo)))
		},
	},
	SlotNlsLSolve: {
		field: func(t *nonlinSolTable) *any { return &t.lsolve },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			return C.SBNonlinSolSetLSolveFn(inls(obj), gateway(bound, C.SBNlsLSolveFn(C.sbNlsLSolve_cgo)))
		},
	},
	SlotNlsConvTest: {
		field: func(t *nonlinSolTable) *any { return &t.convtest },
		install: func(obj unsafe.Pointer, bound bool) C.int {
			// the convergence test gets the context cell as its ctest_data
			n := inls(obj)
			return C.SBNonlinSolSetConvTestFn(n, gateway(bound, C.SBNlsConvTestFn(C.sbNlsConvTest_cgo)), n.python)
		},
	},
}

// fieldOf returns the field accessor for a slot; it panics on unknown names
// so a typo in a hook definition fails at package initialization.
func fieldOf[T any](slots map[string]slotSpec[T], name string) func(*T) *any {
	spec, ok := slots[name]
	if !ok {
		panic("unknown callback slot " + name)
	}
	return spec.field
}

// register stores fn in the named slot and re-syncs the native registration.
// A nil fn (or a typed nil func) empties the slot. When the engine refuses the
// registration the previous callable is restored.
func register[T any](object string, tbl *T, slots map[string]slotSpec[T], obj unsafe.Pointer, name string, fn any) error {
	spec, ok := slots[name]
	if !ok {
		return types.UnknownSlot{Object: object, Slot: name}
	}
	return swapSlot("register "+object+"."+name, spec.field(tbl), fn, func(bound bool) C.int {
		return spec.install(obj, bound)
	})
}

// swapSlot stores fn in field and runs issue with whether the slot is now
// bound. The previous callable is restored when issue fails.
func swapSlot(op string, field *any, fn any, issue func(bound bool) C.int) error {
	if isNilFunc(fn) {
		fn = nil
	}
	prev := *field
	*field = fn
	if rc := issue(fn != nil); rc != C.SB_SUCCESS {
		*field = prev
		return types.NativeStatus{Op: op, Code: int(rc)}
	}
	return nil
}

func isNilFunc(fn any) bool {
	if fn == nil {
		return true
	}
	rv := reflect.ValueOf(fn)
	return rv.Kind() == reflect.Func && rv.IsNil()
}

// forceInstall issues the native registration of a slot with its gateway
// regardless of what the table holds.
func forceInstall[T any](slots map[string]slotSpec[T], obj unsafe.Pointer, name string) error {
	spec, ok := slots[name]
	if !ok {
		return types.UnknownSlot{Slot: name}
	}
	if rc := spec.install(obj, true); rc != C.SB_SUCCESS {
		return types.NativeStatus{Op: "install " + name, Code: int(rc)}
	}
	return nil
}
