package api

/*
#include "bindings.h"
*/
import "C"

import (
	"unsafe"

	"go.uber.org/zap"

	"github.com/sunbind/sunbind/types"
)

// Note: we have to include all exports in the same file (at least since they all import bindings.h),
// or get odd cgo build errors about duplicate definitions

/****** Integrator ********/

var (
	rhsHook = hook[integratorTable, types.RhsFn, int]{
		slot: SlotRhs, ctxArg: 1, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotRhs),
	}
	rootHook = hook[integratorTable, types.RootFn, int]{
		slot: SlotRoot, ctxArg: 1, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotRoot),
	}
	ewtHook = hook[integratorTable, types.EwtFn, int]{
		slot: SlotEwt, ctxArg: 1, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotEwt),
	}
	precSetupHook = hook[integratorTable, types.PrecSetupFn, types.PrecSetupResult]{
		slot: SlotPrecSetup, ctxArg: 1, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotPrecSetup),
	}
	precSolveHook = hook[integratorTable, types.PrecSolveFn, int]{
		slot: SlotPrecSolve, ctxArg: 1, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotPrecSolve),
	}
	jacTimesHook = hook[integratorTable, types.JacTimesFn, int]{
		slot: SlotJacTimes, ctxArg: 2, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotJacTimes),
	}
	quadRhsHook = hook[integratorTable, types.QuadRhsFn, int]{
		slot: SlotQuadRhs, ctxArg: 1, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotQuadRhs),
	}
	sensRhsHook = hook[integratorTable, types.SensRhsFn, int]{
		slot: SlotSensRhs, ctxArg: 3, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotSensRhs),
	}
	sensRhs1Hook = hook[integratorTable, types.SensRhs1Fn, int]{
		slot: SlotSensRhs1, ctxArg: 3, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotSensRhs1),
	}
	postprocessHook = hook[integratorTable, types.PostprocessFn, int]{
		slot: SlotPostprocess, ctxArg: 1, locate: viaOwner(IntegratorTable), field: fieldOf(integratorSlots, SlotPostprocess),
	}
)

//export sbRhs
func sbRhs(t C.sunrealtype, y, ydot C.N_Vector, userData unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), vectorView(ydot), userData}
	return C.int(rhsHook.invoke(args, func(fn types.RhsFn, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].(types.Vector))
	}, passStatus, nil))
}

//export sbRoot
func sbRoot(t C.sunrealtype, y C.N_Vector, gout *C.sunrealtype, userData unsafe.Pointer) C.int {
	// gout is sized by the owner's root count and handed out zeroed
	g := zeroedReals(gout, rootCount(userData))
	args := []any{float64(t), vectorView(y), g, userData}
	return C.int(rootHook.invoke(args, func(fn types.RootFn, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].([]float64))
	}, passStatus, nil))
}

//export sbEwt
func sbEwt(y, ewt C.N_Vector, userData unsafe.Pointer) C.int {
	args := []any{vectorView(y), vectorView(ewt), userData}
	return C.int(ewtHook.invoke(args, func(fn types.EwtFn, a []any) int {
		return fn(a[0].(types.Vector), a[1].(types.Vector))
	}, passStatus, nil))
}

//export sbPrecSetup
func sbPrecSetup(t C.sunrealtype, y, fy C.N_Vector, jok C.int, jcurPtr *C.int, gamma C.sunrealtype, userData unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), vectorView(fy), jok != 0, jcurPtr, float64(gamma), userData}
	return C.int(precSetupHook.invoke(args, func(fn types.PrecSetupFn, a []any) types.PrecSetupResult {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].(types.Vector), a[3].(bool), a[5].(float64))
	}, resultStatus[types.PrecSetupResult], func(r types.PrecSetupResult) {
		unmarshalOuts(r, jcurPtr)
	}))
}

//export sbPrecSolve
func sbPrecSolve(t C.sunrealtype, y, fy, r, z C.N_Vector, gamma, delta C.sunrealtype, lr C.int, userData unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), vectorView(fy), vectorView(r), vectorView(z), float64(gamma), float64(delta), int(lr), userData}
	return C.int(precSolveHook.invoke(args, func(fn types.PrecSolveFn, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].(types.Vector), a[3].(types.Vector), a[4].(types.Vector),
			a[5].(float64), a[6].(float64), a[7].(int))
	}, passStatus, nil))
}

//export sbJacTimes
func sbJacTimes(v, jv C.N_Vector, t C.sunrealtype, y, fy C.N_Vector, userData unsafe.Pointer, tmp C.N_Vector) C.int {
	args := []any{vectorView(v), vectorView(jv), float64(t), vectorView(y), vectorView(fy), userData, vectorView(tmp)}
	return C.int(jacTimesHook.invoke(args, func(fn types.JacTimesFn, a []any) int {
		return fn(a[0].(types.Vector), a[1].(types.Vector), a[2].(float64), a[3].(types.Vector), a[4].(types.Vector), a[6].(types.Vector))
	}, passStatus, nil))
}

//export sbQuadRhs
func sbQuadRhs(t C.sunrealtype, y, yQdot C.N_Vector, userData unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), vectorView(yQdot), userData}
	return C.int(quadRhsHook.invoke(args, func(fn types.QuadRhsFn, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].(types.Vector))
	}, passStatus, nil))
}

//export sbSensRhs
func sbSensRhs(ns C.int, t C.sunrealtype, y, ydot C.N_Vector, yS, ySdot *C.N_Vector, userData unsafe.Pointer, tmp1, tmp2 C.N_Vector) C.int {
	args := []any{int(ns), float64(t), vectorView(y), vectorView(ydot), vectorRun(yS, ns), vectorRun(ySdot, ns), userData, vectorView(tmp1), vectorView(tmp2)}
	return C.int(sensRhsHook.invoke(args, func(fn types.SensRhsFn, a []any) int {
		return fn(a[0].(int), a[1].(float64), a[2].(types.Vector), a[3].(types.Vector), a[4].([]types.Vector), a[5].([]types.Vector),
			a[7].(types.Vector), a[8].(types.Vector))
	}, passStatus, nil))
}

//export sbSensRhs1
func sbSensRhs1(ns C.int, t C.sunrealtype, y, ydot C.N_Vector, iS C.int, yS, ySdot C.N_Vector, userData unsafe.Pointer, tmp1, tmp2 C.N_Vector) C.int {
	args := []any{int(ns), float64(t), vectorView(y), vectorView(ydot), int(iS), vectorView(yS), vectorView(ySdot), userData, vectorView(tmp1), vectorView(tmp2)}
	return C.int(sensRhs1Hook.invoke(args, func(fn types.SensRhs1Fn, a []any) int {
		return fn(a[0].(int), a[1].(float64), a[2].(types.Vector), a[3].(types.Vector), a[4].(int), a[5].(types.Vector), a[6].(types.Vector),
			a[8].(types.Vector), a[9].(types.Vector))
	}, passStatus, nil))
}

//export sbPostprocess
func sbPostprocess(t C.sunrealtype, y C.N_Vector, userData unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), userData}
	return C.int(postprocessHook.invoke(args, func(fn types.PostprocessFn, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector))
	}, passStatus, nil))
}

// rootCount reads the number of root functions from the owning integrator.
func rootCount(userData unsafe.Pointer) int {
	mem := C.SBIntegratorMem(userData)
	if mem == nil {
		return 0
	}
	return int(mem.nrtfn)
}

/****** Backward companion ********/

var (
	rhsBHook = hook[backwardTable, types.RhsFnB, int]{
		slot: SlotRhsB, ctxArg: 1, locate: viaOwner(BackwardTable), field: fieldOf(backwardSlots, SlotRhsB),
	}
	rhsBSHook = hook[backwardTable, types.RhsFnBS, int]{
		slot: SlotRhsBS, ctxArg: 1, locate: viaOwner(BackwardTable), field: fieldOf(backwardSlots, SlotRhsBS),
	}
	quadRhsBHook = hook[backwardTable, types.QuadRhsFnB, int]{
		slot: SlotQuadRhsB, ctxArg: 1, locate: viaOwner(BackwardTable), field: fieldOf(backwardSlots, SlotQuadRhsB),
	}
	precSetupBHook = hook[backwardTable, types.PrecSetupFnB, types.PrecSetupResult]{
		slot: SlotPrecSetupB, ctxArg: 1, locate: viaOwner(BackwardTable), field: fieldOf(backwardSlots, SlotPrecSetupB),
	}
)

//export sbRhsB
func sbRhsB(t C.sunrealtype, y, yB, yBdot C.N_Vector, userDataB unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), vectorView(yB), vectorView(yBdot), userDataB}
	return C.int(rhsBHook.invoke(args, func(fn types.RhsFnB, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].(types.Vector), a[3].(types.Vector))
	}, passStatus, nil))
}

//export sbRhsBS
func sbRhsBS(t C.sunrealtype, y C.N_Vector, yS *C.N_Vector, yB, yBdot C.N_Vector, userDataB unsafe.Pointer) C.int {
	// the sensitivity count lives on the forward integrator
	ns := C.SBAdjGetNs(userDataB)
	args := []any{float64(t), vectorView(y), vectorRun(yS, ns), vectorView(yB), vectorView(yBdot), userDataB}
	return C.int(rhsBSHook.invoke(args, func(fn types.RhsFnBS, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].([]types.Vector), a[3].(types.Vector), a[4].(types.Vector))
	}, passStatus, nil))
}

//export sbQuadRhsB
func sbQuadRhsB(t C.sunrealtype, y, yB, qBdot C.N_Vector, userDataB unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), vectorView(yB), vectorView(qBdot), userDataB}
	return C.int(quadRhsBHook.invoke(args, func(fn types.QuadRhsFnB, a []any) int {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].(types.Vector), a[3].(types.Vector))
	}, passStatus, nil))
}

//export sbPrecSetupB
func sbPrecSetupB(t C.sunrealtype, y, yB, fyB C.N_Vector, jokB C.int, jcurPtrB *C.int, gammaB C.sunrealtype, userDataB unsafe.Pointer) C.int {
	args := []any{float64(t), vectorView(y), vectorView(yB), vectorView(fyB), jokB != 0, jcurPtrB, float64(gammaB), userDataB}
	return C.int(precSetupBHook.invoke(args, func(fn types.PrecSetupFnB, a []any) types.PrecSetupResult {
		return fn(a[0].(float64), a[1].(types.Vector), a[2].(types.Vector), a[3].(types.Vector), a[4].(bool), a[6].(float64))
	}, resultStatus[types.PrecSetupResult], func(r types.PrecSetupResult) {
		unmarshalOuts(r, jcurPtrB)
	}))
}

/****** Inner stepper ********/

var (
	innerEvolveHook = hook[innerStepperTable, types.InnerEvolveFn, int]{
		slot: SlotInnerEvolve, ctxArg: 4, locate: viaObject(InnerStepperTable), field: fieldOf(innerStepperSlots, SlotInnerEvolve),
	}
	innerFullRhsHook = hook[innerStepperTable, types.InnerFullRhsFn, int]{
		slot: SlotInnerFullRhs, ctxArg: 5, locate: viaObject(InnerStepperTable), field: fieldOf(innerStepperSlots, SlotInnerFullRhs),
	}
	innerResetHook = hook[innerStepperTable, types.InnerResetFn, int]{
		slot: SlotInnerReset, ctxArg: 3, locate: viaObject(InnerStepperTable), field: fieldOf(innerStepperSlots, SlotInnerReset),
	}
	innerAccumulatedErrorHook = hook[innerStepperTable, types.InnerAccumulatedErrorFn, types.AccumulatedErrorResult]{
		slot: SlotInnerAccumulatedError, ctxArg: 2, locate: viaObject(InnerStepperTable),
		field: fieldOf(innerStepperSlots, SlotInnerAccumulatedError),
	}
)

//export sbInnerEvolve
func sbInnerEvolve(stepper C.SBInnerStepper, t0, tout C.sunrealtype, y C.N_Vector) C.int {
	args := []any{unsafe.Pointer(stepper), float64(t0), float64(tout), vectorView(y)}
	return C.int(innerEvolveHook.invoke(args, func(fn types.InnerEvolveFn, a []any) int {
		return fn(a[1].(float64), a[2].(float64), a[3].(types.Vector))
	}, passStatus, nil))
}

//export sbInnerFullRhs
func sbInnerFullRhs(stepper C.SBInnerStepper, t C.sunrealtype, y, f C.N_Vector, mode C.int) C.int {
	args := []any{unsafe.Pointer(stepper), float64(t), vectorView(y), vectorView(f), int(mode)}
	return C.int(innerFullRhsHook.invoke(args, func(fn types.InnerFullRhsFn, a []any) int {
		return fn(a[1].(float64), a[2].(types.Vector), a[3].(types.Vector), a[4].(int))
	}, passStatus, nil))
}

//export sbInnerReset
func sbInnerReset(stepper C.SBInnerStepper, tR C.sunrealtype, yR C.N_Vector) C.int {
	args := []any{unsafe.Pointer(stepper), float64(tR), vectorView(yR)}
	return C.int(innerResetHook.invoke(args, func(fn types.InnerResetFn, a []any) int {
		return fn(a[1].(float64), a[2].(types.Vector))
	}, passStatus, nil))
}

//export sbInnerAccumulatedError
func sbInnerAccumulatedError(stepper C.SBInnerStepper, accumError *C.sunrealtype) C.int {
	args := []any{unsafe.Pointer(stepper), accumError}
	return C.int(innerAccumulatedErrorHook.invoke(args, func(fn types.InnerAccumulatedErrorFn, _ []any) types.AccumulatedErrorResult {
		return fn()
	}, resultStatus[types.AccumulatedErrorResult], func(r types.AccumulatedErrorResult) {
		unmarshalOuts(r, accumError)
	}))
}

/****** Nonlinear solver ********/

var (
	nlsSysHook = hook[nonlinSolTable, types.NlsSysFn, int]{
		slot: SlotNlsSys, ctxArg: 1, locate: direct(NonlinSolTable), field: fieldOf(nonlinSolSlots, SlotNlsSys),
	}
	nlsLSetupHook = hook[nonlinSolTable, types.NlsLSetupFn, types.LSetupResult]{
		slot: SlotNlsLSetup, ctxArg: 1, locate: direct(NonlinSolTable), field: fieldOf(nonlinSolSlots, SlotNlsLSetup),
	}
	nlsLSolveHook = hook[nonlinSolTable, types.NlsLSolveFn, int]{
		slot: SlotNlsLSolve, ctxArg: 1, locate: direct(NonlinSolTable), field: fieldOf(nonlinSolSlots, SlotNlsLSolve),
	}
	nlsConvTestHook = hook[nonlinSolTable, types.NlsConvTestFn, int]{
		slot: SlotNlsConvTest, ctxArg: 1, locate: direct(NonlinSolTable), field: fieldOf(nonlinSolSlots, SlotNlsConvTest),
	}
)

//export sbNlsSys
func sbNlsSys(ycor, f C.N_Vector, mem unsafe.Pointer) C.int {
	args := []any{vectorView(ycor), vectorView(f), mem}
	return C.int(nlsSysHook.invoke(args, func(fn types.NlsSysFn, a []any) int {
		return fn(a[0].(types.Vector), a[1].(types.Vector))
	}, passStatus, nil))
}

//export sbNlsLSetup
func sbNlsLSetup(jbad C.int, jcur *C.int, mem unsafe.Pointer) C.int {
	args := []any{jbad != 0, jcur, mem}
	return C.int(nlsLSetupHook.invoke(args, func(fn types.NlsLSetupFn, a []any) types.LSetupResult {
		return fn(a[0].(bool))
	}, resultStatus[types.LSetupResult], func(r types.LSetupResult) {
		unmarshalOuts(r, jcur)
	}))
}

//export sbNlsLSolve
func sbNlsLSolve(b C.N_Vector, mem unsafe.Pointer) C.int {
	args := []any{vectorView(b), mem}
	return C.int(nlsLSolveHook.invoke(args, func(fn types.NlsLSolveFn, a []any) int {
		return fn(a[0].(types.Vector))
	}, passStatus, nil))
}

//export sbNlsConvTest
func sbNlsConvTest(nls C.SBNonlinearSolver, ycor, del C.N_Vector, tol C.sunrealtype, ewt C.N_Vector, ctestData unsafe.Pointer) C.int {
	args := []any{types.Handle(uintptr(unsafe.Pointer(nls))), vectorView(ycor), vectorView(del), float64(tol), vectorView(ewt), ctestData}
	return C.int(nlsConvTestHook.invoke(args, func(fn types.NlsConvTestFn, a []any) int {
		return fn(a[0].(types.Handle), a[1].(types.Vector), a[2].(types.Vector), a[3].(float64), a[4].(types.Vector))
	}, passStatus, nil))
}

/****** Lifetime ********/

// sbTableRelease is the destroy hook the engine calls right before it frees a
// context cell.
//
//export sbTableRelease
func sbTableRelease(python unsafe.Pointer) {
	defer func() {
		if rec := recover(); rec != nil {
			currentLogger().Error("releasing callback table", zap.Any("panic", rec))
		}
	}()

	cell := (*C.SBFnTable)(python)
	if cell == nil || cell.magic != C.SB_TABLE_MAGIC {
		currentLogger().Error("refusing to release a context cell not allocated by SBFnTableAlloc")
		return
	}
	id := TableID(cell.id)
	if !releaseTable(id) {
		currentLogger().Warn("callback table released twice", zap.Uint64("table", uint64(id)))
	}
	cell.magic = 0
}
