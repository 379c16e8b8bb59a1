package api

/*
#include "bindings.h"

// imports (integrator)
int sbRhs(sunrealtype t, N_Vector y, N_Vector ydot, void *user_data);
int sbRoot(sunrealtype t, N_Vector y, sunrealtype *gout, void *user_data);
int sbEwt(N_Vector y, N_Vector ewt, void *user_data);
int sbPrecSetup(sunrealtype t, N_Vector y, N_Vector fy, int jok, int *jcurPtr, sunrealtype gamma, void *user_data);
int sbPrecSolve(sunrealtype t, N_Vector y, N_Vector fy, N_Vector r, N_Vector z, sunrealtype gamma, sunrealtype delta, int lr, void *user_data);
int sbJacTimes(N_Vector v, N_Vector Jv, sunrealtype t, N_Vector y, N_Vector fy, void *user_data, N_Vector tmp);
int sbQuadRhs(sunrealtype t, N_Vector y, N_Vector yQdot, void *user_data);
int sbSensRhs(int Ns, sunrealtype t, N_Vector y, N_Vector ydot, N_Vector *yS, N_Vector *ySdot, void *user_data, N_Vector tmp1, N_Vector tmp2);
int sbSensRhs1(int Ns, sunrealtype t, N_Vector y, N_Vector ydot, int iS, N_Vector yS, N_Vector ySdot, void *user_data, N_Vector tmp1, N_Vector tmp2);
int sbPostprocess(sunrealtype t, N_Vector y, void *user_data);
// imports (backward)
int sbRhsB(sunrealtype t, N_Vector y, N_Vector yB, N_Vector yBdot, void *user_dataB);
int sbRhsBS(sunrealtype t, N_Vector y, N_Vector *yS, N_Vector yB, N_Vector yBdot, void *user_dataB);
int sbQuadRhsB(sunrealtype t, N_Vector y, N_Vector yB, N_Vector qBdot, void *user_dataB);
int sbPrecSetupB(sunrealtype t, N_Vector y, N_Vector yB, N_Vector fyB, int jokB, int *jcurPtrB, sunrealtype gammaB, void *user_dataB);
// imports (inner stepper)
int sbInnerEvolve(SBInnerStepper stepper, sunrealtype t0, sunrealtype tout, N_Vector y);
int sbInnerFullRhs(SBInnerStepper stepper, sunrealtype t, N_Vector y, N_Vector f, int mode);
int sbInnerReset(SBInnerStepper stepper, sunrealtype tR, N_Vector yR);
int sbInnerAccumulatedError(SBInnerStepper stepper, sunrealtype *accum_error);
// imports (nonlinear solver)
int sbNlsSys(N_Vector ycor, N_Vector F, void *mem);
int sbNlsLSetup(int jbad, int *jcur, void *mem);
int sbNlsLSolve(N_Vector b, void *mem);
int sbNlsConvTest(SBNonlinearSolver NLS, N_Vector ycor, N_Vector del, sunrealtype tol, N_Vector ewt, void *ctest_data);
// imports (lifetime)
void sbTableRelease(void *python);

// Gateway functions (integrator)
int sbRhs_cgo(sunrealtype t, N_Vector y, N_Vector ydot, void *user_data) {
	return sbRhs(t, y, ydot, user_data);
}
int sbRoot_cgo(sunrealtype t, N_Vector y, sunrealtype *gout, void *user_data) {
	return sbRoot(t, y, gout, user_data);
}
int sbEwt_cgo(N_Vector y, N_Vector ewt, void *user_data) {
	return sbEwt(y, ewt, user_data);
}
int sbPrecSetup_cgo(sunrealtype t, N_Vector y, N_Vector fy, int jok, int *jcurPtr, sunrealtype gamma, void *user_data) {
	return sbPrecSetup(t, y, fy, jok, jcurPtr, gamma, user_data);
}
int sbPrecSolve_cgo(sunrealtype t, N_Vector y, N_Vector fy, N_Vector r, N_Vector z, sunrealtype gamma, sunrealtype delta, int lr, void *user_data) {
	return sbPrecSolve(t, y, fy, r, z, gamma, delta, lr, user_data);
}
int sbJacTimes_cgo(N_Vector v, N_Vector Jv, sunrealtype t, N_Vector y, N_Vector fy, void *user_data, N_Vector tmp) {
	return sbJacTimes(v, Jv, t, y, fy, user_data, tmp);
}
int sbQuadRhs_cgo(sunrealtype t, N_Vector y, N_Vector yQdot, void *user_data) {
	return sbQuadRhs(t, y, yQdot, user_data);
}
int sbSensRhs_cgo(int Ns, sunrealtype t, N_Vector y, N_Vector ydot, N_Vector *yS, N_Vector *ySdot, void *user_data, N_Vector tmp1, N_Vector tmp2) {
	return sbSensRhs(Ns, t, y, ydot, yS, ySdot, user_data, tmp1, tmp2);
}
int sbSensRhs1_cgo(int Ns, sunrealtype t, N_Vector y, N_Vector ydot, int iS, N_Vector yS, N_Vector ySdot, void *user_data, N_Vector tmp1, N_Vector tmp2) {
	return sbSensRhs1(Ns, t, y, ydot, iS, yS, ySdot, user_data, tmp1, tmp2);
}
int sbPostprocess_cgo(sunrealtype t, N_Vector y, void *user_data) {
	return sbPostprocess(t, y, user_data);
}

// Gateway functions (backward)
int sbRhsB_cgo(sunrealtype t, N_Vector y, N_Vector yB, N_Vector yBdot, void *user_dataB) {
	return sbRhsB(t, y, yB, yBdot, user_dataB);
}
int sbRhsBS_cgo(sunrealtype t, N_Vector y, N_Vector *yS, N_Vector yB, N_Vector yBdot, void *user_dataB) {
	return sbRhsBS(t, y, yS, yB, yBdot, user_dataB);
}
int sbQuadRhsB_cgo(sunrealtype t, N_Vector y, N_Vector yB, N_Vector qBdot, void *user_dataB) {
	return sbQuadRhsB(t, y, yB, qBdot, user_dataB);
}
int sbPrecSetupB_cgo(sunrealtype t, N_Vector y, N_Vector yB, N_Vector fyB, int jokB, int *jcurPtrB, sunrealtype gammaB, void *user_dataB) {
	return sbPrecSetupB(t, y, yB, fyB, jokB, jcurPtrB, gammaB, user_dataB);
}

// Gateway functions (inner stepper)
int sbInnerEvolve_cgo(SBInnerStepper stepper, sunrealtype t0, sunrealtype tout, N_Vector y) {
	return sbInnerEvolve(stepper, t0, tout, y);
}
int sbInnerFullRhs_cgo(SBInnerStepper stepper, sunrealtype t, N_Vector y, N_Vector f, int mode) {
	return sbInnerFullRhs(stepper, t, y, f, mode);
}
int sbInnerReset_cgo(SBInnerStepper stepper, sunrealtype tR, N_Vector yR) {
	return sbInnerReset(stepper, tR, yR);
}
int sbInnerAccumulatedError_cgo(SBInnerStepper stepper, sunrealtype *accum_error) {
	return sbInnerAccumulatedError(stepper, accum_error);
}

// Gateway functions (nonlinear solver)
int sbNlsSys_cgo(N_Vector ycor, N_Vector F, void *mem) {
	return sbNlsSys(ycor, F, mem);
}
int sbNlsLSetup_cgo(int jbad, int *jcur, void *mem) {
	return sbNlsLSetup(jbad, jcur, mem);
}
int sbNlsLSolve_cgo(N_Vector b, void *mem) {
	return sbNlsLSolve(b, mem);
}
int sbNlsConvTest_cgo(SBNonlinearSolver NLS, N_Vector ycor, N_Vector del, sunrealtype tol, N_Vector ewt, void *ctest_data) {
	return sbNlsConvTest(NLS, ycor, del, tol, ewt, ctest_data);
}

// Gateway functions (lifetime)
void sbTableRelease_cgo(void *python) {
	sbTableRelease(python);
}
*/
import "C"

// We need these gateway functions to allow calling back to a go function from the c code.
// At least I didn't discover a cleaner way.
// Also, this needs to be in a different file than `callbacks.go`, as we cannot create functions
// in the same file that has //export directives. Only import header types
