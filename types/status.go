package types

// Return flags shared by the engine and host callables. Callables return
// StatusSuccess, a positive value for a recoverable failure or a negative
// value to stop the solver.
const (
	StatusSuccess         = 0
	StatusRecoverable     = 1
	StatusRootReturn      = 2
	StatusHookFailure     = -1
	StatusConvFailure     = -4
	StatusLSetupFail      = -6
	StatusLSolveFail      = -7
	StatusRhsFuncFail     = -8
	StatusEwtFail         = -9
	StatusRootFuncFail    = -12
	StatusMemFail         = -20
	StatusMemNull         = -21
	StatusIllInput        = -22
	StatusQuadRhsFail     = -33
	StatusInnerStepFail   = -35
	StatusSensRhsFail     = -41
	StatusPostprocessFail = -45
	StatusNoHook          = -98
	StatusNoAdjoint       = -101
	StatusBadWhich        = -107
	StatusNlsContinue     = 901
	StatusNlsConvRecover  = 902
)

var statusNames = map[int]string{
	StatusSuccess:         "SUCCESS",
	StatusRecoverable:     "RECOVERABLE",
	StatusRootReturn:      "ROOT_RETURN",
	StatusHookFailure:     "HOOK_FAILURE",
	StatusConvFailure:     "CONV_FAILURE",
	StatusLSetupFail:      "LSETUP_FAIL",
	StatusLSolveFail:      "LSOLVE_FAIL",
	StatusRhsFuncFail:     "RHSFUNC_FAIL",
	StatusEwtFail:         "EWT_FAIL",
	StatusRootFuncFail:    "RTFUNC_FAIL",
	StatusMemFail:         "MEM_FAIL",
	StatusMemNull:         "MEM_NULL",
	StatusIllInput:        "ILL_INPUT",
	StatusQuadRhsFail:     "QRHSFUNC_FAIL",
	StatusInnerStepFail:   "INNERSTEP_FAIL",
	StatusSensRhsFail:     "SRHSFUNC_FAIL",
	StatusPostprocessFail: "POSTPROCESS_FAIL",
	StatusNoHook:          "NO_HOOK",
	StatusNoAdjoint:       "NO_ADJ",
	StatusBadWhich:        "BAD_WHICH",
	StatusNlsContinue:     "NLS_CONTINUE",
	StatusNlsConvRecover:  "NLS_CONV_RECVR",
}

// StatusName returns the symbolic name of a return flag.
func StatusName(code int) string {
	if name, ok := statusNames[code]; ok {
		return name
	}
	if code > 0 {
		return "RECOVERABLE"
	}
	return "UNKNOWN"
}
