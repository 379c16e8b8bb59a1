package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusName(t *testing.T) {
	assert.Equal(t, "SUCCESS", StatusName(StatusSuccess))
	assert.Equal(t, "ROOT_RETURN", StatusName(StatusRootReturn))
	assert.Equal(t, "RHSFUNC_FAIL", StatusName(StatusRhsFuncFail))
	assert.Equal(t, "NLS_CONV_RECVR", StatusName(StatusNlsConvRecover))
	assert.Equal(t, "RECOVERABLE", StatusName(17))
	assert.Equal(t, "UNKNOWN", StatusName(-777))
}

func TestNativeStatusError(t *testing.T) {
	plain := NativeStatus{Op: "evolve", Code: StatusIllInput}
	assert.Equal(t, "evolve failed with flag -22 (ILL_INPUT)", plain.Error())
	assert.NoError(t, errors.Unwrap(plain))

	cause := UnboundCallback{Slot: "rhs"}
	wrapped := NativeStatus{Op: "evolve", Code: StatusRhsFuncFail, Cause: cause}
	assert.Equal(t, "evolve failed with flag -8 (RHSFUNC_FAIL): no callable bound to slot rhs", wrapped.Error())

	var unbound UnboundCallback
	require.ErrorAs(t, wrapped, &unbound)
	assert.Equal(t, "rhs", unbound.Slot)
}

func TestHandleErrors(t *testing.T) {
	assert.Equal(t, "invalid handle: backward was freed", InvalidHandle{Object: "backward"}.Error())
	assert.Equal(t, `integrator has no callback slot "jac"`, UnknownSlot{Object: "integrator", Slot: "jac"}.Error())
	assert.Equal(t, "<hidden>", Hidden.String())
}
