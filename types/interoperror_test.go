package types

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInteropErrorKind(t *testing.T) {
	cases := map[string]struct {
		err  error
		kind string
	}{
		"oom":       {OutOfMemory{Object: "integrator"}, "out_of_memory"},
		"missing":   {MissingCallbackTable{Slot: "rhs", Reason: "null user data"}, "missing_callback_table"},
		"unbound":   {&UnboundCallback{Slot: "root"}, "unbound_callback"},
		"mismatch":  {SignatureMismatch{Slot: "rhs", Want: "types.RhsFn", Got: "int"}, "signature_mismatch"},
		"panicking": {HostCallableFailure{Slot: "ewt", Panic: "boom"}, "host_callable_failure"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			ie := ToInteropError(tc.err)
			require.NotNil(t, ie)
			assert.Equal(t, tc.kind, ie.Kind())
			assert.Equal(t, tc.err.Error(), ie.Error())
		})
	}

	assert.Equal(t, "unknown", InteropError{}.Kind())
	assert.Panics(t, func() { _ = InteropError{}.Error() })
}

func TestToInteropErrorUnwraps(t *testing.T) {
	cause := HostCallableFailure{Slot: "rhs", Panic: "boom"}
	err := fmt.Errorf("evolve: %w", NativeStatus{Op: "evolve", Code: StatusRhsFuncFail, Cause: cause})

	ie := ToInteropError(err)
	require.NotNil(t, ie)
	require.NotNil(t, ie.HostCallableFailure)
	assert.Equal(t, "rhs", ie.HostCallableFailure.Slot)

	assert.Nil(t, ToInteropError(nil))
	assert.Nil(t, ToInteropError(fmt.Errorf("plain")))
	assert.Nil(t, ToInteropError(NativeStatus{Op: "evolve", Code: StatusIllInput}))

	var nilPtr *UnboundCallback
	assert.Nil(t, ToInteropError(nilPtr))
}

func TestInteropErrorJSON(t *testing.T) {
	ie := InteropError{UnboundCallback: &UnboundCallback{Slot: "jtimes"}}
	bz, err := json.Marshal(ie)
	require.NoError(t, err)
	assert.Equal(t, `{"unbound_callback":{"slot":"jtimes"}}`, string(bz))
}
