package api

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunbind/sunbind/types"
)

type fakeTable struct {
	probe any
}

type probeResult struct {
	Status int
	Flag   bool
	Value  float64
}

func fakeLocator(e *entry, err error) locator {
	return func(ctx any) (*entry, error) {
		if err != nil {
			return nil, err
		}
		if ctx != "ctx" {
			return nil, types.MissingCallbackTable{Reason: "unexpected context"}
		}
		return e, nil
	}
}

func probeHook(ctxArg int, loc locator) hook[fakeTable, func(a, b int) int, int] {
	return hook[fakeTable, func(a, b int) int, int]{
		slot:   "probe",
		ctxArg: ctxArg,
		locate: loc,
		field:  func(t *fakeTable) *any { return &t.probe },
	}
}

func callProbe(fn func(a, b int) int, args []any) int {
	return fn(args[0].(int), args[1].(int))
}

// recordingObserver keeps every notification for inspection.
type recordingObserver struct {
	mu       sync.Mutex
	invoked  []string
	failures map[string]string
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{failures: map[string]string{}}
}

func (o *recordingObserver) HookInvoked(slot string, _ int, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.invoked = append(o.invoked, slot)
}

func (o *recordingObserver) HookFailed(slot, kind string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failures[slot] = kind
}

func (o *recordingObserver) TableAllocated(string) {}
func (o *recordingObserver) TableReleased(string)  {}

func withObserver(t *testing.T) *recordingObserver {
	t.Helper()
	obs := newRecordingObserver()
	SetObserver(obs)
	t.Cleanup(func() { SetObserver(nil) })
	return obs
}

func TestInvokeForwardsArgumentsWithoutContext(t *testing.T) {
	var seen []any
	tbl := &fakeTable{probe: func(a, b int) int {
		seen = []any{a, b}
		return a + b
	}}
	e := &entry{id: 1, kind: IntegratorTable, table: tbl}

	cases := map[string]struct {
		args   []any
		ctxArg int
	}{
		"context last":   {args: []any{3, 4, "ctx"}, ctxArg: 1},
		"context middle": {args: []any{3, 4, "ctx", "tail"}, ctxArg: 2},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			seen = nil
			var passed []any
			h := probeHook(tc.ctxArg, fakeLocator(e, nil))
			ret := h.invoke(tc.args, func(fn func(a, b int) int, a []any) int {
				passed = append([]any(nil), a...)
				return callProbe(fn, a)
			}, passStatus, nil)
			require.Equal(t, 7, ret)
			require.Equal(t, []any{3, 4}, seen)
			require.Equal(t, types.Hidden, passed[len(passed)-tc.ctxArg])
			require.NoError(t, e.takeFault())
		})
	}
}

func TestInvokeErrorKinds(t *testing.T) {
	cases := map[string]struct {
		table  *fakeTable
		locErr error
		kind   string
	}{
		"missing table": {
			table:  &fakeTable{},
			locErr: types.MissingCallbackTable{Reason: "no table attached"},
			kind:   "missing_callback_table",
		},
		"unbound": {
			table: &fakeTable{},
			kind:  "unbound_callback",
		},
		"signature mismatch": {
			table: &fakeTable{probe: func(a int) int { return a }},
			kind:  "signature_mismatch",
		},
		"not a func": {
			table: &fakeTable{probe: 42},
			kind:  "signature_mismatch",
		},
		"panic": {
			table: &fakeTable{probe: func(a, b int) int { panic("boom") }},
			kind:  "host_callable_failure",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			obs := withObserver(t)
			e := &entry{id: 1, kind: IntegratorTable, table: tc.table}
			h := probeHook(1, fakeLocator(e, tc.locErr))

			ret := h.invoke([]any{1, 2, "ctx"}, callProbe, passStatus, nil)
			require.Equal(t, types.StatusHookFailure, ret)
			assert.Equal(t, tc.kind, obs.failures["probe"])

			var fault error
			if tc.locErr != nil {
				fault = takeFault()
			} else {
				fault = e.takeFault()
			}
			require.Error(t, fault)
			ie := types.ToInteropError(fault)
			require.NotNil(t, ie)
			require.Equal(t, tc.kind, ie.Kind())
		})
	}
}

func TestInvokeFillsSlotIntoMissingTable(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	h := probeHook(1, fakeLocator(nil, types.MissingCallbackTable{Reason: "null user data"}))
	h.invoke([]any{1, 2, nil}, callProbe, passStatus, nil)

	var missing types.MissingCallbackTable
	require.True(t, errors.As(takeFault(), &missing))
	require.Equal(t, "probe", missing.Slot)
	require.Equal(t, "null user data", missing.Reason)
}

func TestInvokeContextOutOfRange(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	h := probeHook(5, fakeLocator(nil, nil))
	ret := h.invoke([]any{1, "ctx"}, callProbe, passStatus, nil)
	require.Equal(t, types.StatusHookFailure, ret)
	var missing types.MissingCallbackTable
	require.ErrorAs(t, takeFault(), &missing)
}

func TestInvokeWrongTableType(t *testing.T) {
	e := &entry{id: 1, kind: NonlinSolTable, table: &nonlinSolTable{}}
	h := probeHook(1, fakeLocator(e, nil))
	ret := h.invoke([]any{1, 2, "ctx"}, callProbe, passStatus, nil)
	require.Equal(t, types.StatusHookFailure, ret)
	var missing types.MissingCallbackTable
	require.ErrorAs(t, e.takeFault(), &missing)
}

func TestInvokeAlwaysWritesOutputs(t *testing.T) {
	type resultHook = hook[fakeTable, func() probeResult, probeResult]
	newHook := func() resultHook {
		return resultHook{slot: "probe", ctxArg: 1, field: func(t *fakeTable) *any { return &t.probe }}
	}
	call := func(fn func() probeResult, _ []any) probeResult { return fn() }

	cases := map[string]struct {
		fn     any
		status int
		want   probeResult
	}{
		"success": {
			fn:     func() probeResult { return probeResult{Status: 0, Flag: true, Value: 2.5} },
			status: 0,
			want:   probeResult{Status: 0, Flag: true, Value: 2.5},
		},
		"failure status keeps values": {
			fn:     func() probeResult { return probeResult{Status: -3, Flag: true, Value: 1} },
			status: -3,
			want:   probeResult{Status: -3, Flag: true, Value: 1},
		},
		"partial result": {
			fn:     func() probeResult { return probeResult{Status: 1} },
			status: 1,
			want:   probeResult{Status: 1},
		},
		"panic writes zero": {
			fn:     func() probeResult { panic("half way") },
			status: types.StatusHookFailure,
			want:   probeResult{},
		},
		"unbound writes zero": {
			fn:     nil,
			status: types.StatusHookFailure,
			want:   probeResult{},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			e := &entry{id: 1, table: &fakeTable{probe: tc.fn}}
			h := newHook()
			h.locate = fakeLocator(e, nil)

			writes := 0
			var written probeResult
			ret := h.invoke([]any{"ctx"}, call, resultStatus[probeResult], func(r probeResult) {
				writes++
				written = r
			})
			require.Equal(t, tc.status, ret)
			require.Equal(t, 1, writes)
			require.Equal(t, tc.want, written)
			_ = e.takeFault()
		})
	}
}

func TestCastConvertsUnnamedFuncs(t *testing.T) {
	fn, ok := cast[types.RhsFn](func(t float64, y, ydot types.Vector) int { return 3 })
	require.True(t, ok)
	require.Equal(t, 3, fn(0, nil, nil))

	_, ok = cast[types.RhsFn](func(t float64) int { return 0 })
	require.False(t, ok)

	_, ok = cast[types.RhsFn]("not a func")
	require.False(t, ok)
}

func TestResultStatus(t *testing.T) {
	require.Equal(t, 4, resultStatus(types.PrecSetupResult{Status: 4}))
	require.Equal(t, -2, resultStatus(types.AccumulatedErrorResult{Status: -2, Error: 1}))
	require.Equal(t, types.StatusHookFailure, resultStatus(struct{ Name string }{"x"}))
	require.Equal(t, types.StatusHookFailure, resultStatus(3))
}
