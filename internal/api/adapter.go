package api

import (
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/sunbind/sunbind/types"
)

// locator recovers the table entry from the context argument of a hook.
type locator func(ctx any) (*entry, error)

// hook routes one native callback signature to the callable stored in a slot
// of a T table. F is the callable's function type and R what it returns.
type hook[T, F, R any] struct {
	slot string
	// ctxArg is the position of the context argument counted from the last
	// argument, so 1 is the last argument.
	ctxArg int
	locate locator
	field  func(*T) *any
}

// invoke runs the callable for one native call. args holds the native
// arguments in order. call receives the same slice with the context argument
// replaced by types.Hidden. write is always run: with the callable's result,
// or with the zero R when there is none, so out-parameters are never left
// untouched.
func (h hook[T, F, R]) invoke(args []any, call func(fn F, args []any) R, status func(R) int, write func(R)) (ret int) {
	start := time.Now()
	var (
		res R
		ent *entry
		err error
	)
	ret = types.StatusHookFailure

	defer func() {
		if rec := recover(); rec != nil {
			var zero R
			res = zero
			ret = types.StatusHookFailure
			err = types.HostCallableFailure{Slot: h.slot, Panic: fmt.Sprint(rec)}
		}
		h.writeOut(write, res)
		h.report(ent, ret, err, time.Since(start))
	}()

	idx := len(args) - h.ctxArg
	if h.ctxArg < 1 || idx < 0 {
		err = types.MissingCallbackTable{Slot: h.slot, Reason: "context argument out of range"}
		return ret
	}
	ent, err = h.locate(args[idx])
	if err != nil {
		if missing, ok := err.(types.MissingCallbackTable); ok && missing.Slot == "" {
			missing.Slot = h.slot
			err = missing
		}
		return ret
	}
	tbl, ok := ent.table.(*T)
	if !ok {
		err = types.MissingCallbackTable{Slot: h.slot, Reason: fmt.Sprintf("context leads to a %T", ent.table)}
		return ret
	}
	raw := *h.field(tbl)
	if raw == nil {
		err = types.UnboundCallback{Slot: h.slot}
		return ret
	}
	fn, ok := cast[F](raw)
	if !ok {
		err = types.SignatureMismatch{Slot: h.slot, Want: reflect.TypeFor[F]().String(), Got: fmt.Sprintf("%T", raw)}
		return ret
	}

	args[idx] = types.Hidden
	res = call(fn, args)
	return status(res)
}

func (h hook[T, F, R]) writeOut(write func(R), res R) {
	if write == nil {
		return
	}
	defer func() {
		if rec := recover(); rec != nil {
			currentLogger().Error("writing hook outputs", zap.String("slot", h.slot), zap.Any("panic", rec))
		}
	}()
	write(res)
}

func (h hook[T, F, R]) report(ent *entry, status int, err error, elapsed time.Duration) {
	obs := currentObserver()
	obs.HookInvoked(h.slot, status, elapsed)
	if err == nil {
		return
	}

	kind := "unknown"
	if ie := types.ToInteropError(err); ie != nil {
		kind = ie.Kind()
	}
	obs.HookFailed(h.slot, kind)
	currentLogger().Error("hook failed",
		zap.String("slot", h.slot),
		zap.String("kind", kind),
		zap.Error(err),
	)
	if ent != nil {
		ent.recordFault(err)
	} else {
		recordOrphanFault(err)
	}
}

// cast converts a stored callable to F. Besides exact matches it accepts any
// func whose type converts to F, e.g. a func literal for a named hook type.
func cast[F any](raw any) (F, bool) {
	if fn, ok := raw.(F); ok {
		return fn, true
	}
	var zero F
	rv := reflect.ValueOf(raw)
	want := reflect.TypeFor[F]()
	if rv.Kind() != reflect.Func || want.Kind() != reflect.Func || !rv.Type().ConvertibleTo(want) {
		return zero, false
	}
	return rv.Convert(want).Interface().(F), true
}

// passStatus is the status func for hooks whose callable returns a bare status.
func passStatus(s int) int { return s }
