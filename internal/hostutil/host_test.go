package hostutil

import (
	"context"
	"testing"

	"github.com/feather-lang/feather/interp"
)

func TestInvokeExtensionDispatchesRegisteredCommand(t *testing.T) {
	h := New()
	h.Register("double", func(_ context.Context, args []*interp.Value) (interp.Code, *interp.Value, error) {
		n, err := args[1].AsInt()
		if err != nil {
			return interp.CodeError, nil, err
		}
		return interp.CodeOK, interp.NewInt(n * 2), nil
	})

	it := interp.New(interp.Options{Host: h})
	v, err := it.Eval(`double 21`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "42" {
		t.Errorf("got %q, want 42", v.String())
	}
}

func TestInvokeExtensionUnknownNameFails(t *testing.T) {
	h := New()
	it := interp.New(interp.Options{Host: h})
	if _, err := it.Eval(`nonexistent 1 2`); err == nil {
		t.Fatal("expected a name-not-found error")
	}
}

func TestRunEventLoopDrainsQueuedCallbacks(t *testing.T) {
	h := New()
	ran := false
	h.Post(func() { ran = true })
	done, err := h.RunEventLoop(context.Background(), interp.EventLoopDrain, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("expected drain to report done")
	}
	if !ran {
		t.Error("expected the queued callback to have run")
	}
}

func TestRunEventLoopUntilConditionStopsOnceSatisfied(t *testing.T) {
	h := New()
	count := 0
	h.Post(func() { count++ })
	h.Post(func() { count++ })
	h.Post(func() { count++ })
	done, err := h.RunEventLoop(context.Background(), interp.EventLoopUntilCondition, func() bool { return count >= 2 })
	if err != nil {
		t.Fatal(err)
	}
	if !done {
		t.Error("expected condition to be satisfied")
	}
	if count != 2 {
		t.Errorf("got count %d, want 2 (loop must stop as soon as the condition is met)", count)
	}
}

func TestRunEventLoopUntilConditionFailsWhenQueueEmpty(t *testing.T) {
	h := New()
	_, err := h.RunEventLoop(context.Background(), interp.EventLoopUntilCondition, func() bool { return false })
	if err == nil {
		t.Fatal("expected a host-failure error when the queue drains without satisfying the condition")
	}
}
