package interp

import (
	"context"
	"testing"
)

// pumpHost is a minimal test Host whose RunEventLoop runs queued thunks
// once before checking condition, enough to exercise vwait/update without
// a real I/O-driven event source.
type pumpHost struct {
	pending []func()
}

func (h *pumpHost) InvokeExtension(_ context.Context, name string, _ []*Value) (Code, *Value, error) {
	return CodeError, nil, newError(ErrNameNotFound, "invalid command name %q", name)
}

func (h *pumpHost) RunEventLoop(_ context.Context, mode EventLoopMode, condition func() bool) (bool, error) {
	for len(h.pending) > 0 {
		next := h.pending[0]
		h.pending = h.pending[1:]
		next()
		if condition != nil && condition() {
			return true, nil
		}
	}
	if mode == EventLoopDrain {
		return true, nil
	}
	if condition != nil && condition() {
		return true, nil
	}
	return false, newError(ErrHostFailure, "vwait: no event loop available to await a variable write")
}

func TestVwaitDrivesHostEventLoopUntilWrite(t *testing.T) {
	host := &pumpHost{}
	it := New(Options{Host: host})
	if _, err := it.Eval(`set done 0`); err != nil {
		t.Fatal(err)
	}
	host.pending = append(host.pending, func() {
		if _, err := it.Eval(`set done 1`); err != nil {
			t.Fatal(err)
		}
	})
	if _, err := it.Eval(`vwait done`); err != nil {
		t.Fatal(err)
	}
	v, err := it.Eval(`set done`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "1" {
		t.Errorf("got %q, want 1", v.String())
	}
}

func TestUpdateDrainsPendingEvents(t *testing.T) {
	host := &pumpHost{}
	it := New(Options{Host: host})
	if _, err := it.Eval(`set ran 0`); err != nil {
		t.Fatal(err)
	}
	host.pending = append(host.pending, func() {
		it.Eval(`set ran 1`)
	})
	if _, err := it.Eval(`update`); err != nil {
		t.Fatal(err)
	}
	v, err := it.Eval(`set ran`)
	if err != nil {
		t.Fatal(err)
	}
	if v.String() != "1" {
		t.Errorf("got %q, want 1", v.String())
	}
}

func TestVwaitWithoutEventLoopFails(t *testing.T) {
	it := New(Options{})
	if _, err := it.Eval(`set x 0`); err != nil {
		t.Fatal(err)
	}
	if _, err := it.Eval(`vwait x`); err == nil {
		t.Fatal("expected a host-failure error from NopHost")
	}
}
