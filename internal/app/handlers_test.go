package app

import (
	"errors"
	"testing"
)

func TestHandlerRegistry_SnapshotPreservesOrder(t *testing.T) {
	r := NewHandlerRegistry()

	var order []int
	r.Register(func() error { order = append(order, 0); return nil })
	r.Register(func() error { order = append(order, 1); return nil })
	r.Register(func() error { order = append(order, 2); return nil })

	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len(Snapshot()) = %d, want 3", len(snap))
	}
	for i, h := range snap {
		if h.Index != i {
			t.Errorf("Snapshot()[%d].Index = %d, want %d", i, h.Index, i)
		}
		if err := h.Run(); err != nil {
			t.Errorf("Snapshot()[%d].Run() error = %v", i, err)
		}
	}
	if order[0] != 0 || order[1] != 1 || order[2] != 2 {
		t.Fatalf("handlers ran out of registration order: %v", order)
	}
}

func TestHandlerRegistry_SnapshotIsIndependentOfLaterRegistrations(t *testing.T) {
	r := NewHandlerRegistry()
	r.Register(func() error { return nil })

	snap := r.Snapshot()
	r.Register(func() error { return errors.New("registered after snapshot") })

	if len(snap) != 1 {
		t.Fatalf("len(snap) = %d, want 1 (later registration must not leak into an earlier snapshot)", len(snap))
	}
}

func TestHandlerRegistry_EmptyRegistrySnapshot(t *testing.T) {
	r := NewHandlerRegistry()
	if snap := r.Snapshot(); len(snap) != 0 {
		t.Fatalf("len(Snapshot()) = %d, want 0", len(snap))
	}
}
