/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package thread

import (
	"strings"
	"testing"

	"jacobin/frames"
)

func TestPushPopOrdering(t *testing.T) {
	th := New(4, nil)
	f1 := frames.NewFrame(1, 1, nil, nil, th)
	f2 := frames.NewFrame(1, 1, nil, nil, th)

	if err := th.PushFrame(f1); err != nil {
		t.Fatalf("PushFrame(f1): %v", err)
	}
	if err := th.PushFrame(f2); err != nil {
		t.Fatalf("PushFrame(f2): %v", err)
	}
	if th.CurrentFrame() != f2 {
		t.Fatal("CurrentFrame() should be the most recently pushed frame")
	}

	popped, err := th.PopFrame()
	if err != nil {
		t.Fatalf("PopFrame(): %v", err)
	}
	if popped != f2 {
		t.Fatal("PopFrame() should return f2 first (LIFO)")
	}
	if th.CurrentFrame() != f1 {
		t.Fatal("CurrentFrame() should fall back to f1 after popping f2")
	}
}

func TestOverflowReturnsError(t *testing.T) {
	th := New(1, nil)
	if err := th.PushFrame(frames.NewFrame(0, 0, nil, nil, th)); err != nil {
		t.Fatalf("first PushFrame should succeed: %v", err)
	}
	err := th.PushFrame(frames.NewFrame(0, 0, nil, nil, th))
	if err == nil || !strings.Contains(err.Error(), "stack overflow") {
		t.Fatalf("PushFrame beyond capacity should fail with a stack-overflow error, got %v", err)
	}
}

func TestUnderflowReturnsError(t *testing.T) {
	th := New(4, nil)
	_, err := th.PopFrame()
	if err == nil || !strings.Contains(err.Error(), "stack underflow") {
		t.Fatalf("PopFrame on empty stack should fail with a stack-underflow error, got %v", err)
	}
}

func TestDefaultCapacityAppliesWhenZero(t *testing.T) {
	s := NewStack(0)
	if s.capacity != 1024 {
		t.Fatalf("capacity = %d, want default 1024", s.capacity)
	}
}

func TestThreadImplementsFramesOwner(t *testing.T) {
	var _ frames.Owner = New(4, nil)
}
