/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package instructions

import (
	"testing"

	"jacobin/frames"
)

func pushInts(vals ...int32) *frames.Frame {
	tf := newTestFrame(8)
	for _, v := range vals {
		tf.Stack.PushInt(v)
	}
	return tf
}

func popAll(tf *frames.Frame) []int32 {
	var out []int32
	for tf.Stack.Size() > 0 {
		out = append([]int32{tf.Stack.PopInt()}, out...)
	}
	return out
}

func TestDupDuplicatesTop(t *testing.T) {
	f := pushInts(1, 2)
	if _, err := execNoOperand(t, opDup, f); err != nil {
		t.Fatalf("dup: %v", err)
	}
	got := popAll(f)
	want := []int32{1, 2, 2}
	if !equalInts(got, want) {
		t.Errorf("after dup = %v, want %v", got, want)
	}
}

func TestDupX1(t *testing.T) {
	f := pushInts(1, 2)
	if _, err := execNoOperand(t, opDupX1, f); err != nil {
		t.Fatalf("dup_x1: %v", err)
	}
	got := popAll(f)
	want := []int32{2, 1, 2}
	if !equalInts(got, want) {
		t.Errorf("after dup_x1 = %v, want %v", got, want)
	}
}

func TestDupX2(t *testing.T) {
	f := pushInts(1, 2, 3)
	if _, err := execNoOperand(t, opDupX2, f); err != nil {
		t.Fatalf("dup_x2: %v", err)
	}
	got := popAll(f)
	want := []int32{3, 1, 2, 3}
	if !equalInts(got, want) {
		t.Errorf("after dup_x2 = %v, want %v", got, want)
	}
}

func TestSwap(t *testing.T) {
	f := pushInts(1, 2)
	if _, err := execNoOperand(t, opSwap, f); err != nil {
		t.Fatalf("swap: %v", err)
	}
	got := popAll(f)
	want := []int32{2, 1}
	if !equalInts(got, want) {
		t.Errorf("after swap = %v, want %v", got, want)
	}
}

func TestPop2RemovesTwoSlots(t *testing.T) {
	f := pushInts(1, 2, 3)
	if _, err := execNoOperand(t, opPop2, f); err != nil {
		t.Fatalf("pop2: %v", err)
	}
	got := popAll(f)
	want := []int32{1}
	if !equalInts(got, want) {
		t.Errorf("after pop2 = %v, want %v", got, want)
	}
}

func equalInts(a, b []int32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
