/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frames

import "testing"

func TestLocalVarsIntRoundTrip(t *testing.T) {
	lv := NewLocalVars(4)
	lv.SetInt(0, 42)
	if got := lv.GetInt(0); got != 42 {
		t.Errorf("GetInt(0) = %d, want 42", got)
	}
}

func TestLocalVarsLongSpansTwoSlots(t *testing.T) {
	lv := NewLocalVars(4)
	lv.SetLong(0, -123456789012345)
	if got := lv.GetLong(0); got != -123456789012345 {
		t.Errorf("GetLong(0) = %d, want -123456789012345", got)
	}
	// slot 1 must be consumed as the long's high word, not independently usable
	if len(lv.slots) != 4 {
		t.Fatalf("unexpected backing size %d", len(lv.slots))
	}
	if got := lv.slots[1].Num; got != int32(-123456789012345>>32) {
		t.Errorf("slots[1].Num = %d, want the long's high word %d", got, int32(-123456789012345>>32))
	}
}

func TestLocalVarsDoubleRoundTrip(t *testing.T) {
	lv := NewLocalVars(2)
	lv.SetDouble(0, 3.14159)
	if got := lv.GetDouble(0); got != 3.14159 {
		t.Errorf("GetDouble(0) = %v, want 3.14159", got)
	}
}

func TestLocalVarsFloatRoundTrip(t *testing.T) {
	lv := NewLocalVars(1)
	lv.SetFloat(0, 2.5)
	if got := lv.GetFloat(0); got != 2.5 {
		t.Errorf("GetFloat(0) = %v, want 2.5", got)
	}
}

func TestLocalVarsOutOfRangePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for an out-of-range local index")
		}
	}()
	lv := NewLocalVars(2)
	lv.GetInt(5)
}

func TestOperandStackPushPopInt(t *testing.T) {
	os := NewOperandStack(4)
	os.PushInt(7)
	os.PushInt(9)
	if got := os.PopInt(); got != 9 {
		t.Errorf("PopInt() = %d, want 9", got)
	}
	if got := os.PopInt(); got != 7 {
		t.Errorf("PopInt() = %d, want 7", got)
	}
}

func TestOperandStackLongRoundTrip(t *testing.T) {
	os := NewOperandStack(4)
	os.PushLong(9876543210)
	if os.Size() != 2 {
		t.Fatalf("Size() after PushLong = %d, want 2", os.Size())
	}
	if got := os.PopLong(); got != 9876543210 {
		t.Errorf("PopLong() = %d, want 9876543210", got)
	}
}

func TestOperandStackOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on operand stack overflow")
		}
	}()
	os := NewOperandStack(1)
	os.PushInt(1)
	os.PushInt(2)
}

func TestOperandStackUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic on operand stack underflow")
		}
	}()
	os := NewOperandStack(1)
	os.PopInt()
}

func TestOperandStackPeekDoesNotPop(t *testing.T) {
	os := NewOperandStack(2)
	os.PushInt(5)
	if got := os.PeekSlot(0).Num; got != 5 {
		t.Fatalf("PeekSlot(0).Num = %d, want 5", got)
	}
	if os.Size() != 1 {
		t.Fatalf("PeekSlot must not change Size(), got %d", os.Size())
	}
}

func TestOperandStackInsertSlotForDupX1(t *testing.T) {
	os := NewOperandStack(4)
	os.PushInt(1)
	os.PushInt(2)
	top := os.PeekSlot(0)
	os.InsertSlot(2, top)
	// stack should now read, bottom to top: top(=2), 1, 2
	if os.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", os.Size())
	}
	if got := os.PopInt(); got != 2 {
		t.Errorf("PopInt() = %d, want 2", got)
	}
	if got := os.PopInt(); got != 1 {
		t.Errorf("PopInt() = %d, want 1", got)
	}
	if got := os.PopInt(); got != 2 {
		t.Errorf("PopInt() = %d, want 2", got)
	}
}

type fakeOwner struct{}

func (fakeOwner) Linker() Linker { return nil }

func TestFrameOwnerIsNonOwningBackReference(t *testing.T) {
	f := NewFrame(2, 2, []byte{0x00}, nil, fakeOwner{})
	if f.Owner == nil {
		t.Fatal("expected frame to carry its owner")
	}
	if f.Owner.Linker() != nil {
		t.Fatal("fakeOwner.Linker() should be nil by construction")
	}
}
