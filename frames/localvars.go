/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package frames

import (
	"fmt"
	"math"
)

// LocalVars is the fixed-size, 0-indexed slot array created once per
// frame, sized to the method's max_locals (spec.md §3).
type LocalVars struct {
	slots []Slot
}

// NewLocalVars allocates a zeroed local-variable array.
func NewLocalVars(maxLocals int) *LocalVars {
	return &LocalVars{slots: make([]Slot, maxLocals)}
}

func (lv *LocalVars) bound(index int) {
	if index < 0 || index >= len(lv.slots) {
		panic(fmt.Sprintf("local variable index out of range: index=%d, max_locals=%d", index, len(lv.slots)))
	}
}

func (lv *LocalVars) boundWide(index int) {
	lv.bound(index)
	lv.bound(index + 1)
}

func (lv *LocalVars) GetInt(index int) int32 {
	lv.bound(index)
	return lv.slots[index].Num
}

func (lv *LocalVars) SetInt(index int, v int32) {
	lv.bound(index)
	lv.slots[index] = Slot{Num: v}
}

func (lv *LocalVars) GetFloat(index int) float32 {
	lv.bound(index)
	return slotToFloat(lv.slots[index])
}

func (lv *LocalVars) SetFloat(index int, v float32) {
	lv.bound(index)
	lv.slots[index] = floatToSlot(v)
}

func (lv *LocalVars) GetRef(index int) interface{} {
	lv.bound(index)
	return lv.slots[index].Ref
}

func (lv *LocalVars) SetRef(index int, v interface{}) {
	lv.bound(index)
	lv.slots[index] = Slot{Ref: v}
}

func (lv *LocalVars) GetLong(index int) int64 {
	lv.boundWide(index)
	return slotsToInt64(lv.slots[index], lv.slots[index+1])
}

func (lv *LocalVars) SetLong(index int, v int64) {
	lv.boundWide(index)
	low, high := int64ToSlots(v)
	lv.slots[index] = low
	lv.slots[index+1] = high
}

func (lv *LocalVars) GetDouble(index int) float64 {
	return math.Float64frombits(uint64(lv.GetLong(index)))
}

func (lv *LocalVars) SetDouble(index int, v float64) {
	lv.SetLong(index, int64(math.Float64bits(v)))
}
