/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package frames is the runtime data area (spec.md §3, §4.D): the
// uniform Slot storage cell, the fixed-size LocalVars and OperandStack
// built from it, and the per-invocation Frame that ties them together.
// Named after the teacher's runtime-data-area role but grouped the way
// original_source/src/runtime_data_area.rs groups it, in one package,
// rather than split further — Slot/LocalVars/OperandStack/Frame are one
// cohesive unit with no natural seam between them.
package frames

import "math"

// Slot is the uniform 32-bit storage cell for both local variables and
// the operand stack (spec.md §3). A slot holds either an int32 payload
// or an object reference; float is the bit pattern of its IEEE-754
// encoding stored in Num. Long/double occupy two consecutive slots,
// low word first, reinterpreting the 64-bit pattern split across them.
type Slot struct {
	Num int32
	Ref interface{}
}

func floatToSlot(v float32) Slot   { return Slot{Num: int32(math.Float32bits(v))} }
func slotToFloat(s Slot) float32   { return math.Float32frombits(uint32(s.Num)) }
func int64ToSlots(v int64) (Slot, Slot) {
	low := int32(uint32(v))
	high := int32(uint32(v >> 32))
	return Slot{Num: low}, Slot{Num: high}
}
func slotsToInt64(low, high Slot) int64 {
	return int64(uint32(low.Num)) | int64(uint32(high.Num))<<32
}
