/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package instructions

import (
	"jacobin/frames"
	"jacobin/reader"
)

// Instruction is one decoded bytecode instruction (spec.md §4.E).
// FetchOperands consumes whatever operand bytes the opcode carries,
// starting right after the opcode byte itself; opcodePC is the address
// of the opcode byte, needed by the branch family to compute an
// absolute target. Execute then mutates the frame; branch instructions
// set f.NextPC themselves, everything else leaves the interpreter's
// default "fall through to the next instruction" NextPC untouched.
type Instruction interface {
	FetchOperands(r *reader.Reader, opcodePC int)
	Execute(f *frames.Frame) (halt bool, err error)
}

// registry maps an opcode byte to a constructor for a fresh, zero-value
// instruction of the matching variant — fresh because FetchOperands
// mutates per-decode state (an immediate value, a branch target, a CP
// index) that must not leak between invocations of the same opcode.
var registry = map[uint8]func() Instruction{}

func register(opcode uint8, ctor func() Instruction) {
	registry[opcode] = ctor
}

// Decode returns a fresh instruction for opcode, or ok=false if the
// opcode has no registered variant — the "unsupported opcode" case
// spec.md §4.F step 3 treats as a fatal interpreter condition.
func Decode(opcode uint8) (inst Instruction, ok bool) {
	ctor, found := registry[opcode]
	if !found {
		return nil, false
	}
	return ctor(), true
}
