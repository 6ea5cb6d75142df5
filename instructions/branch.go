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

// The base field every branch instruction carries is always the
// branching instruction's own opcode-byte address, never the address
// after its operands — the Open Question
// spec.md §9 flags, resolved here per original_source/src/
// interpreter.rs, which computes every jump target from the opcode's
// own pc before advancing past its operands.
type cond uint8

const (
	condEQ cond = iota
	condNE
	condLT
	condGE
	condGT
	condLE
)

// ifInstr covers if<cond> (compare top-of-stack int to 0) and
// if_icmp<cond> (compare two ints), distinguished by twoOperand.
type ifInstr struct {
	twoOperand bool
	c          cond
	base       int
	offset     int16
}

func (b *ifInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	b.base = opcodePC
	b.offset = r.ReadI16()
}

func (b *ifInstr) Execute(f *frames.Frame) (bool, error) {
	var v int32
	if b.twoOperand {
		rhs, lhs := f.Stack.PopInt(), f.Stack.PopInt()
		v = lhs - rhs
	} else {
		v = f.Stack.PopInt()
	}
	if takeBranch(b.c, v) {
		f.NextPC = b.base + int(b.offset)
	}
	return false, nil
}

func takeBranch(c cond, v int32) bool {
	switch c {
	case condEQ:
		return v == 0
	case condNE:
		return v != 0
	case condLT:
		return v < 0
	case condGE:
		return v >= 0
	case condGT:
		return v > 0
	case condLE:
		return v <= 0
	}
	return false
}

// acmpInstr covers if_acmpeq/if_acmpne: reference equality comparison.
type acmpInstr struct {
	negate bool
	base   int
	offset int16
}

func (a *acmpInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	a.base = opcodePC
	a.offset = r.ReadI16()
}

func (a *acmpInstr) Execute(f *frames.Frame) (bool, error) {
	rhs, lhs := f.Stack.PopRef(), f.Stack.PopRef()
	eq := lhs == rhs
	if eq != a.negate {
		f.NextPC = a.base + int(a.offset)
	}
	return false, nil
}

// nullInstr covers ifnull/ifnonnull.
type nullInstr struct {
	wantNull bool
	base     int
	offset   int16
}

func (n *nullInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	n.base = opcodePC
	n.offset = r.ReadI16()
}

func (n *nullInstr) Execute(f *frames.Frame) (bool, error) {
	isNil := f.Stack.PopRef() == nil
	if isNil == n.wantNull {
		f.NextPC = n.base + int(n.offset)
	}
	return false, nil
}

// gotoInstr covers goto (i16 offset) and goto_w (i32 offset).
type gotoInstr struct {
	wide   bool
	base   int
	offset int32
}

func (g *gotoInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	g.base = opcodePC
	if g.wide {
		g.offset = r.ReadI32()
	} else {
		g.offset = int32(r.ReadI16())
	}
}

func (g *gotoInstr) Execute(f *frames.Frame) (bool, error) {
	f.NextPC = g.base + int(g.offset)
	return false, nil
}

// tableswitchInstr implements JVMS §6.5.tableswitch: a dense jump
// table indexed by the stack's top int when it lies in [low, high];
// any other value takes the default target.
type tableswitchInstr struct {
	base         int
	defaultOff   int32
	low, high    int32
	jumpOffsets  []int32
}

func (t *tableswitchInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	t.base = opcodePC
	alignTo4(r, opcodePC)
	t.defaultOff = r.ReadI32()
	t.low = r.ReadI32()
	t.high = r.ReadI32()
	n := int(t.high-t.low) + 1
	t.jumpOffsets = make([]int32, n)
	for i := range t.jumpOffsets {
		t.jumpOffsets[i] = r.ReadI32()
	}
}

func (t *tableswitchInstr) Execute(f *frames.Frame) (bool, error) {
	idx := f.Stack.PopInt()
	if idx < t.low || idx > t.high {
		f.NextPC = t.base + int(t.defaultOff)
	} else {
		f.NextPC = t.base + int(t.jumpOffsets[idx-t.low])
	}
	return false, nil
}

// lookupswitchInstr implements JVMS §6.5.lookupswitch: a sparse
// match/offset table searched for the stack's top int.
type lookupswitchInstr struct {
	base       int
	defaultOff int32
	matches    []int32
	offsets    []int32
}

func (l *lookupswitchInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	l.base = opcodePC
	alignTo4(r, opcodePC)
	l.defaultOff = r.ReadI32()
	npairs := r.ReadI32()
	l.matches = make([]int32, npairs)
	l.offsets = make([]int32, npairs)
	for i := int32(0); i < npairs; i++ {
		l.matches[i] = r.ReadI32()
		l.offsets[i] = r.ReadI32()
	}
}

func (l *lookupswitchInstr) Execute(f *frames.Frame) (bool, error) {
	key := f.Stack.PopInt()
	for i, m := range l.matches {
		if m == key {
			f.NextPC = l.base + int(l.offsets[i])
			return false, nil
		}
	}
	f.NextPC = l.base + int(l.defaultOff)
	return false, nil
}

// alignTo4 discards padding bytes so the reader sits at an address
// divisible by 4 relative to the start of the method's code array —
// tableswitch/lookupswitch both require this before their operands.
func alignTo4(r *reader.Reader, opcodePC int) {
	for r.Position()%4 != 0 {
		r.ReadU8()
	}
}

func init() {
	type ifSpec struct {
		op uint8
		c  cond
	}
	for _, s := range []ifSpec{
		{opIfeq, condEQ}, {opIfne, condNE}, {opIflt, condLT},
		{opIfge, condGE}, {opIfgt, condGT}, {opIfle, condLE},
	} {
		s := s
		register(s.op, func() Instruction { return &ifInstr{c: s.c} })
	}
	for _, s := range []ifSpec{
		{opIfIcmpeq, condEQ}, {opIfIcmpne, condNE}, {opIfIcmplt, condLT},
		{opIfIcmpge, condGE}, {opIfIcmpgt, condGT}, {opIfIcmple, condLE},
	} {
		s := s
		register(s.op, func() Instruction { return &ifInstr{twoOperand: true, c: s.c} })
	}
	register(opIfAcmpeq, func() Instruction { return &acmpInstr{} })
	register(opIfAcmpne, func() Instruction { return &acmpInstr{negate: true} })
	register(opIfnull, func() Instruction { return &nullInstr{wantNull: true} })
	register(opIfnonnull, func() Instruction { return &nullInstr{} })
	register(opGoto, func() Instruction { return &gotoInstr{} })
	register(opGotoW, func() Instruction { return &gotoInstr{wide: true} })
	register(opTableswitch, func() Instruction { return &tableswitchInstr{} })
	register(opLookupswitch, func() Instruction { return &lookupswitchInstr{} })
}
