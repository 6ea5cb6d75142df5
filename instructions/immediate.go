/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package instructions

import (
	"fmt"

	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/reader"
)

// push1 is bipush/sipush: a single signed immediate pushed as an int.
type push1 struct {
	wide  bool // sipush reads i16, bipush reads i8
	value int32
}

func (p *push1) FetchOperands(r *reader.Reader, opcodePC int) {
	if p.wide {
		p.value = int32(r.ReadI16())
	} else {
		p.value = int32(r.ReadI8())
	}
}

func (p *push1) Execute(f *frames.Frame) (bool, error) {
	f.Stack.PushInt(p.value)
	return false, nil
}

// ldcInstr loads a constant-pool entry onto the stack (spec.md §4.E).
// wide selects whether the CP index is one byte (ldc) or two (ldc_w /
// ldc2_w); long2 selects the ldc2_w category-2 (long/double) variant.
type ldcInstr struct {
	wide  bool
	long2 bool
	index uint16
}

func (l *ldcInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	if l.wide {
		l.index = r.ReadU16()
	} else {
		l.index = uint16(r.ReadU8())
	}
}

func (l *ldcInstr) Execute(f *frames.Frame) (bool, error) {
	cp := f.CP
	if l.long2 {
		if v, ok := cp.Long(l.index); ok {
			f.Stack.PushLong(v)
			return false, nil
		}
		if v, ok := cp.Double(l.index); ok {
			f.Stack.PushDouble(v)
			return false, nil
		}
		return true, fmt.Errorf("%s: ldc2_w index %d is not a long or double constant", excNames.MalformedClassFile, l.index)
	}
	if v, ok := cp.Integer(l.index); ok {
		f.Stack.PushInt(v)
		return false, nil
	}
	if v, ok := cp.Float(l.index); ok {
		f.Stack.PushFloat(v)
		return false, nil
	}
	if v, ok := cp.StringValue(l.index); ok {
		f.Stack.PushRef(v)
		return false, nil
	}
	return true, fmt.Errorf("%s: ldc index %d is not an int, float, or string constant", excNames.MalformedClassFile, l.index)
}

// iincInstr increments a local int variable by a constant amount.
type iincInstr struct {
	wide  bool
	index int
	delta int32
}

func (ii *iincInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	if ii.wide {
		ii.index = int(r.ReadU16())
		ii.delta = int32(r.ReadI16())
	} else {
		ii.index = int(r.ReadU8())
		ii.delta = int32(r.ReadI8())
	}
}

func (ii *iincInstr) Execute(f *frames.Frame) (bool, error) {
	f.Locals.SetInt(ii.index, f.Locals.GetInt(ii.index)+ii.delta)
	return false, nil
}

// wideInstr implements the wide prefix (JVMS §6.5.wide): it re-reads
// the following opcode byte and decodes that opcode's operand(s) as
// u16 instead of u8, then delegates Execute to the widened instruction.
type wideInstr struct {
	inner Instruction
}

func (w *wideInstr) FetchOperands(r *reader.Reader, opcodePC int) {
	modified := r.ReadU8()
	switch modified {
	case opIinc:
		ii := &iincInstr{wide: true}
		ii.FetchOperands(r, opcodePC)
		w.inner = ii
	case opIload, opLload, opFload, opDload, opAload,
		opIstore, opLstore, opFstore, opDstore, opAstore:
		kind, store := kindAndStoreFor(modified)
		ls := &indexedLoadStore{localSlot{kind: kind, store: store}}
		ls.index = int(r.ReadU16())
		w.inner = ls
	default:
		w.inner = nil
	}
}

func kindAndStoreFor(opcode uint8) (kind byte, store bool) {
	switch opcode {
	case opIload:
		return 'i', false
	case opIstore:
		return 'i', true
	case opLload:
		return 'l', false
	case opLstore:
		return 'l', true
	case opFload:
		return 'f', false
	case opFstore:
		return 'f', true
	case opDload:
		return 'd', false
	case opDstore:
		return 'd', true
	case opAload:
		return 'a', false
	case opAstore:
		return 'a', true
	}
	return 0, false
}

func (w *wideInstr) Execute(f *frames.Frame) (bool, error) {
	if w.inner == nil {
		return true, fmt.Errorf("%s: wide prefix applied to an unsupported opcode", excNames.UnsupportedOpcode)
	}
	return w.inner.Execute(f)
}

func init() {
	register(opBipush, func() Instruction { return &push1{} })
	register(opSipush, func() Instruction { return &push1{wide: true} })
	register(opLdc, func() Instruction { return &ldcInstr{} })
	register(opLdcW, func() Instruction { return &ldcInstr{wide: true} })
	register(opLdc2W, func() Instruction { return &ldcInstr{wide: true, long2: true} })
	register(opIinc, func() Instruction { return &iincInstr{} })
	register(opWide, func() Instruction { return &wideInstr{} })
}
