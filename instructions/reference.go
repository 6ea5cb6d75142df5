/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package instructions

import (
	"fmt"

	"jacobin/frames"
	"jacobin/reader"
)

// linkerOf fetches the frame's collaborator (spec.md §6), failing with
// a descriptive error rather than a nil-pointer panic when the
// embedding program never wired one up.
func linkerOf(f *frames.Frame) (frames.Linker, error) {
	if f.Owner == nil {
		return nil, fmt.Errorf("opcode requires a collaborator but frame has no owning thread")
	}
	l := f.Owner.Linker()
	if l == nil {
		return nil, fmt.Errorf("opcode requires a collaborator but no Linker is configured")
	}
	return l, nil
}

// cpIndexOp is every instruction whose sole operand is a u16
// constant-pool index: getstatic/putstatic/getfield/putfield, the
// invoke family (minus invokeinterface/invokedynamic's extra bytes),
// new, anewarray, checkcast, instanceof.
type cpIndexOp struct {
	opcode uint8
	index  uint16
}

func (c *cpIndexOp) FetchOperands(r *reader.Reader, opcodePC int) {
	c.index = r.ReadU16()
}

func (c *cpIndexOp) Execute(f *frames.Frame) (bool, error) {
	linker, err := linkerOf(f)
	if err != nil {
		return true, err
	}
	switch c.opcode {
	case opGetstatic, opGetfield:
		v, err := linker.ResolveFieldRef(f.CP, c.index)
		if err != nil {
			return true, err
		}
		if c.opcode == opGetfield {
			f.Stack.PopRef()
		}
		f.Stack.PushRef(v)
	case opPutstatic, opPutfield:
		if _, err := linker.ResolveFieldRef(f.CP, c.index); err != nil {
			return true, err
		}
		f.Stack.PopSlot()
		if c.opcode == opPutfield {
			f.Stack.PopRef()
		}
	case opInvokevirtual, opInvokespecial, opInvokestatic:
		if _, err := linker.ResolveMethodRef(f.CP, c.index); err != nil {
			return true, err
		}
		return true, fmt.Errorf("method invocation is outside the interpreter's core scope")
	case opNew:
		class, err := linker.LoadClass(f.CP.ClassName(c.index))
		if err != nil {
			return true, err
		}
		obj, err := linker.NewInstance(class)
		if err != nil {
			return true, err
		}
		f.Stack.PushRef(obj)
	case opAnewarray:
		count := f.Stack.PopInt()
		arr, err := linker.NewArray(int(c.index), count)
		if err != nil {
			return true, err
		}
		f.Stack.PushRef(arr)
	case opCheckcast, opInstanceof:
		if _, err := linker.LoadClass(f.CP.ClassName(c.index)); err != nil {
			return true, err
		}
	}
	return false, nil
}

// invokeinterfaceOp carries the extra count/zero bytes JVMS requires
// after invokeinterface's CP index.
type invokeinterfaceOp struct {
	index uint16
	count uint8
}

func (i *invokeinterfaceOp) FetchOperands(r *reader.Reader, opcodePC int) {
	i.index = r.ReadU16()
	i.count = r.ReadU8()
	r.ReadU8() // reserved zero byte
}

func (i *invokeinterfaceOp) Execute(f *frames.Frame) (bool, error) {
	linker, err := linkerOf(f)
	if err != nil {
		return true, err
	}
	if _, err := linker.ResolveMethodRef(f.CP, i.index); err != nil {
		return true, err
	}
	return true, fmt.Errorf("method invocation is outside the interpreter's core scope")
}

// invokedynamicOp carries the CP index plus two reserved zero bytes.
type invokedynamicOp struct{ index uint16 }

func (i *invokedynamicOp) FetchOperands(r *reader.Reader, opcodePC int) {
	i.index = r.ReadU16()
	r.ReadU16() // reserved zero bytes
}

func (i *invokedynamicOp) Execute(f *frames.Frame) (bool, error) {
	linker, err := linkerOf(f)
	if err != nil {
		return true, err
	}
	if _, err := linker.ResolveMethodRef(f.CP, i.index); err != nil {
		return true, err
	}
	return true, fmt.Errorf("method invocation is outside the interpreter's core scope")
}

// newarrayOp allocates a primitive array: atype is one of the JVMS
// §6.5.newarray T_xxx constants.
type newarrayOp struct{ atype uint8 }

func (n *newarrayOp) FetchOperands(r *reader.Reader, opcodePC int) { n.atype = r.ReadU8() }

func (n *newarrayOp) Execute(f *frames.Frame) (bool, error) {
	linker, err := linkerOf(f)
	if err != nil {
		return true, err
	}
	count := f.Stack.PopInt()
	arr, err := linker.NewArray(int(n.atype), count)
	if err != nil {
		return true, err
	}
	f.Stack.PushRef(arr)
	return false, nil
}

// multianewarrayOp allocates a multi-dimensional array.
type multianewarrayOp struct {
	index uint16
	dims  uint8
}

func (m *multianewarrayOp) FetchOperands(r *reader.Reader, opcodePC int) {
	m.index = r.ReadU16()
	m.dims = r.ReadU8()
}

func (m *multianewarrayOp) Execute(f *frames.Frame) (bool, error) {
	linker, err := linkerOf(f)
	if err != nil {
		return true, err
	}
	counts := make([]int32, m.dims)
	for i := int(m.dims) - 1; i >= 0; i-- {
		counts[i] = f.Stack.PopInt()
	}
	arr, err := linker.NewArray(int(m.index), counts[0])
	if err != nil {
		return true, err
	}
	f.Stack.PushRef(arr)
	return false, nil
}

// athrowOp hands the top-of-stack reference to the collaborator's
// exception-dispatch mechanism; the core has none of its own (spec.md
// §6: Throw is a collaborator operation).
type athrowOp struct{}

func (athrowOp) FetchOperands(r *reader.Reader, opcodePC int) {}

func (athrowOp) Execute(f *frames.Frame) (bool, error) {
	linker, err := linkerOf(f)
	if err != nil {
		return true, err
	}
	objref := f.Stack.PopRef()
	if err := linker.Throw(objref); err != nil {
		return true, err
	}
	return true, nil
}

// unsupportedRefOp covers array element access, arraylength, and
// monitorenter/monitorexit: all need a live object/array heap model,
// which is out of this interpreter's scope (spec.md Non-goals). Each
// still consumes the right number of stack slots so a caller sees a
// clean error rather than a stack-shape panic on the next instruction.
type unsupportedRefOp struct {
	opcode  uint8
	popRefs int
	popVals int
}

func (u *unsupportedRefOp) FetchOperands(r *reader.Reader, opcodePC int) {}

func (u *unsupportedRefOp) Execute(f *frames.Frame) (bool, error) {
	for i := 0; i < u.popVals; i++ {
		f.Stack.PopSlot()
	}
	for i := 0; i < u.popRefs; i++ {
		f.Stack.PopRef()
	}
	return true, fmt.Errorf("opcode 0x%02x requires an object/array heap model outside the interpreter's core scope", u.opcode)
}

func init() {
	for _, op := range []uint8{
		opGetstatic, opPutstatic, opGetfield, opPutfield,
		opInvokevirtual, opInvokespecial, opInvokestatic,
		opNew, opAnewarray, opCheckcast, opInstanceof,
	} {
		op := op
		register(op, func() Instruction { return &cpIndexOp{opcode: op} })
	}
	register(opInvokeinterface, func() Instruction { return &invokeinterfaceOp{} })
	register(opInvokedynamic, func() Instruction { return &invokedynamicOp{} })
	register(opNewarray, func() Instruction { return &newarrayOp{} })
	register(opMultianewarray, func() Instruction { return &multianewarrayOp{} })
	register(opAthrow, func() Instruction { return &athrowOp{} })

	register(opArraylength, func() Instruction { return &unsupportedRefOp{opcode: opArraylength, popRefs: 1} })
	register(opMonitorenter, func() Instruction { return &unsupportedRefOp{opcode: opMonitorenter, popRefs: 1} })
	register(opMonitorexit, func() Instruction { return &unsupportedRefOp{opcode: opMonitorexit, popRefs: 1} })

	for _, op := range []uint8{opIaload, opFaload, opBaload, opCaload, opSaload} {
		op := op
		register(op, func() Instruction { return &unsupportedRefOp{opcode: op, popRefs: 1, popVals: 1} })
	}
	for _, op := range []uint8{opLaload, opDaload, opAaload} {
		op := op
		register(op, func() Instruction { return &unsupportedRefOp{opcode: op, popRefs: 1, popVals: 1} })
	}
	for _, op := range []uint8{opIastore, opFastore, opBastore, opCastore, opSastore} {
		op := op
		register(op, func() Instruction { return &unsupportedRefOp{opcode: op, popRefs: 1, popVals: 2} })
	}
	for _, op := range []uint8{opLastore, opDastore} {
		op := op
		register(op, func() Instruction { return &unsupportedRefOp{opcode: op, popRefs: 1, popVals: 3} })
	}
	register(opAastore, func() Instruction { return &unsupportedRefOp{opcode: opAastore, popRefs: 2, popVals: 1} })
}
