/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package instructions

import (
	"fmt"
	"math"

	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/reader"
)

// noOperand covers every opcode whose behavior needs nothing beyond the
// opcode byte itself: constants, arithmetic, bitwise/shift, conversion,
// comparison, stack shuffling, and the return family. Grouped as one
// switch rather than one struct per opcode, the way original_source's
// interpreter.rs dispatches a single match over the opcode — Execute is
// still one opcode's worth of logic per case, just without eighty-seven
// one-line types around it.
type noOperand struct{ opcode uint8 }

func (noOperand) FetchOperands(r *reader.Reader, opcodePC int) {}

func (n noOperand) Execute(f *frames.Frame) (bool, error) {
	st := f.Stack
	switch n.opcode {
	case opNop:
		// no-op

	case opAconstNull:
		st.PushRef(nil)
	case opIconstM1:
		st.PushInt(-1)
	case opIconst0:
		st.PushInt(0)
	case opIconst1:
		st.PushInt(1)
	case opIconst2:
		st.PushInt(2)
	case opIconst3:
		st.PushInt(3)
	case opIconst4:
		st.PushInt(4)
	case opIconst5:
		st.PushInt(5)
	case opLconst0:
		st.PushLong(0)
	case opLconst1:
		st.PushLong(1)
	case opFconst0:
		st.PushFloat(0)
	case opFconst1:
		st.PushFloat(1)
	case opFconst2:
		st.PushFloat(2)
	case opDconst0:
		st.PushDouble(0)
	case opDconst1:
		st.PushDouble(1)

	case opIadd:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a + b)
	case opIsub:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a - b)
	case opImul:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a * b)
	case opIdiv:
		b, a := st.PopInt(), st.PopInt()
		if b == 0 {
			return true, fmt.Errorf("%s: division by zero", excNames.DivideByZero)
		}
		st.PushInt(a / b)
	case opIrem:
		b, a := st.PopInt(), st.PopInt()
		if b == 0 {
			return true, fmt.Errorf("%s: division by zero", excNames.DivideByZero)
		}
		st.PushInt(a % b)
	case opIneg:
		st.PushInt(-st.PopInt())

	case opLadd:
		b, a := st.PopLong(), st.PopLong()
		st.PushLong(a + b)
	case opLsub:
		b, a := st.PopLong(), st.PopLong()
		st.PushLong(a - b)
	case opLmul:
		b, a := st.PopLong(), st.PopLong()
		st.PushLong(a * b)
	case opLdiv:
		b, a := st.PopLong(), st.PopLong()
		if b == 0 {
			return true, fmt.Errorf("%s: division by zero", excNames.DivideByZero)
		}
		st.PushLong(a / b)
	case opLrem:
		b, a := st.PopLong(), st.PopLong()
		if b == 0 {
			return true, fmt.Errorf("%s: division by zero", excNames.DivideByZero)
		}
		st.PushLong(a % b)
	case opLneg:
		st.PushLong(-st.PopLong())

	case opFadd:
		b, a := st.PopFloat(), st.PopFloat()
		st.PushFloat(a + b)
	case opFsub:
		b, a := st.PopFloat(), st.PopFloat()
		st.PushFloat(a - b)
	case opFmul:
		b, a := st.PopFloat(), st.PopFloat()
		st.PushFloat(a * b)
	case opFdiv:
		b, a := st.PopFloat(), st.PopFloat()
		st.PushFloat(a / b)
	case opFrem:
		b, a := st.PopFloat(), st.PopFloat()
		st.PushFloat(float32(math.Mod(float64(a), float64(b))))
	case opFneg:
		st.PushFloat(-st.PopFloat())

	case opDadd:
		b, a := st.PopDouble(), st.PopDouble()
		st.PushDouble(a + b)
	case opDsub:
		b, a := st.PopDouble(), st.PopDouble()
		st.PushDouble(a - b)
	case opDmul:
		b, a := st.PopDouble(), st.PopDouble()
		st.PushDouble(a * b)
	case opDdiv:
		b, a := st.PopDouble(), st.PopDouble()
		st.PushDouble(a / b)
	case opDrem:
		b, a := st.PopDouble(), st.PopDouble()
		st.PushDouble(math.Mod(a, b))
	case opDneg:
		st.PushDouble(-st.PopDouble())

	case opIshl:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a << (uint32(b) & 0x1F))
	case opIshr:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a >> (uint32(b) & 0x1F))
	case opIushr:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(int32(uint32(a) >> (uint32(b) & 0x1F)))
	case opLshl:
		b, a := st.PopInt(), st.PopLong()
		st.PushLong(a << (uint32(b) & 0x3F))
	case opLshr:
		b, a := st.PopInt(), st.PopLong()
		st.PushLong(a >> (uint32(b) & 0x3F))
	case opLushr:
		b, a := st.PopInt(), st.PopLong()
		st.PushLong(int64(uint64(a) >> (uint32(b) & 0x3F)))
	case opIand:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a & b)
	case opIor:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a | b)
	case opIxor:
		b, a := st.PopInt(), st.PopInt()
		st.PushInt(a ^ b)
	case opLand:
		b, a := st.PopLong(), st.PopLong()
		st.PushLong(a & b)
	case opLor:
		b, a := st.PopLong(), st.PopLong()
		st.PushLong(a | b)
	case opLxor:
		b, a := st.PopLong(), st.PopLong()
		st.PushLong(a ^ b)

	case opI2l:
		st.PushLong(int64(st.PopInt()))
	case opI2f:
		st.PushFloat(float32(st.PopInt()))
	case opI2d:
		st.PushDouble(float64(st.PopInt()))
	case opL2i:
		st.PushInt(int32(st.PopLong()))
	case opL2f:
		st.PushFloat(float32(st.PopLong()))
	case opL2d:
		st.PushDouble(float64(st.PopLong()))
	case opF2i:
		st.PushInt(floatToInt(st.PopFloat()))
	case opF2l:
		st.PushLong(floatToLong(st.PopFloat()))
	case opF2d:
		st.PushDouble(float64(st.PopFloat()))
	case opD2i:
		st.PushInt(doubleToInt(st.PopDouble()))
	case opD2l:
		st.PushLong(doubleToLong(st.PopDouble()))
	case opD2f:
		st.PushFloat(float32(st.PopDouble()))
	case opI2b:
		st.PushInt(int32(int8(st.PopInt())))
	case opI2c:
		st.PushInt(int32(uint16(st.PopInt())))
	case opI2s:
		st.PushInt(int32(int16(st.PopInt())))

	case opLcmp:
		b, a := st.PopLong(), st.PopLong()
		st.PushInt(cmp3(a < b, a == b))
	case opFcmpl:
		b, a := st.PopFloat(), st.PopFloat()
		st.PushInt(fcmp(float64(a), float64(b), -1))
	case opFcmpg:
		b, a := st.PopFloat(), st.PopFloat()
		st.PushInt(fcmp(float64(a), float64(b), 1))
	case opDcmpl:
		b, a := st.PopDouble(), st.PopDouble()
		st.PushInt(fcmp(a, b, -1))
	case opDcmpg:
		b, a := st.PopDouble(), st.PopDouble()
		st.PushInt(fcmp(a, b, 1))

	case opPop:
		st.PopSlot()
	case opPop2:
		st.PopSlot()
		st.PopSlot()
	case opDup:
		st.PushSlot(st.PeekSlot(0))
	case opDupX1:
		top := st.PopSlot()
		below := st.PopSlot()
		st.PushSlot(top)
		st.PushSlot(below)
		st.PushSlot(top)
	case opDupX2:
		v1 := st.PopSlot()
		v2 := st.PopSlot()
		v3 := st.PopSlot()
		st.PushSlot(v1)
		st.PushSlot(v3)
		st.PushSlot(v2)
		st.PushSlot(v1)
	case opDup2:
		v2 := st.PeekSlot(0)
		v1 := st.PeekSlot(1)
		st.PushSlot(v1)
		st.PushSlot(v2)
	case opDup2X1:
		v1 := st.PopSlot()
		v2 := st.PopSlot()
		v3 := st.PopSlot()
		st.PushSlot(v2)
		st.PushSlot(v1)
		st.PushSlot(v3)
		st.PushSlot(v2)
		st.PushSlot(v1)
	case opDup2X2:
		v1 := st.PopSlot()
		v2 := st.PopSlot()
		v3 := st.PopSlot()
		v4 := st.PopSlot()
		st.PushSlot(v2)
		st.PushSlot(v1)
		st.PushSlot(v4)
		st.PushSlot(v3)
		st.PushSlot(v2)
		st.PushSlot(v1)
	case opSwap:
		top := st.PopSlot()
		below := st.PopSlot()
		st.PushSlot(top)
		st.PushSlot(below)

	case opIreturn, opLreturn, opFreturn, opDreturn, opAreturn, opReturn:
		// Return leaves the operand stack untouched — the caller reads
		// the single return value (if any) off the top before the
		// frame is popped.
		return true, nil

	default:
		return true, fmt.Errorf("%s: opcode 0x%02x has no noOperand case", excNames.UnsupportedOpcode, n.opcode)
	}
	return false, nil
}

// cmp3 implements lcmp's three-way compare: -1, 0, or 1.
func cmp3(less, equal bool) int32 {
	if less {
		return -1
	}
	if equal {
		return 0
	}
	return 1
}

// fcmp implements fcmpl/fcmpg and dcmpl/dcmpg: nanResult is the value
// pushed when either operand is NaN (-1 for the 'l' suffix, 1 for 'g'),
// per JVMS §6.5.fcmp<op>.
func fcmp(a, b float64, nanResult int32) int32 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return nanResult
	}
	return cmp3(a < b, a == b)
}

func floatToInt(v float32) int32    { return doubleToInt(float64(v)) }
func floatToLong(v float32) int64   { return doubleToLong(float64(v)) }

// doubleToInt implements the d2i/f2i saturating conversion (JVMS
// §6.5.d2i): NaN becomes 0, values outside int32 range saturate to
// math.MaxInt32/MinInt32 instead of wrapping.
func doubleToInt(v float64) int32 {
	if math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt32 {
		return math.MaxInt32
	}
	if v <= math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}

func doubleToLong(v float64) int64 {
	if math.IsNaN(v) {
		return 0
	}
	if v >= math.MaxInt64 {
		return math.MaxInt64
	}
	if v <= math.MinInt64 {
		return math.MinInt64
	}
	return int64(v)
}

func init() {
	for _, op := range []uint8{
		opNop, opAconstNull,
		opIconstM1, opIconst0, opIconst1, opIconst2, opIconst3, opIconst4, opIconst5,
		opLconst0, opLconst1, opFconst0, opFconst1, opFconst2, opDconst0, opDconst1,
		opIadd, opIsub, opImul, opIdiv, opIrem, opIneg,
		opLadd, opLsub, opLmul, opLdiv, opLrem, opLneg,
		opFadd, opFsub, opFmul, opFdiv, opFrem, opFneg,
		opDadd, opDsub, opDmul, opDdiv, opDrem, opDneg,
		opIshl, opIshr, opIushr, opLshl, opLshr, opLushr,
		opIand, opIor, opIxor, opLand, opLor, opLxor,
		opI2l, opI2f, opI2d, opL2i, opL2f, opL2d, opF2i, opF2l, opF2d,
		opD2i, opD2l, opD2f, opI2b, opI2c, opI2s,
		opLcmp, opFcmpl, opFcmpg, opDcmpl, opDcmpg,
		opPop, opPop2, opDup, opDupX1, opDupX2, opDup2, opDup2X1, opDup2X2, opSwap,
		opIreturn, opLreturn, opFreturn, opDreturn, opAreturn, opReturn,
	} {
		op := op
		register(op, func() Instruction { return noOperand{opcode: op} })
	}
}
