/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classloader is the class-file decoder (spec.md §4.C): it
// parses one class file into a typed constant pool, access flags,
// this/super names, interfaces, fields, methods, and attributes.
package classloader

import (
	"math"

	"github.com/pkg/errors"

	"jacobin/excNames"
	"jacobin/reader"
	"jacobin/types"
)

// CPEntry is one tagged constant-pool entry (spec.md §3).
type CPEntry interface {
	Tag() uint8
}

type Utf8Entry struct{ Value string }
type IntegerEntry struct{ Value int32 }
type FloatEntry struct{ Value float32 }
type LongEntry struct{ Value int64 }
type DoubleEntry struct{ Value float64 }
type ClassEntry struct{ NameIndex uint16 }
type StringEntry struct{ Utf8Index uint16 }
type FieldRefEntry struct{ ClassIndex, NameAndTypeIndex uint16 }
type MethodRefEntry struct{ ClassIndex, NameAndTypeIndex uint16 }
type InterfaceMethodRefEntry struct{ ClassIndex, NameAndTypeIndex uint16 }
type NameAndTypeEntry struct{ NameIndex, DescIndex uint16 }
type MethodHandleEntry struct {
	RefKind  uint8
	RefIndex uint16
}
type MethodTypeEntry struct{ DescIndex uint16 }
type DynamicEntry struct{ BsmIndex, NameAndTypeIndex uint16 }
type InvokeDynamicEntry struct{ BsmIndex, NameAndTypeIndex uint16 }
type ModuleEntry struct{ NameIndex uint16 }
type PackageEntry struct{ NameIndex uint16 }

func (Utf8Entry) Tag() uint8               { return types.Utf8 }
func (IntegerEntry) Tag() uint8            { return types.Integer }
func (FloatEntry) Tag() uint8              { return types.Float }
func (LongEntry) Tag() uint8               { return types.Long }
func (DoubleEntry) Tag() uint8             { return types.Double }
func (ClassEntry) Tag() uint8              { return types.Class }
func (StringEntry) Tag() uint8             { return types.StringConst }
func (FieldRefEntry) Tag() uint8           { return types.FieldRef }
func (MethodRefEntry) Tag() uint8          { return types.MethodRef }
func (InterfaceMethodRefEntry) Tag() uint8 { return types.InterfaceMethodRef }
func (NameAndTypeEntry) Tag() uint8        { return types.NameAndType }
func (MethodHandleEntry) Tag() uint8       { return types.MethodHandle }
func (MethodTypeEntry) Tag() uint8         { return types.MethodType }
func (DynamicEntry) Tag() uint8            { return types.Dynamic }
func (InvokeDynamicEntry) Tag() uint8      { return types.InvokeDynamic }
func (ModuleEntry) Tag() uint8             { return types.Module }
func (PackageEntry) Tag() uint8            { return types.Package }

// ConstantPool is the ordered, 1-indexed container of tagged constants
// (spec.md §3). Entries[0] is always nil.
type ConstantPool struct {
	Entries []CPEntry
}

// parseConstantPool reads count-1 entries starting at index 1. A Long
// or Double entry conceptually occupies its own index plus the
// following unusable one (JVMS §4.4.5), so the loop index advances by
// 2 after those tags — the two-slot rule spec.md §9 calls out as the
// corrected behavior, grounded on daimatz-gojvm's constant_pool.go.
func parseConstantPool(r *reader.Reader, count uint16) (*ConstantPool, error) {
	cp := &ConstantPool{Entries: make([]CPEntry, count)}
	for i := uint16(1); i < count; i++ {
		entry, wide, err := parseOneConstant(r)
		if err != nil {
			return nil, errors.Wrapf(err, "constant pool entry %d", i)
		}
		cp.Entries[i] = entry
		if wide {
			i++
		}
	}
	return cp, nil
}

func parseOneConstant(r *reader.Reader) (entry CPEntry, wide bool, err error) {
	tag := r.ReadU8()
	switch tag {
	case types.Utf8:
		n := int(r.ReadU16())
		return Utf8Entry{Value: string(r.ReadBytes(n))}, false, nil
	case types.Integer:
		return IntegerEntry{Value: r.ReadI32()}, false, nil
	case types.Float:
		return FloatEntry{Value: math.Float32frombits(r.ReadU32())}, false, nil
	case types.Long:
		hi := r.ReadU32()
		lo := r.ReadU32()
		return LongEntry{Value: int64(uint64(hi)<<32 | uint64(lo))}, true, nil
	case types.Double:
		hi := r.ReadU32()
		lo := r.ReadU32()
		return DoubleEntry{Value: math.Float64frombits(uint64(hi)<<32 | uint64(lo))}, true, nil
	case types.Class:
		return ClassEntry{NameIndex: r.ReadU16()}, false, nil
	case types.StringConst:
		return StringEntry{Utf8Index: r.ReadU16()}, false, nil
	case types.FieldRef:
		return FieldRefEntry{ClassIndex: r.ReadU16(), NameAndTypeIndex: r.ReadU16()}, false, nil
	case types.MethodRef:
		return MethodRefEntry{ClassIndex: r.ReadU16(), NameAndTypeIndex: r.ReadU16()}, false, nil
	case types.InterfaceMethodRef:
		return InterfaceMethodRefEntry{ClassIndex: r.ReadU16(), NameAndTypeIndex: r.ReadU16()}, false, nil
	case types.NameAndType:
		return NameAndTypeEntry{NameIndex: r.ReadU16(), DescIndex: r.ReadU16()}, false, nil
	case types.MethodHandle:
		return MethodHandleEntry{RefKind: r.ReadU8(), RefIndex: r.ReadU16()}, false, nil
	case types.MethodType:
		return MethodTypeEntry{DescIndex: r.ReadU16()}, false, nil
	case types.Dynamic:
		return DynamicEntry{BsmIndex: r.ReadU16(), NameAndTypeIndex: r.ReadU16()}, false, nil
	case types.InvokeDynamic:
		return InvokeDynamicEntry{BsmIndex: r.ReadU16(), NameAndTypeIndex: r.ReadU16()}, false, nil
	case types.Module:
		return ModuleEntry{NameIndex: r.ReadU16()}, false, nil
	case types.Package:
		return PackageEntry{NameIndex: r.ReadU16()}, false, nil
	default:
		return nil, false, errors.Errorf("%s: tag %d", excNames.UnsupportedConstantTag, tag)
	}
}

func (cp *ConstantPool) valid(index uint16) bool {
	return int(index) >= 1 && int(index) < len(cp.Entries) && cp.Entries[index] != nil
}

// Utf8 resolves index to its string. Resolving a non-Utf8 index (or an
// out-of-range one) returns the empty string, per spec.md §3.
func (cp *ConstantPool) Utf8(index uint16) string {
	if !cp.valid(index) {
		return ""
	}
	if u, ok := cp.Entries[index].(Utf8Entry); ok {
		return u.Value
	}
	return ""
}

// ClassName resolves a CONSTANT_Class entry to its name string.
func (cp *ConstantPool) ClassName(index uint16) string {
	if !cp.valid(index) {
		return ""
	}
	if c, ok := cp.Entries[index].(ClassEntry); ok {
		return cp.Utf8(c.NameIndex)
	}
	return ""
}

// NameAndType resolves a CONSTANT_NameAndType entry to (name, descriptor).
func (cp *ConstantPool) NameAndType(index uint16) (string, string) {
	if !cp.valid(index) {
		return "", ""
	}
	if nt, ok := cp.Entries[index].(NameAndTypeEntry); ok {
		return cp.Utf8(nt.NameIndex), cp.Utf8(nt.DescIndex)
	}
	return "", ""
}

// Integer, Float, Long, Double resolve numeric constants for ldc/ldc2_w.
func (cp *ConstantPool) Integer(index uint16) (int32, bool) {
	if e, ok := cp.entry(index).(IntegerEntry); ok {
		return e.Value, true
	}
	return 0, false
}

func (cp *ConstantPool) Float(index uint16) (float32, bool) {
	if e, ok := cp.entry(index).(FloatEntry); ok {
		return e.Value, true
	}
	return 0, false
}

func (cp *ConstantPool) Long(index uint16) (int64, bool) {
	if e, ok := cp.entry(index).(LongEntry); ok {
		return e.Value, true
	}
	return 0, false
}

func (cp *ConstantPool) Double(index uint16) (float64, bool) {
	if e, ok := cp.entry(index).(DoubleEntry); ok {
		return e.Value, true
	}
	return 0, false
}

// StringValue resolves a CONSTANT_String entry to its backing Utf8 text.
func (cp *ConstantPool) StringValue(index uint16) (string, bool) {
	if e, ok := cp.entry(index).(StringEntry); ok {
		return cp.Utf8(e.Utf8Index), true
	}
	return "", false
}

func (cp *ConstantPool) entry(index uint16) CPEntry {
	if !cp.valid(index) {
		return nil
	}
	return cp.Entries[index]
}
