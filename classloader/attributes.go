/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"github.com/pkg/errors"

	"jacobin/reader"
)

// Attribute is a tagged variant named by its standard attribute name
// (spec.md §3). Unrecognized attribute names are still represented, as
// UnknownAttribute, so that every byte of the class file is accounted
// for without the decoder needing to understand it.
type Attribute interface {
	AttrName() string
}

type ExceptionEntry struct {
	StartPC, EndPC, HandlerPC, CatchType uint16
}

type CodeAttribute struct {
	MaxStack       int
	MaxLocals      int
	Code           []byte
	ExceptionTable []ExceptionEntry
	Attributes     []Attribute
}

func (CodeAttribute) AttrName() string { return "Code" }

type ConstantValueAttribute struct{ Index uint16 }

func (ConstantValueAttribute) AttrName() string { return "ConstantValue" }

type ExceptionsAttribute struct{ ClassIndexes []uint16 }

func (ExceptionsAttribute) AttrName() string { return "Exceptions" }

type LineNumberEntry struct{ StartPC, LineNumber uint16 }

type LineNumberTableAttribute struct{ Entries []LineNumberEntry }

func (LineNumberTableAttribute) AttrName() string { return "LineNumberTable" }

type LocalVariableEntry struct {
	StartPC, Length, NameIndex, DescIndex, Index uint16
}

type LocalVariableTableAttribute struct{ Entries []LocalVariableEntry }

func (LocalVariableTableAttribute) AttrName() string { return "LocalVariableTable" }

type SourceFileAttribute struct{ Index uint16 }

func (SourceFileAttribute) AttrName() string { return "SourceFile" }

// UnknownAttribute carries the raw bytes of an attribute the decoder
// doesn't give typed treatment to, per spec.md §4.C: "Unrecognized
// attribute names are skipped by consuming exactly length bytes."
type UnknownAttribute struct {
	Name string
	Raw  []byte
}

func (u UnknownAttribute) AttrName() string { return u.Name }

// parseAttributes reads an attributes_count followed by that many
// attributes, dispatching each by its resolved Utf8 name.
func parseAttributes(r *reader.Reader, cp *ConstantPool) ([]Attribute, error) {
	count := r.ReadU16()
	attrs := make([]Attribute, 0, count)
	for i := uint16(0); i < count; i++ {
		a, err := parseOneAttribute(r, cp)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %d", i)
		}
		attrs = append(attrs, a)
	}
	return attrs, nil
}

func parseOneAttribute(r *reader.Reader, cp *ConstantPool) (Attribute, error) {
	nameIdx := r.ReadU16()
	length := int(r.ReadU32())
	name := cp.Utf8(nameIdx)

	switch name {
	case "Code":
		return parseCodeAttribute(r, cp)
	case "ConstantValue":
		return ConstantValueAttribute{Index: r.ReadU16()}, nil
	case "Exceptions":
		n := r.ReadU16()
		idxs := make([]uint16, n)
		for i := range idxs {
			idxs[i] = r.ReadU16()
		}
		return ExceptionsAttribute{ClassIndexes: idxs}, nil
	case "LineNumberTable":
		n := r.ReadU16()
		entries := make([]LineNumberEntry, n)
		for i := range entries {
			entries[i] = LineNumberEntry{StartPC: r.ReadU16(), LineNumber: r.ReadU16()}
		}
		return LineNumberTableAttribute{Entries: entries}, nil
	case "LocalVariableTable":
		n := r.ReadU16()
		entries := make([]LocalVariableEntry, n)
		for i := range entries {
			entries[i] = LocalVariableEntry{
				StartPC:   r.ReadU16(),
				Length:    r.ReadU16(),
				NameIndex: r.ReadU16(),
				DescIndex: r.ReadU16(),
				Index:     r.ReadU16(),
			}
		}
		return LocalVariableTableAttribute{Entries: entries}, nil
	case "SourceFile":
		return SourceFileAttribute{Index: r.ReadU16()}, nil
	default:
		return UnknownAttribute{Name: name, Raw: r.ReadBytes(length)}, nil
	}
}

func parseCodeAttribute(r *reader.Reader, cp *ConstantPool) (Attribute, error) {
	maxStack := int(r.ReadU16())
	maxLocals := int(r.ReadU16())
	codeLen := int(r.ReadU32())
	code := r.ReadBytes(codeLen)

	excCount := r.ReadU16()
	excTable := make([]ExceptionEntry, excCount)
	for i := range excTable {
		excTable[i] = ExceptionEntry{
			StartPC:   r.ReadU16(),
			EndPC:     r.ReadU16(),
			HandlerPC: r.ReadU16(),
			CatchType: r.ReadU16(),
		}
	}

	inner, err := parseAttributes(r, cp)
	if err != nil {
		return nil, errors.Wrap(err, "Code attribute's inner attributes")
	}

	return CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: excTable,
		Attributes:     inner,
	}, nil
}
