/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"github.com/pkg/errors"

	"jacobin/excNames"
	"jacobin/reader"
	"jacobin/types"
)

// Member is the shared representation of a field or a method (spec.md
// §3): flags, name, descriptor, and attributes. A method's bytecode
// lives in its Code attribute, fetched via CodeAttribute().
type Member struct {
	Flags      uint16
	Name       string
	Descriptor string
	Attributes []Attribute
}

// CodeAttribute returns the member's Code attribute, if any.
func (m *Member) CodeAttribute() (CodeAttribute, bool) {
	for _, a := range m.Attributes {
		if c, ok := a.(CodeAttribute); ok {
			return c, true
		}
	}
	return CodeAttribute{}, false
}

// IsStatic reports whether the member's ACC_STATIC bit is set.
func (m *Member) IsStatic() bool { return m.Flags&types.AccStatic != 0 }

// Class is the typed, in-memory representation of one decoded class
// file (spec.md §3).
type Class struct {
	Major, Minor uint16
	AccessFlags  uint16
	ThisName     string
	SuperName    string
	Interfaces   []string
	Fields       []Member
	Methods      []Member
	Attributes   []Attribute
	CP           *ConstantPool
}

// Method looks up a method by name and descriptor, the form the
// interpreter's CLI entry point uses to find the class's main method.
func (c *Class) Method(name, descriptor string) (*Member, bool) {
	for i := range c.Methods {
		if c.Methods[i].Name == name && c.Methods[i].Descriptor == descriptor {
			return &c.Methods[i], true
		}
	}
	return nil, false
}

func cfe(msg string) error {
	return errors.Wrap(errors.New(msg), excNames.MalformedClassFile.String())
}

// ParseClass decodes one class file, per the field order spec.md §4.C
// and §6 specify: magic, minor, major, constant pool, access flags,
// this/super, interfaces, fields, methods, attributes.
func ParseClass(data []byte) (*Class, error) {
	r := reader.New(data)

	if r.Len() < 4 {
		return nil, cfe("truncated header")
	}
	magic := r.ReadU32()
	if magic != types.ClassMagic {
		return nil, cfe("bad magic number")
	}

	minor := r.ReadU16()
	major := r.ReadU16()

	cpCount := r.ReadU16()
	cp, err := parseConstantPool(r, cpCount)
	if err != nil {
		return nil, errors.Wrap(err, "parsing constant pool")
	}

	accessFlags := r.ReadU16()
	thisIdx := r.ReadU16()
	superIdx := r.ReadU16()

	ifaceCount := r.ReadU16()
	interfaces := make([]string, ifaceCount)
	for i := range interfaces {
		interfaces[i] = cp.ClassName(r.ReadU16())
	}

	fields, err := parseMembers(r, cp)
	if err != nil {
		return nil, errors.Wrap(err, "parsing fields")
	}
	methods, err := parseMembers(r, cp)
	if err != nil {
		return nil, errors.Wrap(err, "parsing methods")
	}
	attrs, err := parseAttributes(r, cp)
	if err != nil {
		return nil, errors.Wrap(err, "parsing class attributes")
	}

	return &Class{
		Major:       major,
		Minor:       minor,
		AccessFlags: accessFlags,
		ThisName:    cp.ClassName(thisIdx),
		SuperName:   cp.ClassName(superIdx),
		Interfaces:  interfaces,
		Fields:      fields,
		Methods:     methods,
		Attributes:  attrs,
		CP:          cp,
	}, nil
}

// parseMembers reads a u2 count followed by that many field_info or
// method_info structures, which share one on-disk shape (spec.md §4.C):
// {flags:u2, name:resolve(u2), descriptor:resolve(u2), attributes}.
func parseMembers(r *reader.Reader, cp *ConstantPool) ([]Member, error) {
	count := r.ReadU16()
	members := make([]Member, count)
	for i := range members {
		flags := r.ReadU16()
		nameIdx := r.ReadU16()
		descIdx := r.ReadU16()
		attrs, err := parseAttributes(r, cp)
		if err != nil {
			return nil, errors.Wrapf(err, "member %d", i)
		}
		members[i] = Member{
			Flags:      flags,
			Name:       cp.Utf8(nameIdx),
			Descriptor: cp.Utf8(descIdx),
			Attributes: attrs,
		}
	}
	return members, nil
}
