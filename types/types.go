/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package types holds the small value types and constant-pool tag
// numbers shared across the class-file decoder, the runtime data area,
// and the instruction set. Nothing here owns behavior; it's the common
// vocabulary the other packages import to avoid cyclic references.
package types

// DefaultMaxFrameStackSize is the default bound on a thread's frame
// stack, per spec.md §3 ("capacity 1024 (configurable)").
const DefaultMaxFrameStackSize = 1024

// Constant-pool tag values, JVMS §4.4.
const (
	Utf8               = 1
	Integer            = 3
	Float              = 4
	Long               = 5
	Double             = 6
	Class              = 7
	StringConst        = 8
	FieldRef           = 9
	MethodRef          = 10
	InterfaceMethodRef = 11
	NameAndType        = 12
	MethodHandle       = 15
	MethodType         = 16
	Dynamic            = 17
	InvokeDynamic      = 18
	Module             = 19
	Package            = 20
)

// Access and class-file flag bits used by the decoder and member
// representation (JVMS §4.1, §4.5, §4.6).
const (
	AccPublic     = 0x0001
	AccPrivate    = 0x0002
	AccProtected  = 0x0004
	AccStatic     = 0x0008
	AccFinal      = 0x0010
	AccSuper      = 0x0020
	AccSynchron   = 0x0020
	AccBridge     = 0x0040
	AccVarargs    = 0x0080
	AccNative     = 0x0100
	AccInterface  = 0x0200
	AccAbstract   = 0x0400
	AccStrict     = 0x0800
	AccSynthetic  = 0x1000
	AccAnnotation = 0x2000
	AccEnum       = 0x4000
	AccModule     = 0x8000
)

// ClassMagic is the required 4-byte header of every class file, JVMS §4.1.
const ClassMagic = 0xCAFEBABE
