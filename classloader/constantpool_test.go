/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"strings"
	"testing"

	"jacobin/reader"
)

// buildCPBytes assembles the on-disk bytes for a constant pool whose
// count is cpCount (i.e. cpCount-1 real entries) and whose body is
// exactly entryBytes.
func buildCPBytes(cpCount uint16, entryBytes []byte) []byte {
	out := []byte{byte(cpCount >> 8), byte(cpCount)}
	return append(out, entryBytes...)
}

func TestLongEntryAdvancesIndexByTwo(t *testing.T) {
	// pool with 3 slots (count=4): [1]=Long(8 bytes value), slot 2 unusable, [3]=Utf8("x")
	entries := []byte{}
	entries = append(entries, 5) // tag Long
	entries = append(entries, 0, 0, 0, 1, 0, 0, 0, 2) // value = 0x100000002
	entries = append(entries, 1, 0, 1, 'x')           // tag Utf8, len=1, "x"

	data := buildCPBytes(4, entries)
	r := reader.New(data)
	cpCount := r.ReadU16()
	cp, err := parseConstantPool(r, cpCount)
	if err != nil {
		t.Fatalf("parseConstantPool: %v", err)
	}

	if _, ok := cp.Entries[1].(LongEntry); !ok {
		t.Fatalf("Entries[1] = %T, want LongEntry", cp.Entries[1])
	}
	if cp.Entries[2] != nil {
		t.Fatalf("Entries[2] should be the unusable slot after a Long, got %v", cp.Entries[2])
	}
	if cp.Utf8(3) != "x" {
		t.Fatalf("Utf8(3) = %q, want \"x\" (Long must have consumed two index slots)", cp.Utf8(3))
	}
}

func TestUnknownTagIsHardFailure(t *testing.T) {
	data := buildCPBytes(2, []byte{0xFF})
	r := reader.New(data)
	cpCount := r.ReadU16()
	_, err := parseConstantPool(r, cpCount)
	if err == nil {
		t.Fatal("expected an error for an unrecognized constant-pool tag")
	}
	if !strings.Contains(err.Error(), "unsupported constant tag") {
		t.Errorf("error = %v, want it to mention an unsupported constant tag", err)
	}
}

func TestUtf8ResolvesClassAndNameAndType(t *testing.T) {
	cp := &ConstantPool{Entries: make([]CPEntry, 4)}
	cp.Entries[1] = Utf8Entry{Value: "java/lang/Object"}
	cp.Entries[2] = ClassEntry{NameIndex: 1}
	cp.Entries[3] = NameAndTypeEntry{NameIndex: 1, DescIndex: 1}

	if got := cp.ClassName(2); got != "java/lang/Object" {
		t.Errorf("ClassName(2) = %q, want java/lang/Object", got)
	}
	name, desc := cp.NameAndType(3)
	if name != "java/lang/Object" || desc != "java/lang/Object" {
		t.Errorf("NameAndType(3) = (%q, %q)", name, desc)
	}
}

func TestUtf8OnInvalidIndexIsEmpty(t *testing.T) {
	cp := &ConstantPool{Entries: make([]CPEntry, 2)}
	if got := cp.Utf8(99); got != "" {
		t.Errorf("Utf8(99) = %q, want empty string", got)
	}
}
