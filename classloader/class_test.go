/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classloader

import (
	"encoding/binary"
	"testing"
)

func u16(v uint16) []byte { b := make([]byte, 2); binary.BigEndian.PutUint16(b, v); return b }
func u32(v uint32) []byte { b := make([]byte, 4); binary.BigEndian.PutUint32(b, v); return b }

func utf8Entry(s string) []byte {
	out := []byte{1}
	out = append(out, u16(uint16(len(s)))...)
	return append(out, s...)
}

func classEntry(nameIdx uint16) []byte {
	return append([]byte{7}, u16(nameIdx)...)
}

// buildMinimalClass assembles a tiny but complete class file: one class
// named via the constant pool, one static void main()V method with a
// two-byte Code body (nop; return), no fields, no superclass/interfaces.
func buildMinimalClass() []byte {
	var cp []byte
	cp = append(cp, utf8Entry("Foo")...)   // idx 1
	cp = append(cp, classEntry(1)...)      // idx 2 -> Foo
	cp = append(cp, utf8Entry("main")...)  // idx 3
	cp = append(cp, utf8Entry("()V")...)   // idx 4
	cp = append(cp, utf8Entry("Code")...)  // idx 5

	code := []byte{0x00, 0xb1} // nop, return
	var codeAttrBody []byte
	codeAttrBody = append(codeAttrBody, u16(2)...) // max_stack
	codeAttrBody = append(codeAttrBody, u16(1)...) // max_locals
	codeAttrBody = append(codeAttrBody, u32(uint32(len(code)))...)
	codeAttrBody = append(codeAttrBody, code...)
	codeAttrBody = append(codeAttrBody, u16(0)...) // exception_table_count
	codeAttrBody = append(codeAttrBody, u16(0)...) // inner attributes_count

	var codeAttr []byte
	codeAttr = append(codeAttr, u16(5)...) // name_index -> "Code"
	codeAttr = append(codeAttr, u32(uint32(len(codeAttrBody)))...)
	codeAttr = append(codeAttr, codeAttrBody...)

	var method []byte
	method = append(method, u16(0x0009)...) // ACC_PUBLIC | ACC_STATIC
	method = append(method, u16(3)...)      // name_index -> "main"
	method = append(method, u16(4)...)      // descriptor_index -> "()V"
	method = append(method, u16(1)...)      // attributes_count
	method = append(method, codeAttr...)

	var out []byte
	out = append(out, 0xCA, 0xFE, 0xBA, 0xBE) // magic
	out = append(out, u16(0)...)              // minor
	out = append(out, u16(61)...)             // major
	out = append(out, u16(6)...)              // constant_pool_count (5 entries + reserved)
	out = append(out, cp...)
	out = append(out, u16(0x0021)...) // access_flags: ACC_PUBLIC|ACC_SUPER
	out = append(out, u16(2)...)      // this_class -> Foo
	out = append(out, u16(0)...)      // super_class (none)
	out = append(out, u16(0)...)      // interfaces_count
	out = append(out, u16(0)...)      // fields_count
	out = append(out, u16(1)...)      // methods_count
	out = append(out, method...)
	out = append(out, u16(0)...) // class attributes_count
	return out
}

func TestParseClassDecodesMinimalClass(t *testing.T) {
	class, err := ParseClass(buildMinimalClass())
	if err != nil {
		t.Fatalf("ParseClass: %v", err)
	}
	if class.ThisName != "Foo" {
		t.Errorf("ThisName = %q, want Foo", class.ThisName)
	}
	if class.SuperName != "" {
		t.Errorf("SuperName = %q, want empty (no superclass index)", class.SuperName)
	}
	if len(class.Methods) != 1 {
		t.Fatalf("len(Methods) = %d, want 1", len(class.Methods))
	}

	m, ok := class.Method("main", "()V")
	if !ok {
		t.Fatal("Method(\"main\", \"()V\") not found")
	}
	if !m.IsStatic() {
		t.Error("main method should be static")
	}

	code, ok := m.CodeAttribute()
	if !ok {
		t.Fatal("main method should have a Code attribute")
	}
	if code.MaxStack != 2 || code.MaxLocals != 1 {
		t.Errorf("MaxStack/MaxLocals = %d/%d, want 2/1", code.MaxStack, code.MaxLocals)
	}
	if len(code.Code) != 2 || code.Code[0] != 0x00 || code.Code[1] != 0xb1 {
		t.Errorf("Code = %v, want [0x00 0xb1]", code.Code)
	}
}

func TestParseClassRejectsBadMagic(t *testing.T) {
	data := buildMinimalClass()
	data[0] = 0x00 // corrupt the magic number
	_, err := ParseClass(data)
	if err == nil {
		t.Fatal("expected ParseClass to reject a bad magic number")
	}
}

func TestParseClassRejectsTruncatedHeader(t *testing.T) {
	_, err := ParseClass([]byte{0xCA, 0xFE})
	if err == nil {
		t.Fatal("expected ParseClass to reject a truncated header")
	}
}
