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

// localSlot is the shared shape of every load/store instruction: a
// type tag (one of 'i','l','f','d','a'), a direction, and a local-var
// index. The _0.._3 fixed forms and the indexed forms differ only in
// how FetchOperands fills in index, so one struct covers all fifty of
// them (spec.md §4.E).
type localSlot struct {
	kind    byte
	store   bool
	index   int
	indexed bool // true: read a u8 index operand; false: index is fixed
}

func (ls localSlot) FetchOperands(r *reader.Reader, opcodePC int) {}

func (ls *localSlot) fetchIndexed(r *reader.Reader) {
	if ls.indexed {
		ls.index = int(r.ReadU8())
	}
}

func (ls localSlot) Execute(f *frames.Frame) (bool, error) {
	lv := f.Locals
	st := f.Stack
	switch ls.kind {
	case 'i':
		if ls.store {
			lv.SetInt(ls.index, st.PopInt())
		} else {
			st.PushInt(lv.GetInt(ls.index))
		}
	case 'l':
		if ls.store {
			lv.SetLong(ls.index, st.PopLong())
		} else {
			st.PushLong(lv.GetLong(ls.index))
		}
	case 'f':
		if ls.store {
			lv.SetFloat(ls.index, st.PopFloat())
		} else {
			st.PushFloat(lv.GetFloat(ls.index))
		}
	case 'd':
		if ls.store {
			lv.SetDouble(ls.index, st.PopDouble())
		} else {
			st.PushDouble(lv.GetDouble(ls.index))
		}
	case 'a':
		if ls.store {
			lv.SetRef(ls.index, st.PopRef())
		} else {
			st.PushRef(lv.GetRef(ls.index))
		}
	default:
		return true, fmt.Errorf("%s: unknown local-slot kind %q", excNames.UnsupportedOpcode, ls.kind)
	}
	return false, nil
}

// indexedLoadStore wraps localSlot for the xload/xstore forms that
// carry an explicit u8 index operand.
type indexedLoadStore struct{ localSlot }

func (ls *indexedLoadStore) FetchOperands(r *reader.Reader, opcodePC int) {
	ls.fetchIndexed(r)
}

func registerLoadStore(kind byte) {
	fixed := []struct {
		loadOp, storeOp uint8
		index           int
	}{
		{opIload0, opIstore0, 0}, {opIload1, opIstore1, 1},
		{opIload2, opIstore2, 2}, {opIload3, opIstore3, 3},
	}
	switch kind {
	case 'l':
		fixed = []struct {
			loadOp, storeOp uint8
			index           int
		}{
			{opLload0, opLstore0, 0}, {opLload1, opLstore1, 1},
			{opLload2, opLstore2, 2}, {opLload3, opLstore3, 3},
		}
	case 'f':
		fixed = []struct {
			loadOp, storeOp uint8
			index           int
		}{
			{opFload0, opFstore0, 0}, {opFload1, opFstore1, 1},
			{opFload2, opFstore2, 2}, {opFload3, opFstore3, 3},
		}
	case 'd':
		fixed = []struct {
			loadOp, storeOp uint8
			index           int
		}{
			{opDload0, opDstore0, 0}, {opDload1, opDstore1, 1},
			{opDload2, opDstore2, 2}, {opDload3, opDstore3, 3},
		}
	case 'a':
		fixed = []struct {
			loadOp, storeOp uint8
			index           int
		}{
			{opAload0, opAstore0, 0}, {opAload1, opAstore1, 1},
			{opAload2, opAstore2, 2}, {opAload3, opAstore3, 3},
		}
	}
	for _, e := range fixed {
		e := e
		register(e.loadOp, func() Instruction { return localSlot{kind: kind, index: e.index} })
		register(e.storeOp, func() Instruction { return localSlot{kind: kind, store: true, index: e.index} })
	}

	var loadOp, storeOp uint8
	switch kind {
	case 'i':
		loadOp, storeOp = opIload, opIstore
	case 'l':
		loadOp, storeOp = opLload, opLstore
	case 'f':
		loadOp, storeOp = opFload, opFstore
	case 'd':
		loadOp, storeOp = opDload, opDstore
	case 'a':
		loadOp, storeOp = opAload, opAstore
	}
	register(loadOp, func() Instruction {
		return &indexedLoadStore{localSlot{kind: kind, indexed: true}}
	})
	register(storeOp, func() Instruction {
		return &indexedLoadStore{localSlot{kind: kind, store: true, indexed: true}}
	})
}

func init() {
	registerLoadStore('i')
	registerLoadStore('l')
	registerLoadStore('f')
	registerLoadStore('d')
	registerLoadStore('a')
}
