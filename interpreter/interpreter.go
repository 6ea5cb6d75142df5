/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package interpreter is the bytecode dispatch loop (spec.md §4.F): it
// turns a decoded method's Code attribute into a running Frame, pushes
// it onto a Thread, and repeatedly fetches, decodes, and executes one
// instruction at a time until the method returns or a fatal condition
// is hit.
package interpreter

import (
	"fmt"

	"jacobin/classloader"
	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/instructions"
	"jacobin/log"
	"jacobin/reader"
	"jacobin/thread"
)

// Result is what RunMethod reports back to its caller: the method's
// return value (nil for a void return) and whether the return opcode
// carried a value (false for a void return).
type Result struct {
	ReturnValue interface{}
	HasValue    bool
}

// RunMethod builds a frame for method, pushes it onto th, and runs the
// fetch-decode-execute loop until the method returns or a fatal
// condition aborts it (spec.md §4.F steps 1-3).
func RunMethod(th *thread.Thread, class *classloader.Class, method *classloader.Member, args []interface{}) (Result, error) {
	code, ok := method.CodeAttribute()
	if !ok {
		return Result{}, fmt.Errorf("%s: method %s%s has no Code attribute", excNames.MalformedClassFile, method.Name, method.Descriptor)
	}

	f := frames.NewFrame(code.MaxLocals, code.MaxStack, code.Code, class.CP, th)
	for i, a := range args {
		f.Locals.SetRef(i, a)
	}

	if err := th.PushFrame(f); err != nil {
		return Result{}, err
	}
	defer th.PopFrame()

	return runLoop(th, f)
}

// runLoop is the instruction dispatch loop proper. Each iteration:
//  1. captures the opcode's own address (opcodePC) — the base every
//     branch instruction computes its target from, per spec.md §9;
//  2. resets the shared bytecode reader over the frame's Code at that
//     address and reads one opcode byte;
//  3. looks up the matching Instruction, fatally failing on an
//     unrecognized opcode;
//  4. lets the instruction fetch its own operands, sets frame.NextPC to
//     the reader's position right after (the default fall-through,
//     which a branch's Execute may then overwrite);
//  5. executes the instruction and checks for halt/error.
func runLoop(th *thread.Thread, f *frames.Frame) (Result, error) {
	r := reader.New(f.Code)

	for {
		opcodePC := f.NextPC
		r.Reset(f.Code, opcodePC)
		th.SetPC(opcodePC)

		opcode := r.ReadU8()
		inst, ok := instructions.Decode(opcode)
		if !ok {
			return Result{}, fmt.Errorf("%s: opcode 0x%02x at pc %d", excNames.UnsupportedOpcode, opcode, opcodePC)
		}

		inst.FetchOperands(r, opcodePC)
		f.NextPC = r.Position()

		log.Trace(fmt.Sprintf("pc=%d opcode=0x%02x", opcodePC, opcode))

		halt, err := inst.Execute(f)
		if err != nil {
			return Result{}, err
		}
		if halt {
			return returnResult(opcode, f), nil
		}
	}
}

// returnResult reads the method's return value (if the return opcode
// carries one) off the still-intact operand stack — per spec.md §8
// scenario 1, return instructions never pop the stack themselves.
func returnResult(opcode uint8, f *frames.Frame) Result {
	switch opcode {
	case 0xac: // ireturn
		return Result{ReturnValue: f.Stack.PeekInt(), HasValue: true}
	case 0xae: // freturn
		return Result{ReturnValue: f.Stack.PeekFloat(), HasValue: true}
	case 0xad: // lreturn
		return Result{ReturnValue: f.Stack.PeekLong(), HasValue: true}
	case 0xaf: // dreturn
		return Result{ReturnValue: f.Stack.PeekDouble(), HasValue: true}
	case 0xb0: // areturn
		return Result{ReturnValue: f.Stack.PeekRef(), HasValue: true}
	default: // return
		return Result{}
	}
}
