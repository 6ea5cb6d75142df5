/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package thread completes the runtime data area spec.md §3/§4.D
// describes: the bounded LIFO frame stack and the per-thread program
// counter. Kept separate from package frames so that a Frame's
// back-reference to its owning thread (frames.Owner) never forces
// frames to import thread — the cyclic-reference shape spec.md §9
// warns about, resolved the idiomatic-Go way instead of with shared
// ownership.
package thread

import (
	"fmt"

	"jacobin/excNames"
	"jacobin/frames"
	"jacobin/types"
)

// node links one frame below the next, letting a Stack preserve the
// caller's frame without re-owning its locals — the chained-list
// representation spec.md §4.D requires.
type node struct {
	frame *frames.Frame
	lower *node
}

// Stack is a bounded LIFO of frames belonging to one thread.
type Stack struct {
	top      *node
	size     int
	capacity int
}

// NewStack builds an empty stack with the given capacity. A capacity of
// 0 defaults to types.DefaultMaxFrameStackSize (spec.md §3: "capacity
// 1024 (configurable)").
func NewStack(capacity int) *Stack {
	if capacity <= 0 {
		capacity = types.DefaultMaxFrameStackSize
	}
	return &Stack{capacity: capacity}
}

// Push makes f the new top, linking the existing top below it, and
// increments size; overflow
// fails with a stack-overflow condition (spec.md §4.D, §7).
func (s *Stack) Push(f *frames.Frame) error {
	if s.size >= s.capacity {
		return fmt.Errorf("%s: frame stack capacity %d exceeded", excNames.StackOverflow, s.capacity)
	}
	s.top = &node{frame: f, lower: s.top}
	s.size++
	return nil
}

// Pop returns the top frame, unlinks it, and decrements size.
func (s *Stack) Pop() (*frames.Frame, error) {
	if s.top == nil {
		return nil, fmt.Errorf("%s: frame stack is empty", excNames.StackUnderflow)
	}
	f := s.top.frame
	s.top = s.top.lower
	s.size--
	return f, nil
}

// Top returns the current top frame without popping it, or nil if empty.
func (s *Stack) Top() *frames.Frame {
	if s.top == nil {
		return nil
	}
	return s.top.frame
}

// Size reports how many frames are currently on the stack.
func (s *Stack) Size() int { return s.size }

// Thread owns one frame stack and tracks the pc of the next instruction
// to decode within its current frame (spec.md §3).
type Thread struct {
	PC         int
	stack      *Stack
	linkerImpl frames.Linker
}

// New builds a thread with the given frame-stack capacity and
// collaborator linker (spec.md §6). A nil linker is valid: placeholder
// opcodes then fail with a descriptive "no linker configured" error
// instead of silently no-op'ing.
func New(frameStackCapacity int, linker frames.Linker) *Thread {
	return &Thread{stack: NewStack(frameStackCapacity), linkerImpl: linker}
}

// Linker implements frames.Owner.
func (t *Thread) Linker() frames.Linker { return t.linkerImpl }

func (t *Thread) PushFrame(f *frames.Frame) error { return t.stack.Push(f) }
func (t *Thread) PopFrame() (*frames.Frame, error) { return t.stack.Pop() }
func (t *Thread) CurrentFrame() *frames.Frame      { return t.stack.Top() }
func (t *Thread) SetPC(pc int)                     { t.PC = pc }
func (t *Thread) FrameStackSize() int              { return t.stack.Size() }
