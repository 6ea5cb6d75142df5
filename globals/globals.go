/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package globals holds the process-wide configuration the CLI layer
// populates once and reads back when it starts the VM, the same role
// the teacher's jacobin/globals singleton plays for classloader.go and
// jvm/instantiate.go. No other package of this module reads it.
package globals

import (
	"os"
	"sync"

	"jacobin/types"
)

// Globals is the VM-wide configuration and run state.
type Globals struct {
	JacobinName string

	// Classpath option as given on the command line, e.g. "." or
	// "lib;app.jar" or "classes/*".
	Classpath string

	// JavaHome is the resolved jre root used to build the bootstrap
	// and extension classpath layers, per spec.md §4.B.
	JavaHome string

	StartingClass string
	AppArgs       []string

	MaxFrameStackSize int

	TraceClass       bool
	TraceInstruction bool
}

var (
	mu      sync.Mutex
	current *Globals
)

// InitGlobals resets the singleton, mirroring the teacher's
// globals.InitGlobals("test") call used at the top of every test.
func InitGlobals(jacobinName string) *Globals {
	mu.Lock()
	defer mu.Unlock()
	current = &Globals{
		JacobinName:       jacobinName,
		Classpath:         ".",
		MaxFrameStackSize: types.DefaultMaxFrameStackSize,
	}
	return current
}

// GetGlobalRef returns the current singleton, creating a default one on
// first use so packages that only read configuration (tests included)
// never see a nil pointer.
func GetGlobalRef() *Globals {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = &Globals{
			JacobinName:       "jvm",
			Classpath:         ".",
			MaxFrameStackSize: types.DefaultMaxFrameStackSize,
		}
	}
	return current
}

// ResolveJavaHome applies the precedence spec.md §4.B/§6 mandates:
// explicit --Xjre option, then ./jre, then $JAVA_HOME.
func ResolveJavaHome(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
	}
	if _, err := os.Stat("./jre"); err == nil {
		return "./jre"
	}
	return os.Getenv("JAVA_HOME")
}
