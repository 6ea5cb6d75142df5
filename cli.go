/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"jacobin/classloader"
	"jacobin/classpath"
	"jacobin/globals"
	"jacobin/interpreter"
	"jacobin/log"
	"jacobin/thread"
)

// getEnvArgs concatenates the three JVM-launcher environment variables
// the real java command line honors, in the order it does (JAVA_TOOL_
// OPTIONS, then _JAVA_OPTIONS, then JDK_JAVA_OPTIONS), space-separated.
// Grounded on the teacher's getEnvArgs/cli_test.go behavior, rewritten
// against this module's globals/log packages.
func getEnvArgs() string {
	var parts []string
	for _, name := range []string{"JAVA_TOOL_OPTIONS", "_JAVA_OPTIONS", "JDK_JAVA_OPTIONS"} {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// classNameToInternal converts a dotted class name (java.lang.Object)
// to its internal slash-separated form (java/lang/Object), the form
// the classpath and constant pool both use.
func classNameToInternal(name string) string {
	return strings.ReplaceAll(name, ".", "/")
}

func newRootCmd() *cobra.Command {
	var classpathOpt string
	var jreOpt string

	cmd := &cobra.Command{
		Use:   "jvm <ClassName> [args...]",
		Short: "jacobin runs a single Java class's main method",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if envArgs := getEnvArgs(); envArgs != "" {
				log.Trace(fmt.Sprintf("honoring JVM environment options: %s", envArgs))
			}

			g := globals.InitGlobals(os.Args[0])
			g.StartingClass = args[0]
			g.AppArgs = args[1:]
			g.JavaHome = globals.ResolveJavaHome(jreOpt)
			if classpathOpt != "" {
				g.Classpath = classpathOpt
			}

			return run(g)
		},
	}

	cmd.Flags().StringVarP(&classpathOpt, "classpath", "c", "", "search path for user class files")
	cmd.Flags().StringVar(&jreOpt, "Xjre", "", "path to a JRE's class library, overriding JAVA_HOME")
	return cmd
}

func run(g *globals.Globals) error {
	cp := classpath.NewClassPath(g.JavaHome, g.Classpath)

	internalName := classNameToInternal(g.StartingClass)
	data, err := cp.ReadClass(internalName)
	if err != nil {
		return fmt.Errorf("could not find or load class %s: %w", g.StartingClass, err)
	}

	class, err := classloader.ParseClass(data)
	if err != nil {
		return fmt.Errorf("error parsing class %s: %w", g.StartingClass, err)
	}

	method, ok := class.Method("main", "([Ljava/lang/String;)V")
	if !ok {
		return fmt.Errorf("class %s has no main(String[]) method", g.StartingClass)
	}

	th := thread.New(g.MaxFrameStackSize, nil)
	args := make([]interface{}, len(g.AppArgs))
	for i, a := range g.AppArgs {
		args[i] = a
	}

	result, err := interpreter.RunMethod(th, class, method, args)
	if err != nil {
		return fmt.Errorf("error running %s.main: %w", g.StartingClass, err)
	}
	if result.HasValue {
		log.Trace(fmt.Sprintf("main returned a value unexpectedly: %v", result.ReturnValue))
	}
	return nil
}
