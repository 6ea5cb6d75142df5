/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

// Package classpath is the classpath provider (spec.md §4.B): given a
// class name in "/"-separated form, it returns that class's raw bytes
// from a directory, a zip/jar archive, a ";"-separated composite list,
// or a wildcard directory of jars, and assembles the bootstrap/
// extension/user search order the JVM uses to resolve a class.
package classpath

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"jacobin/excNames"
	"jacobin/log"
)

// Entry is one classpath search primitive.
type Entry interface {
	ReadClass(className string) ([]byte, error)
}

// NewEntry inspects path and builds the right concrete Entry, per
// spec.md §4.B/§6: a ";"-list becomes Composite, a trailing "*" becomes
// a Composite of the directory's jars (newWildcard), a .jar/.JAR/.zip/
// .ZIP suffix becomes Archive, anything else is a Directory.
func NewEntry(path string) Entry {
	switch {
	case strings.Contains(path, ";"):
		return newComposite(path)
	case strings.HasSuffix(path, "*"):
		return newWildcard(path)
	case hasArchiveSuffix(path):
		return &Archive{path: path}
	default:
		return &Directory{root: path}
	}
}

func hasArchiveSuffix(path string) bool {
	for _, suf := range []string{".jar", ".JAR", ".zip", ".ZIP"} {
		if strings.HasSuffix(path, suf) {
			return true
		}
	}
	return false
}

// Directory reads "<root>/<className>.class".
type Directory struct {
	root string
}

func (d *Directory) ReadClass(className string) ([]byte, error) {
	path := filepath.Join(d.root, className+".class")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: %s", excNames.ClasspathMiss, path)
	}
	return data, nil
}

// Archive reads a named entry from a zip/jar file, opening, reading,
// and closing it within the call — spec.md §4.B/§9 require the handle
// not outlive a single ReadClass.
type Archive struct {
	path string
}

func (a *Archive) ReadClass(className string) ([]byte, error) {
	zr, err := zip.OpenReader(a.path)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: opening archive %s", excNames.ClasspathMiss, a.path)
	}
	defer zr.Close()

	entryName := className + ".class"
	for _, f := range zr.File {
		if f.Name != entryName {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "%s: opening %s in %s", excNames.ClasspathMiss, entryName, a.path)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, errors.Wrapf(err, "%s: reading %s in %s", excNames.ClasspathMiss, entryName, a.path)
		}
		return data, nil
	}
	return nil, errors.Errorf("%s: %s not found in %s", excNames.ClasspathMiss, entryName, a.path)
}

// Composite tries a ";"-separated list of entries in order; first match
// wins.
type Composite struct {
	entries []Entry
}

func newComposite(path string) *Composite {
	c := &Composite{}
	for _, p := range strings.Split(path, ";") {
		if p == "" {
			continue
		}
		c.entries = append(c.entries, NewEntry(p))
	}
	return c
}

func (c *Composite) ReadClass(className string) ([]byte, error) {
	var firstErr error
	for _, e := range c.entries {
		data, err := e.ReadClass(className)
		if err == nil {
			return data, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = errors.Errorf("%s: %s (empty composite classpath)", excNames.ClasspathMiss, className)
	}
	return nil, firstErr
}

// newWildcard expands "<dir>/*" at construction time into an Archive entry
// for every .jar/.JAR file directly under dir (spec.md §4.B).
func newWildcard(path string) *Composite {
	dir := strings.TrimSuffix(path, "*")
	c := &Composite{}
	files, err := os.ReadDir(dir)
	if err != nil {
		log.Warning("classpath: wildcard directory " + dir + " unreadable: " + err.Error())
		return c
	}
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		name := f.Name()
		if strings.HasSuffix(name, ".jar") || strings.HasSuffix(name, ".JAR") {
			c.entries = append(c.entries, &Archive{path: filepath.Join(dir, name)})
		}
	}
	return c
}

// ClassPath assembles the three-layer search order spec.md §4.B
// defines: bootstrap (<jre>/lib/*), extension (<jre>/lib/ext/*), user.
type ClassPath struct {
	bootstrap Entry
	extension Entry
	user      Entry
}

// NewClassPath builds the layered provider. jreOption is a jre root
// (the CLI passes the one it resolved from --Xjre), which goes through
// the same option → ./jre → $JAVA_HOME fallback again; cpOption is the
// --classpath value, and an empty cpOption defaults to ".".
func NewClassPath(jreOption, cpOption string) *ClassPath {
	jreDir := resolveJreDir(jreOption)
	if cpOption == "" {
		cpOption = "."
	}
	return &ClassPath{
		bootstrap: NewEntry(filepath.Join(jreDir, "lib") + string(filepath.Separator) + "*"),
		extension: NewEntry(filepath.Join(jreDir, "lib", "ext") + string(filepath.Separator) + "*"),
		user:      NewEntry(cpOption),
	}
}

func resolveJreDir(jreOption string) string {
	if jreOption != "" {
		if _, err := os.Stat(jreOption); err == nil {
			return jreOption
		}
	}
	if _, err := os.Stat("./jre"); err == nil {
		return "./jre"
	}
	return os.Getenv("JAVA_HOME")
}

// ReadClass searches bootstrap, then extension, then user, returning
// the first hit (spec.md §4.B).
func (cp *ClassPath) ReadClass(className string) ([]byte, error) {
	for _, e := range []Entry{cp.bootstrap, cp.extension, cp.user} {
		data, err := e.ReadClass(className)
		if err == nil {
			return data, nil
		}
	}
	return nil, errors.Errorf("%s: %s", excNames.ClasspathMiss, className)
}
