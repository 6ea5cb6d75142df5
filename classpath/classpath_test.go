/*
 * Jacobin VM - A Java virtual machine
 * Copyright (c) 2024 by the Jacobin authors. All rights reserved.
 * Licensed under Mozilla Public License 2.0 (MPL 2.0)
 */

package classpath

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryReadsClassFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Foo.class"), []byte{0xCA, 0xFE}, 0o644))

	d := &Directory{root: dir}
	data, err := d.ReadClass("Foo")
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCA, 0xFE}, data)
}

func TestDirectoryMissingClassFails(t *testing.T) {
	d := &Directory{root: t.TempDir()}
	_, err := d.ReadClass("Missing")
	assert.Error(t, err)
}

func TestArchiveReadsEntry(t *testing.T) {
	dir := t.TempDir()
	jarPath := filepath.Join(dir, "lib.jar")
	f, err := os.Create(jarPath)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("Bar.class")
	require.NoError(t, err)
	_, err = w.Write([]byte{1, 2, 3})
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	a := &Archive{path: jarPath}
	data, err := a.ReadClass("Bar")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestCompositeTriesEachEntryInOrder(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir2, "Baz.class"), []byte{9}, 0o644))

	c := newComposite(dir1 + ";" + dir2)
	data, err := c.ReadClass("Baz")
	require.NoError(t, err)
	assert.Equal(t, []byte{9}, data)
}

func TestNewEntryDispatchesBySuffix(t *testing.T) {
	assert.IsType(t, &Directory{}, NewEntry("/some/dir"))
	assert.IsType(t, &Archive{}, NewEntry("/some/lib.jar"))
	assert.IsType(t, &Composite{}, NewEntry("/a;/b"))
	assert.IsType(t, &Composite{}, NewEntry("/some/dir/*"))
}

func TestClassPathSearchesBootstrapExtensionUserInOrder(t *testing.T) {
	jre := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(jre, "lib"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(jre, "lib", "ext"), 0o755))
	user := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(user, "App.class"), []byte{0x42}, 0o644))

	cp := NewClassPath(jre, user)
	data, err := cp.ReadClass("App")
	require.NoError(t, err)
	assert.Equal(t, []byte{0x42}, data)
}

func TestClassPathMissReturnsClasspathMissError(t *testing.T) {
	cp := NewClassPath(t.TempDir(), t.TempDir())
	_, err := cp.ReadClass("DoesNotExist")
	assert.Error(t, err)
}
