package util

import (
	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteIntToFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "brightness")

	// WHEN
	err := WriteIntToFile(128, path)

	// THEN
	require.NoError(t, err)
	value, err := ReadIntFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 128, value)
}

func TestWriteIntToFile_FollowsSymlink(t *testing.T) {
	// GIVEN
	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	link := filepath.Join(dir, "link")
	require.NoError(t, os.WriteFile(target, []byte("0"), 0644))
	require.NoError(t, os.Symlink(target, link))

	// WHEN
	err := WriteIntToFile(42, link)

	// THEN
	require.NoError(t, err)
	value, err := ReadIntFromFile(target)
	assert.NoError(t, err)
	assert.Equal(t, 42, value)
}

func TestWriteIntToFileAtomic(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	require.NoError(t, os.WriteFile(path, []byte("255"), 0644))

	// WHEN
	err := WriteIntToFileAtomic(7, path)

	// THEN
	require.NoError(t, err)
	value, err := ReadIntFromFile(path)
	assert.NoError(t, err)
	assert.Equal(t, 7, value)
}

func TestReadIntFromFile_Empty(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))

	// WHEN
	_, err := ReadIntFromFile(path)

	// THEN
	assert.Error(t, err)
}

func TestReadIntFromFile_TrimsWhitespace(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "value")
	require.NoError(t, os.WriteFile(path, []byte(" 12\n"), 0644))

	// WHEN
	value, err := ReadIntFromFile(path)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 12, value)
}

func TestExpandPath(t *testing.T) {
	// GIVEN
	home, err := homedir.Dir()
	require.NoError(t, err)

	// WHEN
	result, err := ExpandPath("~/leds/brightness")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "leds/brightness"), result)
}

func TestExpandPath_Absolute(t *testing.T) {
	// WHEN
	result, err := ExpandPath("/sys/class/leds/led0/brightness")

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "/sys/class/leds/led0/brightness", result)
}

func TestCheckFilePermissionsForExecution_OthersHaveWrite(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "script")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh"), 0o777))
	require.NoError(t, os.Chmod(path, 0o777))

	// WHEN
	result, err := CheckFilePermissionsForExecution(path)

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}

func TestCheckFilePermissionsForExecution_Missing(t *testing.T) {
	// WHEN
	result, err := CheckFilePermissionsForExecution(filepath.Join(t.TempDir(), "missing"))

	// THEN
	assert.False(t, result)
	assert.Error(t, err)
}
