package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWritesCSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "grades.csv")
	var stdout bytes.Buffer

	err := run(context.Background(), []string{
		"--storage-backend=memory",
		"--roster-class-size=3",
		"--class", "ITS-011a",
		"--output", out,
	}, &stdout)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\r\n"), "\r\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "Student Name,Student ID,"))
	assert.Equal(t, `"ITS-011a - Intro to IT Systems"`, lines[1])
	assert.Contains(t, stdout.String(), "wrote "+out)
}

func TestRunWritesPDF(t *testing.T) {
	out := filepath.Join(t.TempDir(), "grades.pdf")
	err := run(context.Background(), []string{"--storage-backend=memory", "--format=pdf", "-o", out}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRunRejectsBadInput(t *testing.T) {
	dir := t.TempDir()
	err := run(context.Background(), []string{"--storage-backend=memory", "--format=xlsx", "-o", filepath.Join(dir, "x")}, &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown format")

	err = run(context.Background(), []string{"--storage-backend=memory", "--class", "NOPE", "-o", filepath.Join(dir, "x")}, &bytes.Buffer{})
	assert.Error(t, err)

	err = run(context.Background(), []string{"--no-such-flag"}, &bytes.Buffer{})
	assert.Error(t, err)
}
