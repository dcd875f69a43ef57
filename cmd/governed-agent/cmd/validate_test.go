package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withExitCapture(t *testing.T) **int {
	t.Helper()
	var captured *int
	original := exitWith
	exitWith = func(code int) {
		c := code
		captured = &c
	}
	t.Cleanup(func() { exitWith = original })
	return &captured
}

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunValidate_AllValidNoConflictsExitsZero(t *testing.T) {
	capturedPtr := withExitCapture(t)
	path := writeJSON(t, `[{"id":"a","condition":"score > 50","action":"APPROVED","priority":1}]`)

	err := runValidate(validateCmd, []string{path})
	require.NoError(t, err)
	assert.Nil(t, *capturedPtr)
}

func TestRunValidate_InvalidConditionExitsOne(t *testing.T) {
	path := writeJSON(t, `[{"id":"a","condition":"score >","action":"APPROVED","priority":1}]`)

	var captured *int
	original := exitWith
	exitWith = func(code int) { c := code; captured = &c }
	t.Cleanup(func() { exitWith = original })

	err := runValidate(validateCmd, []string{path})
	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, 1, *captured)
}

func TestRunValidate_MalformedFileExitsTwo(t *testing.T) {
	path := writeJSON(t, `not json`)

	var captured *int
	original := exitWith
	exitWith = func(code int) { c := code; captured = &c }
	t.Cleanup(func() { exitWith = original })

	err := runValidate(validateCmd, []string{path})
	require.Error(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, 2, *captured)
}

func TestRunDecide_AppendsToJournalAndSucceeds(t *testing.T) {
	rulesPath := writeJSON(t, `[{"id":"a","condition":"score > 50","action":"APPROVED","reason":"ok","priority":1}]`)
	factsPath := writeJSON(t, `{"score": 90}`)
	journalPath := filepath.Join(t.TempDir(), "journal.jsonl")
	t.Setenv("AUDIT_PATH", journalPath)

	err := runDecide(decideCmd, []string{rulesPath, factsPath})
	require.NoError(t, err)

	_, statErr := os.Stat(journalPath)
	assert.NoError(t, statErr)
}
