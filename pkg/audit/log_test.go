package audit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeready-toolchain/governed-agent/pkg/audit"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func approveDecision(id string) rules.Decision {
	return rules.Decision{
		Result:      rules.Approved,
		MatchedRule: &rules.Rule{ID: "R1", Name: "auto-approve", Condition: "true", Action: rules.Approved, Reason: "ok"},
		Reason:      "ok",
		Score:       85,
		AuditID:     id,
	}
}

func TestLog_AppendChainsThreeEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	l, err := audit.Open(path, audit.WithPreload())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	e1, err := l.Append(approveDecision("a1"), map[string]any{"n": 1.0})
	require.NoError(t, err)
	assert.Equal(t, audit.GenesisHash, e1.PreviousHash)
	assert.NotEmpty(t, e1.Hash)

	e2, err := l.Append(approveDecision("a2"), map[string]any{"n": 2.0})
	require.NoError(t, err)
	assert.Equal(t, e1.Hash, e2.PreviousHash)

	e3, err := l.Append(approveDecision("a3"), map[string]any{"n": 3.0})
	require.NoError(t, err)
	assert.Equal(t, e2.Hash, e3.PreviousHash)

	assert.Equal(t, 3, l.Size())
	assert.True(t, l.Verify())

	full, err := l.VerifyFull()
	require.NoError(t, err)
	assert.True(t, full)
}

func TestLog_RestartResumesChainFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	l1, err := audit.Open(path)
	require.NoError(t, err)
	last, err := l1.Append(approveDecision("a1"), map[string]any{"n": 1.0})
	require.NoError(t, err)
	require.NoError(t, l1.Close())

	l2, err := audit.Open(path, audit.WithPreload())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l2.Close() })

	require.Equal(t, 1, l2.Size())
	next, err := l2.Append(approveDecision("a2"), map[string]any{"n": 2.0})
	require.NoError(t, err)
	assert.Equal(t, last.Hash, next.PreviousHash)

	ok, err := l2.VerifyFull()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLog_VerifyAfterRestartWithoutPreloadAnchorsAtInMemoryTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	l1, err := audit.Open(path)
	require.NoError(t, err)
	_, err = l1.Append(approveDecision("a1"), map[string]any{"n": 1.0})
	require.NoError(t, err)
	_, err = l1.Append(approveDecision("a2"), map[string]any{"n": 2.0})
	require.NoError(t, err)
	require.NoError(t, l1.Close())

	l2, err := audit.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l2.Close() })
	require.Equal(t, 0, l2.Size())

	third, err := l2.Append(approveDecision("a3"), map[string]any{"n": 3.0})
	require.NoError(t, err)

	require.Equal(t, 1, l2.Size())
	assert.NotEqual(t, audit.GenesisHash, third.PreviousHash)
	assert.True(t, l2.Verify())
}

func TestLog_OpenWithoutPreloadDoesNotLoadEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	l1, err := audit.Open(path)
	require.NoError(t, err)
	_, err = l1.Append(approveDecision("a1"), map[string]any{"n": 1.0})
	require.NoError(t, err)
	require.NoError(t, l1.Close())

	l2, err := audit.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = l2.Close() })

	assert.Equal(t, 0, l2.Size())
	entries, err := l2.QueryFromDisk(audit.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLog_VerifyFullDetectsTampering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")

	l, err := audit.Open(path, audit.WithPreload())
	require.NoError(t, err)
	_, err = l.Append(approveDecision("a1"), map[string]any{"n": 1.0})
	require.NoError(t, err)
	_, err = l.Append(approveDecision("a2"), map[string]any{"n": 2.0})
	require.NoError(t, err)
	require.NoError(t, l.Close())

	tamperLastLine(t, path)

	l2, err := audit.Open(path, audit.WithPreload())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l2.Close() })

	ok, err := l2.VerifyFull()
	require.NoError(t, err)
	assert.False(t, ok)

	report, err := l2.VerifyFullDetailed()
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Equal(t, 1, report.BrokenAt)
}

func tamperLastLine(t *testing.T, path string) {
	t.Helper()
	data := readFile(t, path)

	end := len(data)
	if end > 0 && data[end-1] == '\n' {
		end--
	}
	start := 0
	for i := end - 1; i >= 0; i-- {
		if data[i] == '\n' {
			start = i + 1
			break
		}
	}

	tampered := append([]byte{}, data...)
	for i := end - 1; i >= start; i-- {
		if tampered[i] == '1' {
			tampered[i] = '9'
			break
		}
	}
	writeFile(t, path, tampered)
}

func TestLog_QueryFiltersByResultAndDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	l, err := audit.Open(path, audit.WithPreload())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	_, err = l.Append(approveDecision("a1"), map[string]any{"n": 1.0})
	require.NoError(t, err)

	rejected := rules.Decision{Result: rules.Rejected, Reason: "no", Score: 15, AuditID: "a2"}
	_, err = l.Append(rejected, map[string]any{"n": 2.0})
	require.NoError(t, err)

	approvedOnly := l.Query(audit.Filter{Result: rules.Approved})
	require.Len(t, approvedOnly, 1)
	assert.Equal(t, "a1", approvedOnly[0].ID)

	all := l.Query(audit.Filter{})
	assert.Len(t, all, 2)

	assert.Empty(t, l.Query(audit.Filter{StartDate: "9999-01-01T00:00:00.000Z"}))
	assert.Empty(t, l.Query(audit.Filter{EndDate: "2000-01-01T00:00:00.000Z"}))
	rejectedSince2000 := l.Query(audit.Filter{StartDate: "2000-01-01T00:00:00.000Z", Result: rules.Rejected})
	require.Len(t, rejectedSince2000, 1)
	assert.Equal(t, "a2", rejectedSince2000[0].ID)
}

func TestLog_ExportCSVIncludesHeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.jsonl")
	l, err := audit.Open(path, audit.WithPreload())
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })

	_, err = l.Append(approveDecision("a1"), map[string]any{"n": 1.0})
	require.NoError(t, err)

	out, err := l.ExportCSV()
	require.NoError(t, err)
	assert.Contains(t, out, "id,timestamp,result,rule,reason,score,hash")
	assert.Contains(t, out, "a1")
	assert.Contains(t, out, "APPROVED")
}
