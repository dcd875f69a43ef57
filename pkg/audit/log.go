package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/codeready-toolchain/governed-agent/internal/ids"
	"github.com/codeready-toolchain/governed-agent/pkg/rules"
)

// GenesisHash is the previousHash of the first entry ever written to an
// empty journal.
const GenesisHash = ids.GenesisHash

// PersistenceError wraps a journal write failure. Append never returns
// PersistenceError to its caller — persistence degradations never
// propagate — but it is logged and the in-memory chain advances anyway, and
// the log is marked Degraded for callers that want to notice.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("audit: journal write to %s failed: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Log is a single-writer, multi-reader hash-chained audit journal backed by
// a line-delimited JSON file. Append must be serialised; it holds mu across
// both the in-memory pointer update and the file write. Readers (Query,
// QueryFromDisk, Verify, VerifyFull, Size) may run concurrently with each
// other and, for the FromDisk/Full variants, without holding mu at all,
// since each journal line is written atomically as one buffered write
// ending in a newline.
type Log struct {
	mu           sync.Mutex
	path         string
	file         *os.File
	previousHash string
	entries      []Entry
	degraded     bool
}

// Option configures Open.
type Option func(*openConfig)

type openConfig struct {
	preload bool
}

// WithPreload parses the entire journal into memory at open time, instead
// of only locating the last line's hash.
func WithPreload() Option {
	return func(c *openConfig) { c.preload = true }
}

// Open opens (creating if necessary) the journal at path. With no options,
// it restores only the chain pointer (previousHash) from the last line on
// disk, leaving the in-memory entry list empty — the default, cheap restart
// path. WithPreload additionally loads every on-disk entry into memory.
func Open(path string, opts ...Option) (*Log, error) {
	cfg := openConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("audit: creating journal directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("audit: opening journal %s: %w", path, err)
	}

	l := &Log{path: path, file: f, previousHash: GenesisHash}

	lines, err := readLines(path)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	if len(lines) > 0 {
		last, err := decodeEntry(lines[len(lines)-1])
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("audit: malformed last journal line: %w", err)
		}
		l.previousHash = last.Hash
	}

	if cfg.preload {
		entries := make([]Entry, 0, len(lines))
		for _, line := range lines {
			e, err := decodeEntry(line)
			if err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("audit: malformed journal line: %w", err)
			}
			entries = append(entries, e)
		}
		l.entries = entries
	}

	return l, nil
}

func readLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("audit: reading journal %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("audit: scanning journal %s: %w", path, err)
	}
	return lines, nil
}

func decodeEntry(line string) (Entry, error) {
	var e Entry
	if err := json.Unmarshal([]byte(line), &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// Close releases the journal's file handle.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.file.Close()
}

// Degraded reports whether the most recent Append failed to persist to
// disk. The in-memory chain is unaffected; this is purely informational.
func (l *Log) Degraded() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.degraded
}

// Append constructs the pre-image from decision and input, computes its
// hash against the current chain pointer, writes the full entry as one
// journal line, then advances the chain pointer and appends to the
// in-memory list. A journal write failure does not abort the call: the
// chain pointer still advances, the entry is still appended in memory and
// returned, and the log is marked degraded — a PersistenceError never
// propagates to the caller.
func (l *Log) Append(decision rules.Decision, input map[string]any) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := decision.AuditID
	if id == "" {
		id = ids.New()
	}

	e := Entry{
		ID:           id,
		Timestamp:    time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
		Input:        input,
		Output:       decision,
		Rule:         decision.MatchedRule,
		PreviousHash: l.previousHash,
	}

	hash, err := computeHash(e)
	if err != nil {
		return Entry{}, fmt.Errorf("audit: computing entry hash: %w", err)
	}
	e.Hash = hash

	if err := l.writeLine(e); err != nil {
		l.degraded = true
		slog.Error("audit journal write failed; continuing with in-memory chain only",
			"path", l.path, "error", err)
	} else {
		l.degraded = false
	}

	l.previousHash = e.Hash
	l.entries = append(l.entries, e)
	return e, nil
}

// AttachCompliance writes report into the Compliance field of the
// in-memory entry identified by id, so that a later Query reflects the
// same report a caller already attached to its own copy of the entry
// returned from Append. It reports whether an entry with that id was
// found — it is not, for example, if the log was opened without
// WithPreload and the entry predates this process's in-memory list.
func (l *Log) AttachCompliance(id string, report any) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.entries {
		if l.entries[i].ID == id {
			l.entries[i].Compliance = report
			return true
		}
	}
	return false
}

func (l *Log) writeLine(e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return &PersistenceError{Path: l.path, Err: err}
	}
	body = append(body, '\n')
	if _, err := l.file.Write(body); err != nil {
		return &PersistenceError{Path: l.path, Err: err}
	}
	if err := l.file.Sync(); err != nil {
		return &PersistenceError{Path: l.path, Err: err}
	}
	return nil
}

// Size returns the number of entries held in memory.
func (l *Log) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Query filters the in-memory entry list.
func (l *Log) Query(f Filter) []Entry {
	l.mu.Lock()
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	return filterEntries(snapshot, f)
}

// QueryFromDisk re-parses the journal file on every call, independent of
// in-memory state.
func (l *Log) QueryFromDisk(f Filter) ([]Entry, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		e, err := decodeEntry(line)
		if err != nil {
			return nil, fmt.Errorf("audit: malformed journal line: %w", err)
		}
		entries = append(entries, e)
	}
	return filterEntries(entries, f), nil
}

func filterEntries(entries []Entry, f Filter) []Entry {
	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if f.matches(e) {
			out = append(out, e)
		}
	}
	return out
}
