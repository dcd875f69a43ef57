package audit

import "fmt"

// IntegrityReport is the detailed result of a full-chain verification: it
// names the offending entry and hash mismatch, if any, rather than just a
// boolean.
type IntegrityReport struct {
	Valid        bool
	EntriesCheck int
	BrokenAtID   string
	BrokenAt     int
	Expected     string
	Actual       string
	Reason       string
}

// Verify walks the in-memory entry list checking that each entry's
// PreviousHash equals the previous entry's Hash and that its own Hash
// matches the recomputed digest of its pre-image. The chain is anchored at
// the first in-memory entry's own PreviousHash rather than GenesisHash,
// since a process that opened the log mid-journal (preload disabled) only
// holds the tail of the chain in memory — entry 0 here may not be the
// journal's true first entry, so only its own hash is checked, not its
// linkage to whatever came before it on disk. It trusts the in-memory
// list's contents; it does not re-read the file. Use VerifyFull to also
// validate against disk, anchored at genesis.
func (l *Log) Verify() bool {
	l.mu.Lock()
	snapshot := make([]Entry, len(l.entries))
	copy(snapshot, l.entries)
	l.mu.Unlock()

	anchor := GenesisHash
	if len(snapshot) > 0 {
		anchor = snapshot[0].PreviousHash
	}
	report := verifyChain(snapshot, anchor)
	return report.Valid
}

// VerifyFull re-reads the journal from disk and performs the same
// chain-continuity and hash-recomputation checks as Verify, but against the
// authoritative on-disk record rather than in-memory state — this is the
// check that actually proves nothing was edited or truncated on disk after
// the fact.
func (l *Log) VerifyFull() (bool, error) {
	report, err := l.VerifyFullDetailed()
	if err != nil {
		return false, err
	}
	return report.Valid, nil
}

// VerifyFullDetailed is VerifyFull's diagnostic companion: on failure it
// names the first offending entry and the expected vs actual hash, instead
// of collapsing the result to a boolean.
func (l *Log) VerifyFullDetailed() (IntegrityReport, error) {
	lines, err := readLines(l.path)
	if err != nil {
		return IntegrityReport{}, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		e, err := decodeEntry(line)
		if err != nil {
			return IntegrityReport{}, fmt.Errorf("audit: malformed journal line: %w", err)
		}
		entries = append(entries, e)
	}
	return verifyChain(entries, GenesisHash), nil
}

func verifyChain(entries []Entry, anchor string) IntegrityReport {
	expectedPrev := anchor
	for i, e := range entries {
		if e.PreviousHash != expectedPrev {
			return IntegrityReport{
				EntriesCheck: i,
				BrokenAtID:   e.ID,
				BrokenAt:     i,
				Expected:     expectedPrev,
				Actual:       e.PreviousHash,
				Reason:       "previousHash does not match the prior entry's hash",
			}
		}
		recomputed, err := computeHash(e)
		if err != nil || recomputed != e.Hash {
			return IntegrityReport{
				EntriesCheck: i,
				BrokenAtID:   e.ID,
				BrokenAt:     i,
				Expected:     recomputed,
				Actual:       e.Hash,
				Reason:       "stored hash does not match the recomputed digest of the entry",
			}
		}
		expectedPrev = e.Hash
	}
	return IntegrityReport{Valid: true, EntriesCheck: len(entries)}
}
