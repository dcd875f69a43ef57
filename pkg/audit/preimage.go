package audit

import "github.com/codeready-toolchain/governed-agent/internal/ids"

// preimage is the entry payload hashed to produce Entry.Hash: every field
// of Entry except Hash itself and Compliance, which AttachCompliance sets
// after the entry has been hashed.
type preimage struct {
	ID           string         `json:"id"`
	Timestamp    string         `json:"timestamp"`
	Input        map[string]any `json:"input"`
	Output       any            `json:"output"`
	Rule         any            `json:"rule"`
	PreviousHash string         `json:"previousHash"`
}

func preimageOf(e Entry) preimage {
	return preimage{
		ID:           e.ID,
		Timestamp:    e.Timestamp,
		Input:        e.Input,
		Output:       e.Output,
		Rule:         e.Rule,
		PreviousHash: e.PreviousHash,
	}
}

// computeHash returns SHA256(previousHash ‖ canonical(entry without hash)).
func computeHash(e Entry) (string, error) {
	return ids.ChainHash(e.PreviousHash, preimageOf(e))
}
