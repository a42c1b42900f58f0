package session

import (
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"
)

// cacheRecord is the .algocache sidecar payload: the rendered diagnostic
// stream and emitted source text for one content hash, plus the
// correlation id (stored as its canonical string form) of the compile
// that produced them. Every field is a plain encodable type (string,
// []string) so rezi's reflection-based binary codec needs no bespoke
// (un)marshaler.
type cacheRecord struct {
	ContentHash   string
	CorrelationID string
	Diagnostics   []string
	Emitted       string
}

func loadCache(path, wantHash string) (cacheRecord, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cacheRecord{}, false
	}

	var rec cacheRecord
	n, err := rezi.DecBinary(data, &rec)
	if err != nil || n != len(data) {
		return cacheRecord{}, false
	}
	if rec.ContentHash != wantHash {
		return cacheRecord{}, false
	}
	return rec, true
}

func saveCache(path string, rec cacheRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data := rezi.EncBinary(rec)
	return os.WriteFile(path, data, 0o644)
}
