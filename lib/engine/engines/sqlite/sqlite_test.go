package sqlite

import (
	"bytes"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/pdictdb/pdict/lib/engine"
	"github.com/pdictdb/pdict/lib/errs"
)

func TestOpenValidation(t *testing.T) {
	if _, err := NewSQLiteEngine(nil); !errs.IsStorage(err) {
		t.Errorf("Expected storage error for nil options, got %v", err)
	}

	if _, err := NewSQLiteEngine(&Options{}); !errs.IsStorage(err) {
		t.Errorf("Expected storage error for empty path, got %v", err)
	}
}

func TestPersistenceAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	e, err := NewSQLiteEngine(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Failed to open engine: %v", err)
	}

	if !e.SupportsFeature(engine.FeaturePersistent) {
		t.Fatalf("Expected file-backed engine to support FeaturePersistent")
	}

	want := map[string][]byte{
		"alpha": []byte("first"),
		"beta":  []byte("second"),
		"gamma": {},
	}
	for key, blob := range want {
		if err := e.Put(key, blob); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}
	}

	if _, err := e.Delete("beta"); err != nil {
		t.Fatalf("Unexpected error during Delete: %v", err)
	}
	delete(want, "beta")

	if err := e.Close(); err != nil {
		t.Fatalf("Unexpected error during Close: %v", err)
	}

	// Everything written before Close must be visible after reopening the
	// same file, and nothing that was deleted may come back.
	reopened, err := NewSQLiteEngine(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Failed to reopen engine: %v", err)
	}
	defer reopened.Close()

	n, err := reopened.Len()
	if err != nil {
		t.Fatalf("Unexpected error during Len: %v", err)
	}
	if n != int64(len(want)) {
		t.Errorf("Expected %d entries after reopen, got %d", len(want), n)
	}

	for key, blob := range want {
		got, loaded, err := reopened.Get(key)
		if err != nil {
			t.Fatalf("Unexpected error during Get: %v", err)
		}
		if !loaded {
			t.Errorf("Key %s missing after reopen", key)
			continue
		}
		if !bytes.Equal(got, blob) {
			t.Errorf("Blob mismatch for key %s after reopen: expected %q, got %q", key, blob, got)
		}
	}

	if _, loaded, _ := reopened.Get("beta"); loaded {
		t.Errorf("Deleted key beta reappeared after reopen")
	}
}

func TestCompactReclaimsSpace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "compact.db")

	e, err := NewSQLiteEngine(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Failed to open engine: %v", err)
	}
	defer e.Close()

	// Fill the file with bulk data, then delete most of it so the freelist
	// holds pages that only VACUUM can give back.
	numKeys := 256
	for i := 0; i < numKeys; i++ {
		if err := e.Put(fmt.Sprintf("bulk-%d", i), make([]byte, 16*1024)); err != nil {
			t.Fatalf("Unexpected error during Put: %v", err)
		}
	}
	for i := 0; i < numKeys; i++ {
		if i%16 == 0 {
			continue
		}
		if _, err := e.Delete(fmt.Sprintf("bulk-%d", i)); err != nil {
			t.Fatalf("Unexpected error during Delete: %v", err)
		}
	}

	before, err := e.GetInfo()
	if err != nil {
		t.Fatalf("Unexpected error during GetInfo: %v", err)
	}

	if err := e.Compact(); err != nil {
		t.Fatalf("Unexpected error during Compact: %v", err)
	}

	after, err := e.GetInfo()
	if err != nil {
		t.Fatalf("Unexpected error during GetInfo: %v", err)
	}

	if after.SizeBytes >= before.SizeBytes {
		t.Errorf("Expected Compact to shrink the file: before=%d after=%d",
			before.SizeBytes, after.SizeBytes)
	}

	// The survivors must be intact
	for i := 0; i < numKeys; i += 16 {
		key := fmt.Sprintf("bulk-%d", i)

		loaded, err := e.Has(key)
		if err != nil {
			t.Fatalf("Unexpected error during Has: %v", err)
		}
		if !loaded {
			t.Errorf("Key %s missing after Compact", key)
		}
	}
}

func TestGetInfoFileSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.db")

	e, err := NewSQLiteEngine(DefaultOptions(path))
	if err != nil {
		t.Fatalf("Failed to open engine: %v", err)
	}
	defer e.Close()

	if err := e.Put("info-key", []byte("info-blob")); err != nil {
		t.Fatalf("Unexpected error during Put: %v", err)
	}

	info, err := e.GetInfo()
	if err != nil {
		t.Fatalf("Unexpected error during GetInfo: %v", err)
	}

	if info.Type != engine.ImplSQLite {
		t.Errorf("Expected Info.Type %s, got %s", engine.ImplSQLite, info.Type)
	}
	if info.Path != path {
		t.Errorf("Expected Info.Path %s, got %s", path, info.Path)
	}
	if info.SizeBytes <= 0 {
		t.Errorf("Expected positive Info.SizeBytes, got %d", info.SizeBytes)
	}
	if info.Keys != 1 {
		t.Errorf("Expected Info.Keys 1, got %d", info.Keys)
	}
}
