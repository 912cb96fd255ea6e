package store

import (
	"bytes"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLoadMissingKey(t *testing.T) {
	s := openTestStore(t)
	data, err := s.Load(KeyProperties)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data != nil {
		t.Errorf("missing key should load nil, got %q", data)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	payload := []byte(`[{"id":"p1"}]`)

	if err := s.Save(KeyProperties, payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := s.Load(KeyProperties)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("loaded %q, want %q", data, payload)
	}
}

func TestSaveOverwrites(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(KeyWeights, []byte(`{"priceFit":1}`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save(KeyWeights, []byte(`{"priceFit":5}`)); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	data, err := s.Load(KeyWeights)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"priceFit":5}` {
		t.Errorf("expected latest value to win, got %q", data)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(KeyProperties, []byte(`[]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	data, err := s.Load(KeyWeights)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if data != nil {
		t.Errorf("weights key should stay empty, got %q", data)
	}
}
