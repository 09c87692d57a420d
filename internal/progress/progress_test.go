package progress

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_NoCheckpoint(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "progress.json"))

	cp, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cp != nil {
		t.Errorf("Expected nil checkpoint when none exists, got %+v", cp)
	}
}

func TestSaveLoad_Roundtrip(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "progress.json"))

	if err := store.Save(8000000450, 200); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	cp, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cp == nil {
		t.Fatal("Expected a checkpoint")
	}
	if cp.LastMatchID != 8000000450 {
		t.Errorf("LastMatchID = %d, want 8000000450", cp.LastMatchID)
	}
	if cp.CollectedCount != 200 {
		t.Errorf("CollectedCount = %d, want 200", cp.CollectedCount)
	}
	if cp.LastUpdate == "" {
		t.Error("LastUpdate should be set")
	}
}

func TestSave_OverwritesInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	store := NewStore(path)

	if err := store.Save(500, 1); err != nil {
		t.Fatalf("First save failed: %v", err)
	}
	if err := store.Save(450, 2); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	cp, err := store.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cp.LastMatchID != 450 || cp.CollectedCount != 2 {
		t.Errorf("Checkpoint = %+v, want {450 2}", cp)
	}

	// No temp file left behind
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("Temp file should be renamed away after save")
	}
}

func TestLoad_CorruptCheckpoint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewStore(path).Load(); err == nil {
		t.Error("Expected an error for a corrupt checkpoint")
	}
}
