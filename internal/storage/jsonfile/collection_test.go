package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

type doc struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func testCollection(t *testing.T) (*Collection[doc], string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docs.json")
	return NewCollection[doc](path, zerolog.Nop()), path
}

func TestCollection_LoadMissingFile(t *testing.T) {
	coll, _ := testCollection(t)
	if docs := coll.Load(); len(docs) != 0 {
		t.Fatalf("expected empty collection, got %d docs", len(docs))
	}
}

func TestCollection_SaveLoadRoundTrip(t *testing.T) {
	coll, _ := testCollection(t)

	in := []doc{{ID: "1", Name: "first"}, {ID: "2", Name: "second"}}
	if err := coll.Save(in); err != nil {
		t.Fatalf("save: %v", err)
	}

	out := coll.Load()
	if len(out) != 2 {
		t.Fatalf("expected 2 docs, got %d", len(out))
	}
	if out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestCollection_SaveNilWritesEmptyArray(t *testing.T) {
	coll, path := testCollection(t)

	if err := coll.Save(nil); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "[]" {
		t.Fatalf("expected empty JSON array on disk, got %q", data)
	}
}

func TestCollection_LoadCorruptFile(t *testing.T) {
	coll, path := testCollection(t)

	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if docs := coll.Load(); len(docs) != 0 {
		t.Fatalf("expected empty collection for corrupt file, got %d docs", len(docs))
	}

	// The store must stay usable: a save replaces the corrupt document.
	if err := coll.Save([]doc{{ID: "1"}}); err != nil {
		t.Fatalf("save after corruption: %v", err)
	}
	if docs := coll.Load(); len(docs) != 1 {
		t.Fatalf("expected 1 doc after recovery, got %d", len(docs))
	}
}

func TestCollection_InitSeedsOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "docs.json")
	coll := NewCollection[doc](path, zerolog.Nop())

	if err := coll.Init([]doc{{ID: "seed"}}); err != nil {
		t.Fatalf("init: %v", err)
	}
	if docs := coll.Load(); len(docs) != 1 || docs[0].ID != "seed" {
		t.Fatalf("expected seed doc, got %+v", docs)
	}

	if err := coll.Save([]doc{{ID: "seed"}, {ID: "added"}}); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A second Init must not reset an existing document.
	if err := coll.Init([]doc{{ID: "seed"}}); err != nil {
		t.Fatalf("second init: %v", err)
	}
	if docs := coll.Load(); len(docs) != 2 {
		t.Fatalf("second init overwrote document: %+v", docs)
	}
}
