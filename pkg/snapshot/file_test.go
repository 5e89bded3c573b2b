package snapshot

import (
	"context"
	"testing"
	"time"

	"github.com/chidanandgowda/huffman-coding/pkg/errors"
	"github.com/chidanandgowda/huffman-coding/pkg/huffman"
	"github.com/chidanandgowda/huffman-coding/pkg/layout"
	"github.com/chidanandgowda/huffman-coding/pkg/render"
)

func testDocument(t *testing.T, name string) *render.Document {
	t.Helper()
	table := huffman.Table{'A': 1, 'B': 1, 'C': 2}
	tree, box := layout.Compute(huffman.Build(table), layout.DefaultConfig())
	return render.NewDocument(name, name+".txt", table, 4, tree, box)
}

func TestFileStoreRoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	doc := testDocument(t, "sample")

	if err := store.Put(ctx, doc); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, err := store.Get(ctx, doc.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil for stored snapshot")
	}
	if got.Name != "sample" || got.TotalBytes != 4 {
		t.Errorf("Get() = {Name: %q, TotalBytes: %d}, want {sample, 4}", got.Name, got.TotalBytes)
	}
	if len(got.Nodes) != len(doc.Nodes) {
		t.Errorf("Get() nodes = %d, want %d", len(got.Nodes), len(doc.Nodes))
	}
}

func TestFileStoreGetMissing(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	got, err := store.Get(context.Background(), "0f8fad5b-d9cb-469f-a165-70867728950e")
	if err != nil {
		t.Fatalf("Get() error = %v, want nil for missing snapshot", err)
	}
	if got != nil {
		t.Errorf("Get() = %v, want nil", got)
	}
}

func TestFileStoreRejectsBadID(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	_, err = store.Get(context.Background(), "../../etc/passwd")
	if !errors.Is(err, errors.ErrCodeInvalidID) {
		t.Errorf("Get(traversal id) error = %v, want INVALID_ID", err)
	}
}

func TestFileStoreDelete(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	doc := testDocument(t, "doomed")
	if err := store.Put(ctx, doc); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := store.Delete(ctx, doc.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if got, _ := store.Get(ctx, doc.ID); got != nil {
		t.Error("Get() after Delete() != nil")
	}
	if err := store.Delete(ctx, doc.ID); err != nil {
		t.Errorf("Delete() of missing snapshot error = %v, want nil", err)
	}
}

func TestFileStoreListNewestFirst(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	defer store.Close()

	ctx := context.Background()
	older := testDocument(t, "older")
	older.CreatedAt = time.Now().UTC().Add(-time.Hour)
	newer := testDocument(t, "newer")

	for _, doc := range []*render.Document{older, newer} {
		if err := store.Put(ctx, doc); err != nil {
			t.Fatalf("Put(%s) error = %v", doc.Name, err)
		}
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("List() = %d entries, want 2", len(infos))
	}
	if infos[0].Name != "newer" || infos[1].Name != "older" {
		t.Errorf("List() order = [%s, %s], want [newer, older]", infos[0].Name, infos[1].Name)
	}
	if infos[0].Symbols != 3 {
		t.Errorf("List() symbols = %d, want 3", infos[0].Symbols)
	}
}
