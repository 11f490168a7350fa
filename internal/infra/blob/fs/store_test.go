package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"manuscriptdna/internal/blob/core"
)

func newTempStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestStorePutGetHeadListDelete(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	key := "manuscript-dna/photos/photo-1/recto.jpg"

	info, err := store.Put(ctx, key, bytes.NewReader([]byte("jpegdata")), core.PutOptions{
		ContentType: "image/jpeg",
		Metadata:    map[string]string{"sheet": "AM 795"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != key || info.Size != 8 || info.ContentType != "image/jpeg" {
		t.Fatalf("unexpected info %+v", info)
	}
	if _, err := store.Put(ctx, key, bytes.NewReader([]byte("x")), core.PutOptions{}); err == nil {
		t.Fatalf("expected create-only failure on existing key")
	}

	h, err := store.Head(ctx, key)
	if err != nil {
		t.Fatalf("head: %v", err)
	}
	g, rc, err := store.Get(ctx, key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	if err := rc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if string(b) != "jpegdata" || g.ETag == "" || g.ETag != h.ETag {
		t.Fatalf("unexpected get artifacts: %q etag %q vs %q", b, g.ETag, h.ETag)
	}
	if h.Metadata["sheet"] != "AM 795" {
		t.Fatalf("metadata lost: %+v", h.Metadata)
	}

	list, err := store.List(ctx, "manuscript-dna/photos/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].Key != key {
		t.Fatalf("unexpected list %+v", list)
	}

	url, err := store.PresignURL(ctx, key, core.SignedURLOptions{})
	if err != nil || url == "" {
		t.Fatalf("presign url: %v %s", err, url)
	}

	ok, err := store.Delete(ctx, key)
	if err != nil || !ok {
		t.Fatalf("delete: %v %v", ok, err)
	}
	ok, err = store.Delete(ctx, key)
	if err != nil || ok {
		t.Fatalf("second delete should report missing")
	}
}

func TestStoreRejectsUnsafeKeys(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	for _, key := range []string{"", " ", "../escape.jpg", "/abs.jpg", "a/../b.jpg"} {
		if _, err := store.Put(ctx, key, bytes.NewReader([]byte("x")), core.PutOptions{}); err == nil {
			t.Fatalf("expected rejection for key %q", key)
		}
	}
}

func TestSanitizeKeyErrors(t *testing.T) {
	for _, key := range []string{"", "../escape", "/abs", "a/../b"} {
		if _, err := sanitizeKey(key); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
	if clean, err := sanitizeKey("photos//p1/./file.jpg"); err != nil || clean != "photos/p1/file.jpg" {
		t.Fatalf("expected normalized key, got %q %v", clean, err)
	}
}

func TestStoreSidecarPersistence(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	key := "photos/p1/site.tiff"
	if _, err := store.Put(ctx, key, bytes.NewReader([]byte("abc")), core.PutOptions{ContentType: "image/tiff"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	dataPath, metaPath, _ := store.pathFor(key)
	if _, err := os.Stat(dataPath); err != nil {
		t.Fatalf("expected data file: %v", err)
	}
	if filepath.Ext(metaPath) != ".meta" {
		t.Fatalf("sidecar extension mismatch: %s", metaPath)
	}
	b, err := os.ReadFile(metaPath)
	if err != nil {
		t.Fatalf("read sidecar: %v", err)
	}
	if !bytes.Contains(b, []byte("image/tiff")) {
		t.Fatalf("sidecar missing content type: %s", b)
	}
}

type errorReader struct{}

func (errorReader) Read([]byte) (int, error) { return 0, errors.New("boom") }

func TestStorePutCopyError(t *testing.T) {
	store := newTempStore(t)
	if _, err := store.Put(context.Background(), "bad.bin", errorReader{}, core.PutOptions{}); err == nil {
		t.Fatalf("expected copy error")
	}
}

func TestStoreMissingSidecarFailsReads(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	for i := 0; i < 3; i++ {
		key := "photos/batch/f" + strconv.Itoa(i) + ".jpg"
		if _, err := store.Put(ctx, key, bytes.NewReader([]byte("data")), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	_, metaPath, _ := store.pathFor("photos/batch/f0.jpg")
	if err := os.Remove(metaPath); err != nil {
		t.Fatalf("remove sidecar: %v", err)
	}
	if _, _, err := store.Get(ctx, "photos/batch/f0.jpg"); err == nil {
		t.Fatalf("expected get to fail without sidecar")
	}
	if _, err := store.Head(ctx, "photos/batch/f0.jpg"); err == nil {
		t.Fatalf("expected head to fail without sidecar")
	}
	list, err := store.List(ctx, "photos/batch/")
	if err != nil || len(list) != 2 {
		t.Fatalf("list after sidecar removal: %v len=%d", err, len(list))
	}
}

func TestStorePresignMethods(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	if url, err := store.PresignURL(ctx, "photos/p1/a.jpg", core.SignedURLOptions{Method: "get"}); err != nil || url == "" {
		t.Fatalf("presign lowercase get: %v %s", err, url)
	}
	if _, err := store.PresignURL(ctx, "photos/p1/a.jpg", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported for PUT, got %v", err)
	}
}

func TestStoreListSortsAndFailsOnCorruptSidecar(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := store.Put(ctx, "b/2.jpg", bytes.NewReader([]byte("b2")), core.PutOptions{}); err != nil {
		t.Fatalf("put b: %v", err)
	}
	if _, err := store.Put(ctx, "a/1.jpg", bytes.NewReader([]byte("a1")), core.PutOptions{}); err != nil {
		t.Fatalf("put a: %v", err)
	}
	list, err := store.List(ctx, "")
	if err != nil || len(list) != 2 {
		t.Fatalf("list: %v %+v", err, list)
	}
	if list[0].Key != "a/1.jpg" || list[1].Key != "b/2.jpg" {
		t.Fatalf("expected ascending key order, got %+v", list)
	}

	if err := os.WriteFile(filepath.Join(dir, "bad.jpg"), []byte("data"), 0o644); err != nil {
		t.Fatalf("write data: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.jpg.meta"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write sidecar: %v", err)
	}
	if _, err := store.List(ctx, ""); err == nil {
		t.Fatalf("expected list error on corrupt sidecar")
	}
}

func TestSidecarSeamErrors(t *testing.T) {
	old := marshalSidecar
	marshalSidecar = func(sidecar) ([]byte, error) { return nil, errors.New("marshal fail") }
	defer func() { marshalSidecar = old }()
	if err := writeSidecar(filepath.Join(t.TempDir(), "x.meta"), sidecar{}); err == nil {
		t.Fatalf("expected marshal error")
	}

	path := filepath.Join(t.TempDir(), "bad.meta")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := readSidecar(path); err == nil {
		t.Fatalf("expected unmarshal error")
	}
}

func TestNewRejectsFileRoot(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "afile")
	if err := os.WriteFile(filePath, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := New(filePath); err == nil {
		t.Fatalf("expected error when root is a file")
	}
}

func TestStoreLocalURLStable(t *testing.T) {
	store := &Store{root: t.TempDir()}
	if url := store.localURL("photos/p1/recto.jpg"); url != "http://local.blob/photos/p1/recto.jpg" {
		t.Fatalf("unexpected url: %s", url)
	}
}

func TestCloneMetadataIsolation(t *testing.T) {
	if cloneMetadata(nil) != nil {
		t.Fatalf("expected nil pass-through")
	}
	src := map[string]string{"sheet": "AM 795"}
	cp := cloneMetadata(src)
	src["sheet"] = "changed"
	if cp["sheet"] != "AM 795" {
		t.Fatalf("expected isolated copy, got %v", cp)
	}
}

func TestStoreTimestampsUTC(t *testing.T) {
	ctx := context.Background()
	store := newTempStore(t)
	info, err := store.Put(ctx, "photos/ts/a.jpg", bytes.NewReader([]byte("abc")), core.PutOptions{})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !info.LastModified.Equal(info.LastModified.UTC()) {
		t.Fatalf("expected UTC timestamp, got %v", info.LastModified)
	}
}
