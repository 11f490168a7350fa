package core_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"manuscriptdna/internal/blob"
	core "manuscriptdna/internal/core"
	"manuscriptdna/pkg/domain"
)

func newPhotoService(t *testing.T, blobs blob.Store) *core.Service {
	t.Helper()
	return core.NewInMemoryService(core.NewDefaultRulesEngine(), core.WithBlobStore(blobs))
}

func TestAttachPhotoStoresFileAndRecord(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	svc := newPhotoService(t, blobs)
	sheet, _ := seedSheetAndSession(t, svc)

	photo, res, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:     sheet.ID,
		Filename:    "recto detail.jpg",
		ContentType: "image/jpeg",
		Body:        bytes.NewReader([]byte("jpeg-bytes")),
	})
	if err != nil {
		t.Fatalf("attach photo: %v", err)
	}
	if res.HasBlocking() {
		t.Fatalf("unexpected blocking violations: %+v", res.Violations)
	}
	if photo.SheetID != sheet.ID {
		t.Fatalf("photo bound to wrong sheet: %+v", photo)
	}
	if !strings.HasPrefix(photo.FileKey, "manuscript-dna/photos/"+photo.ID+"/") {
		t.Fatalf("unexpected file key %q", photo.FileKey)
	}
	if strings.Contains(photo.FileKey, " ") {
		t.Fatalf("filename not sanitized: %q", photo.FileKey)
	}

	info, body, err := svc.OpenPhoto(ctx, photo.ID)
	if err != nil {
		t.Fatalf("open photo: %v", err)
	}
	defer body.Close()
	if info.ContentType != "image/jpeg" {
		t.Fatalf("unexpected content type %q", info.ContentType)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read photo: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Fatalf("payload mismatch: %q", data)
	}

	photos := svc.ListPhotosBySheet(ctx, sheet.ID)
	if len(photos) != 1 || photos[0].ID != photo.ID {
		t.Fatalf("expected photo listed for sheet, got %+v", photos)
	}
}

func TestAttachPhotoValidation(t *testing.T) {
	ctx := context.Background()
	svc := newPhotoService(t, blob.NewMemory())
	sheet, _ := seedSheetAndSession(t, svc)

	if _, _, err := svc.AttachPhoto(ctx, core.PhotoUpload{SheetID: sheet.ID, Filename: "a.jpg"}); err == nil {
		t.Fatalf("expected rejection for empty body")
	}

	_, _, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:  "missing",
		Filename: "a.jpg",
		Body:     bytes.NewReader([]byte("x")),
	})
	var notFound domain.NotFoundError
	if !errors.As(err, &notFound) || notFound.Entity != domain.EntitySheet {
		t.Fatalf("expected sheet not-found error, got %v", err)
	}
}

// rejectPhotosRule blocks every photo create so tests can force the record
// transaction to fail after the file upload succeeded.
type rejectPhotosRule struct{}

func (rejectPhotosRule) Name() string { return "reject_photos" }

func (rejectPhotosRule) Evaluate(_ context.Context, _ domain.RuleView, changes []domain.Change) (domain.Result, error) {
	res := domain.Result{}
	for _, change := range changes {
		if change.Entity == domain.EntityPhoto && change.Action == domain.ActionCreate {
			res.Violations = append(res.Violations, domain.Violation{
				Rule:     "reject_photos",
				Severity: domain.SeverityBlock,
				Message:  "photo intake closed",
				Entity:   domain.EntityPhoto,
			})
		}
	}
	return res, nil
}

func TestAttachPhotoCompensatesFailedCommit(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	engine := core.NewRulesEngine()
	engine.Register(rejectPhotosRule{})
	svc := core.NewInMemoryService(engine, core.WithBlobStore(blobs))
	sheet, _ := seedSheetAndSession(t, svc)

	_, res, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:  sheet.ID,
		Filename: "recto.jpg",
		Body:     bytes.NewReader([]byte("x")),
	})
	var blocked domain.RuleViolationError
	if !errors.As(err, &blocked) {
		t.Fatalf("expected rule violation, got %v", err)
	}
	if !res.HasBlocking() {
		t.Fatalf("expected blocking result, got %+v", res)
	}

	// The record never committed, so the uploaded object was deleted again.
	infos, err := blobs.List(ctx, "manuscript-dna/photos/")
	if err != nil {
		t.Fatalf("list blobs: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("failed attach left %d orphaned objects", len(infos))
	}
	if got := len(svc.ListPhotos(ctx)); got != 0 {
		t.Fatalf("expected no photo records, got %d", got)
	}
}

func TestDeletePhotoRemovesStoredFile(t *testing.T) {
	ctx := context.Background()
	blobs := blob.NewMemory()
	svc := newPhotoService(t, blobs)
	sheet, _ := seedSheetAndSession(t, svc)

	photo, _, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:  sheet.ID,
		Filename: "recto.jpg",
		Body:     bytes.NewReader([]byte("x")),
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}

	if _, err := svc.DeletePhoto(ctx, photo.ID); err != nil {
		t.Fatalf("delete photo: %v", err)
	}
	if _, ok := svc.GetPhoto(ctx, photo.ID); ok {
		t.Fatalf("expected photo record gone")
	}
	infos, err := blobs.List(ctx, "manuscript-dna/photos/")
	if err != nil {
		t.Fatalf("list blobs: %v", err)
	}
	if len(infos) != 0 {
		t.Fatalf("expected stored file removed, got %d objects", len(infos))
	}
}

func TestDeletePhotoDeleteGuard(t *testing.T) {
	ctx := context.Background()
	svc := newPhotoService(t, blob.NewMemory())
	sheet, session := seedSheetAndSession(t, svc)

	photo, _, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:  sheet.ID,
		Filename: "recto.jpg",
		Body:     bytes.NewReader([]byte("x")),
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if _, _, err := svc.CreateSample(ctx, domain.Sample{
		SheetID:   sheet.ID,
		SessionID: session.ID,
		PhotoID:   &photo.ID,
	}); err != nil {
		t.Fatalf("create sample: %v", err)
	}

	_, err = svc.DeletePhoto(ctx, photo.ID)
	var ref domain.ReferencedError
	if !errors.As(err, &ref) || ref.Entity != domain.EntityPhoto {
		t.Fatalf("expected referenced error, got %v", err)
	}
	// The guarded delete must leave the stored file in place.
	if _, _, err := svc.OpenPhoto(ctx, photo.ID); err != nil {
		t.Fatalf("photo file lost after refused delete: %v", err)
	}
}

func TestPhotoFileURL(t *testing.T) {
	ctx := context.Background()
	fsStore, err := blob.NewFilesystem(t.TempDir())
	if err != nil {
		t.Fatalf("new filesystem blob: %v", err)
	}
	svc := newPhotoService(t, fsStore)
	sheet, _ := seedSheetAndSession(t, svc)

	photo, _, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:  sheet.ID,
		Filename: "recto.jpg",
		Body:     bytes.NewReader([]byte("x")),
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}

	fileURL, err := svc.PhotoFileURL(ctx, photo.ID, 15*time.Minute)
	if err != nil {
		t.Fatalf("photo file url: %v", err)
	}
	if !strings.HasPrefix(fileURL, "http://local.blob/") {
		t.Fatalf("unexpected url %q", fileURL)
	}

	if _, err := svc.PhotoFileURL(ctx, "missing", time.Minute); err == nil {
		t.Fatalf("expected error for missing photo")
	}
}

func TestPhotoFileURLUnsupportedDriver(t *testing.T) {
	ctx := context.Background()
	svc := newPhotoService(t, blob.NewMemory())
	sheet, _ := seedSheetAndSession(t, svc)

	photo, _, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:  sheet.ID,
		Filename: "recto.jpg",
		Body:     bytes.NewReader([]byte("x")),
	})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	// The memory driver neither signs nor exposes stable URLs.
	if _, err := svc.PhotoFileURL(ctx, photo.ID, time.Minute); !errors.Is(err, blob.ErrUnsupported) {
		t.Fatalf("expected unsupported error, got %v", err)
	}
}

func TestPhotoOperationsWithoutBlobStore(t *testing.T) {
	ctx := context.Background()
	svc := core.NewInMemoryService(core.NewDefaultRulesEngine())
	sheet, _ := seedSheetAndSession(t, svc)

	if _, _, err := svc.AttachPhoto(ctx, core.PhotoUpload{
		SheetID:  sheet.ID,
		Filename: "recto.jpg",
		Body:     bytes.NewReader([]byte("x")),
	}); err == nil {
		t.Fatalf("expected attach to fail without blob store")
	}

	// Records can still be managed directly with an externally stored key.
	photo, _, err := svc.CreatePhoto(ctx, domain.Photo{SheetID: sheet.ID, FileKey: "manuscript-dna/photos/ext/recto.jpg"})
	if err != nil {
		t.Fatalf("create photo record: %v", err)
	}
	if _, _, err := svc.OpenPhoto(ctx, photo.ID); err == nil {
		t.Fatalf("expected open to fail without blob store")
	}
	if _, err := svc.PhotoFileURL(ctx, photo.ID, time.Minute); err == nil {
		t.Fatalf("expected url to fail without blob store")
	}
	if _, err := svc.DeletePhoto(ctx, photo.ID); err != nil {
		t.Fatalf("delete photo record: %v", err)
	}
}
