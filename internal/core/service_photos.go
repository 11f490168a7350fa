package core

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"time"

	"manuscriptdna/internal/blob"
	"manuscriptdna/pkg/domain"
)

// errNoBlobStore reports photo file operations on a service constructed
// without WithBlobStore.
var errNoBlobStore = errors.New("no blob store configured")

// PhotoUpload describes an incoming photograph file for AttachPhoto.
type PhotoUpload struct {
	SheetID     string
	Filename    string
	ContentType string
	Body        io.Reader
}

// CreatePhoto persists a photo record whose file already sits in blob
// storage. AttachPhoto is the usual entry point for new photographs.
func (s *Service) CreatePhoto(ctx context.Context, photo domain.Photo) (domain.Photo, domain.Result, error) {
	var created domain.Photo
	res, err := s.run(ctx, "create_photo", func(tx domain.Transaction) error {
		var err error
		created, err = tx.CreatePhoto(photo)
		return err
	}, func() string { return created.ID })
	return created, res, err
}

// UpdatePhoto mutates a photo record using the provided mutator.
func (s *Service) UpdatePhoto(ctx context.Context, id string, mutator func(*domain.Photo) error) (domain.Photo, domain.Result, error) {
	var updated domain.Photo
	res, err := s.run(ctx, "update_photo", func(tx domain.Transaction) error {
		var err error
		updated, err = tx.UpdatePhoto(id, mutator)
		return err
	}, func() string { return id })
	return updated, res, err
}

// DeletePhoto removes a photo record unless samples still reference it. The
// stored file is removed after the record commit; a failed file removal is
// logged and leaves an orphaned object behind.
func (s *Service) DeletePhoto(ctx context.Context, id string) (domain.Result, error) {
	var fileKey string
	res, err := s.run(ctx, "delete_photo", func(tx domain.Transaction) error {
		if photo, ok := tx.Snapshot().FindPhoto(id); ok {
			fileKey = photo.FileKey
		}
		return tx.DeletePhoto(id)
	}, func() string { return id })
	if err == nil && fileKey != "" && s.blobs != nil {
		if _, delErr := s.blobs.Delete(ctx, fileKey); delErr != nil {
			s.logger.Warn("photo file removal failed", "key", fileKey, "error", delErr)
		}
	}
	return res, err
}

// GetPhoto returns a photo record by ID.
func (s *Service) GetPhoto(ctx context.Context, id string) (domain.Photo, bool) {
	var (
		photo domain.Photo
		ok    bool
	)
	_ = s.instrument(ctx, "get_photo", func(context.Context) (string, error) {
		photo, ok = s.store.GetPhoto(id)
		return id, nil
	})
	return photo, ok
}

// ListPhotos returns all photo records.
func (s *Service) ListPhotos(ctx context.Context) []domain.Photo {
	var photos []domain.Photo
	_ = s.instrument(ctx, "list_photos", func(context.Context) (string, error) {
		photos = s.store.ListPhotos()
		return "", nil
	})
	return photos
}

// ListPhotosBySheet returns the photos taken of one sheet.
func (s *Service) ListPhotosBySheet(ctx context.Context, sheetID string) []domain.Photo {
	var photos []domain.Photo
	_ = s.instrument(ctx, "list_photos_by_sheet", func(context.Context) (string, error) {
		for _, photo := range s.store.ListPhotos() {
			if photo.SheetID == sheetID {
				photos = append(photos, photo)
			}
		}
		return sheetID, nil
	})
	return photos
}

// AttachPhoto stores the uploaded file in blob storage and creates the photo
// record in one operation. When the record transaction fails the uploaded
// object is deleted again, so a rules rejection leaves no orphaned file.
func (s *Service) AttachPhoto(ctx context.Context, upload PhotoUpload) (domain.Photo, domain.Result, error) {
	var (
		photo domain.Photo
		res   domain.Result
	)
	err := s.instrument(ctx, "attach_photo", func(ctx context.Context) (string, error) {
		if s.blobs == nil {
			return "", errNoBlobStore
		}
		if upload.Body == nil {
			return "", domain.ValidationError{Entity: domain.EntityPhoto, Field: "body", Message: "must not be empty"}
		}
		if _, ok := s.store.GetSheet(upload.SheetID); !ok {
			return "", domain.NotFoundError{Entity: domain.EntitySheet, ID: upload.SheetID}
		}
		photoID := newEntityID()
		key := blob.PhotoKey(photoID, upload.Filename)
		if _, err := s.blobs.Put(ctx, key, upload.Body, blob.PutOptions{
			ContentType: upload.ContentType,
			Metadata:    map[string]string{"sheet_id": upload.SheetID},
		}); err != nil {
			return "", fmt.Errorf("store photo file: %w", err)
		}
		var txErr error
		res, txErr = s.store.RunInTransaction(ctx, func(tx domain.Transaction) error {
			var err error
			photo, err = tx.CreatePhoto(domain.Photo{
				Base:        domain.Base{ID: photoID},
				SheetID:     upload.SheetID,
				FileKey:     key,
				ContentType: upload.ContentType,
			})
			return err
		})
		if txErr != nil {
			if _, delErr := s.blobs.Delete(ctx, key); delErr != nil {
				s.logger.Warn("orphaned photo file after failed attach", "key", key, "error", delErr)
			}
			return photoID, txErr
		}
		return photo.ID, nil
	})
	if err != nil {
		return domain.Photo{}, res, err
	}
	return photo, res, nil
}

// OpenPhoto streams the stored photograph back. The caller owns the reader
// and must close it.
func (s *Service) OpenPhoto(ctx context.Context, id string) (blob.Info, io.ReadCloser, error) {
	var (
		info blob.Info
		body io.ReadCloser
	)
	err := s.instrument(ctx, "open_photo", func(ctx context.Context) (string, error) {
		photo, ok := s.store.GetPhoto(id)
		if !ok {
			return "", domain.NotFoundError{Entity: domain.EntityPhoto, ID: id}
		}
		if s.blobs == nil {
			return "", errNoBlobStore
		}
		var err error
		info, body, err = s.blobs.Get(ctx, photo.FileKey)
		return id, err
	})
	if err != nil {
		return blob.Info{}, nil, err
	}
	return info, body, nil
}

// PhotoFileURL returns a URL for the stored photograph, presigned with the
// given expiry when the blob driver supports signing and the stable object
// URL otherwise.
func (s *Service) PhotoFileURL(ctx context.Context, id string, expiry time.Duration) (string, error) {
	var fileURL string
	err := s.instrument(ctx, "photo_file_url", func(ctx context.Context) (string, error) {
		photo, ok := s.store.GetPhoto(id)
		if !ok {
			return "", domain.NotFoundError{Entity: domain.EntityPhoto, ID: id}
		}
		if s.blobs == nil {
			return "", errNoBlobStore
		}
		signed, err := s.blobs.PresignURL(ctx, photo.FileKey, blob.SignedURLOptions{Method: "GET", Expiry: expiry})
		if err == nil {
			fileURL = signed
			return id, nil
		}
		if !errors.Is(err, blob.ErrUnsupported) {
			return id, err
		}
		info, err := s.blobs.Head(ctx, photo.FileKey)
		if err != nil {
			return id, err
		}
		if info.URL == "" {
			return id, blob.ErrUnsupported
		}
		fileURL = info.URL
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return fileURL, nil
}

// newEntityID mirrors the store's record ID format so photo IDs can be
// assigned before the blob upload that needs them in its key.
func newEntityID() string {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("entity id: %v", err))
	}
	return hex.EncodeToString(buf[:])
}
