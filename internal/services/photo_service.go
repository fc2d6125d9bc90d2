package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/plantlady/plantlady-api/internal/models"
	"github.com/plantlady/plantlady-api/internal/storage"
	"gorm.io/gorm"
)

var (
	ErrPhotoNotFound      = errors.New("photo not found")
	ErrEventBatchMismatch = errors.New("event not found or doesn't belong to this batch")
)

// PhotoService records photo metadata; the bytes live in the blob
// store keyed by an opaque filename.
type PhotoService struct {
	db    *gorm.DB
	blobs *storage.PhotoStore
}

func NewPhotoService(db *gorm.DB, blobs *storage.PhotoStore) *PhotoService {
	return &PhotoService{db: db, blobs: blobs}
}

// Upload stores the image bytes and creates the metadata row. An
// optional event reference must point at an event on the same batch.
// If the row cannot be written the stored blob is removed again.
func (s *PhotoService) Upload(batchID uint, eventID *uint, userID uint, data []byte, ext, caption string) (*models.Photo, error) {
	var batch models.PlantBatch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	if eventID != nil {
		var event models.Event
		err := s.db.First(&event, *eventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && event.BatchID != batchID) {
			return nil, ErrEventBatchMismatch
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load event: %w", err)
		}
	}

	filename, err := s.blobs.Store(data, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to store photo: %w", err)
	}

	photo := models.Photo{
		BatchID:  batchID,
		EventID:  eventID,
		UserID:   userID,
		Filename: filename,
		Caption:  caption,
	}
	if err := s.db.Create(&photo).Error; err != nil {
		if rmErr := s.blobs.Delete(filename); rmErr != nil {
			slog.Warn("failed to remove orphaned blob", "filename", filename, "error", rmErr)
		}
		return nil, fmt.Errorf("failed to create photo: %w", err)
	}
	return &photo, nil
}

func (s *PhotoService) List(batchID, eventID, userID uint, limit, offset int) ([]models.Photo, error) {
	query := s.db.Model(&models.Photo{})
	if batchID != 0 {
		query = query.Where("batch_id = ?", batchID)
	}
	if eventID != 0 {
		query = query.Where("event_id = ?", eventID)
	}
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}

	var photos []models.Photo
	err := query.Order("taken_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list photos: %w", err)
	}
	return photos, nil
}

func (s *PhotoService) Get(photoID uint) (*models.Photo, error) {
	var photo models.Photo
	if err := s.db.First(&photo, photoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPhotoNotFound
		}
		return nil, fmt.Errorf("failed to load photo: %w", err)
	}
	return &photo, nil
}

func (s *PhotoService) UpdateMeta(photoID uint, caption *string, takenAt *time.Time) (*models.Photo, error) {
	photo, err := s.Get(photoID)
	if err != nil {
		return nil, err
	}

	if caption != nil {
		photo.Caption = *caption
	}
	if takenAt != nil {
		photo.TakenAt = takenAt
	}

	if err := s.db.Save(photo).Error; err != nil {
		return nil, fmt.Errorf("failed to update photo: %w", err)
	}
	return photo, nil
}

// Delete removes the metadata row and then the blob. Blob removal is
// best-effort: the record is gone either way.
func (s *PhotoService) Delete(photoID uint) error {
	photo, err := s.Get(photoID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(photo).Error; err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}

	if err := s.blobs.Delete(photo.Filename); err != nil {
		slog.Warn("failed to delete photo blob", "filename", photo.Filename, "error", err)
	}
	return nil
}

// Gallery returns all photos for a batch, newest first.
func (s *PhotoService) Gallery(batchID uint) ([]models.Photo, error) {
	var batch models.PlantBatch
	if err := s.db.First(&batch, batchID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBatchNotFound
		}
		return nil, fmt.Errorf("failed to load batch: %w", err)
	}

	var photos []models.Photo
	err := s.db.Where("batch_id = ?", batchID).
		Order("taken_at DESC, created_at DESC").
		Find(&photos).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load gallery: %w", err)
	}
	return photos, nil
}

// CleanupBlobs removes stored files for the given filenames,
// best-effort. Used after a batch cascade delete commits.
func (s *PhotoService) CleanupBlobs(filenames []string) {
	for _, name := range filenames {
		if err := s.blobs.Delete(name); err != nil {
			slog.Warn("failed to delete photo blob", "filename", name, "error", err)
		}
	}
}
