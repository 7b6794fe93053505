package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImageHost is the hosted-image collaborator: it stores a buffer under folder and
// returns a durable URL plus the identifier needed to delete it.
type ImageHost interface {
	Upload(ctx context.Context, data []byte, folder, publicID string) (secureURL, assetID string, err error)
	Destroy(ctx context.Context, publicID string) error
}

// ErrRemoteImage wraps every failure of the hosted-image collaborator.
var ErrRemoteImage = errors.New("image host request failed")

const DefaultMaxImageBytes int64 = 5 * 1024 * 1024

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp", "image/gif"}

type ImageService struct {
	DB       *gorm.DB
	Host     ImageHost
	Folder   string
	MaxBytes int64
	Activity *ActivityService
}

func NewImageService(db *gorm.DB, host ImageHost, folder string, maxBytes int64, activity *ActivityService) *ImageService {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxImageBytes
	}
	return &ImageService{DB: db, Host: host, Folder: folder, MaxBytes: maxBytes, Activity: activity}
}

type UploadInput struct {
	Data          []byte
	Size          int64
	DestinationID *uint
	PackageID     *uint
}

type ImageFilter struct {
	DestinationID *uint
	PackageID     *uint
}

type ImagePatch struct {
	DestinationID utils.Optional[utils.Number] `json:"destinationId"`
	PackageID     utils.Optional[utils.Number] `json:"packageId"`
}

func (s *ImageService) withRefs(ctx context.Context) *gorm.DB {
	return s.DB.WithContext(ctx).Preload("Destination").Preload("Package")
}

func (s *ImageService) List(ctx context.Context, f ImageFilter) ([]models.Image, error) {
	q := newestFirst(s.withRefs(ctx))
	if f.DestinationID != nil {
		q = q.Where("destination_id = ?", *f.DestinationID)
	}
	if f.PackageID != nil {
		q = q.Where("package_id = ?", *f.PackageID)
	}
	images := []models.Image{}
	err := q.Find(&images).Error
	return images, err
}

func (s *ImageService) Get(ctx context.Context, id uint) (*models.Image, error) {
	var image models.Image
	if err := s.withRefs(ctx).First(&image, id).Error; err != nil {
		return nil, lookupErr(err, "Image")
	}
	return &image, nil
}

// CheckFile enforces the size ceiling and the MIME allow-list. The type is sniffed
// from the bytes, not taken from the client's Content-Type.
func (s *ImageService) CheckFile(data []byte, size int64) error {
	if size > s.MaxBytes || int64(len(data)) > s.MaxBytes {
		return invalid(fmt.Sprintf("File size must be under %dMB", s.MaxBytes/(1024*1024)))
	}
	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return invalid("Only JPEG, PNG, WEBP, GIF allowed")
	}
	return nil
}

// Upload validates the file, pushes it to the image host and only then inserts the row.
func (s *ImageService) Upload(ctx context.Context, in UploadInput) (*models.Image, error) {
	if err := s.CheckFile(in.Data, in.Size); err != nil {
		return nil, err
	}
	if err := s.checkLinks(ctx, in.DestinationID, in.PackageID); err != nil {
		return nil, err
	}
	if s.Host == nil {
		return nil, fmt.Errorf("%w: no image host configured", ErrRemoteImage)
	}

	secureURL, publicID, err := s.Host.Upload(ctx, in.Data, s.Folder, uuid.NewString())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRemoteImage, err)
	}

	image := models.Image{
		URL:           secureURL,
		PublicID:      publicID,
		DestinationID: in.DestinationID,
		PackageID:     in.PackageID,
	}
	if err := s.DB.WithContext(ctx).Create(&image).Error; err != nil {
		if derr := s.Host.Destroy(context.WithoutCancel(ctx), publicID); derr != nil {
			log.Printf("❌ orphaned hosted image %s after insert failure: %v", publicID, derr)
		}
		return nil, err
	}

	s.Activity.Record(ctx, ActionCreate, "image", image.ID, map[string]any{
		"url": secureURL, "destinationId": in.DestinationID, "packageId": in.PackageID,
	})
	return s.Get(ctx, image.ID)
}

func (s *ImageService) checkLinks(ctx context.Context, destinationID, packageID *uint) error {
	if destinationID != nil {
		if err := requireDestination(ctx, s.DB, *destinationID); err != nil {
			return err
		}
	}
	if packageID != nil {
		found, err := exists(ctx, s.DB, &models.Package{}, *packageID)
		if err != nil {
			return err
		}
		if !found {
			return notFound("Package")
		}
	}
	return nil
}

// Relink moves an image between destinations/packages; falsy ids unlink.
func (s *ImageService) Relink(ctx context.Context, id uint, patch ImagePatch) (*models.Image, error) {
	var image models.Image
	if err := s.DB.WithContext(ctx).First(&image, id).Error; err != nil {
		return nil, lookupErr(err, "Image")
	}

	updates := map[string]any{}
	var destinationID, packageID *uint
	if patch.DestinationID.Set {
		if !patch.DestinationID.Null {
			destinationID = patch.DestinationID.Value.ID()
		}
		updates["destination_id"] = destinationID
	}
	if patch.PackageID.Set {
		if !patch.PackageID.Null {
			packageID = patch.PackageID.Value.ID()
		}
		updates["package_id"] = packageID
	}
	if err := s.checkLinks(ctx, destinationID, packageID); err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&image).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.Activity.Record(ctx, ActionUpdate, "image", id, updates)
	}
	return s.Get(ctx, id)
}

// Delete removes the hosted asset and then the row. The two steps are not atomic:
// a host failure keeps the row, and a DB failure after a successful host delete
// leaves a row pointing at a missing asset. Both cases are logged.
func (s *ImageService) Delete(ctx context.Context, id uint) error {
	var image models.Image
	if err := s.DB.WithContext(ctx).First(&image, id).Error; err != nil {
		return lookupErr(err, "Image")
	}
	if s.Host == nil {
		return fmt.Errorf("%w: no image host configured", ErrRemoteImage)
	}

	publicID := image.PublicID
	if publicID == "" {
		derived, err := utils.PublicIDFromURL(image.URL)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrRemoteImage, err)
		}
		publicID = derived
	}

	if err := s.Host.Destroy(ctx, publicID); err != nil {
		log.Printf("❌ hosted delete failed for image %d (%s), row kept: %v", id, publicID, err)
		return fmt.Errorf("%w: %v", ErrRemoteImage, err)
	}

	result := s.DB.WithContext(ctx).Delete(&models.Image{}, id)
	if result.Error != nil {
		log.Printf("❌ hosted asset %s deleted but image row %d remains: %v", publicID, id, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Image")
	}
	s.Activity.Record(ctx, ActionDelete, "image", id, map[string]any{"publicId": publicID})
	return nil
}
