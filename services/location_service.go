package services

import (
	"context"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"gorm.io/gorm"
)

type LocationService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewLocationService(db *gorm.DB, activity *ActivityService) *LocationService {
	return &LocationService{DB: db, Activity: activity}
}

type LocationInput struct {
	Title         string        `json:"title"`
	Image         *string       `json:"image"`
	HrefLink      *string       `json:"hrefLink"`
	Description   *string       `json:"description"`
	DestinationID *utils.Number `json:"destinationId"`
}

type LocationPatch struct {
	Title         utils.Optional[string]       `json:"title"`
	Image         utils.Optional[string]       `json:"image"`
	HrefLink      utils.Optional[string]       `json:"hrefLink"`
	Description   utils.Optional[string]       `json:"description"`
	DestinationID utils.Optional[utils.Number] `json:"destinationId"`
}

func (s *LocationService) List(ctx context.Context, destinationID *uint) ([]models.Location, error) {
	q := newestFirst(s.DB.WithContext(ctx)).Preload("Destination")
	if destinationID != nil {
		q = q.Where("destination_id = ?", *destinationID)
	}
	locations := []models.Location{}
	err := q.Find(&locations).Error
	return locations, err
}

func (s *LocationService) Get(ctx context.Context, id uint) (*models.Location, error) {
	var location models.Location
	if err := s.DB.WithContext(ctx).Preload("Destination").First(&location, id).Error; err != nil {
		return nil, lookupErr(err, "Location")
	}
	return &location, nil
}

func (s *LocationService) Create(ctx context.Context, in LocationInput) (*models.Location, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, invalid("Title is required")
	}
	if in.DestinationID == nil || in.DestinationID.ID() == nil {
		return nil, invalid("Destination is required")
	}
	destinationID := *in.DestinationID.ID()
	if err := requireDestination(ctx, s.DB, destinationID); err != nil {
		return nil, err
	}

	location := models.Location{
		Title:         title,
		Image:         trimmedOrNil(in.Image),
		HrefLink:      trimmedOrNil(in.HrefLink),
		Description:   trimmedOrNil(in.Description),
		DestinationID: destinationID,
	}
	if err := s.DB.WithContext(ctx).Create(&location).Error; err != nil {
		return nil, err
	}

	s.Activity.Record(ctx, ActionCreate, "location", location.ID, map[string]any{
		"title": title, "destinationId": destinationID,
	})
	return s.Get(ctx, location.ID)
}

func (s *LocationService) Update(ctx context.Context, id uint, patch LocationPatch) (*models.Location, error) {
	var location models.Location
	if err := s.DB.WithContext(ctx).First(&location, id).Error; err != nil {
		return nil, lookupErr(err, "Location")
	}

	updates := map[string]any{}
	if err := requiredText(patch.Title, "title", updates, "Title is required"); err != nil {
		return nil, err
	}
	optionalText(patch.Image, "image", updates)
	optionalText(patch.HrefLink, "href_link", updates)
	optionalText(patch.Description, "description", updates)
	if patch.DestinationID.Set {
		if patch.DestinationID.Null || patch.DestinationID.Value.ID() == nil {
			return nil, invalid("Destination is required")
		}
		destinationID := *patch.DestinationID.Value.ID()
		if err := requireDestination(ctx, s.DB, destinationID); err != nil {
			return nil, err
		}
		updates["destination_id"] = destinationID
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&location).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.Activity.Record(ctx, ActionUpdate, "location", id, updates)
	}
	return s.Get(ctx, id)
}

func (s *LocationService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Location{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Location")
	}
	s.Activity.Record(ctx, ActionDelete, "location", id, nil)
	return nil
}

func requireDestination(ctx context.Context, db *gorm.DB, id uint) error {
	found, err := exists(ctx, db, &models.Destination{}, id)
	if err != nil {
		return err
	}
	if !found {
		return notFound("Destination")
	}
	return nil
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	return utils.NullableText(utils.Some(*s))
}
