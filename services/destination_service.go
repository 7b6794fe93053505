package services

import (
	"context"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"gorm.io/gorm"
)

type DestinationService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewDestinationService(db *gorm.DB, activity *ActivityService) *DestinationService {
	return &DestinationService{DB: db, Activity: activity}
}

type DestinationInput struct {
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Price       *utils.Number `json:"price"`
	CategoryID  *utils.Number `json:"categoryId"`
}

type DestinationPatch struct {
	Title       utils.Optional[string]       `json:"title"`
	Description utils.Optional[string]       `json:"description"`
	Price       utils.Optional[utils.Number] `json:"price"`
	CategoryID  utils.Optional[utils.Number] `json:"categoryId"`
}

type DestinationFilter struct {
	CategoryID *uint
}

func (s *DestinationService) List(ctx context.Context, f DestinationFilter) ([]models.Destination, error) {
	q := newestFirst(s.DB.WithContext(ctx)).Preload("Category")
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}

	destinations := []models.Destination{}
	if err := q.Find(&destinations).Error; err != nil {
		return nil, err
	}
	if err := s.attachCounts(ctx, destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

func (s *DestinationService) attachCounts(ctx context.Context, destinations []models.Destination) error {
	if len(destinations) == 0 {
		return nil
	}
	ids := make([]uint, len(destinations))
	for i := range destinations {
		ids[i] = destinations[i].ID
	}

	images, err := countBy(ctx, s.DB, &models.Image{}, "destination_id", ids)
	if err != nil {
		return err
	}
	locations, err := countBy(ctx, s.DB, &models.Location{}, "destination_id", ids)
	if err != nil {
		return err
	}
	contents, err := countBy(ctx, s.DB, &models.Content{}, "destination_id", ids)
	if err != nil {
		return err
	}
	packages, err := countBy(ctx, s.DB, &models.Package{}, "destination_id", ids)
	if err != nil {
		return err
	}

	for i := range destinations {
		id := destinations[i].ID
		destinations[i].Count = &models.DestinationCount{
			Images:    images[id],
			Locations: locations[id],
			Contents:  contents[id],
			Packages:  packages[id],
		}
	}
	return nil
}

func (s *DestinationService) Get(ctx context.Context, id uint) (*models.Destination, error) {
	var destination models.Destination
	if err := s.DB.WithContext(ctx).Preload("Category").First(&destination, id).Error; err != nil {
		return nil, lookupErr(err, "Destination")
	}
	one := []models.Destination{destination}
	if err := s.attachCounts(ctx, one); err != nil {
		return nil, err
	}
	return &one[0], nil
}

func (s *DestinationService) Create(ctx context.Context, in DestinationInput) (*models.Destination, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" || in.Price == nil || in.Price.Empty || in.CategoryID == nil || in.CategoryID.ID() == nil {
		return nil, invalid("All fields are required")
	}
	if in.Price.Value < 0 {
		return nil, invalid("Price must not be negative")
	}

	categoryID := *in.CategoryID.ID()
	found, err := exists(ctx, s.DB, &models.Category{}, categoryID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound("Category")
	}

	destination := models.Destination{
		Title:       title,
		Description: description,
		Price:       in.Price.Value,
		CategoryID:  categoryID,
	}
	if err := s.DB.WithContext(ctx).Create(&destination).Error; err != nil {
		return nil, err
	}

	s.Activity.Record(ctx, ActionCreate, "destination", destination.ID, map[string]any{
		"title": title, "price": destination.Price, "categoryId": categoryID,
	})
	return s.Get(ctx, destination.ID)
}

func (s *DestinationService) Update(ctx context.Context, id uint, patch DestinationPatch) (*models.Destination, error) {
	var destination models.Destination
	if err := s.DB.WithContext(ctx).First(&destination, id).Error; err != nil {
		return nil, lookupErr(err, "Destination")
	}

	updates := map[string]any{}
	if err := requiredText(patch.Title, "title", updates, "Title cannot be empty"); err != nil {
		return nil, err
	}
	if err := requiredText(patch.Description, "description", updates, "Description cannot be empty"); err != nil {
		return nil, err
	}
	if patch.Price.Set {
		if patch.Price.Null || patch.Price.Value.Empty {
			return nil, invalid("Price cannot be empty")
		}
		if patch.Price.Value.Value < 0 {
			return nil, invalid("Price must not be negative")
		}
		updates["price"] = patch.Price.Value.Value
	}
	if patch.CategoryID.Set {
		if patch.CategoryID.Null || patch.CategoryID.Value.ID() == nil {
			return nil, invalid("Category is required")
		}
		categoryID := *patch.CategoryID.Value.ID()
		found, err := exists(ctx, s.DB, &models.Category{}, categoryID)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, notFound("Category")
		}
		updates["category_id"] = categoryID
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&destination).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.Activity.Record(ctx, ActionUpdate, "destination", id, updates)
	}
	return s.Get(ctx, id)
}

func (s *DestinationService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Destination{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return conflict("Destination is still in use")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Destination")
	}
	s.Activity.Record(ctx, ActionDelete, "destination", id, nil)
	return nil
}
