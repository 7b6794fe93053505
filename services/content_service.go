package services

import (
	"context"
	"strings"
	"time"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"gorm.io/gorm"
)

type ContentService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewContentService(db *gorm.DB, activity *ActivityService) *ContentService {
	return &ContentService{DB: db, Activity: activity}
}

type ContentInput struct {
	Title         string        `json:"title"`
	SubTitle      *string       `json:"subTitle"`
	Description   string        `json:"description"`
	Image1        *string       `json:"image1"`
	Image2        *string       `json:"image2"`
	Image3        *string       `json:"image3"`
	Image4        *string       `json:"image4"`
	Image5        *string       `json:"image5"`
	ImageMain     *string       `json:"imageMain"`
	DateAvailable string        `json:"dateAvailable"`
	IsAvailable   *bool         `json:"isAvailable"`
	DestinationID *utils.Number `json:"destinationId"`
}

type ContentPatch struct {
	Title         utils.Optional[string]       `json:"title"`
	SubTitle      utils.Optional[string]       `json:"subTitle"`
	Description   utils.Optional[string]       `json:"description"`
	Image1        utils.Optional[string]       `json:"image1"`
	Image2        utils.Optional[string]       `json:"image2"`
	Image3        utils.Optional[string]       `json:"image3"`
	Image4        utils.Optional[string]       `json:"image4"`
	Image5        utils.Optional[string]       `json:"image5"`
	ImageMain     utils.Optional[string]       `json:"imageMain"`
	DateAvailable utils.Optional[string]       `json:"dateAvailable"`
	IsAvailable   utils.Optional[bool]         `json:"isAvailable"`
	DestinationID utils.Optional[utils.Number] `json:"destinationId"`
}

var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

func parseDateAvailable(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid("Invalid date available")
}

func (s *ContentService) List(ctx context.Context, destinationID *uint) ([]models.Content, error) {
	q := newestFirst(s.DB.WithContext(ctx)).Preload("Destination")
	if destinationID != nil {
		q = q.Where("destination_id = ?", *destinationID)
	}
	contents := []models.Content{}
	err := q.Find(&contents).Error
	return contents, err
}

func (s *ContentService) Get(ctx context.Context, id uint) (*models.Content, error) {
	var content models.Content
	if err := s.DB.WithContext(ctx).Preload("Destination").First(&content, id).Error; err != nil {
		return nil, lookupErr(err, "Content")
	}
	return &content, nil
}

func (s *ContentService) Create(ctx context.Context, in ContentInput) (*models.Content, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	switch {
	case title == "":
		return nil, invalid("Title is required")
	case description == "":
		return nil, invalid("Description is required")
	case in.DestinationID == nil || in.DestinationID.ID() == nil:
		return nil, invalid("Destination is required")
	case strings.TrimSpace(in.DateAvailable) == "":
		return nil, invalid("Date available is required")
	}

	date, err := parseDateAvailable(in.DateAvailable)
	if err != nil {
		return nil, err
	}
	destinationID := *in.DestinationID.ID()
	if err := requireDestination(ctx, s.DB, destinationID); err != nil {
		return nil, err
	}

	available := true
	if in.IsAvailable != nil {
		available = *in.IsAvailable
	}

	content := models.Content{
		Title:         title,
		SubTitle:      trimmedOrNil(in.SubTitle),
		Description:   description,
		Image1:        trimmedOrNil(in.Image1),
		Image2:        trimmedOrNil(in.Image2),
		Image3:        trimmedOrNil(in.Image3),
		Image4:        trimmedOrNil(in.Image4),
		Image5:        trimmedOrNil(in.Image5),
		ImageMain:     trimmedOrNil(in.ImageMain),
		DateAvailable: date,
		IsAvailable:   available,
		DestinationID: destinationID,
	}
	if err := s.DB.WithContext(ctx).Create(&content).Error; err != nil {
		return nil, err
	}

	s.Activity.Record(ctx, ActionCreate, "content", content.ID, map[string]any{
		"title": title, "destinationId": destinationID, "isAvailable": available,
	})
	return s.Get(ctx, content.ID)
}

func (s *ContentService) Update(ctx context.Context, id uint, patch ContentPatch) (*models.Content, error) {
	var content models.Content
	if err := s.DB.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, lookupErr(err, "Content")
	}

	updates := map[string]any{}
	if err := requiredText(patch.Title, "title", updates, "Title is required"); err != nil {
		return nil, err
	}
	if err := requiredText(patch.Description, "description", updates, "Description is required"); err != nil {
		return nil, err
	}
	optionalText(patch.SubTitle, "sub_title", updates)
	optionalText(patch.Image1, "image1", updates)
	optionalText(patch.Image2, "image2", updates)
	optionalText(patch.Image3, "image3", updates)
	optionalText(patch.Image4, "image4", updates)
	optionalText(patch.Image5, "image5", updates)
	optionalText(patch.ImageMain, "image_main", updates)
	if patch.DateAvailable.Set {
		if patch.DateAvailable.Null || strings.TrimSpace(patch.DateAvailable.Value) == "" {
			return nil, invalid("Date available is required")
		}
		date, err := parseDateAvailable(patch.DateAvailable.Value)
		if err != nil {
			return nil, err
		}
		updates["date_available"] = date
	}
	if patch.IsAvailable.Set && !patch.IsAvailable.Null {
		updates["is_available"] = patch.IsAvailable.Value
	}
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
		if err := s.DB.WithContext(ctx).Model(&content).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.Activity.Record(ctx, ActionUpdate, "content", id, updates)
	}
	return s.Get(ctx, id)
}

func (s *ContentService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Content{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Content")
	}
	s.Activity.Record(ctx, ActionDelete, "content", id, nil)
	return nil
}
