package services

import (
	"context"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"gorm.io/gorm"
)

type CategoryService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewCategoryService(db *gorm.DB, activity *ActivityService) *CategoryService {
	return &CategoryService{DB: db, Activity: activity}
}

type CategoryInput struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// CategoryPatch only touches the keys present in the request body.
type CategoryPatch struct {
	Name        utils.Optional[string] `json:"name"`
	Slug        utils.Optional[string] `json:"slug"`
	Description utils.Optional[string] `json:"description"`
}

const slugFormatMessage = "Slug must contain only lowercase letters, numbers, and hyphens"

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	if err := newestFirst(s.DB.WithContext(ctx)).Find(&categories).Error; err != nil {
		return nil, err
	}
	if err := s.attachCounts(ctx, categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) attachCounts(ctx context.Context, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	ids := make([]uint, len(categories))
	for i := range categories {
		ids[i] = categories[i].ID
	}

	destinations, err := countBy(ctx, s.DB, &models.Destination{}, "category_id", ids)
	if err != nil {
		return err
	}
	packages, err := countBy(ctx, s.DB, &models.Package{}, "category_id", ids)
	if err != nil {
		return err
	}

	for i := range categories {
		categories[i].Count = &models.CategoryCount{
			Destinations: destinations[categories[i].ID],
			Packages:     packages[categories[i].ID],
		}
	}
	return nil
}

// Get returns the category with its destinations and packages.
func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	err := s.DB.WithContext(ctx).
		Preload("Destinations", newestFirst).
		Preload("Packages", newestFirst).
		First(&category, id).Error
	if err != nil {
		return nil, lookupErr(err, "Category")
	}
	category.Count = &models.CategoryCount{
		Destinations: int64(len(category.Destinations)),
		Packages:     int64(len(category.Packages)),
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)
	slug := strings.TrimSpace(in.Slug)
	if name == "" || slug == "" {
		return nil, invalid("Name and slug are required")
	}
	if !utils.IsValidSlug(slug) {
		return nil, invalid(slugFormatMessage)
	}

	taken, err := s.slugTaken(ctx, slug, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, conflict("Slug already exists")
	}

	var description *string
	if in.Description != nil {
		description = utils.NullableText(utils.Some(*in.Description))
	}

	category := models.Category{Name: name, Slug: slug, Description: description}
	if err := s.DB.WithContext(ctx).Create(&category).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, conflict("Slug already exists")
		}
		return nil, err
	}

	s.Activity.Record(ctx, ActionCreate, "category", category.ID, map[string]any{"name": name, "slug": slug})
	return &category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, patch CategoryPatch) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, lookupErr(err, "Category")
	}

	updates := map[string]any{}
	if err := requiredText(patch.Name, "name", updates, "Name cannot be empty"); err != nil {
		return nil, err
	}
	if patch.Slug.Set {
		slug := strings.TrimSpace(patch.Slug.Value)
		if patch.Slug.Null || !utils.IsValidSlug(slug) {
			return nil, invalid(slugFormatMessage)
		}
		taken, err := s.slugTaken(ctx, slug, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, conflict("Slug already taken")
		}
		updates["slug"] = slug
	}
	optionalText(patch.Description, "description", updates)

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&category).Updates(updates).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, conflict("Slug already taken")
			}
			return nil, err
		}
		s.Activity.Record(ctx, ActionUpdate, "category", id, updates)
	}

	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, lookupErr(err, "Category")
	}
	return &category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Category{}, id)
	if result.Error != nil {
		if isForeignKeyViolation(result.Error) {
			return conflict("Category is still in use")
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Category")
	}
	s.Activity.Record(ctx, ActionDelete, "category", id, nil)
	return nil
}

func (s *CategoryService) slugTaken(ctx context.Context, slug string, exceptID uint) (bool, error) {
	q := s.DB.WithContext(ctx).Model(&models.Category{}).Where("slug = ?", slug)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
