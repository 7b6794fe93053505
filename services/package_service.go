package services

import (
	"context"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/utils"

	"gorm.io/gorm"
)

type PackageService struct {
	DB       *gorm.DB
	Activity *ActivityService
}

func NewPackageService(db *gorm.DB, activity *ActivityService) *PackageService {
	return &PackageService{DB: db, Activity: activity}
}

type PackageInput struct {
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Price         *utils.Number `json:"price"`
	CategoryID    *utils.Number `json:"categoryId"`
	DestinationID *utils.Number `json:"destinationId"`
}

type PackagePatch struct {
	Title         utils.Optional[string]       `json:"title"`
	Description   utils.Optional[string]       `json:"description"`
	Price         utils.Optional[utils.Number] `json:"price"`
	CategoryID    utils.Optional[utils.Number] `json:"categoryId"`
	DestinationID utils.Optional[utils.Number] `json:"destinationId"`
}

type PackageFilter struct {
	CategoryID    *uint
	DestinationID *uint
}

func (s *PackageService) List(ctx context.Context, f PackageFilter) ([]models.Package, error) {
	q := newestFirst(s.DB.WithContext(ctx)).Preload("Category").Preload("Destination")
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.DestinationID != nil {
		q = q.Where("destination_id = ?", *f.DestinationID)
	}

	packages := []models.Package{}
	if err := q.Find(&packages).Error; err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		return packages, nil
	}

	ids := make([]uint, len(packages))
	for i := range packages {
		ids[i] = packages[i].ID
	}
	counts, err := countBy(ctx, s.DB, &models.Image{}, "package_id", ids)
	if err != nil {
		return nil, err
	}
	covers, err := s.coverImages(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i := range packages {
		id := packages[i].ID
		packages[i].Count = &models.PackageCount{Images: counts[id]}
		packages[i].Images = []models.ImageRef{}
		if cover, ok := covers[id]; ok {
			packages[i].Images = append(packages[i].Images, cover)
		}
	}
	return packages, nil
}

// coverImages picks the oldest image of each package for list thumbnails.
func (s *PackageService) coverImages(ctx context.Context, ids []uint) (map[uint]models.ImageRef, error) {
	var images []models.ImageRef
	err := s.DB.WithContext(ctx).
		Where("package_id IN ?", ids).
		Order("id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}

	covers := make(map[uint]models.ImageRef, len(ids))
	for _, img := range images {
		if img.PackageID == nil {
			continue
		}
		if _, ok := covers[*img.PackageID]; !ok {
			covers[*img.PackageID] = img
		}
	}
	return covers, nil
}

func (s *PackageService) Get(ctx context.Context, id uint) (*models.Package, error) {
	var pkg models.Package
	err := s.DB.WithContext(ctx).
		Preload("Category").
		Preload("Destination").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		First(&pkg, id).Error
	if err != nil {
		return nil, lookupErr(err, "Package")
	}
	if pkg.Images == nil {
		pkg.Images = []models.ImageRef{}
	}
	pkg.Count = &models.PackageCount{Images: int64(len(pkg.Images))}
	return &pkg, nil
}

func (s *PackageService) Create(ctx context.Context, in PackageInput) (*models.Package, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" || description == "" || in.Price == nil || in.Price.Empty {
		return nil, invalid("Title, description, and price are required")
	}
	if in.Price.Value < 0 {
		return nil, invalid("Price must not be negative")
	}

	pkg := models.Package{
		Title:       title,
		Description: description,
		Price:       in.Price.Value,
	}
	var err error
	if pkg.CategoryID, err = s.reference(ctx, in.CategoryID, &models.Category{}, "Category"); err != nil {
		return nil, err
	}
	if pkg.DestinationID, err = s.reference(ctx, in.DestinationID, &models.Destination{}, "Destination"); err != nil {
		return nil, err
	}

	if err := s.DB.WithContext(ctx).Create(&pkg).Error; err != nil {
		return nil, err
	}

	s.Activity.Record(ctx, ActionCreate, "package", pkg.ID, map[string]any{
		"title": title, "price": pkg.Price, "categoryId": pkg.CategoryID, "destinationId": pkg.DestinationID,
	})
	return s.Get(ctx, pkg.ID)
}

// reference resolves an optional foreign key: empty or zero clears it, otherwise the row must exist.
func (s *PackageService) reference(ctx context.Context, n *utils.Number, model any, resource string) (*uint, error) {
	if n == nil {
		return nil, nil
	}
	id := n.ID()
	if id == nil {
		return nil, nil
	}
	found, err := exists(ctx, s.DB, model, *id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, notFound(resource)
	}
	return id, nil
}

func (s *PackageService) Update(ctx context.Context, id uint, patch PackagePatch) (*models.Package, error) {
	var pkg models.Package
	if err := s.DB.WithContext(ctx).First(&pkg, id).Error; err != nil {
		return nil, lookupErr(err, "Package")
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
		ref, err := s.reference(ctx, optionalNumber(patch.CategoryID), &models.Category{}, "Category")
		if err != nil {
			return nil, err
		}
		updates["category_id"] = ref
	}
	if patch.DestinationID.Set {
		ref, err := s.reference(ctx, optionalNumber(patch.DestinationID), &models.Destination{}, "Destination")
		if err != nil {
			return nil, err
		}
		updates["destination_id"] = ref
	}

	if len(updates) > 0 {
		if err := s.DB.WithContext(ctx).Model(&pkg).Updates(updates).Error; err != nil {
			return nil, err
		}
		s.Activity.Record(ctx, ActionUpdate, "package", id, updates)
	}
	return s.Get(ctx, id)
}

func (s *PackageService) Delete(ctx context.Context, id uint) error {
	result := s.DB.WithContext(ctx).Delete(&models.Package{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound("Package")
	}
	s.Activity.Record(ctx, ActionDelete, "package", id, nil)
	return nil
}

func optionalNumber(o utils.Optional[utils.Number]) *utils.Number {
	if o.Null {
		return nil
	}
	return &o.Value
}
