package services

import (
	"context"
	"fmt"
	"io"

	"github.com/AriJaya07/voyra-tour-bali/models"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportTimeLayout = "2006-01-02 15:04"

// ExportService writes the catalogue as an .xlsx workbook for offline review.
type ExportService struct {
	DB *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{DB: db}
}

func (s *ExportService) WriteCatalog(ctx context.Context, w io.Writer) error {
	db := s.DB.WithContext(ctx)

	var categories []models.Category
	if err := db.Order("name ASC").Find(&categories).Error; err != nil {
		return err
	}
	var destinations []models.Destination
	if err := db.Preload("Category").Order("id ASC").Find(&destinations).Error; err != nil {
		return err
	}
	var packages []models.Package
	if err := db.Preload("Category").Preload("Destination").Order("id ASC").Find(&packages).Error; err != nil {
		return err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Categories"); err != nil {
		return err
	}
	rows := [][]any{{"ID", "Name", "Slug", "Description", "Created"}}
	for _, c := range categories {
		rows = append(rows, []any{c.ID, c.Name, c.Slug, deref(c.Description), c.CreatedAt.Format(exportTimeLayout)})
	}
	if err := writeSheet(f, "Categories", rows); err != nil {
		return err
	}

	rows = [][]any{{"ID", "Title", "Category", "Price", "Created"}}
	for _, d := range destinations {
		category := ""
		if d.Category != nil {
			category = d.Category.Name
		}
		rows = append(rows, []any{d.ID, d.Title, category, d.Price, d.CreatedAt.Format(exportTimeLayout)})
	}
	if err := writeSheet(f, "Destinations", rows); err != nil {
		return err
	}

	rows = [][]any{{"ID", "Title", "Category", "Destination", "Price", "Created"}}
	for _, p := range packages {
		category, destination := "", ""
		if p.Category != nil {
			category = p.Category.Name
		}
		if p.Destination != nil {
			destination = p.Destination.Title
		}
		rows = append(rows, []any{p.ID, p.Title, category, destination, p.Price, p.CreatedAt.Format(exportTimeLayout)})
	}
	if err := writeSheet(f, "Packages", rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	_, err := f.WriteTo(w)
	return err
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	if idx, _ := f.GetSheetIndex(sheet); idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
