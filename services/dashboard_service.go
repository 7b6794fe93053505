package services

import (
	"context"
	"time"

	"github.com/AriJaya07/voyra-tour-bali/models"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const (
	trendMonths     = 6
	monthLabelShape = "Jan 06"
	recentLimit     = 5
)

type DashboardService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db, Now: time.Now}
}

type StatCounts struct {
	Categories   int64 `json:"categories"`
	Destinations int64 `json:"destinations"`
	Packages     int64 `json:"packages"`
	Images       int64 `json:"images"`
}

type StatValues struct {
	TotalPackageValue     float64 `json:"totalPackageValue"`
	AvgPackagePrice       float64 `json:"avgPackagePrice"`
	MaxPackagePrice       float64 `json:"maxPackagePrice"`
	MinPackagePrice       float64 `json:"minPackagePrice"`
	TotalDestinationValue float64 `json:"totalDestinationValue"`
	AvgDestinationPrice   float64 `json:"avgDestinationPrice"`
}

type CategoryLabel struct {
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

type DestinationLabel struct {
	Title string `json:"title"`
}

type ImageCount struct {
	Images int64 `json:"images"`
}

type RecentDestination struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	Price     float64        `json:"price"`
	CreatedAt time.Time      `json:"createdAt"`
	Category  *CategoryLabel `json:"category"`
	Count     ImageCount     `json:"_count"`
}

type RecentPackage struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Price       float64           `json:"price"`
	CreatedAt   time.Time         `json:"createdAt"`
	Category    *CategoryLabel    `json:"category"`
	Destination *DestinationLabel `json:"destination"`
	Count       ImageCount        `json:"_count"`
}

type TopPackage struct {
	ID          uint              `json:"id"`
	Title       string            `json:"title"`
	Price       float64           `json:"price"`
	Category    *CategoryLabel    `json:"category"`
	Destination *DestinationLabel `json:"destination"`
}

type CategoryBreakdown struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	Packages     int64  `json:"packages"`
	Destinations int64  `json:"destinations"`
}

// MonthlyTrend holds creation counts for the last six calendar months, oldest first.
type MonthlyTrend struct {
	Labels       []string `json:"labels"`
	Packages     []int    `json:"packages"`
	Destinations []int    `json:"destinations"`
}

type DashboardStats struct {
	Counts             StatCounts          `json:"counts"`
	Values             StatValues          `json:"values"`
	RecentDestinations []RecentDestination `json:"recentDestinations"`
	RecentPackages     []RecentPackage     `json:"recentPackages"`
	CategoryBreakdown  []CategoryBreakdown `json:"categoryBreakdown"`
	TopPackages        []TopPackage        `json:"topPackages"`
	MonthlyData        MonthlyTrend        `json:"monthlyData"`
}

type priceAggregate struct {
	TotalPrice float64
	AvgPrice   float64
	MaxPrice   float64
	MinPrice   float64
}

// Stats gathers the overview payload. Independent reads run concurrently on the shared pool.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	stats := &DashboardStats{}

	g, gctx := errgroup.WithContext(ctx)
	db := s.DB.WithContext(gctx)

	g.Go(func() error { return db.Model(&models.Category{}).Count(&stats.Counts.Categories).Error })
	g.Go(func() error { return db.Model(&models.Destination{}).Count(&stats.Counts.Destinations).Error })
	g.Go(func() error { return db.Model(&models.Package{}).Count(&stats.Counts.Packages).Error })
	g.Go(func() error { return db.Model(&models.Image{}).Count(&stats.Counts.Images).Error })
	g.Go(func() (err error) {
		stats.RecentDestinations, err = s.recentDestinations(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.RecentPackages, err = s.recentPackages(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.CategoryBreakdown, err = s.categoryBreakdown(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TopPackages, err = s.topPackages(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := s.Now()
	windowStart := monthStart(now, -(trendMonths - 1))
	var packageAgg, destinationAgg priceAggregate
	var packageTimes, destinationTimes []time.Time

	g, gctx = errgroup.WithContext(ctx)
	db = s.DB.WithContext(gctx)
	g.Go(func() error {
		return db.Model(&models.Package{}).
			Select("COALESCE(SUM(price), 0) AS total_price, COALESCE(AVG(price), 0) AS avg_price, " +
				"COALESCE(MAX(price), 0) AS max_price, COALESCE(MIN(price), 0) AS min_price").
			Scan(&packageAgg).Error
	})
	g.Go(func() error {
		return db.Model(&models.Destination{}).
			Select("COALESCE(SUM(price), 0) AS total_price, COALESCE(AVG(price), 0) AS avg_price").
			Scan(&destinationAgg).Error
	})
	g.Go(func() error {
		return db.Model(&models.Package{}).Where("created_at >= ?", windowStart).
			Order("created_at ASC").Pluck("created_at", &packageTimes).Error
	})
	g.Go(func() error {
		return db.Model(&models.Destination{}).Where("created_at >= ?", windowStart).
			Order("created_at ASC").Pluck("created_at", &destinationTimes).Error
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Values = StatValues{
		TotalPackageValue:     packageAgg.TotalPrice,
		AvgPackagePrice:       packageAgg.AvgPrice,
		MaxPackagePrice:       packageAgg.MaxPrice,
		MinPackagePrice:       packageAgg.MinPrice,
		TotalDestinationValue: destinationAgg.TotalPrice,
		AvgDestinationPrice:   destinationAgg.AvgPrice,
	}
	stats.MonthlyData = BuildMonthlyTrend(now, packageTimes, destinationTimes)
	return stats, nil
}

func (s *DashboardService) recentDestinations(ctx context.Context) ([]RecentDestination, error) {
	var rows []models.Destination
	err := newestFirst(s.DB.WithContext(ctx)).Preload("Category").Limit(recentLimit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	images, err := countBy(ctx, s.DB, &models.Image{}, "destination_id", ids)
	if err != nil {
		return nil, err
	}

	out := make([]RecentDestination, 0, len(rows))
	for _, d := range rows {
		out = append(out, RecentDestination{
			ID:        d.ID,
			Title:     d.Title,
			Price:     d.Price,
			CreatedAt: d.CreatedAt,
			Category:  categoryLabel(d.Category, true),
			Count:     ImageCount{Images: images[d.ID]},
		})
	}
	return out, nil
}

func (s *DashboardService) recentPackages(ctx context.Context) ([]RecentPackage, error) {
	var rows []models.Package
	err := newestFirst(s.DB.WithContext(ctx)).
		Preload("Category").Preload("Destination").
		Limit(recentLimit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	images, err := countBy(ctx, s.DB, &models.Image{}, "package_id", ids)
	if err != nil {
		return nil, err
	}

	out := make([]RecentPackage, 0, len(rows))
	for _, p := range rows {
		out = append(out, RecentPackage{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			CreatedAt:   p.CreatedAt,
			Category:    categoryLabel(p.Category, false),
			Destination: destinationLabel(p.Destination),
			Count:       ImageCount{Images: images[p.ID]},
		})
	}
	return out, nil
}

func (s *DashboardService) topPackages(ctx context.Context) ([]TopPackage, error) {
	var rows []models.Package
	err := s.DB.WithContext(ctx).
		Preload("Category").Preload("Destination").
		Order("price DESC").Order("id ASC").
		Limit(recentLimit).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]TopPackage, 0, len(rows))
	for _, p := range rows {
		out = append(out, TopPackage{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Category:    categoryLabel(p.Category, false),
			Destination: destinationLabel(p.Destination),
		})
	}
	return out, nil
}

func (s *DashboardService) categoryBreakdown(ctx context.Context) ([]CategoryBreakdown, error) {
	var categories []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	packages, err := countBy(ctx, s.DB, &models.Package{}, "category_id", nil)
	if err != nil {
		return nil, err
	}
	destinations, err := countBy(ctx, s.DB, &models.Destination{}, "category_id", nil)
	if err != nil {
		return nil, err
	}

	out := make([]CategoryBreakdown, 0, len(categories))
	for _, c := range categories {
		out = append(out, CategoryBreakdown{
			Name:         c.Name,
			Slug:         c.Slug,
			Packages:     packages[c.ID],
			Destinations: destinations[c.ID],
		})
	}
	return out, nil
}

func categoryLabel(c *models.CategoryRef, withSlug bool) *CategoryLabel {
	if c == nil {
		return nil
	}
	label := &CategoryLabel{Name: c.Name}
	if withSlug {
		label.Slug = c.Slug
	}
	return label
}

func destinationLabel(d *models.DestinationRef) *DestinationLabel {
	if d == nil {
		return nil
	}
	return &DestinationLabel{Title: d.Title}
}

func monthStart(now time.Time, offset int) time.Time {
	return time.Date(now.Year(), now.Month()+time.Month(offset), 1, 0, 0, 0, 0, now.Location())
}

// BuildMonthlyTrend buckets creation times into the six calendar months ending with now's month.
// Months without records are zero; times outside the window are ignored.
func BuildMonthlyTrend(now time.Time, packages, destinations []time.Time) MonthlyTrend {
	labels := make([]string, 0, trendMonths)
	for i := trendMonths - 1; i >= 0; i-- {
		labels = append(labels, monthStart(now, -i).Format(monthLabelShape))
	}

	countByMonth := func(times []time.Time) []int {
		byLabel := make(map[string]int, trendMonths)
		for _, t := range times {
			byLabel[t.In(now.Location()).Format(monthLabelShape)]++
		}
		counts := make([]int, len(labels))
		for i, label := range labels {
			counts[i] = byLabel[label]
		}
		return counts
	}

	return MonthlyTrend{
		Labels:       labels,
		Packages:     countByMonth(packages),
		Destinations: countByMonth(destinations),
	}
}
