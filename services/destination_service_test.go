package services

import (
	"context"
	"testing"

	"github.com/AriJaya07/voyra-tour-bali/models"
	"github.com/AriJaya07/voyra-tour-bali/utils"
)

func TestDestinationCreateRequiresAllFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewDestinationService(db, nil)
	c := seedCategory(t, db, "Beach", "beach")
	price := utils.NumberOf(150)
	category := utils.NumberOf(float64(c.ID))

	cases := []struct {
		name string
		in   DestinationInput
	}{
		{"no price", DestinationInput{Title: "Kuta", Description: "Surf", CategoryID: &category}},
		{"empty price string", decodePatch[DestinationInput](t, `{"title":"Kuta","description":"Surf","price":"","categoryId":1}`)},
		{"no title", DestinationInput{Description: "Surf", Price: &price, CategoryID: &category}},
		{"no category", DestinationInput{Title: "Kuta", Description: "Surf", Price: &price}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			expectValidation(t, err, "All fields are required")
		})
	}
}

func TestDestinationCreateAcceptsNumericStrings(t *testing.T) {
	db := newTestDB(t)
	svc := NewDestinationService(db, nil)
	seedCategory(t, db, "Beach", "beach")

	in := decodePatch[DestinationInput](t, `{"title":" Kuta ","description":"Surf","price":"150000","categoryId":"1"}`)
	d, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if d.Title != "Kuta" || d.Price != 150000 || d.CategoryID != 1 {
		t.Fatalf("unexpected destination %+v", d)
	}
	if d.Category == nil || d.Category.Slug != "beach" {
		t.Fatalf("expected category projection, got %+v", d.Category)
	}
	if d.Count == nil || d.Count.Images != 0 {
		t.Fatalf("expected zero counts, got %+v", d.Count)
	}

	missing := decodePatch[DestinationInput](t, `{"title":"X","description":"Y","price":1,"categoryId":77}`)
	_, err = svc.Create(context.Background(), missing)
	expectNotFound(t, err, "Category not found")
}

func TestDestinationUpdateLeavesAbsentFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewDestinationService(db, nil)
	ctx := context.Background()
	c := seedCategory(t, db, "Beach", "beach")
	d := seedDestination(t, db, c.ID, "Kuta", 100)

	got, err := svc.Update(ctx, d.ID, decodePatch[DestinationPatch](t, `{"price":"250.5"}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Price != 250.5 || got.Title != "Kuta" || got.Description != d.Description || got.CategoryID != c.ID {
		t.Fatalf("unexpected destination after patch: %+v", got)
	}

	_, err = svc.Update(ctx, d.ID, decodePatch[DestinationPatch](t, `{"title":""}`))
	expectValidation(t, err, "Title cannot be empty")

	_, err = svc.Update(ctx, d.ID, decodePatch[DestinationPatch](t, `{"categoryId":null}`))
	expectValidation(t, err, "Category is required")

	_, err = svc.Update(ctx, 404, decodePatch[DestinationPatch](t, `{"title":"x"}`))
	expectNotFound(t, err, "Destination not found")
}

func TestDestinationDeleteCascadesAndNulls(t *testing.T) {
	db := newTestDB(t)
	svc := NewDestinationService(db, nil)
	ctx := context.Background()
	c := seedCategory(t, db, "Beach", "beach")
	d := seedDestination(t, db, c.ID, "Kuta", 100)
	p := seedPackage(t, db, "Surf camp", 80, nil, uintPtr(d.ID))
	if err := db.Create(&models.Location{Title: "Beach club", DestinationID: d.ID}).Error; err != nil {
		t.Fatalf("seed location: %v", err)
	}

	if err := svc.Delete(ctx, d.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var locations int64
	db.Model(&models.Location{}).Count(&locations)
	if locations != 0 {
		t.Fatalf("locations should cascade, %d left", locations)
	}
	var reloaded models.Package
	if err := db.First(&reloaded, p.ID).Error; err != nil {
		t.Fatalf("package should survive: %v", err)
	}
	if reloaded.DestinationID != nil {
		t.Fatalf("package destination should be nulled, got %d", *reloaded.DestinationID)
	}

	expectNotFound(t, svc.Delete(ctx, d.ID), "Destination not found")
}

func TestDestinationListFilterAndCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewDestinationService(db, nil)
	beach := seedCategory(t, db, "Beach", "beach")
	culture := seedCategory(t, db, "Culture", "culture")
	kuta := seedDestination(t, db, beach.ID, "Kuta", 100)
	seedDestination(t, db, culture.ID, "Ubud", 120)
	seedPackage(t, db, "Surf", 10, nil, uintPtr(kuta.ID))
	if err := db.Create(&models.Image{URL: "https://x/y/z.png", DestinationID: uintPtr(kuta.ID)}).Error; err != nil {
		t.Fatalf("seed image: %v", err)
	}

	list, err := svc.List(context.Background(), DestinationFilter{CategoryID: &beach.ID})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != kuta.ID {
		t.Fatalf("expected only Kuta, got %+v", list)
	}
	if list[0].Count.Packages != 1 || list[0].Count.Images != 1 || list[0].Count.Locations != 0 {
		t.Fatalf("unexpected counts %+v", list[0].Count)
	}
}
