package services

import (
	"context"
	"testing"

	"github.com/AriJaya07/voyra-tour-bali/models"
)

func TestCategoryCreateAndDuplicateSlug(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, NewActivityService(db))
	ctx := context.Background()

	c, err := svc.Create(ctx, CategoryInput{Name: "Adventure Tours", Slug: "adventure-tours"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID == 0 || c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
		t.Fatalf("expected id and timestamps, got %+v", c)
	}

	_, err = svc.Create(ctx, CategoryInput{Name: "Other", Slug: "adventure-tours"})
	expectConflict(t, err, "Slug already exists")

	var n int64
	db.Model(&models.Category{}).Count(&n)
	if n != 1 {
		t.Fatalf("expected 1 category, got %d", n)
	}
}

func TestCategoryCreateValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, nil)

	cases := []struct {
		name string
		in   CategoryInput
		msg  string
	}{
		{"missing name", CategoryInput{Slug: "x"}, "Name and slug are required"},
		{"missing slug", CategoryInput{Name: "X"}, "Name and slug are required"},
		{"uppercase slug", CategoryInput{Name: "X", Slug: "Beach"}, slugFormatMessage},
		{"space in slug", CategoryInput{Name: "X", Slug: "beach tours"}, slugFormatMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tc.in)
			expectValidation(t, err, tc.msg)
		})
	}
}

func TestCategoryUpdatePatchSemantics(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, nil)
	ctx := context.Background()

	desc := "Sun and sand"
	c, err := svc.Create(ctx, CategoryInput{Name: "Beach", Slug: "beach", Description: &desc})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	seedCategory(t, db, "Culture", "culture")

	updated, err := svc.Update(ctx, c.ID, decodePatch[CategoryPatch](t, `{"name":"Beaches"}`))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Beaches" || updated.Slug != "beach" || updated.Description == nil || *updated.Description != desc {
		t.Fatalf("absent fields must be untouched, got %+v", updated)
	}

	updated, err = svc.Update(ctx, c.ID, decodePatch[CategoryPatch](t, `{"description":""}`))
	if err != nil {
		t.Fatalf("clear description: %v", err)
	}
	if updated.Description != nil {
		t.Fatalf("empty description should be stored as null, got %q", *updated.Description)
	}

	_, err = svc.Update(ctx, c.ID, decodePatch[CategoryPatch](t, `{"slug":"culture"}`))
	expectConflict(t, err, "Slug already taken")

	// Keeping its own slug is not a conflict.
	if _, err := svc.Update(ctx, c.ID, decodePatch[CategoryPatch](t, `{"slug":"beach"}`)); err != nil {
		t.Fatalf("same slug: %v", err)
	}

	_, err = svc.Update(ctx, c.ID, decodePatch[CategoryPatch](t, `{"name":"  "}`))
	expectValidation(t, err, "Name cannot be empty")

	_, err = svc.Update(ctx, 999, decodePatch[CategoryPatch](t, `{"name":"x"}`))
	expectNotFound(t, err, "Category not found")
}

func TestCategoryGetAndListCounts(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, nil)
	ctx := context.Background()

	c := seedCategory(t, db, "Nature", "nature")
	seedCategory(t, db, "Empty", "empty")
	d := seedDestination(t, db, c.ID, "Ubud", 100)
	seedPackage(t, db, "Rice terraces", 50, uintPtr(c.ID), uintPtr(d.ID))

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(list))
	}
	// Newest first.
	if list[0].Slug != "empty" || list[0].Count.Destinations != 0 {
		t.Fatalf("unexpected first entry %+v", list[0])
	}
	if list[1].Count.Destinations != 1 || list[1].Count.Packages != 1 {
		t.Fatalf("unexpected counts %+v", list[1].Count)
	}

	got, err := svc.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Destinations) != 1 || len(got.Packages) != 1 {
		t.Fatalf("expected related rows, got %d destinations %d packages", len(got.Destinations), len(got.Packages))
	}

	_, err = svc.Get(ctx, 42)
	expectNotFound(t, err, "Category not found")
}

func TestCategoryDelete(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db)
	svc := NewCategoryService(db, activity)
	ctx := context.Background()

	used := seedCategory(t, db, "Used", "used")
	seedDestination(t, db, used.ID, "Kuta", 10)
	free := seedCategory(t, db, "Free", "free")

	expectConflict(t, svc.Delete(ctx, used.ID), "Category is still in use")

	if err := svc.Delete(ctx, free.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	expectNotFound(t, svc.Delete(ctx, free.ID), "Category not found")

	logs, err := activity.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != ActionDelete || logs[0].EntityID != free.ID {
		t.Fatalf("expected one delete entry, got %+v", logs)
	}
}

func TestCategoryDeleteUnlinksPackages(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db, nil)
	ctx := context.Background()

	spa := seedCategory(t, db, "Spa", "spa")
	pkg := seedPackage(t, db, "Massage", 40, uintPtr(spa.ID), nil)

	if err := svc.Delete(ctx, spa.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	var got models.Package
	if err := db.First(&got, pkg.ID).Error; err != nil {
		t.Fatalf("package should survive its category: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("expected category link cleared, got %d", *got.CategoryID)
	}
}
