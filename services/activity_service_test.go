package services

import (
	"context"
	"testing"
)

func TestActivityRecordsMutationsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	activity := NewActivityService(db)
	categories := NewCategoryService(db, activity)
	ctx := context.Background()

	c, err := categories.Create(ctx, CategoryInput{Name: "Beach", Slug: "beach"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := categories.Update(ctx, c.ID, decodePatch[CategoryPatch](t, `{"name":"Beaches"}`)); err != nil {
		t.Fatalf("update: %v", err)
	}
	// A patch that changes nothing is not recorded.
	if _, err := categories.Update(ctx, c.ID, CategoryPatch{}); err != nil {
		t.Fatalf("noop update: %v", err)
	}

	logs, err := activity.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(logs))
	}
	if logs[0].Action != ActionUpdate || logs[1].Action != ActionCreate {
		t.Fatalf("unexpected order %s, %s", logs[0].Action, logs[1].Action)
	}
	if logs[0].Changes["name"] != "Beaches" {
		t.Fatalf("expected change set with new name, got %v", logs[0].Changes)
	}
}

func TestActivityNilServiceIsNoop(t *testing.T) {
	var activity *ActivityService
	activity.Record(context.Background(), ActionCreate, "category", 1, nil)
}
