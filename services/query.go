package services

import (
	"context"
	"strings"

	"github.com/AriJaya07/voyra-tour-bali/utils"

	"gorm.io/gorm"
)

type groupCount struct {
	GroupKey uint
	Total    int64
}

// countBy returns COUNT(*) grouped by column, optionally restricted to column IN ids.
func countBy(ctx context.Context, db *gorm.DB, model any, column string, ids []uint) (map[uint]int64, error) {
	q := db.WithContext(ctx).Model(model).
		Select(column + " AS group_key, COUNT(*) AS total").
		Where(column + " IS NOT NULL")
	if ids != nil {
		if len(ids) == 0 {
			return map[uint]int64{}, nil
		}
		q = q.Where(column+" IN ?", ids)
	}

	var rows []groupCount
	if err := q.Group(column).Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[uint]int64, len(rows))
	for _, r := range rows {
		out[r.GroupKey] = r.Total
	}
	return out, nil
}

func exists(ctx context.Context, db *gorm.DB, model any, id uint) (bool, error) {
	var n int64
	if err := db.WithContext(ctx).Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// requiredText applies a patch to a non-nullable text column; blank values are rejected.
func requiredText(o utils.Optional[string], field string, updates map[string]any, msg string) error {
	if !o.Set {
		return nil
	}
	v := strings.TrimSpace(o.Value)
	if o.Null || v == "" {
		return invalid(msg)
	}
	updates[field] = v
	return nil
}

// optionalText applies a patch to a nullable text column; blank values become NULL.
func optionalText(o utils.Optional[string], field string, updates map[string]any) {
	if !o.Set {
		return
	}
	updates[field] = utils.NullableText(o)
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}
