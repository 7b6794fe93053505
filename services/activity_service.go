package services

import (
	"context"
	"log"

	"github.com/AriJaya07/voyra-tour-bali/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

type ActivityService struct {
	DB *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db}
}

// Record stores an audit entry. Failures are logged and never fail the mutation itself.
func (s *ActivityService) Record(ctx context.Context, action, entity string, id uint, changes map[string]any) {
	if s == nil || s.DB == nil {
		return
	}
	entry := models.ActivityLog{
		Action:   action,
		Entity:   entity,
		EntityID: id,
	}
	if len(changes) > 0 {
		entry.Changes = datatypes.JSONMap(changes)
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Printf("⚠️ activity log %s %s#%d: %v", action, entity, id, err)
	}
}

// Recent returns the latest entries, newest first. limit is clamped to 1..100.
func (s *ActivityService) Recent(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	logs := []models.ActivityLog{}
	err := newestFirst(s.DB.WithContext(ctx)).Limit(limit).Find(&logs).Error
	return logs, err
}
