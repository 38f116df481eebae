package store

import (
	"gis-kpi-tracker/internal/models"

	"gorm.io/gorm"
)

type ActivityStore struct {
	db *gorm.DB
}

func NewActivityStore(db *gorm.DB) *ActivityStore {
	return &ActivityStore{db: db}
}

func (s *ActivityStore) List(ownerID uint) ([]models.ActivityLog, error) {
	if ownerID == 0 {
		return nil, ErrNoOwner
	}

	var logs []models.ActivityLog
	err := s.db.
		Where("owner_id = ?", ownerID).
		Order("created_at desc").
		Limit(200).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}
