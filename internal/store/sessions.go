package store

import (
	"time"

	"gis-kpi-tracker/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionStore appends one record per successful login. Records are never
// updated or deleted.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

func (s *SessionStore) Append(ownerID uint) (models.Session, error) {
	if ownerID == 0 {
		return models.Session{}, ErrNoOwner
	}

	sess := models.Session{
		OwnerID:   ownerID,
		Key:       uuid.NewString(),
		LoginTime: time.Now(),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return models.Session{}, err
	}
	return sess, nil
}

func (s *SessionStore) List(ownerID uint) ([]models.Session, error) {
	if ownerID == 0 {
		return nil, ErrNoOwner
	}

	var sessions []models.Session
	err := s.db.
		Where("owner_id = ?", ownerID).
		Order("login_time desc").
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}
