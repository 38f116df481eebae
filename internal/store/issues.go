package store

import (
	"errors"
	"time"

	"gis-kpi-tracker/internal/models"

	"gorm.io/gorm"
)

// IssueDraft carries the user-editable fields of an issue. ID and Date are
// never part of a draft: the store assigns the ID and stamps Date once,
// at creation.
type IssueDraft struct {
	Role         models.Role
	KPIParameter string
	Description  string
	Priority     models.Priority
	Status       models.Status
}

// IssueStore owns all issue reads/writes, scoped by owner, and appends an
// activity-log entry after each successful write.
type IssueStore struct {
	db *gorm.DB
}

func NewIssueStore(db *gorm.DB) *IssueStore {
	return &IssueStore{db: db}
}

func (s *IssueStore) List(ownerID uint) ([]models.Issue, error) {
	if ownerID == 0 {
		return nil, ErrNoOwner
	}

	var issues []models.Issue
	if err := s.db.Where("owner_id = ?", ownerID).Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

func (s *IssueStore) Get(ownerID, id uint) (models.Issue, error) {
	if ownerID == 0 {
		return models.Issue{}, ErrNoOwner
	}

	var issue models.Issue
	err := s.db.Where("owner_id = ? AND id = ?", ownerID, id).First(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Issue{}, ErrNotFound
	}
	if err != nil {
		return models.Issue{}, err
	}
	return issue, nil
}

func (s *IssueStore) Create(ownerID uint, draft IssueDraft) (models.Issue, error) {
	if ownerID == 0 {
		return models.Issue{}, ErrNoOwner
	}

	issue := models.Issue{
		OwnerID:      ownerID,
		Role:         draft.Role,
		KPIParameter: draft.KPIParameter,
		Description:  draft.Description,
		Priority:     draft.Priority,
		Status:       draft.Status,
		Date:         time.Now(),
	}

	if err := s.db.Create(&issue).Error; err != nil {
		return models.Issue{}, err
	}

	s.appendLog(models.ActionCreatedIssue, issue)

	return issue, nil
}

// Update merges the draft into the stored issue. Date is immutable and is
// deliberately left out of the update column set.
func (s *IssueStore) Update(ownerID, id uint, draft IssueDraft) (models.Issue, error) {
	issue, err := s.Get(ownerID, id)
	if err != nil {
		return models.Issue{}, err
	}

	issue.Role = draft.Role
	issue.KPIParameter = draft.KPIParameter
	issue.Description = draft.Description
	issue.Priority = draft.Priority
	issue.Status = draft.Status

	err = s.db.Model(&issue).Updates(map[string]interface{}{
		"role":          draft.Role,
		"kpi_parameter": draft.KPIParameter,
		"description":   draft.Description,
		"priority":      draft.Priority,
		"status":        draft.Status,
	}).Error
	if err != nil {
		return models.Issue{}, err
	}

	s.appendLog(models.ActionUpdatedIssue, issue)

	return issue, nil
}

func (s *IssueStore) Delete(ownerID, id uint) error {
	if ownerID == 0 {
		return ErrNoOwner
	}

	issue, err := s.Get(ownerID, id)
	if err != nil {
		return err
	}

	res := s.db.Where("owner_id = ?", ownerID).Delete(&models.Issue{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	s.appendLog(models.ActionDeletedIssue, issue)

	return nil
}

// appendLog runs after the primary write has been acknowledged; a failed
// append never unwinds the write.
func (s *IssueStore) appendLog(action models.ActivityAction, issue models.Issue) {
	entry := models.ActivityLog{
		OwnerID:      issue.OwnerID,
		Action:       action,
		IssueID:      issue.ID,
		Role:         issue.Role,
		KPIParameter: issue.KPIParameter,
		Description:  issue.Description,
		Priority:     issue.Priority,
		Status:       issue.Status,
	}
	_ = s.db.Create(&entry).Error
}
