package models

import "time"

type ActivityAction string

const (
	ActionCreatedIssue ActivityAction = "created_issue"
	ActionUpdatedIssue ActivityAction = "updated_issue"
	ActionDeletedIssue ActivityAction = "deleted_issue"
)

// ActivityLog — append-only audit trail of issue writes. Snapshot fields
// capture the issue as it looked when the action happened.
type ActivityLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	OwnerID uint           `gorm:"index;not null"`
	Action  ActivityAction `gorm:"size:50;not null"`

	IssueID uint
	Role    Role `gorm:"type:varchar(50)"`
	// gorm's naming strategy would split KPIParameter as kp_iparameter
	KPIParameter string   `gorm:"column:kpi_parameter;type:text"`
	Description  string   `gorm:"type:text"`
	Priority     Priority `gorm:"type:varchar(20)"`
	Status       Status   `gorm:"type:varchar(20)"`
}
