package models

import "time"

type Role string
type Priority string
type Status string

const (
	RoleCoordinator Role = "GIS Coordinator"
	RoleLead        Role = "GIS Lead"
	RoleSpecialist  Role = "GIS Specialist"
	RoleGeodatabase Role = "Geodatabase Specialist"
	RoleAnalyst     Role = "GIS Analyst"

	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"

	StatusOpen       Status = "Open"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Roles in the order they appear in forms and filters.
var Roles = []Role{
	RoleCoordinator,
	RoleLead,
	RoleSpecialist,
	RoleGeodatabase,
	RoleAnalyst,
}

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

var Statuses = []Status{StatusOpen, StatusInProgress, StatusResolved}

func (r Role) Valid() bool {
	for _, v := range Roles {
		if r == v {
			return true
		}
	}
	return false
}

func (p Priority) Valid() bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Issue — a reported problem tied to a role and a KPI parameter.
// Date is set once at creation and never changed by updates.
type Issue struct {
	ID      uint `gorm:"primaryKey"`
	OwnerID uint `gorm:"index;not null"`

	Role Role `gorm:"type:varchar(50);not null"`
	// gorm's naming strategy would split KPIParameter as kp_iparameter
	KPIParameter string   `gorm:"column:kpi_parameter;type:text;not null"`
	Description  string   `gorm:"type:text;not null"`
	Priority     Priority `gorm:"type:varchar(20);not null"`
	Status       Status   `gorm:"type:varchar(20);not null"`

	Date      time.Time `gorm:"not null"`
	UpdatedAt time.Time
}
