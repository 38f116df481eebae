// Package intake validates issue form submissions before they reach the
// store. Validation is all-or-nothing: any failing field blocks the write.
package intake

import (
	"strings"
	"unicode/utf8"

	"gis-kpi-tracker/internal/models"
	"gis-kpi-tracker/internal/store"
)

type Form struct {
	Role         string
	KPIParameter string
	Description  string
	Priority     string
	Status       string
}

const minDescriptionLen = 10

// Validate returns a field → message map; an empty map means the form is
// acceptable.
func Validate(f Form) map[string]string {
	errs := map[string]string{}

	role := models.Role(strings.TrimSpace(f.Role))
	if role == "" {
		errs["role"] = "Role is required."
	} else if !role.Valid() {
		errs["role"] = "Unknown role."
	}

	if strings.TrimSpace(f.KPIParameter) == "" {
		errs["kpiParameter"] = "KPI Parameter is required."
	}

	if utf8.RuneCountInString(strings.TrimSpace(f.Description)) < minDescriptionLen {
		errs["description"] = "Description must be at least 10 characters."
	}

	priority := models.Priority(strings.TrimSpace(f.Priority))
	if priority == "" {
		errs["priority"] = "Priority is required."
	} else if !priority.Valid() {
		errs["priority"] = "Unknown priority."
	}

	status := models.Status(strings.TrimSpace(f.Status))
	if status == "" {
		errs["status"] = "Status is required."
	} else if !status.Valid() {
		errs["status"] = "Unknown status."
	}

	return errs
}

// Draft converts a validated form into a store draft. Call only after
// Validate returned no errors.
func Draft(f Form) store.IssueDraft {
	return store.IssueDraft{
		Role:         models.Role(strings.TrimSpace(f.Role)),
		KPIParameter: strings.TrimSpace(f.KPIParameter),
		Description:  strings.TrimSpace(f.Description),
		Priority:     models.Priority(strings.TrimSpace(f.Priority)),
		Status:       models.Status(strings.TrimSpace(f.Status)),
	}
}
