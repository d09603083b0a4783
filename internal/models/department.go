package models

import (
	"time"

	"github.com/google/uuid"
)

// DepartmentCount is the expected headcount for one department, used to
// compute response rates. Replacing the set deactivates prior rows; at most
// one active row exists per department name.
type DepartmentCount struct {
	ID         uuid.UUID `json:"id"`
	Department string    `json:"department"`
	StaffCount int       `json:"staffCount"`
	Active     bool      `json:"active"`
	CreatedAt  time.Time `json:"createdAt"`
}
