package model

import "time"

// AssignmentStatus is a closed enumeration of assignment states.
type AssignmentStatus string

const (
	AssignmentStatusPlanned    AssignmentStatus = "planned"
	AssignmentStatusInProgress AssignmentStatus = "in_progress"
	AssignmentStatusCompleted  AssignmentStatus = "completed"
)

// Valid reports whether the value is one of the known states.
func (s AssignmentStatus) Valid() bool {
	switch s {
	case AssignmentStatusPlanned, AssignmentStatusInProgress, AssignmentStatusCompleted:
		return true
	}
	return false
}

// Assignment is one block of planned hours for a user on a calendar day.
// WeekStart is stored redundantly (Monday of AssignedDate's week) so weekly
// rollups hit a single indexed column.
type Assignment struct {
	AssignmentID   string           `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"assignment_id"`
	UserID         string           `gorm:"type:uuid;not null;index:idx_assignments_user_date" json:"user_id"`
	RequestID      string           `gorm:"type:uuid;not null"                             json:"request_id"`
	AssignedDate   time.Time        `gorm:"type:date;not null;index:idx_assignments_user_date" json:"assigned_date"`
	AllocatedHours float64          `gorm:"not null"                                       json:"allocated_hours"`
	ActualHours    float64          `gorm:"not null;default:0"                             json:"actual_hours"`
	Status         AssignmentStatus `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"`
	Notes          string           `gorm:"type:text;not null;default:''"                  json:"notes"`
	WeekStart      time.Time        `gorm:"type:date;not null;index"                       json:"week_start"`
	SoftDeleteModel

	// associations
	User    *User    `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
	Request *Request `gorm:"foreignKey:RequestID;references:RequestID" json:"request,omitempty"`
}

// TableName sets the table name.
func (Assignment) TableName() string { return "assignments" }
