package dto

// CreateAssignmentRequest is the payload for a single allocation.
type CreateAssignmentRequest struct {
	UserID         string  `json:"user_id"         binding:"required,uuid"`
	RequestID      string  `json:"request_id"      binding:"required,uuid"`
	AssignedDate   string  `json:"assigned_date"   binding:"required,datetime=2006-01-02"`
	AllocatedHours float64 `json:"allocated_hours" binding:"required,gt=0"`
	Notes          string  `json:"notes"           binding:"omitempty,max=2000"`
}

// BulkCreateAssignmentRequest is the payload for an atomic batch.
type BulkCreateAssignmentRequest struct {
	Assignments []CreateAssignmentRequest `json:"assignments" binding:"required,min=1,dive"`
}

// UpdateAssignmentRequest is the patch payload; nil fields are untouched.
type UpdateAssignmentRequest struct {
	AllocatedHours *float64 `json:"allocated_hours" binding:"omitempty,gt=0"`
	ActualHours    *float64 `json:"actual_hours"    binding:"omitempty,gte=0"`
	Status         *string  `json:"status"          binding:"omitempty,oneof=planned in_progress completed"`
	Notes          *string  `json:"notes"           binding:"omitempty,max=2000"`
}

// ListAssignmentsRequest filters the assignment list endpoints.
type ListAssignmentsRequest struct {
	UserID    string `form:"user_id"    binding:"omitempty,uuid"`
	WeekStart string `form:"week_start" binding:"omitempty,datetime=2006-01-02"`
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date"   binding:"omitempty,datetime=2006-01-02"`
}

// AssignmentResponse is an assignment enriched with compact user and
// request summaries.
type AssignmentResponse struct {
	ID             string           `json:"id"`
	UserID         string           `json:"user_id"`
	RequestID      string           `json:"request_id"`
	AssignedDate   string           `json:"assigned_date"`
	AllocatedHours float64          `json:"allocated_hours"`
	ActualHours    float64          `json:"actual_hours"`
	Status         string           `json:"status"`
	Notes          string           `json:"notes,omitempty"`
	WeekStart      string           `json:"week_start"`
	User           *UserSummary     `json:"user,omitempty"`
	Request        *RequestSummary  `json:"request,omitempty"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// UserSummary is the compact user projection attached to assignments and
// capacity rollups.
type UserSummary struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	WeeklyCapacity float64 `json:"weekly_capacity"`
}

// RequestSummary is the compact work-item projection attached to assignments.
type RequestSummary struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Type     string `json:"type"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}
