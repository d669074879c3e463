package dto

// DailySummaryRequest selects the day for the daily rollup.
type DailySummaryRequest struct {
	Date string `form:"date" binding:"required,datetime=2006-01-02"`
}

// WeeklySummaryRequest selects the week for the weekly rollup. WeekStart
// defaults to the Monday of the current week when omitted.
type WeeklySummaryRequest struct {
	WeekStart string `form:"week_start" binding:"omitempty,datetime=2006-01-02"`
}

// UserDailyCapacity is one user's row in the daily summary.
type UserDailyCapacity struct {
	User           UserSummary          `json:"user"`
	AllocatedHours float64              `json:"allocated_hours"`
	DailyCapacity  float64              `json:"daily_capacity"`
	AvailableHours float64              `json:"available_hours"`
	Utilization    float64              `json:"utilization"`
	Assignments    []AssignmentResponse `json:"assignments"`
}

// DailySummaryResponse is the per-day rollup across all active users.
type DailySummaryResponse struct {
	Date  string              `json:"date"`
	Users []UserDailyCapacity `json:"users"`
}

// CapacitySummary is one user's row in the weekly summary.
type CapacitySummary struct {
	User           UserSummary `json:"user"`
	AllocatedHours float64     `json:"allocated_hours"`
	CompletedHours float64     `json:"completed_hours"`
	WeeklyCapacity float64     `json:"weekly_capacity"`
	AvailableHours float64     `json:"available_hours"`
	Utilization    float64     `json:"utilization"`
}

// WeeklySummaryResponse is the Monday-to-Friday rollup across all active users.
type WeeklySummaryResponse struct {
	WeekStart string            `json:"week_start"`
	WeekEnd   string            `json:"week_end"`
	Users     []CapacitySummary `json:"users"`
}
