package model

// User is a capacity provider. Owned by the admin subsystem; this
// service only reads it.
type User struct {
	UserID         string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name           string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email          string  `gorm:"type:varchar(255);not null"                     json:"email"`
	WeeklyCapacity float64 `gorm:"not null;default:40"                            json:"weekly_capacity"`
	IsActive       bool    `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// workWeekDays is the fixed 5-day work week the weekly capacity is spread over.
const workWeekDays = 5

// DailyCapacity returns the weekly capacity divided evenly across the work week.
func (u *User) DailyCapacity() float64 {
	return u.WeeklyCapacity / workWeekDays
}
