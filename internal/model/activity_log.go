package model

import "time"

// ActivityLog is an append-only audit entry.
type ActivityLog struct {
	ActivityLogID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"activity_log_id"`
	ActorID       *string   `gorm:"type:uuid"                                      json:"actor_id,omitempty"`
	Action        string    `gorm:"type:varchar(50);not null"                      json:"action"`
	EntityType    string    `gorm:"type:varchar(50);not null"                      json:"entity_type"`
	EntityID      *string   `gorm:"type:uuid"                                      json:"entity_id,omitempty"`
	Detail        string    `gorm:"type:text;not null;default:''"                  json:"detail"`
	CreatedAt     time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName sets the table name.
func (ActivityLog) TableName() string { return "activity_logs" }
