package model

// RequestStatus is the work-item lifecycle state.
type RequestStatus string

const (
	RequestStatusIntake     RequestStatus = "intake"
	RequestStatusBacklog    RequestStatus = "backlog"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusReview     RequestStatus = "review"
	RequestStatusCompleted  RequestStatus = "completed"
	RequestStatusCancelled  RequestStatus = "cancelled"
)

// IsIntake reports whether the request is still in its intake queue and
// should be promoted when it receives its first assignment.
func (s RequestStatus) IsIntake() bool {
	return s == RequestStatusIntake || s == RequestStatusBacklog
}

// Request is a client work item assignments are allocated against.
type Request struct {
	RequestID   string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"request_id"`
	Title       string        `gorm:"type:varchar(255);not null"                     json:"title"`
	Type        string        `gorm:"type:varchar(50);not null;default:'task'"       json:"type"`
	Priority    string        `gorm:"type:varchar(20);not null;default:'medium'"     json:"priority"`
	Status      RequestStatus `gorm:"type:varchar(20);not null;default:'intake'"     json:"status"`
	Description string        `gorm:"type:text;not null;default:''"                  json:"description"`
	BaseModel
}

// TableName sets the table name.
func (Request) TableName() string { return "requests" }
