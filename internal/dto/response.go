package dto

// ── activity log ──

// ActivityLogListRequest filters the activity log listing.
type ActivityLogListRequest struct {
	EntityID string `form:"entity_id" binding:"omitempty,uuid"`
	PaginationRequest
}

// ActivityLogResponse is one audit entry.
type ActivityLogResponse struct {
	ID         string `json:"id"`
	ActorID    string `json:"actor_id,omitempty"`
	Action     string `json:"action"`
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id,omitempty"`
	Detail     string `json:"detail"`
	CreatedAt  string `json:"created_at"`
}

// ── pagination ──

// PaginationRequest holds the shared paging parameters.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage returns the page number with its default.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size with its default.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset computes the query offset.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
