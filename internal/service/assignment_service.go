package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"capacityhub/backend/internal/dto"
	"capacityhub/backend/internal/model"
	"capacityhub/backend/internal/repository"
)

// AssignmentService schedules capacity allocations. It owns the single
// invariant of this system: per (user, day) bucket the allocated hours of
// live assignments never exceed the user's daily capacity.
type AssignmentService interface {
	// Create validates and persists one allocation.
	Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	// CreateBulk validates every candidate first (including intra-batch
	// accumulation per bucket), then commits all rows in one transaction.
	// Any validation failure aborts the whole batch with zero writes.
	CreateBulk(ctx context.Context, req *dto.BulkCreateAssignmentRequest, callerID string) ([]dto.AssignmentResponse, error)
	// Get returns one assignment with its user and request summaries.
	Get(ctx context.Context, id string) (*dto.AssignmentResponse, error)
	// List returns filtered assignments (by user, by week, or by date
	// range; defaults to the current week).
	List(ctx context.Context, req *dto.ListAssignmentsRequest) ([]dto.AssignmentResponse, error)
	// Update patches an assignment; capacity is re-checked only when
	// allocated hours change, excluding the record's own current hours.
	Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error)
	// Delete removes an allocation. Removal only frees capacity, so no
	// capacity check runs.
	Delete(ctx context.Context, id string, callerID string) error
}

type assignmentService struct {
	repo     *repository.Repository
	notifier EventNotifier
	logger   *zap.Logger
}

// NewAssignmentService creates an AssignmentService. notifier may be nil
// when the event channel is unavailable; events are then skipped.
func NewAssignmentService(repo *repository.Repository, notifier EventNotifier, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, notifier: notifier, logger: logger}
}

// ════════════════════════════════════════════════════════════
// Create: single allocation
// ════════════════════════════════════════════════════════════

func (s *assignmentService) Create(ctx context.Context, req *dto.CreateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	date, err := time.Parse(dateLayout, req.AssignedDate)
	if err != nil {
		return nil, fmt.Errorf("parse assigned_date: %w", err)
	}
	date = truncateToDay(date)

	user, err := s.repo.User.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("fetch user failed", zap.Error(err))
		return nil, err
	}

	request, err := s.repo.Request.GetByID(ctx, req.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		s.logger.Error("fetch request failed", zap.Error(err))
		return nil, err
	}

	if err := s.checkCapacity(ctx, user, date, req.AllocatedHours, ""); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{
		UserID:         req.UserID,
		RequestID:      req.RequestID,
		AssignedDate:   date,
		AllocatedHours: req.AllocatedHours,
		Status:         model.AssignmentStatusPlanned,
		Notes:          req.Notes,
		WeekStart:      startOfWeek(date),
	}
	assignment.CreatedBy = &callerID
	assignment.UpdatedBy = &callerID

	if err := s.repo.Assignment.Create(ctx, assignment); err != nil {
		s.logger.Error("create assignment failed", zap.Error(err))
		return nil, err
	}

	// Side effects past this point are best-effort: the assignment write
	// is authoritative and already committed.
	s.promoteIntakeRequest(ctx, request, callerID)
	s.publish(ctx, "assignment.created", assignmentEvent{
		AssignmentID: assignment.AssignmentID,
		UserID:       assignment.UserID,
		RequestID:    assignment.RequestID,
		Date:         date.Format(dateLayout),
		Hours:        assignment.AllocatedHours,
	})
	s.recordActivity(ctx, callerID, "assignment.created", assignment.AssignmentID,
		fmt.Sprintf("assigned %s to %q for %s hours on %s",
			user.Name, request.Title, formatHours(assignment.AllocatedHours), date.Format(dateLayout)))

	resp := toAssignmentResponse(assignment, user, request)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// CreateBulk: two-phase atomic batch
// ════════════════════════════════════════════════════════════

func (s *assignmentService) CreateBulk(ctx context.Context, req *dto.BulkCreateAssignmentRequest, callerID string) ([]dto.AssignmentResponse, error) {
	type candidate struct {
		dto  *dto.CreateAssignmentRequest
		date time.Time
	}

	candidates := make([]candidate, 0, len(req.Assignments))
	userIDSet := make(map[string]bool)
	requestIDSet := make(map[string]bool)
	dateSet := make(map[string]time.Time)

	for i := range req.Assignments {
		c := &req.Assignments[i]
		date, err := time.Parse(dateLayout, c.AssignedDate)
		if err != nil {
			return nil, fmt.Errorf("parse assigned_date %q: %w", c.AssignedDate, err)
		}
		date = truncateToDay(date)
		candidates = append(candidates, candidate{dto: c, date: date})
		userIDSet[c.UserID] = true
		requestIDSet[c.RequestID] = true
		dateSet[date.Format(dateLayout)] = date
	}

	// Phase 1: validate everything before writing anything. Users,
	// requests and existing bucket sums are batch-fetched once to avoid
	// one query per candidate.
	userIDs := make([]string, 0, len(userIDSet))
	for id := range userIDSet {
		userIDs = append(userIDs, id)
	}
	requestIDs := make([]string, 0, len(requestIDSet))
	for id := range requestIDSet {
		requestIDs = append(requestIDs, id)
	}
	dates := make([]time.Time, 0, len(dateSet))
	for _, d := range dateSet {
		dates = append(dates, d)
	}

	users, err := s.repo.User.GetByIDs(ctx, userIDs)
	if err != nil {
		s.logger.Error("batch fetch users failed", zap.Error(err))
		return nil, err
	}
	userMap := make(map[string]*model.User, len(users))
	for i := range users {
		userMap[users[i].UserID] = &users[i]
	}

	requests, err := s.repo.Request.GetByIDs(ctx, requestIDs)
	if err != nil {
		s.logger.Error("batch fetch requests failed", zap.Error(err))
		return nil, err
	}
	requestMap := make(map[string]*model.Request, len(requests))
	for i := range requests {
		requestMap[requests[i].RequestID] = &requests[i]
	}

	existing, err := s.repo.Assignment.ListByBuckets(ctx, userIDs, dates)
	if err != nil {
		s.logger.Error("batch fetch existing assignments failed", zap.Error(err))
		return nil, err
	}
	allocated := make(map[bucketKey]float64)
	for _, a := range existing {
		allocated[newBucketKey(a.UserID, a.AssignedDate)] += a.AllocatedHours
	}

	var failures []string
	// intra-batch accumulation: earlier candidates count against later
	// ones targeting the same bucket
	batchTotals := make(map[bucketKey]float64)

	for i, c := range candidates {
		user, ok := userMap[c.dto.UserID]
		if !ok {
			failures = append(failures, fmt.Sprintf("assignment %d: user %s not found", i+1, c.dto.UserID))
			continue
		}
		if _, ok := requestMap[c.dto.RequestID]; !ok {
			failures = append(failures, fmt.Sprintf("assignment %d: request %s not found", i+1, c.dto.RequestID))
			continue
		}

		key := newBucketKey(c.dto.UserID, c.date)
		already := allocated[key] + batchTotals[key]
		capacity := user.DailyCapacity()
		if !fitsCapacity(already, c.dto.AllocatedHours, capacity) {
			failures = append(failures, fmt.Sprintf(
				"assignment %d: capacity exceeded for %s on %s: %s hours available",
				i+1, user.Name, key.date, formatHours(availableHours(capacity, already))))
			continue
		}
		batchTotals[key] += c.dto.AllocatedHours
	}

	if len(failures) > 0 {
		return nil, &BulkValidationError{Failures: failures}
	}

	// Phase 2: commit all rows in one transaction.
	assignments := make([]model.Assignment, 0, len(candidates))
	for _, c := range candidates {
		a := model.Assignment{
			UserID:         c.dto.UserID,
			RequestID:      c.dto.RequestID,
			AssignedDate:   c.date,
			AllocatedHours: c.dto.AllocatedHours,
			Status:         model.AssignmentStatusPlanned,
			Notes:          c.dto.Notes,
			WeekStart:      startOfWeek(c.date),
		}
		a.CreatedBy = &callerID
		a.UpdatedBy = &callerID
		assignments = append(assignments, a)
	}

	if err := s.repo.Assignment.BatchCreate(ctx, assignments); err != nil {
		s.logger.Error("batch create assignments failed", zap.Error(err))
		return nil, err
	}

	// Per distinct request: one intake transition and one aggregated audit
	// entry, not one per row. Best-effort.
	type requestTotals struct {
		days  map[string]bool
		hours float64
		ids   []string
	}
	perRequest := make(map[string]*requestTotals)
	for i := range assignments {
		a := &assignments[i]
		rt, ok := perRequest[a.RequestID]
		if !ok {
			rt = &requestTotals{days: make(map[string]bool)}
			perRequest[a.RequestID] = rt
		}
		rt.days[a.AssignedDate.Format(dateLayout)] = true
		rt.hours += a.AllocatedHours
		rt.ids = append(rt.ids, a.AssignmentID)
	}

	for requestID, rt := range perRequest {
		request := requestMap[requestID]
		s.promoteIntakeRequest(ctx, request, callerID)
		s.recordActivity(ctx, callerID, "assignment.bulk_created", requestID,
			fmt.Sprintf("bulk assigned %d days / %s hours to %q",
				len(rt.days), formatHours(rt.hours), request.Title))
		s.publish(ctx, "assignment.bulk_created", bulkAssignmentEvent{
			RequestID:     requestID,
			AssignmentIDs: rt.ids,
			TotalHours:    rt.hours,
		})
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		responses = append(responses, toAssignmentResponse(a, userMap[a.UserID], requestMap[a.RequestID]))
	}
	return responses, nil
}

// ════════════════════════════════════════════════════════════
// Get / List: filtered projections
// ════════════════════════════════════════════════════════════

func (s *assignmentService) Get(ctx context.Context, id string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("fetch assignment failed", zap.Error(err))
		return nil, err
	}
	resp := toAssignmentResponse(assignment, assignment.User, assignment.Request)
	return &resp, nil
}

func (s *assignmentService) List(ctx context.Context, req *dto.ListAssignmentsRequest) ([]dto.AssignmentResponse, error) {
	var (
		assignments []model.Assignment
		err         error
	)

	switch {
	case req.UserID != "":
		assignments, err = s.repo.Assignment.ListByUser(ctx, req.UserID)
	case req.StartDate != "" && req.EndDate != "":
		var start, end time.Time
		if start, err = time.Parse(dateLayout, req.StartDate); err != nil {
			return nil, fmt.Errorf("parse start_date: %w", err)
		}
		if end, err = time.Parse(dateLayout, req.EndDate); err != nil {
			return nil, fmt.Errorf("parse end_date: %w", err)
		}
		assignments, err = s.repo.Assignment.ListByDateRange(ctx, truncateToDay(start), truncateToDay(end))
	case req.WeekStart != "":
		var ws time.Time
		if ws, err = time.Parse(dateLayout, req.WeekStart); err != nil {
			return nil, fmt.Errorf("parse week_start: %w", err)
		}
		assignments, err = s.repo.Assignment.ListByWeek(ctx, startOfWeek(ws))
	default:
		assignments, err = s.repo.Assignment.ListByWeek(ctx, startOfWeek(time.Now()))
	}
	if err != nil {
		s.logger.Error("list assignments failed", zap.Error(err))
		return nil, err
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		responses = append(responses, toAssignmentResponse(a, a.User, a.Request))
	}
	return responses, nil
}

// ════════════════════════════════════════════════════════════
// Update: capacity re-checked only when hours change
// ════════════════════════════════════════════════════════════

func (s *assignmentService) Update(ctx context.Context, id string, req *dto.UpdateAssignmentRequest, callerID string) (*dto.AssignmentResponse, error) {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		s.logger.Error("fetch assignment failed", zap.Error(err))
		return nil, err
	}

	var changes []string

	if req.AllocatedHours != nil && *req.AllocatedHours != assignment.AllocatedHours {
		user := assignment.User
		if user == nil {
			user, err = s.repo.User.GetByID(ctx, assignment.UserID)
			if err != nil {
				s.logger.Error("fetch user failed", zap.Error(err))
				return nil, err
			}
		}
		// validate against the bucket's other neighbors, not the record's
		// own prior value
		if err := s.checkCapacity(ctx, user, assignment.AssignedDate, *req.AllocatedHours, assignment.AssignmentID); err != nil {
			return nil, err
		}
		changes = append(changes, fmt.Sprintf("allocated_hours: %s → %s",
			formatHours(assignment.AllocatedHours), formatHours(*req.AllocatedHours)))
		assignment.AllocatedHours = *req.AllocatedHours
	}

	if req.ActualHours != nil && *req.ActualHours != assignment.ActualHours {
		changes = append(changes, fmt.Sprintf("actual_hours: %s → %s",
			formatHours(assignment.ActualHours), formatHours(*req.ActualHours)))
		assignment.ActualHours = *req.ActualHours
	}

	if req.Status != nil && model.AssignmentStatus(*req.Status) != assignment.Status {
		changes = append(changes, fmt.Sprintf("status: %s → %s", assignment.Status, *req.Status))
		assignment.Status = model.AssignmentStatus(*req.Status)
	}

	if req.Notes != nil && *req.Notes != assignment.Notes {
		changes = append(changes, "notes updated")
		assignment.Notes = *req.Notes
	}

	if len(changes) == 0 {
		resp := toAssignmentResponse(assignment, assignment.User, assignment.Request)
		return &resp, nil
	}

	assignment.UpdatedBy = &callerID
	if err := s.repo.Assignment.Update(ctx, assignment); err != nil {
		s.logger.Error("update assignment failed", zap.Error(err))
		return nil, err
	}

	s.publish(ctx, "assignment.updated", assignmentEvent{
		AssignmentID: assignment.AssignmentID,
		UserID:       assignment.UserID,
		RequestID:    assignment.RequestID,
		Date:         assignment.AssignedDate.Format(dateLayout),
		Hours:        assignment.AllocatedHours,
	})
	s.recordActivity(ctx, callerID, "assignment.updated", assignment.AssignmentID,
		fmt.Sprintf("updated assignment: %s", joinChanges(changes)))

	resp := toAssignmentResponse(assignment, assignment.User, assignment.Request)
	return &resp, nil
}

// ════════════════════════════════════════════════════════════
// Delete: removal only frees capacity
// ════════════════════════════════════════════════════════════

func (s *assignmentService) Delete(ctx context.Context, id string, callerID string) error {
	assignment, err := s.repo.Assignment.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		s.logger.Error("fetch assignment failed", zap.Error(err))
		return err
	}

	// capture the allocation in the audit trail before the row is gone
	userName := assignment.UserID
	if assignment.User != nil {
		userName = assignment.User.Name
	}
	requestTitle := assignment.RequestID
	if assignment.Request != nil {
		requestTitle = fmt.Sprintf("%q", assignment.Request.Title)
	}
	s.recordActivity(ctx, callerID, "assignment.deleted", assignment.AssignmentID,
		fmt.Sprintf("removed %s hours for %s on %s (%s)",
			formatHours(assignment.AllocatedHours), userName,
			assignment.AssignedDate.Format(dateLayout), requestTitle))

	if err := s.repo.Assignment.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("delete assignment failed", zap.Error(err))
		return err
	}

	s.publish(ctx, "assignment.deleted", assignmentEvent{
		AssignmentID: assignment.AssignmentID,
		UserID:       assignment.UserID,
		RequestID:    assignment.RequestID,
		Date:         assignment.AssignedDate.Format(dateLayout),
		Hours:        assignment.AllocatedHours,
	})

	return nil
}

// ════════════════════════════════════════════════════════════
// internal helpers
// ════════════════════════════════════════════════════════════

// checkCapacity enforces the bucket invariant. excludeID removes the
// record's own hours from the allocated sum on the update path. Read-only.
func (s *assignmentService) checkCapacity(ctx context.Context, user *model.User, date time.Time, proposed float64, excludeID string) error {
	existing, err := s.repo.Assignment.ListByUserAndDate(ctx, user.UserID, date)
	if err != nil {
		s.logger.Error("fetch bucket assignments failed", zap.Error(err))
		return err
	}

	var sum float64
	for _, a := range existing {
		if excludeID != "" && a.AssignmentID == excludeID {
			continue
		}
		sum += a.AllocatedHours
	}

	capacity := user.DailyCapacity()
	if !fitsCapacity(sum, proposed, capacity) {
		return &CapacityExceededError{
			UserID:    user.UserID,
			Date:      date.Format(dateLayout),
			Available: round2(availableHours(capacity, sum)),
		}
	}
	return nil
}

// promoteIntakeRequest moves an intake/backlog request to in_progress when
// it receives capacity. Failures are logged and swallowed.
func (s *assignmentService) promoteIntakeRequest(ctx context.Context, request *model.Request, callerID string) {
	if request == nil || !request.Status.IsIntake() {
		return
	}
	if err := s.repo.Request.UpdateStatus(ctx, request.RequestID, model.RequestStatusInProgress); err != nil {
		s.logger.Warn("request status transition failed",
			zap.String("request_id", request.RequestID), zap.Error(err))
		return
	}
	request.Status = model.RequestStatusInProgress
	s.recordActivity(ctx, callerID, "request.status_changed", request.RequestID,
		fmt.Sprintf("request %q moved to in_progress", request.Title))
}

// publish emits an event on the broadcast channel; fire-and-forget.
func (s *assignmentService) publish(ctx context.Context, event string, payload any) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, event, payload); err != nil {
		s.logger.Warn("event publish failed", zap.String("event", event), zap.Error(err))
	}
}

// recordActivity writes an audit entry; failures never escalate past a
// warning log.
func (s *assignmentService) recordActivity(ctx context.Context, actorID, action, entityID, detail string) {
	entry := &model.ActivityLog{
		Action:     action,
		EntityType: "assignment",
		Detail:     detail,
	}
	if actorID != "" {
		entry.ActorID = &actorID
	}
	if entityID != "" {
		entry.EntityID = &entityID
	}
	if action == "request.status_changed" {
		entry.EntityType = "request"
	}
	if err := s.repo.ActivityLog.Create(ctx, entry); err != nil {
		s.logger.Warn("activity log write failed", zap.String("action", action), zap.Error(err))
	}
}

func joinChanges(changes []string) string {
	out := ""
	for i, c := range changes {
		if i > 0 {
			out += "; "
		}
		out += c
	}
	return out
}

// ── event payloads ──

type assignmentEvent struct {
	AssignmentID string  `json:"assignment_id"`
	UserID       string  `json:"user_id"`
	RequestID    string  `json:"request_id"`
	Date         string  `json:"date"`
	Hours        float64 `json:"hours"`
}

type bulkAssignmentEvent struct {
	RequestID     string   `json:"request_id"`
	AssignmentIDs []string `json:"assignment_ids"`
	TotalHours    float64  `json:"total_hours"`
}

// ── response mapping ──

func toAssignmentResponse(a *model.Assignment, user *model.User, request *model.Request) dto.AssignmentResponse {
	resp := dto.AssignmentResponse{
		ID:             a.AssignmentID,
		UserID:         a.UserID,
		RequestID:      a.RequestID,
		AssignedDate:   a.AssignedDate.Format(dateLayout),
		AllocatedHours: a.AllocatedHours,
		ActualHours:    a.ActualHours,
		Status:         string(a.Status),
		Notes:          a.Notes,
		WeekStart:      a.WeekStart.Format(dateLayout),
		CreatedAt:      a.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:      a.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}

	if user != nil {
		resp.User = &dto.UserSummary{
			ID:             user.UserID,
			Name:           user.Name,
			Email:          user.Email,
			WeeklyCapacity: user.WeeklyCapacity,
		}
	}

	if request != nil {
		resp.Request = &dto.RequestSummary{
			ID:       request.RequestID,
			Title:    request.Title,
			Type:     request.Type,
			Priority: request.Priority,
			Status:   string(request.Status),
		}
	}

	return resp
}
