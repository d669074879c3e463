package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"capacityhub/backend/internal/model"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByIDs(_ context.Context, ids []string) ([]model.User, error) {
	var result []model.User
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			result = append(result, *u)
		}
	}
	return result, nil
}

func (m *mockUserRepo) ListActive(_ context.Context) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if u.IsActive {
			result = append(result, *u)
		}
	}
	return result, nil
}

// ── Mock RequestRepository ──

type mockRequestRepo struct {
	requests        map[string]*model.Request
	updateStatusErr error
	statusUpdates   []string // request IDs in update order
}

func newMockRequestRepo() *mockRequestRepo {
	return &mockRequestRepo{requests: make(map[string]*model.Request)}
}

func (m *mockRequestRepo) GetByID(_ context.Context, id string) (*model.Request, error) {
	if r, ok := m.requests[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRequestRepo) GetByIDs(_ context.Context, ids []string) ([]model.Request, error) {
	var result []model.Request
	for _, id := range ids {
		if r, ok := m.requests[id]; ok {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (m *mockRequestRepo) UpdateStatus(_ context.Context, id string, status model.RequestStatus) error {
	if m.updateStatusErr != nil {
		return m.updateStatusErr
	}
	r, ok := m.requests[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	m.statusUpdates = append(m.statusUpdates, id)
	return nil
}

// ── Mock AssignmentRepository ──

type mockAssignmentRepo struct {
	assignments map[string]*model.Assignment
	nextID      int
	createErr   error
}

func newMockAssignmentRepo() *mockAssignmentRepo {
	return &mockAssignmentRepo{assignments: make(map[string]*model.Assignment)}
}

func (m *mockAssignmentRepo) assignID() string {
	m.nextID++
	return fmt.Sprintf("asg-%03d", m.nextID)
}

func (m *mockAssignmentRepo) Create(_ context.Context, assignment *model.Assignment) error {
	if m.createErr != nil {
		return m.createErr
	}
	if assignment.AssignmentID == "" {
		assignment.AssignmentID = m.assignID()
	}
	stored := *assignment
	m.assignments[assignment.AssignmentID] = &stored
	return nil
}

func (m *mockAssignmentRepo) BatchCreate(_ context.Context, assignments []model.Assignment) error {
	if m.createErr != nil {
		return m.createErr
	}
	for i := range assignments {
		if assignments[i].AssignmentID == "" {
			assignments[i].AssignmentID = m.assignID()
		}
		stored := assignments[i]
		m.assignments[stored.AssignmentID] = &stored
	}
	return nil
}

func (m *mockAssignmentRepo) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	if a, ok := m.assignments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockAssignmentRepo) ListByUserAndDate(_ context.Context, userID string, date time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.UserID == userID && a.AssignedDate.Equal(date) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByBuckets(_ context.Context, userIDs []string, dates []time.Time) ([]model.Assignment, error) {
	userSet := make(map[string]bool, len(userIDs))
	for _, id := range userIDs {
		userSet[id] = true
	}
	var result []model.Assignment
	for _, a := range m.assignments {
		if !userSet[a.UserID] {
			continue
		}
		for _, d := range dates {
			if a.AssignedDate.Equal(d) {
				result = append(result, *a)
				break
			}
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByDate(_ context.Context, date time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.AssignedDate.Equal(date) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByWeek(_ context.Context, weekStart time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.WeekStart.Equal(weekStart) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByUser(_ context.Context, userID string) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if a.UserID == userID {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]model.Assignment, error) {
	var result []model.Assignment
	for _, a := range m.assignments {
		if !a.AssignedDate.Before(start) && !a.AssignedDate.After(end) {
			result = append(result, *a)
		}
	}
	return result, nil
}

func (m *mockAssignmentRepo) Update(_ context.Context, assignment *model.Assignment) error {
	existing, ok := m.assignments[assignment.AssignmentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	existing.AllocatedHours = assignment.AllocatedHours
	existing.ActualHours = assignment.ActualHours
	existing.Status = assignment.Status
	existing.Notes = assignment.Notes
	existing.UpdatedBy = assignment.UpdatedBy
	return nil
}

func (m *mockAssignmentRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.assignments, id)
	return nil
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct {
	entries   []model.ActivityLog
	createErr error
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Create(_ context.Context, entry *model.ActivityLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityLogRepo) List(_ context.Context, entityID string, offset, limit int) ([]model.ActivityLog, int64, error) {
	var filtered []model.ActivityLog
	for _, e := range m.entries {
		if entityID != "" && (e.EntityID == nil || *e.EntityID != entityID) {
			continue
		}
		filtered = append(filtered, e)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

// countByAction tallies audit entries for one action.
func (m *mockActivityLogRepo) countByAction(action string) int {
	n := 0
	for _, e := range m.entries {
		if e.Action == action {
			n++
		}
	}
	return n
}

// ── Mock EventNotifier ──

type publishedEvent struct {
	event   string
	payload any
}

type mockNotifier struct {
	events     []publishedEvent
	publishErr error
}

func (m *mockNotifier) Publish(_ context.Context, event string, payload any) error {
	if m.publishErr != nil {
		return m.publishErr
	}
	m.events = append(m.events, publishedEvent{event: event, payload: payload})
	return nil
}

func (m *mockNotifier) countByEvent(event string) int {
	n := 0
	for _, e := range m.events {
		if e.event == event {
			n++
		}
	}
	return n
}
