package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/alumnihub/alumnihub-api/internal/models"
	apperrors "github.com/alumnihub/alumnihub-api/pkg/errors"
)

type memTxKey struct{}

type memMentorship struct {
	rec models.Mentorship
	seq uint64
}

type memSession struct {
	rec models.MentorshipSession
	seq uint64
}

type memGoal struct {
	rec models.MentorshipGoal
	seq uint64
}

type memNotification struct {
	rec models.Notification
	seq uint64
}

// MemoryStore keeps everything in process memory. It backs offline mode and tests.
// RunInTx serializes transactions behind one lock; writes are applied immediately
// and are not rolled back, so callers issue their writes last.
type MemoryStore struct {
	mu            sync.RWMutex
	seq           uint64
	mentorships   map[string]*memMentorship
	sessions      map[string]*memSession
	goals         map[string]*memGoal
	notifications map[string]*memNotification
	profiles      map[string]models.PublicProfile
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mentorships:   make(map[string]*memMentorship),
		sessions:      make(map[string]*memSession),
		goals:         make(map[string]*memGoal),
		notifications: make(map[string]*memNotification),
		profiles:      make(map[string]models.PublicProfile),
	}
}

func (s *MemoryStore) inTx(ctx context.Context) bool {
	owner, ok := ctx.Value(memTxKey{}).(*MemoryStore)
	return ok && owner == s
}

// lock takes the write lock unless ctx already holds it through RunInTx
func (s *MemoryStore) lock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemoryStore) rlock(ctx context.Context) func() {
	if s.inTx(ctx) {
		return func() {}
	}
	s.mu.RLock()
	return s.mu.RUnlock
}

func (s *MemoryStore) nextSeq() uint64 {
	s.seq++
	return s.seq
}

// RunInTx holds the store lock for the duration of fn
func (s *MemoryStore) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.inTx(ctx) {
		return fn(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(context.WithValue(ctx, memTxKey{}, s))
}

// Ping always succeeds
func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) CreateMentorship(ctx context.Context, m *models.Mentorship) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock(ctx)()

	if m.Status.IsOpen() && s.findOpen(m.MentorID, m.MenteeID) != nil {
		return apperrors.ErrDuplicateRequest
	}
	s.mentorships[m.ID] = &memMentorship{rec: *m, seq: s.nextSeq()}
	return nil
}

func (s *MemoryStore) findOpen(mentorID, menteeID string) *memMentorship {
	for _, item := range s.mentorships {
		if item.rec.MentorID == mentorID && item.rec.MenteeID == menteeID && item.rec.Status.IsOpen() {
			return item
		}
	}
	return nil
}

func (s *MemoryStore) FindOpenMentorship(ctx context.Context, mentorID, menteeID string) (*models.Mentorship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	item := s.findOpen(mentorID, menteeID)
	if item == nil {
		return nil, apperrors.NotFoundError("mentorship")
	}
	m := item.rec
	return &m, nil
}

func (s *MemoryStore) GetMentorship(ctx context.Context, id string) (*models.Mentorship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	item, ok := s.mentorships[id]
	if !ok {
		return nil, apperrors.NotFoundError("mentorship")
	}
	m := item.rec
	return &m, nil
}

func (s *MemoryStore) TransitionMentorship(ctx context.Context, id string, from, to models.MentorshipStatus, at time.Time) (*models.Mentorship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.lock(ctx)()

	item, ok := s.mentorships[id]
	if !ok || item.rec.Status != from {
		return nil, apperrors.TransitionError(string(from), string(to))
	}

	item.rec.Status = to
	item.rec.UpdatedAt = at
	switch to {
	case models.MentorshipActive:
		item.rec.StartDate = &at
	case models.MentorshipCompleted:
		item.rec.EndDate = &at
	}

	m := item.rec
	return &m, nil
}

func (s *MemoryStore) ListMentorshipsByMentor(ctx context.Context, mentorID string) ([]*models.Mentorship, error) {
	return s.listMentorships(ctx, func(m *models.Mentorship) bool { return m.MentorID == mentorID })
}

func (s *MemoryStore) ListMentorshipsByMentee(ctx context.Context, menteeID string) ([]*models.Mentorship, error) {
	return s.listMentorships(ctx, func(m *models.Mentorship) bool { return m.MenteeID == menteeID })
}

func (s *MemoryStore) listMentorships(ctx context.Context, match func(*models.Mentorship) bool) ([]*models.Mentorship, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	matched := []*memMentorship{}
	for _, item := range s.mentorships {
		if match(&item.rec) {
			matched = append(matched, item)
		}
	}

	// newest first; seq breaks ties between equal timestamps
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.rec.CreatedAt.Equal(b.rec.CreatedAt) {
			return a.rec.CreatedAt.After(b.rec.CreatedAt)
		}
		return a.seq > b.seq
	})

	result := make([]*models.Mentorship, 0, len(matched))
	for _, item := range matched {
		m := item.rec
		result = append(result, &m)
	}
	return result, nil
}

func (s *MemoryStore) CreateSession(ctx context.Context, session *models.MentorshipSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock(ctx)()

	if _, ok := s.mentorships[session.MentorshipID]; !ok {
		return apperrors.NotFoundError("mentorship")
	}
	s.sessions[session.ID] = &memSession{rec: *session, seq: s.nextSeq()}
	return nil
}

func (s *MemoryStore) GetSession(ctx context.Context, id string) (*models.MentorshipSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	item, ok := s.sessions[id]
	if !ok {
		return nil, apperrors.NotFoundError("session")
	}
	session := item.rec
	return &session, nil
}

func (s *MemoryStore) ListSessions(ctx context.Context, mentorshipID string) ([]*models.MentorshipSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	matched := []*memSession{}
	for _, item := range s.sessions {
		if item.rec.MentorshipID == mentorshipID {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.rec.ScheduledDate.Equal(b.rec.ScheduledDate) {
			return a.rec.ScheduledDate.Before(b.rec.ScheduledDate)
		}
		return a.seq < b.seq
	})

	result := make([]*models.MentorshipSession, 0, len(matched))
	for _, item := range matched {
		session := item.rec
		result = append(result, &session)
	}
	return result, nil
}

func (s *MemoryStore) CompleteSession(ctx context.Context, id string, at time.Time) (*models.MentorshipSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.lock(ctx)()

	item, ok := s.sessions[id]
	if !ok || item.rec.Status != models.SessionScheduled {
		return nil, apperrors.TransitionError(string(models.SessionScheduled), string(models.SessionCompleted))
	}
	item.rec.Status = models.SessionCompleted
	item.rec.UpdatedAt = at

	session := item.rec
	return &session, nil
}

func (s *MemoryStore) DeleteSession(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock(ctx)()

	item, ok := s.sessions[id]
	if !ok || item.rec.Status == models.SessionCompleted {
		return apperrors.InvalidStateError("completed sessions cannot be deleted")
	}
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStore) CreateGoal(ctx context.Context, g *models.MentorshipGoal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock(ctx)()

	if _, ok := s.mentorships[g.MentorshipID]; !ok {
		return apperrors.NotFoundError("mentorship")
	}
	s.goals[g.ID] = &memGoal{rec: *g, seq: s.nextSeq()}
	return nil
}

func (s *MemoryStore) GetGoal(ctx context.Context, id string) (*models.MentorshipGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	item, ok := s.goals[id]
	if !ok {
		return nil, apperrors.NotFoundError("goal")
	}
	g := item.rec
	return &g, nil
}

func (s *MemoryStore) ListGoals(ctx context.Context, mentorshipID string) ([]*models.MentorshipGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	matched := []*memGoal{}
	for _, item := range s.goals {
		if item.rec.MentorshipID == mentorshipID {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq < matched[j].seq })

	result := make([]*models.MentorshipGoal, 0, len(matched))
	for _, item := range matched {
		g := item.rec
		result = append(result, &g)
	}
	return result, nil
}

func (s *MemoryStore) UpdateGoalProgress(ctx context.Context, id string, progress int, status models.GoalStatus, at time.Time) (*models.MentorshipGoal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.lock(ctx)()

	item, ok := s.goals[id]
	if !ok {
		return nil, apperrors.NotFoundError("goal")
	}
	item.rec.ProgressPercentage = progress
	item.rec.Status = status
	item.rec.UpdatedAt = at

	g := item.rec
	return &g, nil
}

func (s *MemoryStore) DeleteGoal(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock(ctx)()

	item, ok := s.goals[id]
	if !ok || item.rec.Status == models.GoalCompleted {
		return apperrors.InvalidStateError("completed goals cannot be deleted")
	}
	delete(s.goals, id)
	return nil
}

func (s *MemoryStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	defer s.lock(ctx)()

	s.notifications[n.ID] = &memNotification{rec: *n, seq: s.nextSeq()}
	return nil
}

func (s *MemoryStore) ListNotifications(ctx context.Context, userID string, limit int) ([]*models.Notification, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	if limit <= 0 {
		limit = defaultNotificationLimit
	}

	matched := []*memNotification{}
	for _, item := range s.notifications {
		if item.rec.UserID == userID {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].seq > matched[j].seq })
	if len(matched) > limit {
		matched = matched[:limit]
	}

	result := make([]*models.Notification, 0, len(matched))
	for _, item := range matched {
		n := item.rec
		result = append(result, &n)
	}
	return result, nil
}

// PutProfile seeds a public profile, used by offline mode and tests
func (s *MemoryStore) PutProfile(p models.PublicProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
}

func (s *MemoryStore) GetPublicProfiles(ctx context.Context, userIDs []string) (map[string]models.PublicProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer s.rlock(ctx)()

	profiles := make(map[string]models.PublicProfile, len(userIDs))
	for _, id := range userIDs {
		if p, ok := s.profiles[id]; ok {
			profiles[id] = p
		}
	}
	return profiles, nil
}

var (
	_ Store             = (*MemoryStore)(nil)
	_ NotificationStore = (*MemoryStore)(nil)
	_ ProfileSource     = (*MemoryStore)(nil)
	_ Store             = (*PostgresStore)(nil)
	_ NotificationStore = (*PostgresStore)(nil)
	_ ProfileSource     = (*ProfileRepository)(nil)
)
