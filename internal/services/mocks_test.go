package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/Ryanj055/sistemadeeventosculturais/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func pairKey(eventID, participantID string) string {
	return eventID + ":" + participantID
}

type mockUserRepository struct {
	usersByID    map[string]*domain.User
	usersByEmail map[string]*domain.User
	createErr    error
}

func newMockUserRepository(users ...*domain.User) *mockUserRepository {
	m := &mockUserRepository{
		usersByID:    map[string]*domain.User{},
		usersByEmail: map[string]*domain.User{},
	}
	for _, u := range users {
		m.usersByID[u.ID] = u
		m.usersByEmail[u.Email] = u
	}
	return m
}

func (m *mockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.usersByEmail[user.Email]; ok {
		return domain.ErrDuplicateEmail
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(m.usersByID)+1)
	}
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user
	return nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, ok := m.usersByEmail[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	u, ok := m.usersByID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) ListByRole(ctx context.Context, role string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range m.usersByID {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

type mockEventRepository struct {
	events map[string]*domain.Event
	err    error
}

func newMockEventRepository(events ...*domain.Event) *mockEventRepository {
	m := &mockEventRepository{events: map[string]*domain.Event{}}
	for _, e := range events {
		m.events[e.ID] = e
	}
	return m
}

func (m *mockEventRepository) Create(ctx context.Context, event *domain.Event) error {
	if m.err != nil {
		return m.err
	}
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", len(m.events)+1)
	}
	m.events[event.ID] = event
	return nil
}

func (m *mockEventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	if m.err != nil {
		return nil, m.err
	}
	e, ok := m.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEventRepository) ListActive(ctx context.Context, filter domain.EventFilter, p domain.PaginationParams) ([]*domain.Event, int, error) {
	if m.err != nil {
		return nil, 0, m.err
	}
	var out []*domain.Event
	for _, e := range m.events {
		if e.Status != domain.EventStatusActive {
			continue
		}
		if filter.Category != "" && e.Category != filter.Category {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (m *mockEventRepository) UpdateStatus(ctx context.Context, eventID, status string) error {
	e, ok := m.events[eventID]
	if !ok {
		return domain.ErrNotFound
	}
	e.Status = status
	return nil
}

type mockEnrollmentRepository struct {
	byPair     map[string]*domain.Enrollment
	byCode     map[string]*domain.Enrollment
	createErrs []error
	created    []*domain.Enrollment
	nextID     int
}

func newMockEnrollmentRepository() *mockEnrollmentRepository {
	return &mockEnrollmentRepository{
		byPair: map[string]*domain.Enrollment{},
		byCode: map[string]*domain.Enrollment{},
	}
}

func (m *mockEnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) error {
	if len(m.createErrs) > 0 {
		err := m.createErrs[0]
		m.createErrs = m.createErrs[1:]
		if err != nil {
			return err
		}
	}
	if _, ok := m.byPair[pairKey(e.EventID, e.ParticipantID)]; ok {
		return domain.ErrAlreadyEnrolled
	}
	if _, ok := m.byCode[e.ConfirmationCode]; ok {
		return domain.ErrDuplicateCode
	}
	m.nextID++
	e.ID = fmt.Sprintf("enr-%d", m.nextID)
	m.byPair[pairKey(e.EventID, e.ParticipantID)] = e
	m.byCode[e.ConfirmationCode] = e
	m.created = append(m.created, e)
	return nil
}

func (m *mockEnrollmentRepository) GetByEventAndParticipant(ctx context.Context, eventID, participantID string) (*domain.Enrollment, error) {
	e, ok := m.byPair[pairKey(eventID, participantID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEnrollmentRepository) GetByCode(ctx context.Context, code string) (*domain.Enrollment, error) {
	e, ok := m.byCode[code]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return e, nil
}

func (m *mockEnrollmentRepository) ListByParticipant(ctx context.Context, participantID string) ([]*domain.Enrollment, error) {
	var out []*domain.Enrollment
	for _, e := range m.created {
		if e.ParticipantID == participantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockEnrollmentRepository) CancelConfirmed(ctx context.Context, eventID, participantID string) error {
	e, ok := m.byPair[pairKey(eventID, participantID)]
	if !ok || e.Status != domain.EnrollmentStatusConfirmed {
		return domain.ErrNotFound
	}
	e.Status = domain.EnrollmentStatusCancelled
	// Cancelled rows no longer block the pair.
	delete(m.byPair, pairKey(eventID, participantID))
	return nil
}

func (m *mockEnrollmentRepository) MarkAttended(ctx context.Context, code string, checkedInAt time.Time) (int64, error) {
	e, ok := m.byCode[code]
	if !ok || e.Status != domain.EnrollmentStatusConfirmed {
		return 0, nil
	}
	e.Status = domain.EnrollmentStatusAttended
	e.CheckedInAt = &checkedInAt
	return 1, nil
}

type mockWaitlistRepository struct {
	entries []*domain.WaitlistEntry
	nextID  int
	maxPos  map[string]int
}

func newMockWaitlistRepository() *mockWaitlistRepository {
	return &mockWaitlistRepository{maxPos: map[string]int{}}
}

func (m *mockWaitlistRepository) Create(ctx context.Context, entry *domain.WaitlistEntry) error {
	for _, e := range m.entries {
		if e.EventID == entry.EventID && e.ParticipantID == entry.ParticipantID {
			return domain.ErrAlreadyWaitlisted
		}
	}
	m.nextID++
	m.maxPos[entry.EventID]++
	entry.ID = fmt.Sprintf("wl-%d", m.nextID)
	entry.Position = m.maxPos[entry.EventID]
	m.entries = append(m.entries, entry)
	return nil
}

func (m *mockWaitlistRepository) NextForEvent(ctx context.Context, eventID string) (*domain.WaitlistEntry, error) {
	var next *domain.WaitlistEntry
	for _, e := range m.entries {
		if e.EventID != eventID {
			continue
		}
		if next == nil || e.Position < next.Position {
			next = e
		}
	}
	if next == nil {
		return nil, domain.ErrNotFound
	}
	return next, nil
}

func (m *mockWaitlistRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.WaitlistEntry, error) {
	var out []*domain.WaitlistEntry
	for _, e := range m.entries {
		if e.EventID == eventID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockWaitlistRepository) MarkNotified(ctx context.Context, entryID string) error {
	for _, e := range m.entries {
		if e.ID == entryID {
			e.Notified = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *mockWaitlistRepository) Delete(ctx context.Context, entryID string) error {
	for i, e := range m.entries {
		if e.ID == entryID {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// mockCapacityLedger counts confirmed slots in memory. forceFull makes
// TryReserve fail regardless of the counter, to exercise the promotion
// invariant path.
type mockCapacityLedger struct {
	capacity   int
	confirmed  int
	forceFull  bool
	reserveErr error
	reserves   int
	releases   int
}

func (m *mockCapacityLedger) TryReserve(ctx context.Context, eventID string) (bool, error) {
	m.reserves++
	if m.reserveErr != nil {
		return false, m.reserveErr
	}
	if m.forceFull || m.confirmed >= m.capacity {
		return false, nil
	}
	m.confirmed++
	return true, nil
}

func (m *mockCapacityLedger) Release(ctx context.Context, eventID string) error {
	m.releases++
	if m.confirmed == 0 {
		return domain.ErrInvariantViolation
	}
	m.confirmed--
	return nil
}

func (m *mockCapacityLedger) Snapshot(ctx context.Context, eventID string) (*domain.CapacitySnapshot, error) {
	return &domain.CapacitySnapshot{
		EventID:        eventID,
		Capacity:       m.capacity,
		ConfirmedCount: m.confirmed,
		Remaining:      m.capacity - m.confirmed,
	}, nil
}

type mockCodeGenerator struct {
	codes []string
	next  int
}

func (m *mockCodeGenerator) Generate() (string, error) {
	if m.next < len(m.codes) {
		code := m.codes[m.next]
		m.next++
		return code, nil
	}
	m.next++
	return fmt.Sprintf("CODE%06d", m.next), nil
}

type mockEmailService struct {
	confirmations []*domain.EnrollmentConfirmationEmailData
	promotions    []*domain.WaitlistPromotionEmailData
	err           error
}

func (m *mockEmailService) SendEnrollmentConfirmation(ctx context.Context, data *domain.EnrollmentConfirmationEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.confirmations = append(m.confirmations, data)
	return nil
}

func (m *mockEmailService) SendWaitlistPromotion(ctx context.Context, data *domain.WaitlistPromotionEmailData) error {
	if m.err != nil {
		return m.err
	}
	m.promotions = append(m.promotions, data)
	return nil
}

type mockPasswordHasher struct {
	compareErr error
}

func (m *mockPasswordHasher) GenerateSalt() (string, error) { return "salt", nil }

func (m *mockPasswordHasher) Hash(salt, password string) (string, error) {
	return "hash:" + salt + ":" + password, nil
}

func (m *mockPasswordHasher) Compare(hash, salt, password string) error {
	if m.compareErr != nil {
		return m.compareErr
	}
	if hash != "hash:"+salt+":"+password {
		return fmt.Errorf("password mismatch")
	}
	return nil
}

type mockTokenIssuer struct {
	err error
}

func (m *mockTokenIssuer) Issue(userID, email, role string, expiry time.Duration) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "token-" + userID, nil
}

type mockRatingRepository struct {
	ratings []*domain.Rating
	nextID  int
}

func (m *mockRatingRepository) Create(ctx context.Context, rating *domain.Rating) error {
	for _, r := range m.ratings {
		if r.EventID == rating.EventID && r.ParticipantID == rating.ParticipantID {
			return domain.ErrAlreadyRated
		}
	}
	m.nextID++
	rating.ID = fmt.Sprintf("rating-%d", m.nextID)
	m.ratings = append(m.ratings, rating)
	return nil
}

func (m *mockRatingRepository) ListByEvent(ctx context.Context, eventID string) ([]*domain.Rating, error) {
	var out []*domain.Rating
	for _, r := range m.ratings {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRatingRepository) SummaryByEvent(ctx context.Context, eventID string) (*domain.RatingSummary, error) {
	sum, count := 0, 0
	for _, r := range m.ratings {
		if r.EventID == eventID {
			sum += r.Score
			count++
		}
	}
	summary := &domain.RatingSummary{EventID: eventID, Count: count}
	if count > 0 {
		summary.Average = float64(sum) / float64(count)
	}
	return summary, nil
}

type mockReportRepository struct {
	stats         map[string]*domain.EnrollmentStats
	waitlistLens  map[string]int
	categoryStats []*domain.CategoryStats
}

func (m *mockReportRepository) EnrollmentStats(ctx context.Context, eventID string) (*domain.EnrollmentStats, error) {
	if s, ok := m.stats[eventID]; ok {
		return s, nil
	}
	return &domain.EnrollmentStats{}, nil
}

func (m *mockReportRepository) WaitlistLength(ctx context.Context, eventID string) (int, error) {
	return m.waitlistLens[eventID], nil
}

func (m *mockReportRepository) CategoryStats(ctx context.Context) ([]*domain.CategoryStats, error) {
	return m.categoryStats, nil
}
