package testutil

import (
	"context"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

// MemStore is an in-memory domain.UnitOfWork for use-case tests. Do
// serializes transactions and rolls every store back when fn fails.
type MemStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	reminders     map[domain.ReminderID]*domain.Reminder
	schedules     map[domain.ScheduleID]*domain.ScheduleEntry
	history       []*domain.SendHistory
	notifications []*domain.Notification
	devices       map[string]*domain.DeviceToken
	users         map[domain.UserID]*domain.UserProfile
	assignments   map[domain.AssignmentID]*domain.Assignment

	// Fault injection, consumed by the next matching call.
	SaveAllErr  error
	ClaimDueErr error
	FinalizeErr error

	// FailResolve makes assignment lookups fail with this error.
	FailResolve error
}

func NewMemStore() *MemStore {
	return &MemStore{
		reminders:   make(map[domain.ReminderID]*domain.Reminder),
		schedules:   make(map[domain.ScheduleID]*domain.ScheduleEntry),
		devices:     make(map[string]*domain.DeviceToken),
		users:       make(map[domain.UserID]*domain.UserProfile),
		assignments: make(map[domain.AssignmentID]*domain.Assignment),
	}
}

func (s *MemStore) Repositories() domain.Repositories {
	return domain.Repositories{
		Reminders:     memReminders{s},
		Schedules:     memSchedules{s},
		History:       memHistory{s},
		Notifications: memNotifications{s},
		Devices:       memDevices{s},
		Users:         memUsers{s},
		Assignments:   memAssignments{s},
	}
}

type memSnapshot struct {
	reminders     map[domain.ReminderID]*domain.Reminder
	schedules     map[domain.ScheduleID]*domain.ScheduleEntry
	history       []*domain.SendHistory
	notifications []*domain.Notification
	devices       map[string]*domain.DeviceToken
	users         map[domain.UserID]*domain.UserProfile
}

func (s *MemStore) snapshot() memSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := memSnapshot{
		reminders:     make(map[domain.ReminderID]*domain.Reminder, len(s.reminders)),
		schedules:     make(map[domain.ScheduleID]*domain.ScheduleEntry, len(s.schedules)),
		history:       slices.Clone(s.history),
		notifications: slices.Clone(s.notifications),
		devices:       make(map[string]*domain.DeviceToken, len(s.devices)),
		users:         make(map[domain.UserID]*domain.UserProfile, len(s.users)),
	}

	for id, r := range s.reminders {
		snap.reminders[id] = cloneReminder(r)
	}

	for id, e := range s.schedules {
		snap.schedules[id] = cloneSchedule(e)
	}

	for tok, d := range s.devices {
		snap.devices[tok] = cloneDevice(d)
	}

	for id, u := range s.users {
		snap.users[id] = cloneUser(u)
	}

	return snap
}

func (s *MemStore) restore(snap memSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders = snap.reminders
	s.schedules = snap.schedules
	s.history = snap.history
	s.notifications = snap.notifications
	s.devices = snap.devices
	s.users = snap.users
}

func (s *MemStore) Do(ctx context.Context, fn func(repos domain.Repositories) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()

	if err := fn(s.Repositories()); err != nil {
		s.restore(snap)

		return err
	}

	return nil
}

// Seeding and inspection helpers.

func (s *MemStore) PutUser(u *domain.UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.users[u.ID()] = cloneUser(u)
}

func (s *MemStore) PutAssignment(a *domain.Assignment) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.assignments[a.ID()] = a
}

func (s *MemStore) RemoveAssignment(id domain.AssignmentID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.assignments, id)
}

func (s *MemStore) PutReminder(r *domain.Reminder) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.reminders[r.ID()] = cloneReminder(r)
}

func (s *MemStore) PutSchedule(e *domain.ScheduleEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.schedules[e.ID()] = cloneSchedule(e)
}

func (s *MemStore) PutDevice(d *domain.DeviceToken) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.devices[d.Token()] = cloneDevice(d)
}

func (s *MemStore) Reminder(id domain.ReminderID) *domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.reminders[id]
	if !ok {
		return nil
	}

	return cloneReminder(r)
}

// Reminders returns every stored reminder ordered by reminder_at.
func (s *MemStore) Reminders() []*domain.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sortedReminders(func(*domain.Reminder) bool { return true })
}

func (s *MemStore) History() []*domain.SendHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.history)
}

func (s *MemStore) Notifications() []*domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.notifications)
}

func (s *MemStore) Device(token string) *domain.DeviceToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.devices[token]
	if !ok {
		return nil
	}

	return cloneDevice(d)
}

func (s *MemStore) User(id domain.UserID) *domain.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil
	}

	return cloneUser(u)
}

// sortedReminders must be called with mu held.
func (s *MemStore) sortedReminders(keep func(*domain.Reminder) bool) []*domain.Reminder {
	out := make([]*domain.Reminder, 0, len(s.reminders))

	for _, r := range s.reminders {
		if keep(r) {
			out = append(out, cloneReminder(r))
		}
	}

	slices.SortFunc(out, func(a, b *domain.Reminder) int {
		if c := a.ReminderAt().Compare(b.ReminderAt()); c != 0 {
			return c
		}

		return compareStrings(a.ID().String(), b.ID().String())
	})

	return out
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

type memReminders struct{ s *MemStore }

func (m memReminders) Save(_ context.Context, r *domain.Reminder) error {
	m.s.PutReminder(r)

	return nil
}

func (m memReminders) SaveAll(_ context.Context, reminders []*domain.Reminder) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if err := m.s.SaveAllErr; err != nil {
		m.s.SaveAllErr = nil

		return err
	}

	for _, r := range reminders {
		m.s.reminders[r.ID()] = cloneReminder(r)
	}

	return nil
}

func (m memReminders) Update(_ context.Context, r *domain.Reminder) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.reminders[r.ID()]; !ok {
		return domain.ErrReminderNotFound
	}

	m.s.reminders[r.ID()] = cloneReminder(r)

	return nil
}

func (m memReminders) FindByID(_ context.Context, id domain.ReminderID) (*domain.Reminder, error) {
	if r := m.s.Reminder(id); r != nil {
		return r, nil
	}

	return nil, domain.ErrReminderNotFound
}

func (m memReminders) FindByUser(_ context.Context, userID domain.UserID, filter domain.ReminderFilter) ([]*domain.Reminder, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	return m.s.sortedReminders(func(r *domain.Reminder) bool {
		if !r.UserID().Equals(userID) {
			return false
		}

		if filter.Origin != "" && r.Origin() != filter.Origin {
			return false
		}

		if filter.Status != "" && r.Status() != filter.Status {
			return false
		}

		if !filter.Reference.IsZero() && !r.Reference().Equals(filter.Reference) {
			return false
		}

		return true
	}), nil
}

func (m memReminders) Delete(_ context.Context, id domain.ReminderID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.reminders[id]; !ok {
		return domain.ErrReminderNotFound
	}

	delete(m.s.reminders, id)

	return nil
}

func (m memReminders) DeleteByReference(_ context.Context, userID domain.UserID, ref domain.Reference, origins []domain.Origin) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for id, r := range m.s.reminders {
		if !r.UserID().Equals(userID) || !r.Reference().Equals(ref) || !slices.Contains(origins, r.Origin()) {
			continue
		}

		bornDisabled := r.Origin() == domain.OriginAuto &&
			r.Status() == domain.StatusDisabled &&
			r.DisabledReason() == domain.ReasonDueDatePassed

		if r.Status() == domain.StatusPending || bornDisabled {
			delete(m.s.reminders, id)
			n++
		}
	}

	return n, nil
}

func (m memReminders) DisableByReference(_ context.Context, userID domain.UserID, ref domain.Reference, reason string, now time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for _, r := range m.s.reminders {
		if !r.UserID().Equals(userID) || !r.Reference().Equals(ref) || r.Origin() != domain.OriginAuto {
			continue
		}

		if r.Status() != domain.StatusPending && r.Status() != domain.StatusClaimed {
			continue
		}

		if err := r.Disable(reason, now); err == nil {
			n++
		}
	}

	return n, nil
}

func (m memReminders) ClaimDue(_ context.Context, now time.Time, lease time.Duration, limit int) ([]*domain.Reminder, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if err := m.s.ClaimDueErr; err != nil {
		m.s.ClaimDueErr = nil

		return nil, err
	}

	candidates := m.s.sortedReminders(func(r *domain.Reminder) bool {
		return r.IsDue(now)
	})

	claimed := make([]*domain.Reminder, 0, min(limit, len(candidates)))

	for _, c := range candidates {
		if len(claimed) >= limit {
			break
		}

		stored := m.s.reminders[c.ID()]
		if err := stored.Claim(now, lease); err != nil {
			continue
		}

		claimed = append(claimed, cloneReminder(stored))
	}

	return claimed, nil
}

func (m memReminders) MarkSent(_ context.Context, ids []domain.ReminderID, now time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if err := m.s.FinalizeErr; err != nil {
		m.s.FinalizeErr = nil

		return 0, err
	}

	var n int64

	for _, id := range ids {
		if r, ok := m.s.reminders[id]; ok && r.MarkSent(now) == nil {
			n++
		}
	}

	return n, nil
}

func (m memReminders) MarkDisabled(_ context.Context, reasons map[domain.ReminderID]string, now time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for _, id := range slices.Collect(maps.Keys(reasons)) {
		r, ok := m.s.reminders[id]
		if !ok || r.Status() != domain.StatusClaimed {
			continue
		}

		if r.Disable(reasons[id], now) == nil {
			n++
		}
	}

	return n, nil
}

func (m memReminders) Release(_ context.Context, ids []domain.ReminderID, now time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for _, id := range ids {
		if r, ok := m.s.reminders[id]; ok && r.Release(now) == nil {
			n++
		}
	}

	return n, nil
}

func (m memReminders) MarkNotified(_ context.Context, ids []domain.ReminderID, now time.Time) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for _, id := range ids {
		if r, ok := m.s.reminders[id]; ok && r.MarkNotified(now) {
			n++
		}
	}

	return n, nil
}

type memSchedules struct{ s *MemStore }

func (m memSchedules) Save(_ context.Context, e *domain.ScheduleEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	for _, existing := range m.s.schedules {
		if existing.SameSlot(e) && existing.ID() != e.ID() {
			return domain.ErrScheduleAlreadyExists
		}
	}

	m.s.schedules[e.ID()] = cloneSchedule(e)

	return nil
}

func (m memSchedules) SaveAll(ctx context.Context, entries []*domain.ScheduleEntry) error {
	for _, e := range entries {
		if err := m.Save(ctx, e); err != nil {
			return err
		}
	}

	return nil
}

func (m memSchedules) Update(_ context.Context, e *domain.ScheduleEntry) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.schedules[e.ID()]; !ok {
		return domain.ErrScheduleNotFound
	}

	m.s.schedules[e.ID()] = cloneSchedule(e)

	return nil
}

func (m memSchedules) Delete(_ context.Context, id domain.ScheduleID) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.schedules[id]; !ok {
		return domain.ErrScheduleNotFound
	}

	delete(m.s.schedules, id)

	return nil
}

func (m memSchedules) FindByID(_ context.Context, id domain.ScheduleID) (*domain.ScheduleEntry, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	e, ok := m.s.schedules[id]
	if !ok {
		return nil, domain.ErrScheduleNotFound
	}

	return cloneSchedule(e), nil
}

func (m memSchedules) find(keep func(*domain.ScheduleEntry) bool) []*domain.ScheduleEntry {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var out []*domain.ScheduleEntry

	for _, e := range m.s.schedules {
		if keep(e) {
			out = append(out, cloneSchedule(e))
		}
	}

	slices.SortFunc(out, func(a, b *domain.ScheduleEntry) int {
		if c := a.CreatedAt().Compare(b.CreatedAt()); c != 0 {
			return c
		}

		return compareStrings(a.ID().String(), b.ID().String())
	})

	return out
}

func (m memSchedules) FindByUser(_ context.Context, userID domain.UserID, filter domain.ScheduleFilter) ([]*domain.ScheduleEntry, error) {
	return m.find(func(e *domain.ScheduleEntry) bool {
		if !e.UserID().Equals(userID) {
			return false
		}

		if filter.IncludeGlobal && e.IsGlobal() {
			return true
		}

		return !filter.AssignmentID.IsZero() && e.AssignmentID().Equals(filter.AssignmentID)
	}), nil
}

func (m memSchedules) FindApplicable(_ context.Context, userID domain.UserID, assignmentID domain.AssignmentID) ([]*domain.ScheduleEntry, error) {
	return m.find(func(e *domain.ScheduleEntry) bool {
		return e.UserID().Equals(userID) && e.AppliesTo(assignmentID)
	}), nil
}

func (m memSchedules) FindSlot(_ context.Context, userID domain.UserID, assignmentID domain.AssignmentID, offset domain.Offset) (*domain.ScheduleEntry, error) {
	found := m.find(func(e *domain.ScheduleEntry) bool {
		return e.UserID().Equals(userID) &&
			e.AssignmentID().Equals(assignmentID) &&
			e.Offset().Equals(offset)
	})
	if len(found) == 0 {
		return nil, domain.ErrScheduleNotFound
	}

	return found[0], nil
}

func (m memSchedules) CountDefaults(_ context.Context, userID domain.UserID) (int64, error) {
	found := m.find(func(e *domain.ScheduleEntry) bool {
		return e.UserID().Equals(userID) && e.IsDefault()
	})

	return int64(len(found)), nil
}

type memHistory struct{ s *MemStore }

func (m memHistory) CreateMany(_ context.Context, rows []*domain.SendHistory) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.history = append(m.s.history, rows...)

	return nil
}

func (m memHistory) FindByReminder(_ context.Context, reminderID domain.ReminderID) ([]*domain.SendHistory, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var out []*domain.SendHistory

	for _, h := range m.s.history {
		if h.ReminderID() == reminderID {
			out = append(out, h)
		}
	}

	return out, nil
}

type memNotifications struct{ s *MemStore }

func (m memNotifications) CreateMany(_ context.Context, notifications []*domain.Notification) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	m.s.notifications = append(m.s.notifications, notifications...)

	return nil
}

func (m memNotifications) FindByUser(_ context.Context, userID domain.UserID, limit int) ([]*domain.Notification, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var out []*domain.Notification

	for i := len(m.s.notifications) - 1; i >= 0 && (limit <= 0 || len(out) < limit); i-- {
		if m.s.notifications[i].UserID().Equals(userID) {
			out = append(out, m.s.notifications[i])
		}
	}

	return out, nil
}

func (m memNotifications) CountUnread(_ context.Context, userID domain.UserID) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for _, item := range m.s.notifications {
		if item.UserID().Equals(userID) && !item.IsRead() {
			n++
		}
	}

	return n, nil
}

func (m memNotifications) MarkRead(_ context.Context, userID domain.UserID, ids []uuid.UUID) (int64, error) {
	return m.markRead(userID, func(n *domain.Notification) bool {
		return slices.Contains(ids, n.ID())
	})
}

func (m memNotifications) MarkAllRead(_ context.Context, userID domain.UserID) (int64, error) {
	return m.markRead(userID, func(*domain.Notification) bool { return true })
}

// markRead replaces matching entries instead of mutating them so a snapshot
// taken by Do still holds the unread versions.
func (m memNotifications) markRead(userID domain.UserID, match func(*domain.Notification) bool) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for i, item := range m.s.notifications {
		if !item.UserID().Equals(userID) || item.IsRead() || !match(item) {
			continue
		}

		m.s.notifications[i] = domain.ReconstituteNotification(
			item.ID(),
			item.UserID(),
			item.Type(),
			item.Reference(),
			item.Title(),
			item.Message(),
			item.Data(),
			true,
			item.CreatedAt(),
		)
		n++
	}

	return n, nil
}

type memDevices struct{ s *MemStore }

func (m memDevices) Upsert(_ context.Context, d *domain.DeviceToken) error {
	m.s.PutDevice(d)

	return nil
}

func (m memDevices) FindByUser(_ context.Context, userID domain.UserID) (domain.DeviceTokens, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var out domain.DeviceTokens

	for _, tok := range slices.Sorted(maps.Keys(m.s.devices)) {
		if d := m.s.devices[tok]; d.UserID().Equals(userID) {
			out = append(out, cloneDevice(d))
		}
	}

	return out, nil
}

func (m memDevices) FindActiveByUsers(_ context.Context, userIDs []domain.UserID) (map[domain.UserID]domain.DeviceTokens, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	out := make(map[domain.UserID]domain.DeviceTokens)

	for _, tok := range slices.Sorted(maps.Keys(m.s.devices)) {
		d := m.s.devices[tok]
		if d.IsActive() && slices.Contains(userIDs, d.UserID()) {
			out[d.UserID()] = append(out[d.UserID()], cloneDevice(d))
		}
	}

	return out, nil
}

func (m memDevices) Deactivate(_ context.Context, tokens []string) (int64, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var n int64

	for _, tok := range tokens {
		if d, ok := m.s.devices[tok]; ok && d.IsActive() {
			d.Deactivate()
			n++
		}
	}

	return n, nil
}

type memUsers struct{ s *MemStore }

func (m memUsers) FindByID(_ context.Context, id domain.UserID) (*domain.UserProfile, error) {
	if u := m.s.User(id); u != nil {
		return u, nil
	}

	return nil, domain.ErrUserNotFound
}

func (m memUsers) FindByIDs(_ context.Context, ids []domain.UserID) (map[domain.UserID]*domain.UserProfile, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	out := make(map[domain.UserID]*domain.UserProfile, len(ids))

	for _, id := range ids {
		if u, ok := m.s.users[id]; ok {
			out[id] = cloneUser(u)
		}
	}

	return out, nil
}

func (m memUsers) UpdatePreferences(_ context.Context, u *domain.UserProfile) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if _, ok := m.s.users[u.ID()]; !ok {
		return domain.ErrUserNotFound
	}

	m.s.users[u.ID()] = cloneUser(u)

	return nil
}

type memAssignments struct{ s *MemStore }

func (m memAssignments) FindByID(_ context.Context, userID domain.UserID, id domain.AssignmentID) (*domain.Assignment, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	if m.s.FailResolve != nil {
		return nil, m.s.FailResolve
	}

	a, ok := m.s.assignments[id]
	if !ok || !a.UserID().Equals(userID) {
		return nil, domain.ErrAssignmentNotFound
	}

	return a, nil
}

func (m memAssignments) FindIDsByUser(_ context.Context, userID domain.UserID) ([]domain.AssignmentID, error) {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()

	var out []domain.AssignmentID

	for id, a := range m.s.assignments {
		if a.UserID().Equals(userID) {
			out = append(out, id)
		}
	}

	slices.SortFunc(out, func(a, b domain.AssignmentID) int {
		return compareStrings(a.String(), b.String())
	})

	return out, nil
}

func cloneReminder(r *domain.Reminder) *domain.Reminder {
	return domain.ReconstituteReminder(
		r.ID(),
		r.UserID(),
		r.Reference(),
		r.ReminderAt(),
		r.Title(),
		r.Message(),
		r.NotificationType(),
		r.Origin(),
		r.ScheduleID(),
		r.Status(),
		r.DisabledReason(),
		clonePtr(r.DisabledAt()),
		clonePtr(r.ClaimedUntil()),
		clonePtr(r.SentAt()),
		clonePtr(r.NotifiedAt()),
		r.CreatedAt(),
		r.UpdatedAt(),
	)
}

func cloneSchedule(e *domain.ScheduleEntry) *domain.ScheduleEntry {
	return domain.ReconstituteScheduleEntry(
		e.ID(),
		e.UserID(),
		e.AssignmentID(),
		e.Offset(),
		e.IsEnabled(),
		e.IsDefault(),
		e.CreatedAt(),
		e.UpdatedAt(),
	)
}

func cloneDevice(d *domain.DeviceToken) *domain.DeviceToken {
	return domain.ReconstituteDeviceToken(
		d.UserID(),
		d.Token(),
		d.Platform(),
		d.DeviceID(),
		d.DeviceModel(),
		d.IsActive(),
		d.CreatedAt(),
		d.UpdatedAt(),
	)
}

func cloneUser(u *domain.UserProfile) *domain.UserProfile {
	return domain.ReconstituteUserProfile(u.ID(), u.Email(), u.Name(), u.Preferences(), u.UpdatedAt())
}

func clonePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}

	v := *t

	return &v
}
