package repository

import (
	"time"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type ReminderModel struct {
	ID               string     `gorm:"column:id;type:uuid;primaryKey"`
	UserID           string     `gorm:"column:user_id;type:uuid;not null;index:idx_reminders_reference,priority:1"`
	ReferenceKind    string     `gorm:"column:reference_kind;type:varchar(32);not null;default:'';index:idx_reminders_reference,priority:2"`
	ReferenceID      *string    `gorm:"column:reference_id;type:uuid;index:idx_reminders_reference,priority:3"`
	ReminderAt       time.Time  `gorm:"column:reminder_at;type:timestamptz;not null;index:idx_reminders_due,priority:2"`
	Title            string     `gorm:"column:title;type:text;not null"`
	Message          string     `gorm:"column:message;type:text;not null"`
	NotificationType string     `gorm:"column:notification_type;type:varchar(32);not null"`
	Origin           string     `gorm:"column:origin;type:varchar(16);not null"`
	ScheduleID       *string    `gorm:"column:schedule_id;type:uuid"`
	Status           string     `gorm:"column:status;type:varchar(16);not null;index:idx_reminders_due,priority:1"`
	DisabledReason   string     `gorm:"column:disabled_reason;type:text;not null;default:''"`
	DisabledAt       *time.Time `gorm:"column:disabled_at;type:timestamptz"`
	ClaimedUntil     *time.Time `gorm:"column:claimed_until;type:timestamptz"`
	SentAt           *time.Time `gorm:"column:sent_at;type:timestamptz"`
	NotifiedAt       *time.Time `gorm:"column:notified_at;type:timestamptz"`
	CreatedAt        time.Time  `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt        time.Time  `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (ReminderModel) TableName() string {
	return "reminders"
}

func (m *ReminderModel) ToEntity() (*domain.Reminder, error) {
	id, err := domain.ReminderIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	ref, err := toReference(m.ReferenceKind, m.ReferenceID)
	if err != nil {
		return nil, err
	}

	notificationType, err := domain.NewNotificationType(m.NotificationType)
	if err != nil {
		return nil, err
	}

	origin, err := domain.NewOrigin(m.Origin)
	if err != nil {
		return nil, err
	}

	status, err := domain.NewStatus(m.Status)
	if err != nil {
		return nil, err
	}

	var scheduleID domain.ScheduleID
	if m.ScheduleID != nil {
		scheduleID, err = domain.ScheduleIDFromString(*m.ScheduleID)
		if err != nil {
			return nil, err
		}
	}

	return domain.ReconstituteReminder(
		id,
		userID,
		ref,
		m.ReminderAt,
		m.Title,
		m.Message,
		notificationType,
		origin,
		scheduleID,
		status,
		m.DisabledReason,
		m.DisabledAt,
		m.ClaimedUntil,
		m.SentAt,
		m.NotifiedAt,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func FromReminder(e *domain.Reminder) *ReminderModel {
	kind, refID := fromReference(e.Reference())

	m := &ReminderModel{
		ID:               e.ID().String(),
		UserID:           e.UserID().String(),
		ReferenceKind:    kind,
		ReferenceID:      refID,
		ReminderAt:       e.ReminderAt(),
		Title:            e.Title(),
		Message:          e.Message(),
		NotificationType: string(e.NotificationType()),
		Origin:           string(e.Origin()),
		Status:           string(e.Status()),
		DisabledReason:   e.DisabledReason(),
		DisabledAt:       e.DisabledAt(),
		ClaimedUntil:     e.ClaimedUntil(),
		SentAt:           e.SentAt(),
		NotifiedAt:       e.NotifiedAt(),
		CreatedAt:        e.CreatedAt(),
		UpdatedAt:        e.UpdatedAt(),
	}

	if !e.ScheduleID().IsZero() {
		s := e.ScheduleID().String()
		m.ScheduleID = &s
	}

	return m
}

func fromReference(ref domain.Reference) (string, *string) {
	if ref.IsZero() {
		return "", nil
	}

	id := ref.ID().String()

	return string(ref.Kind()), &id
}

func toReference(kind string, id *string) (domain.Reference, error) {
	if id == nil {
		return domain.NewReference(kind, "")
	}

	return domain.NewReference(kind, *id)
}

func toReminders(models []ReminderModel) ([]*domain.Reminder, error) {
	reminders := make([]*domain.Reminder, 0, len(models))

	for _, m := range models {
		r, err := m.ToEntity()
		if err != nil {
			return nil, err
		}

		reminders = append(reminders, r)
	}

	return reminders, nil
}
