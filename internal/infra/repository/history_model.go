package repository

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

type SendHistoryModel struct {
	ID         string            `gorm:"column:id;type:uuid;primaryKey"`
	ReminderID string            `gorm:"column:reminder_id;type:uuid;not null;index:idx_send_histories_reminder"`
	Channel    string            `gorm:"column:channel;type:varchar(8);not null"`
	CanBeSent  bool              `gorm:"column:can_be_sent;type:boolean;not null"`
	Reason     string            `gorm:"column:reason;type:text;not null"`
	Payload    datatypes.JSONMap `gorm:"column:payload;type:jsonb"`
	CreatedAt  time.Time         `gorm:"column:created_at;type:timestamptz;not null"`
}

func (SendHistoryModel) TableName() string {
	return "reminder_send_histories"
}

func (m *SendHistoryModel) ToEntity() (*domain.SendHistory, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	reminderID, err := domain.ReminderIDFromString(m.ReminderID)
	if err != nil {
		return nil, err
	}

	channel, err := domain.NewChannel(m.Channel)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteSendHistory(
		id,
		reminderID,
		channel,
		m.CanBeSent,
		m.Reason,
		map[string]any(m.Payload),
		m.CreatedAt,
	), nil
}

func FromSendHistory(e *domain.SendHistory) *SendHistoryModel {
	return &SendHistoryModel{
		ID:         e.ID().String(),
		ReminderID: e.ReminderID().String(),
		Channel:    string(e.Channel()),
		CanBeSent:  e.CanBeSent(),
		Reason:     e.Reason(),
		Payload:    datatypes.JSONMap(e.Payload()),
		CreatedAt:  e.CreatedAt(),
	}
}

type NotificationModel struct {
	ID            string            `gorm:"column:id;type:uuid;primaryKey"`
	UserID        string            `gorm:"column:user_id;type:uuid;not null;index:idx_notifications_user"`
	Type          string            `gorm:"column:type;type:varchar(32);not null"`
	ReferenceKind string            `gorm:"column:reference_kind;type:varchar(32);not null;default:''"`
	ReferenceID   *string           `gorm:"column:reference_id;type:uuid"`
	Title         string            `gorm:"column:title;type:text;not null"`
	Message       string            `gorm:"column:message;type:text;not null"`
	Data          datatypes.JSONMap `gorm:"column:data;type:jsonb"`
	IsRead        bool              `gorm:"column:is_read;type:boolean;not null;default:false"`
	CreatedAt     time.Time         `gorm:"column:created_at;type:timestamptz;not null"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) ToEntity() (*domain.Notification, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	nType, err := domain.NewNotificationType(m.Type)
	if err != nil {
		return nil, err
	}

	ref, err := toReference(m.ReferenceKind, m.ReferenceID)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteNotification(
		id,
		userID,
		nType,
		ref,
		m.Title,
		m.Message,
		map[string]any(m.Data),
		m.IsRead,
		m.CreatedAt,
	), nil
}

func FromNotification(e *domain.Notification) *NotificationModel {
	kind, refID := fromReference(e.Reference())

	return &NotificationModel{
		ID:            e.ID().String(),
		UserID:        e.UserID().String(),
		Type:          string(e.Type()),
		ReferenceKind: kind,
		ReferenceID:   refID,
		Title:         e.Title(),
		Message:       e.Message(),
		Data:          datatypes.JSONMap(e.Data()),
		IsRead:        e.IsRead(),
		CreatedAt:     e.CreatedAt(),
	}
}
