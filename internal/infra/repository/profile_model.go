package repository

import (
	"time"

	"gorm.io/datatypes"

	"github.com/KasumiMercury/primind-assignment-reminder/internal/domain"
)

// PreferencesJSON is the stored shape of the preference column. Absent
// keys fall back to the defaults.
type PreferencesJSON struct {
	AssignmentReminder     *bool `json:"assignment_reminder,omitempty"`
	PushNotification       *bool `json:"push_notification,omitempty"`
	EmailNotification      *bool `json:"email_notification,omitempty"`
	AssignmentNotification *bool `json:"assignment_notification,omitempty"`
}

func (p PreferencesJSON) toDomain() domain.NotificationPreferences {
	return domain.PreferencesPatch{
		AssignmentReminder:     p.AssignmentReminder,
		PushNotification:       p.PushNotification,
		EmailNotification:      p.EmailNotification,
		AssignmentNotification: p.AssignmentNotification,
	}.Apply(domain.DefaultNotificationPreferences())
}

func preferencesJSON(p domain.NotificationPreferences) PreferencesJSON {
	return PreferencesJSON{
		AssignmentReminder:     &p.AssignmentReminder,
		PushNotification:       &p.PushNotification,
		EmailNotification:      &p.EmailNotification,
		AssignmentNotification: &p.AssignmentNotification,
	}
}

type UserModel struct {
	ID                      string                               `gorm:"column:id;type:uuid;primaryKey"`
	Email                   string                               `gorm:"column:email;type:varchar(320);not null"`
	Name                    string                               `gorm:"column:name;type:varchar(255);not null;default:''"`
	NotificationPreferences datatypes.JSONType[PreferencesJSON] `gorm:"column:notification_preferences;type:jsonb;not null;default:'{}'"`
	UpdatedAt               time.Time                            `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) ToEntity() (*domain.UserProfile, error) {
	id, err := domain.UserIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteUserProfile(
		id,
		m.Email,
		m.Name,
		m.NotificationPreferences.Data().toDomain(),
		m.UpdatedAt,
	), nil
}

func FromUserProfile(e *domain.UserProfile) *UserModel {
	return &UserModel{
		ID:                      e.ID().String(),
		Email:                   e.Email(),
		Name:                    e.Name(),
		NotificationPreferences: datatypes.NewJSONType(preferencesJSON(e.Preferences())),
		UpdatedAt:               e.UpdatedAt(),
	}
}

type DeviceTokenModel struct {
	Token       string    `gorm:"column:token;type:text;primaryKey"`
	UserID      string    `gorm:"column:user_id;type:uuid;not null;index:idx_device_tokens_user_active,priority:1"`
	Platform    string    `gorm:"column:platform;type:varchar(16);not null"`
	DeviceID    string    `gorm:"column:device_id;type:varchar(255);not null;default:''"`
	DeviceModel string    `gorm:"column:device_model;type:varchar(255);not null;default:''"`
	IsActive    bool      `gorm:"column:is_active;type:boolean;not null;default:true;index:idx_device_tokens_user_active,priority:2"`
	CreatedAt   time.Time `gorm:"column:created_at;type:timestamptz;not null"`
	UpdatedAt   time.Time `gorm:"column:updated_at;type:timestamptz;not null"`
}

func (DeviceTokenModel) TableName() string {
	return "device_tokens"
}

func (m *DeviceTokenModel) ToEntity() (*domain.DeviceToken, error) {
	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	platform, err := domain.NewPlatform(m.Platform)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteDeviceToken(
		userID,
		m.Token,
		platform,
		m.DeviceID,
		m.DeviceModel,
		m.IsActive,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func FromDeviceToken(e *domain.DeviceToken) *DeviceTokenModel {
	return &DeviceTokenModel{
		Token:       e.Token(),
		UserID:      e.UserID().String(),
		Platform:    string(e.Platform()),
		DeviceID:    e.DeviceID(),
		DeviceModel: e.DeviceModel(),
		IsActive:    e.IsActive(),
		CreatedAt:   e.CreatedAt(),
		UpdatedAt:   e.UpdatedAt(),
	}
}

// AssignmentModel maps the assignment service's table. This service only
// reads it.
type AssignmentModel struct {
	ID                  string     `gorm:"column:id;type:uuid;primaryKey"`
	UserID              string     `gorm:"column:user_id;type:uuid;not null;index:idx_assignments_user"`
	Title               string     `gorm:"column:title;type:text;not null"`
	DueDate             *time.Time `gorm:"column:due_date;type:timestamptz"`
	Status              string     `gorm:"column:status;type:varchar(16);not null"`
	IsReminder          bool       `gorm:"column:is_reminder;type:boolean;not null;default:true"`
	IsEmailNotification bool       `gorm:"column:is_email_notification;type:boolean;not null;default:true"`
	IsPushNotification  bool       `gorm:"column:is_push_notification;type:boolean;not null;default:true"`
}

func (AssignmentModel) TableName() string {
	return "assignments"
}

func (m *AssignmentModel) ToEntity() (*domain.Assignment, error) {
	id, err := domain.AssignmentIDFromString(m.ID)
	if err != nil {
		return nil, err
	}

	userID, err := domain.UserIDFromString(m.UserID)
	if err != nil {
		return nil, err
	}

	status, err := domain.NewAssignmentStatus(m.Status)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteAssignment(
		id,
		userID,
		m.Title,
		m.DueDate,
		status,
		m.IsReminder,
		m.IsEmailNotification,
		m.IsPushNotification,
	), nil
}

// Models lists every table the service migrates in tests and local runs.
func Models() []any {
	return []any{
		&ReminderModel{},
		&ScheduleEntryModel{},
		&SendHistoryModel{},
		&NotificationModel{},
		&DeviceTokenModel{},
		&UserModel{},
		&AssignmentModel{},
	}
}
