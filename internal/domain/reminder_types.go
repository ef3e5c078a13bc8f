package domain

import "fmt"

type NotificationType string

const (
	NotificationTypeAssignment NotificationType = "ASSIGNMENT"
	NotificationTypeOther      NotificationType = "OTHER"
)

func NewNotificationType(t string) (NotificationType, error) {
	switch t {
	case string(NotificationTypeAssignment), string(NotificationTypeOther):
		return NotificationType(t), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidNotificationType, t)
	}
}

// Origin tells whether a reminder was derived from a schedule entry (AUTO)
// or authored directly by the user (CUSTOM).
type Origin string

const (
	OriginAuto   Origin = "AUTO"
	OriginCustom Origin = "CUSTOM"
)

func NewOrigin(o string) (Origin, error) {
	switch o {
	case string(OriginAuto), string(OriginCustom):
		return Origin(o), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidOrigin, o)
	}
}

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusClaimed  Status = "CLAIMED"
	StatusSent     Status = "SENT"
	StatusDisabled Status = "DISABLED"
)

func NewStatus(s string) (Status, error) {
	switch s {
	case string(StatusPending), string(StatusClaimed), string(StatusSent), string(StatusDisabled):
		return Status(s), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidReminderStatus, s)
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusSent || s == StatusDisabled
}

type Channel string

const (
	ChannelEmail Channel = "EMAIL"
	ChannelPush  Channel = "PUSH"
)

func NewChannel(c string) (Channel, error) {
	switch c {
	case string(ChannelEmail), string(ChannelPush):
		return Channel(c), nil
	default:
		return "", fmt.Errorf("%w: %s", ErrInvalidChannel, c)
	}
}

// Reasons recorded on disabled reminders and skipped sends.
const (
	ReasonDueDatePassed                  = "due date already passed"
	ReasonAssignmentCompleted            = "assignment completed"
	ReasonAssignmentCancelled            = "assignment cancelled"
	ReasonDisabledByUser                 = "disabled by user"
	ReasonEmailDisabled                  = "email disabled"
	ReasonPushDisabled                   = "push disabled"
	ReasonAssignmentNotificationDisabled = "assignment notification disabled"
	ReasonAssignmentNotFound             = "assignment not found"
	ReasonAssignmentEmailDisabled        = "email disabled for assignment"
	ReasonAssignmentPushDisabled         = "push disabled for assignment"
	ReasonNoDeviceTokens                 = "no device tokens"
	ReasonUserNotFound                   = "user not found"
)
