package domain

import (
	"context"

	"github.com/google/uuid"
)

type Eligibility struct {
	Eligible bool
	Reason   string
}

func eligible() Eligibility {
	return Eligibility{Eligible: true}
}

func ineligible(reason string) Eligibility {
	return Eligibility{Eligible: false, Reason: reason}
}

// ReferenceTarget is whatever a reminder reference resolves to, as far as
// channel routing is concerned.
type ReferenceTarget interface {
	AllowsChannel(ch Channel) bool
}

// ResolveFunc loads the target of one reference kind. A nil target with a
// nil error means the target no longer exists.
type ResolveFunc func(ctx context.Context, userID UserID, id uuid.UUID) (ReferenceTarget, error)

type ReferenceResolver struct {
	resolvers map[ReferenceKind]ResolveFunc
}

func NewReferenceResolver() *ReferenceResolver {
	return &ReferenceResolver{resolvers: make(map[ReferenceKind]ResolveFunc)}
}

func (r *ReferenceResolver) Register(kind ReferenceKind, fn ResolveFunc) {
	r.resolvers[kind] = fn
}

// Resolve returns nil for empty references and kinds without a resolver.
func (r *ReferenceResolver) Resolve(ctx context.Context, userID UserID, ref Reference) (ReferenceTarget, error) {
	if ref.IsZero() {
		return nil, nil
	}

	fn, ok := r.resolvers[ref.Kind()]
	if !ok {
		return nil, nil
	}

	return fn(ctx, userID, ref.ID())
}

// IsEligible runs the preference checks in order and reports the first
// failure. target is the resolved reference, nil when missing.
func IsEligible(r *Reminder, recipient Recipient, ch Channel, target ReferenceTarget) Eligibility {
	if !recipient.Exists() {
		return ineligible(ReasonUserNotFound)
	}

	prefs := recipient.Profile.Preferences()

	if !prefs.ChannelEnabled(ch) {
		if ch == ChannelPush {
			return ineligible(ReasonPushDisabled)
		}

		return ineligible(ReasonEmailDisabled)
	}

	if r.NotificationType() == NotificationTypeAssignment {
		if !prefs.AssignmentNotification {
			return ineligible(ReasonAssignmentNotificationDisabled)
		}

		if target == nil {
			return ineligible(ReasonAssignmentNotFound)
		}

		if !target.AllowsChannel(ch) {
			if ch == ChannelPush {
				return ineligible(ReasonAssignmentPushDisabled)
			}

			return ineligible(ReasonAssignmentEmailDisabled)
		}
	}

	if ch == ChannelPush && recipient.Tokens.Deliverable().Count() == 0 {
		return ineligible(ReasonNoDeviceTokens)
	}

	return eligible()
}
