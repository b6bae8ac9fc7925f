package dispatch

import (
	"slices"

	"tradelog/internal/command/models"
	"tradelog/internal/notify"
	"tradelog/pkg/domain"
)

// ErrorKind is a short, user-safe failure category.
type ErrorKind string

const (
	ErrChannelNotFound         ErrorKind = "channel_not_found"
	ErrInsufficientPermissions ErrorKind = "insufficient_permissions"
	ErrDeliveryFailure         ErrorKind = "delivery_failure"
	ErrNotificationFailure     ErrorKind = "notification_failure"
)

// Request is one record to dispatch.
type Request struct {
	Kind    models.Kind
	Options models.Options
	Invoker models.UserRef
	GuildID domain.GuildID
}

// Outcome is the result of one dispatch. It is produced once and read in full
// by the reply logic.
type Outcome struct {
	RecordPosted       bool
	NotificationPosted bool
	Errors             []ErrorKind
	// Resolution is how the notification target resolved; empty when the
	// pipeline stopped before resolving.
	Resolution notify.Method
	// LoggingChannel is the configured channel, named in replies.
	LoggingChannel models.ChannelRef
}

// Has reports whether kind is among the outcome's errors.
func (o Outcome) Has(kind ErrorKind) bool {
	return slices.Contains(o.Errors, kind)
}

// Delivered reports full success: record and notification both posted.
func (o Outcome) Delivered() bool {
	return o.RecordPosted && o.NotificationPosted && len(o.Errors) == 0
}

// Degraded reports a posted record whose notification was skipped because the
// target did not resolve. Not an error.
func (o Outcome) Degraded() bool {
	return o.RecordPosted && !o.NotificationPosted && len(o.Errors) == 0
}

// Label buckets the outcome for metrics and logs.
func (o Outcome) Label() string {
	switch {
	case o.Delivered():
		return "delivered"
	case o.Degraded():
		return "degraded"
	case o.RecordPosted:
		return "partial"
	default:
		return "failed"
	}
}

func failed(channel models.ChannelRef, kind ErrorKind) Outcome {
	return Outcome{LoggingChannel: channel, Errors: []ErrorKind{kind}}
}
