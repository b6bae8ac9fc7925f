package handler

import (
	"errors"
	"fmt"

	"tradelog/internal/command/models"
	"tradelog/internal/dispatch"
	"tradelog/internal/notify"
	dErrors "tradelog/pkg/domain-errors"
)

// User-facing reply texts.
const (
	MessagePong          = "Pong!"
	MessageGenericError  = "There was an error while executing this command!"
	messageUnsupportedFm = "No specific handler implemented for command '%s'."
)

// replyFor maps a dispatch outcome to the final reply. summary describes the
// logged action and names the logging channel, e.g. "Trade successfully logged in #logs".
func replyFor(out dispatch.Outcome, summary string) string {
	switch {
	case out.Delivered():
		return summary + " and a notification has been sent."
	case out.RecordPosted && out.Has(dispatch.ErrNotificationFailure):
		return fmt.Sprintf("%s, but the review notification could not be sent. Please check my permissions in %s.",
			summary, out.LoggingChannel.Mention())
	case out.RecordPosted && out.Resolution == notify.MethodUnresolved:
		return summary + ", but no reviewer was notified: the notification target is not a known role or user."
	case out.RecordPosted:
		return summary + "."
	default:
		return failureMessage(out)
	}
}

// failureMessage names the failure category without internal detail.
func failureMessage(out dispatch.Outcome) string {
	if len(out.Errors) == 0 {
		return MessageGenericError
	}
	kind := out.Errors[0]
	switch kind {
	case dispatch.ErrChannelNotFound:
		return errorLine(string(kind), "Could not find the logging channel. Please check bot configuration.")
	case dispatch.ErrInsufficientPermissions:
		return errorLine(string(kind), fmt.Sprintf(
			"I don't have permissions to send messages or embed links in the %s channel. Please check my permissions.",
			out.LoggingChannel.Mention()))
	case dispatch.ErrDeliveryFailure:
		return errorLine(string(kind), fmt.Sprintf(
			"The audit record could not be posted to %s. Nothing was logged.", out.LoggingChannel.Mention()))
	default:
		return errorLine(string(kind), "The action could not be logged.")
	}
}

func validationMessage(err error) string {
	var msg string
	var de *dErrors.Error
	if errors.As(err, &de) {
		msg = de.Message
	} else {
		msg = "invalid command options"
	}
	return errorLine(string(dErrors.CodeValidation), msg+".")
}

func unsupportedMessage(name string) string {
	return fmt.Sprintf(messageUnsupportedFm, name)
}

func errorLine(category, text string) string {
	return fmt.Sprintf("Error (%s): %s", category, text)
}

func tradeSummary(log models.ChannelRef) string {
	return "Trade successfully logged in " + log.Mention()
}

func grantAccessSummary(o models.GrantAccessOptions, log models.ChannelRef) string {
	return fmt.Sprintf("Access grant for %s to %s successfully logged in %s",
		o.Recipient.Username, o.ChannelGranted.Mention(), log.Mention())
}

func assignRoleSummary(o models.AssignRoleOptions, log models.ChannelRef) string {
	return fmt.Sprintf("Assignment of role %s to %s successfully logged in %s",
		o.RoleAssigned.Name, o.Recipient.Username, log.Mention())
}
