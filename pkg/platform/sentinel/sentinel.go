package sentinel

import "errors"

// Sentinel errors for platform facts. The Discord adapter returns these
// (optionally wrapped) so services can turn them into outcome values.
//
// - ErrNotFound: the channel, role or user does not exist or is not visible to the bot
// - ErrForbidden: the platform refused the call for lack of permission
// - ErrUnavailable: the platform could not be reached or answered with a server error
var (
	ErrNotFound    = errors.New("not found")
	ErrForbidden   = errors.New("forbidden")
	ErrUnavailable = errors.New("unavailable")
)
