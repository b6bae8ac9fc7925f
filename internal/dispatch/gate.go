package dispatch

import (
	"context"
	"log/slog"

	"tradelog/pkg/domain"
)

// PermissionSource computes a member's effective permissions in a channel.
type PermissionSource interface {
	ChannelPermissions(ctx context.Context, userID domain.UserID, channelID domain.ChannelID) (domain.Permissions, error)
}

// requiredPermissions is what posting an embed needs.
const requiredPermissions = domain.PermissionSendMessages | domain.PermissionEmbedLinks

// Gate checks that the bot may post rich messages in a channel. It only reads.
type Gate struct {
	source PermissionSource
	logger *slog.Logger
}

func NewGate(source PermissionSource, logger *slog.Logger) *Gate {
	return &Gate{source: source, logger: logger}
}

// Check is true only when botID holds both SendMessages and EmbedLinks in
// channelID. A failed lookup is false.
func (g *Gate) Check(ctx context.Context, channelID domain.ChannelID, botID domain.UserID) bool {
	if botID.IsNil() {
		return false
	}
	perms, err := g.source.ChannelPermissions(ctx, botID, channelID)
	if err != nil {
		if g.logger != nil {
			g.logger.WarnContext(ctx, "permission lookup failed",
				"channel_id", channelID.String(),
				"error", err,
			)
		}
		return false
	}
	return perms.Has(requiredPermissions)
}
