// Package discord adapts a discordgo session to the ports used by the
// dispatch pipeline and the notification resolver. It is the only package
// that imports discordgo.
package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"

	"tradelog/internal/audit"
	"tradelog/internal/command/models"
	"tradelog/pkg/domain"
	"tradelog/pkg/platform/sentinel"
)

// Client reads from the session state cache first and falls back to REST.
type Client struct {
	session *discordgo.Session
}

func NewClient(session *discordgo.Session) *Client {
	return &Client{session: session}
}

// BotUser returns the identity the session logged in as.
func (c *Client) BotUser(ctx context.Context) (models.UserRef, error) {
	if c.session.State != nil && c.session.State.User != nil {
		return userRef(c.session.State.User), nil
	}
	u, err := c.session.User("@me", discordgo.WithContext(ctx))
	if err != nil {
		return models.UserRef{}, mapError(err, "fetch bot user")
	}
	return userRef(u), nil
}

// Channel resolves a channel handle. Missing channels return sentinel.ErrNotFound.
func (c *Client) Channel(ctx context.Context, channelID domain.ChannelID) (models.ChannelRef, error) {
	if c.session.State != nil {
		if ch, err := c.session.State.Channel(channelID.String()); err == nil {
			return models.ChannelRef{ID: channelID, Name: ch.Name}, nil
		}
	}
	ch, err := c.session.Channel(channelID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return models.ChannelRef{}, mapError(err, "fetch channel")
	}
	return models.ChannelRef{ID: channelID, Name: ch.Name}, nil
}

// ChannelPermissions computes the effective permissions of userID in channelID.
func (c *Client) ChannelPermissions(ctx context.Context, userID domain.UserID, channelID domain.ChannelID) (domain.Permissions, error) {
	if c.session.State != nil {
		if perms, err := c.session.State.UserChannelPermissions(userID.String(), channelID.String()); err == nil {
			return domain.Permissions(perms), nil
		}
	}
	perms, err := c.session.UserChannelPermissions(userID.String(), channelID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return 0, mapError(err, "compute channel permissions")
	}
	return domain.Permissions(perms), nil
}

// SendRecord posts record as a single embed.
func (c *Client) SendRecord(ctx context.Context, channelID domain.ChannelID, record *audit.Record) error {
	_, err := c.session.ChannelMessageSendComplex(channelID.String(), &discordgo.MessageSend{
		Embeds: []*discordgo.MessageEmbed{Embed(record)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return mapError(err, "send audit record")
	}
	return nil
}

// SendText posts a plain message. Mentions in content are delivered.
func (c *Client) SendText(ctx context.Context, channelID domain.ChannelID, content string) error {
	if _, err := c.session.ChannelMessageSend(channelID.String(), content, discordgo.WithContext(ctx)); err != nil {
		return mapError(err, "send notification")
	}
	return nil
}

// RoleExists reports whether roleID is a role of guildID.
func (c *Client) RoleExists(ctx context.Context, guildID domain.GuildID, roleID string) (bool, error) {
	if c.session.State != nil {
		if _, err := c.session.State.Role(guildID.String(), roleID); err == nil {
			return true, nil
		}
	}
	roles, err := c.session.GuildRoles(guildID.String(), discordgo.WithContext(ctx))
	if err != nil {
		return false, mapError(err, "fetch guild roles")
	}
	for _, r := range roles {
		if r.ID == roleID {
			return true, nil
		}
	}
	return false, nil
}

// UserExists reports whether userID names a platform user.
func (c *Client) UserExists(ctx context.Context, userID string) (bool, error) {
	if !domain.IsNumeric(userID) {
		return false, nil
	}
	if _, err := c.session.User(userID, discordgo.WithContext(ctx)); err != nil {
		err = mapError(err, "fetch user")
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Embed renders an audit record as a Discord embed.
func Embed(r *audit.Record) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(r.Fields))
	for _, f := range r.Fields {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   f.Label,
			Value:  f.Value,
			Inline: f.Inline,
		})
	}
	embed := &discordgo.MessageEmbed{
		Title:     r.Title,
		Color:     r.Color,
		Fields:    fields,
		Timestamp: r.Timestamp.UTC().Format(time.RFC3339),
	}
	if r.Author.Name != "" {
		embed.Author = &discordgo.MessageEmbedAuthor{Name: r.Author.Name, IconURL: r.Author.IconURL}
	}
	if r.Footer.Text != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: r.Footer.Text, IconURL: r.Footer.IconURL}
	}
	return embed
}

func userRef(u *discordgo.User) models.UserRef {
	if u == nil {
		return models.UserRef{}
	}
	return models.UserRef{
		ID:        domain.UserID(u.ID),
		Username:  u.Username,
		AvatarURL: u.AvatarURL(""),
	}
}

// mapError translates REST failures into platform sentinels.
func mapError(err error, op string) error {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		switch restErr.Response.StatusCode {
		case http.StatusNotFound:
			return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
		case http.StatusForbidden:
			return fmt.Errorf("%s: %w", op, sentinel.ErrForbidden)
		}
		if restErr.Response.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%s: %w: %s", op, sentinel.ErrUnavailable, restErr.Error())
		}
	}
	if errors.Is(err, discordgo.ErrStateNotFound) {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
