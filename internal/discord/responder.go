package discord

import (
	"context"
	"sync/atomic"

	"github.com/bwmarrin/discordgo"
)

// InteractionAPI is the part of the session a Responder calls.
type InteractionAPI interface {
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	FollowupMessageCreate(interaction *discordgo.Interaction, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Responder answers one interaction. All replies are ephemeral.
type Responder struct {
	api          InteractionAPI
	interaction  *discordgo.Interaction
	acknowledged atomic.Bool
}

func NewResponder(api InteractionAPI, interaction *discordgo.Interaction) *Responder {
	return &Responder{api: api, interaction: interaction}
}

func (r *Responder) Defer(ctx context.Context) error {
	err := r.api.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return mapError(err, "defer interaction")
	}
	r.acknowledged.Store(true)
	return nil
}

func (r *Responder) Reply(ctx context.Context, content string) error {
	err := r.api.InteractionRespond(r.interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return mapError(err, "reply to interaction")
	}
	r.acknowledged.Store(true)
	return nil
}

func (r *Responder) Followup(ctx context.Context, content string) error {
	_, err := r.api.FollowupMessageCreate(r.interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return mapError(err, "send followup")
	}
	return nil
}

func (r *Responder) Acknowledged() bool {
	return r.acknowledged.Load()
}
