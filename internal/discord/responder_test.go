package discord

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInteractionAPI struct {
	responses  []*discordgo.InteractionResponse
	followups  []*discordgo.WebhookParams
	respondErr error
}

func (f *fakeInteractionAPI) InteractionRespond(_ *discordgo.Interaction, resp *discordgo.InteractionResponse, _ ...discordgo.RequestOption) error {
	if f.respondErr != nil {
		return f.respondErr
	}
	f.responses = append(f.responses, resp)
	return nil
}

func (f *fakeInteractionAPI) FollowupMessageCreate(_ *discordgo.Interaction, _ bool, data *discordgo.WebhookParams, _ ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.followups = append(f.followups, data)
	return &discordgo.Message{}, nil
}

func TestResponderDeferThenFollowup(t *testing.T) {
	api := &fakeInteractionAPI{}
	r := NewResponder(api, &discordgo.Interaction{ID: "i1"})
	ctx := context.Background()

	assert.False(t, r.Acknowledged())
	require.NoError(t, r.Defer(ctx))
	assert.True(t, r.Acknowledged())
	require.NoError(t, r.Followup(ctx, "done"))

	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseDeferredChannelMessageWithSource, api.responses[0].Type)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.responses[0].Data.Flags)
	require.Len(t, api.followups, 1)
	assert.Equal(t, "done", api.followups[0].Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.followups[0].Flags)
}

func TestResponderReplyIsEphemeral(t *testing.T) {
	api := &fakeInteractionAPI{}
	r := NewResponder(api, &discordgo.Interaction{ID: "i2"})

	require.NoError(t, r.Reply(context.Background(), "Pong!"))

	assert.True(t, r.Acknowledged())
	require.Len(t, api.responses, 1)
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, api.responses[0].Type)
	assert.Equal(t, "Pong!", api.responses[0].Data.Content)
	assert.Equal(t, discordgo.MessageFlagsEphemeral, api.responses[0].Data.Flags)
}

func TestResponderFailedDeferIsNotAcknowledged(t *testing.T) {
	api := &fakeInteractionAPI{respondErr: errors.New("unknown interaction")}
	r := NewResponder(api, &discordgo.Interaction{ID: "i3"})

	assert.Error(t, r.Defer(context.Background()))
	assert.False(t, r.Acknowledged())
}
