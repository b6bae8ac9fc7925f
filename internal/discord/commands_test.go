package discord

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tradelog/pkg/domain-errors"
)

type fakeRegistrar struct {
	appID, guildID string
	commands       []*discordgo.ApplicationCommand
	err            error
}

func (f *fakeRegistrar) ApplicationCommandBulkOverwrite(appID, guildID string, cmds []*discordgo.ApplicationCommand, _ ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.appID, f.guildID, f.commands = appID, guildID, cmds
	return cmds, nil
}

func TestCommandsSchema(t *testing.T) {
	byName := map[string]*discordgo.ApplicationCommand{}
	for _, c := range Commands() {
		byName[c.Name] = c
	}
	require.Len(t, byName, 4)

	required := func(name string) []string {
		var out []string
		for _, o := range byName[name].Options {
			if o.Required {
				out = append(out, o.Name)
			}
		}
		return out
	}
	assert.Equal(t, []string{"receiving_channel", "giving_channel", "user"}, required("trade"))
	assert.Equal(t, []string{"channel_granted", "user"}, required("grantaccess"))
	assert.Equal(t, []string{"role_assigned", "user"}, required("assignrole"))
	assert.Empty(t, byName["ping"].Options)

	assert.Equal(t, discordgo.ApplicationCommandOptionRole, byName["assignrole"].Options[0].Type)
	assert.Len(t, byName["trade"].Options, 6)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.DiscardHandler)

	t.Run("guild scope", func(t *testing.T) {
		api := &fakeRegistrar{}
		n, err := Register(ctx, api, "app", "700", logger)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, "app", api.appID)
		assert.Equal(t, "700", api.guildID)
	})

	t.Run("global scope", func(t *testing.T) {
		api := &fakeRegistrar{}
		_, err := Register(ctx, api, "app", "", logger)
		require.NoError(t, err)
		assert.Empty(t, api.guildID)
	})

	t.Run("missing application id", func(t *testing.T) {
		_, err := Register(ctx, &fakeRegistrar{}, "", "", logger)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
	})

	t.Run("platform failure", func(t *testing.T) {
		_, err := Register(ctx, &fakeRegistrar{err: errors.New("401 unauthorized")}, "app", "", logger)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeUnavailable))
	})
}
