package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tradelog/pkg/domain-errors"
)

func validEnv() map[string]string {
	return map[string]string{
		"BOT_TOKEN":          "token",
		"CLIENT_ID":          "100000000000000001",
		"LOGGING_CHANNEL_ID": "200000000000000002",
		"PING_ROLE_ID":       "300000000000000003",
	}
}

func TestLoadFrom(t *testing.T) {
	t.Run("applies defaults", func(t *testing.T) {
		cfg, err := LoadFrom(validEnv())
		require.NoError(t, err)

		assert.Equal(t, "token", cfg.Credentials.BotToken)
		assert.Empty(t, cfg.Credentials.GuildID)
		assert.Equal(t, "200000000000000002", cfg.LoggingChannel().String())
		assert.Equal(t, 14*time.Minute, cfg.Bot.InvocationTimeout)
		assert.Equal(t, "https://discord.gg/5H3Aam69rm", cfg.Bot.Branding.CommunityURL)
		assert.Equal(t, "info", cfg.Observability.LogLevel)
		assert.Equal(t, ":9090", cfg.Observability.MetricsAddr)
	})

	for _, key := range []string{"BOT_TOKEN", "CLIENT_ID", "LOGGING_CHANNEL_ID", "PING_ROLE_ID"} {
		t.Run("missing "+key+" is a configuration error", func(t *testing.T) {
			environ := validEnv()
			delete(environ, key)

			_, err := LoadFrom(environ)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
			assert.Contains(t, err.Error(), key)
		})
	}

	t.Run("empty required value is rejected", func(t *testing.T) {
		environ := validEnv()
		environ["BOT_TOKEN"] = ""

		_, err := LoadFrom(environ)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
	})

	t.Run("non-numeric logging channel is rejected", func(t *testing.T) {
		environ := validEnv()
		environ["LOGGING_CHANNEL_ID"] = "trade-logs"

		_, err := LoadFrom(environ)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
		assert.Contains(t, err.Error(), "LOGGING_CHANNEL_ID")
	})

	t.Run("non-numeric notification target is accepted", func(t *testing.T) {
		environ := validEnv()
		environ["PING_ROLE_ID"] = "reviewers"

		cfg, err := LoadFrom(environ)
		require.NoError(t, err)
		assert.Equal(t, "reviewers", cfg.Bot.NotificationTargetID)
	})

	t.Run("invalid guild is rejected", func(t *testing.T) {
		environ := validEnv()
		environ["GUILD_ID"] = "main-server"

		_, err := LoadFrom(environ)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "GUILD_ID")
	})

	t.Run("non-positive timeout is rejected", func(t *testing.T) {
		environ := validEnv()
		environ["TRADELOG_INVOCATION_TIMEOUT"] = "0s"

		_, err := LoadFrom(environ)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "TRADELOG_INVOCATION_TIMEOUT")
	})
}

func TestLoadCredentialsFrom(t *testing.T) {
	t.Run("needs only token and client", func(t *testing.T) {
		creds, err := LoadCredentialsFrom(map[string]string{
			"BOT_TOKEN": "token",
			"CLIENT_ID": "100000000000000001",
			"GUILD_ID":  "400000000000000004",
		})
		require.NoError(t, err)
		assert.Equal(t, "400000000000000004", creds.GuildID)
	})

	t.Run("missing token fails", func(t *testing.T) {
		_, err := LoadCredentialsFrom(map[string]string{"CLIENT_ID": "100000000000000001"})
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
	})
}
