package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "tradelog/pkg/domain-errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"BOT_TOKEN", "CLIENT_ID", "GUILD_ID", "LOGGING_CHANNEL_ID", "PING_ROLE_ID"} {
		t.Setenv(k, "")
	}
}

func TestServeFailsFastOnMissingConfig(t *testing.T) {
	clearEnv(t)

	err := serve(context.Background())

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
}

func TestRegisterFailsFastOnMissingCredentials(t *testing.T) {
	clearEnv(t)

	cmd := registerCmd()
	cmd.SetArgs([]string{})
	err := cmd.ExecuteContext(context.Background())

	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConfig))
}

func TestSubcommandsRegistered(t *testing.T) {
	assert.Equal(t, "serve", serveCmd().Name())
	assert.Equal(t, "register", registerCmd().Name())
}
