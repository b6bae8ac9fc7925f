package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"tradelog/internal/dispatch/mocks"
	"tradelog/pkg/domain"
)

func TestGateCheck(t *testing.T) {
	ctx := context.Background()
	const channel = domain.ChannelID("500")
	const bot = domain.UserID("900")

	tests := []struct {
		name  string
		perms domain.Permissions
		err   error
		want  bool
	}{
		{"send and embed", domain.PermissionSendMessages | domain.PermissionEmbedLinks, nil, true},
		{"administrator", domain.PermissionAdministrator, nil, true},
		{"send only", domain.PermissionSendMessages, nil, false},
		{"embed only", domain.PermissionEmbedLinks, nil, false},
		{"lookup failure", 0, errors.New("member not cached"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			source := mocks.NewMockMessenger(gomock.NewController(t))
			source.EXPECT().ChannelPermissions(ctx, bot, channel).Return(tt.perms, tt.err)

			assert.Equal(t, tt.want, NewGate(source, nil).Check(ctx, channel, bot))
		})
	}

	t.Run("unknown bot identity", func(t *testing.T) {
		source := mocks.NewMockMessenger(gomock.NewController(t))
		assert.False(t, NewGate(source, nil).Check(ctx, channel, ""))
	})
}
