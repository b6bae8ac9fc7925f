package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"tradelog/internal/command/handler/mocks"
	"tradelog/internal/command/models"
	"tradelog/internal/dispatch"
	"tradelog/internal/notify"
)

// =============================================================================
// Command Handler Test Suite
// =============================================================================
// Justification for unit tests: every logging command must acknowledge before
// any other platform call, and each dispatch outcome maps to exactly one
// reply. Mocking the dispatcher pins both rules without a pipeline.

var (
	alice    = models.UserRef{ID: "100", Username: "alice"}
	bob      = models.UserRef{ID: "200", Username: "Bob"}
	vault    = models.ChannelRef{ID: "300", Name: "vault"}
	garage   = models.ChannelRef{ID: "400", Name: "garage"}
	logsRef  = models.ChannelRef{ID: "500", Name: "trade-logs"}
	traderRl = models.RoleRef{ID: "600", Name: "Trader"}
)

type HandlerSuite struct {
	suite.Suite
	ctrl       *gomock.Controller
	dispatcher *mocks.MockDispatcher
	responder  *mocks.MockResponder
	handler    *Handler
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.dispatcher = mocks.NewMockDispatcher(s.ctrl)
	s.responder = mocks.NewMockResponder(s.ctrl)

	var err error
	s.handler, err = New(s.dispatcher)
	s.Require().NoError(err)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) TestNew() {
	_, err := New(nil)
	s.Error(err)
}

func grantAccess(opts models.Options) *models.Invocation {
	return &models.Invocation{
		ID:      "inv-1",
		Kind:    models.KindGrantAccess,
		Name:    "grantaccess",
		Options: opts,
		Invoker: alice,
		GuildID: "700",
	}
}

// =============================================================================
// Acknowledge First
// =============================================================================

func (s *HandlerSuite) TestDefersBeforeDispatch() {
	ctx := context.Background()
	inv := grantAccess(models.GrantAccessOptions{ChannelGranted: vault, Recipient: bob})

	gomock.InOrder(
		s.responder.EXPECT().Defer(ctx).Return(nil),
		s.dispatcher.EXPECT().Dispatch(ctx, dispatch.Request{
			Kind:    models.KindGrantAccess,
			Options: inv.Options,
			Invoker: alice,
			GuildID: "700",
		}).Return(dispatch.Outcome{RecordPosted: true, NotificationPosted: true, LoggingChannel: logsRef}),
		s.responder.EXPECT().Followup(ctx,
			"Access grant for Bob to <#300> successfully logged in <#500> and a notification has been sent.").Return(nil),
	)

	s.NoError(s.handler.GrantAccess(ctx, inv, s.responder))
}

func (s *HandlerSuite) TestDeferFailureStopsEverything() {
	ctx := context.Background()
	inv := grantAccess(models.GrantAccessOptions{ChannelGranted: vault, Recipient: bob})
	s.responder.EXPECT().Defer(ctx).Return(errors.New("unknown interaction"))
	s.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	err := s.handler.GrantAccess(ctx, inv, s.responder)
	s.Error(err)
}

// =============================================================================
// Validation
// =============================================================================

func (s *HandlerSuite) TestMissingOptionsAreReportedNotDispatched() {
	ctx := context.Background()

	s.Run("required option absent", func() {
		inv := grantAccess(models.GrantAccessOptions{Recipient: bob})
		gomock.InOrder(
			s.responder.EXPECT().Defer(ctx).Return(nil),
			s.responder.EXPECT().Followup(ctx, "Error (validation_error): missing required option: channel_granted.").Return(nil),
		)
		s.NoError(s.handler.GrantAccess(ctx, inv, s.responder))
	})

	s.Run("nil options", func() {
		inv := grantAccess(nil)
		s.responder.EXPECT().Defer(ctx).Return(nil)
		s.responder.EXPECT().Followup(ctx, "Error (validation_error): missing command options.").Return(nil)
		s.NoError(s.handler.GrantAccess(ctx, inv, s.responder))
	})

	s.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)
}

// =============================================================================
// Outcome Replies
// =============================================================================

func (s *HandlerSuite) TestTradeReplies() {
	ctx := context.Background()
	inv := &models.Invocation{
		Kind: models.KindTrade,
		Options: models.TradeOptions{
			ReceivingChannel: vault,
			GivingChannel:    garage,
			Counterparty:     bob,
		},
		Invoker: alice,
	}

	cases := []struct {
		name  string
		out   dispatch.Outcome
		reply string
	}{
		{
			name:  "delivered",
			out:   dispatch.Outcome{RecordPosted: true, NotificationPosted: true, LoggingChannel: logsRef, Resolution: notify.MethodRole},
			reply: "Trade successfully logged in <#500> and a notification has been sent.",
		},
		{
			name:  "notification failed",
			out:   dispatch.Outcome{RecordPosted: true, Errors: []dispatch.ErrorKind{dispatch.ErrNotificationFailure}, LoggingChannel: logsRef},
			reply: "Trade successfully logged in <#500>, but the review notification could not be sent. Please check my permissions in <#500>.",
		},
		{
			name:  "target unresolved",
			out:   dispatch.Outcome{RecordPosted: true, LoggingChannel: logsRef, Resolution: notify.MethodUnresolved},
			reply: "Trade successfully logged in <#500>, but no reviewer was notified: the notification target is not a known role or user.",
		},
		{
			name:  "channel not found",
			out:   dispatch.Outcome{Errors: []dispatch.ErrorKind{dispatch.ErrChannelNotFound}, LoggingChannel: logsRef},
			reply: "Error (channel_not_found): Could not find the logging channel. Please check bot configuration.",
		},
		{
			name:  "delivery failure",
			out:   dispatch.Outcome{Errors: []dispatch.ErrorKind{dispatch.ErrDeliveryFailure}, LoggingChannel: logsRef},
			reply: "Error (delivery_failure): The audit record could not be posted to <#500>. Nothing was logged.",
		},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.responder.EXPECT().Defer(ctx).Return(nil)
			s.dispatcher.EXPECT().Dispatch(ctx, gomock.Any()).Return(tc.out)
			s.responder.EXPECT().Followup(ctx, tc.reply).Return(nil)

			s.NoError(s.handler.Trade(ctx, inv, s.responder))
		})
	}
}

func (s *HandlerSuite) TestAssignRolePermissionError() {
	ctx := context.Background()
	inv := &models.Invocation{
		Kind:    models.KindAssignRole,
		Options: models.AssignRoleOptions{RoleAssigned: traderRl, Recipient: bob},
		Invoker: alice,
	}
	s.responder.EXPECT().Defer(ctx).Return(nil)
	s.dispatcher.EXPECT().Dispatch(ctx, gomock.Any()).Return(dispatch.Outcome{
		Errors:         []dispatch.ErrorKind{dispatch.ErrInsufficientPermissions},
		LoggingChannel: logsRef,
	})
	s.responder.EXPECT().Followup(ctx,
		"Error (insufficient_permissions): I don't have permissions to send messages or embed links in the <#500> channel. Please check my permissions.").Return(nil)

	s.NoError(s.handler.AssignRole(ctx, inv, s.responder))
}

func (s *HandlerSuite) TestAssignRoleSuccessNamesRole() {
	ctx := context.Background()
	inv := &models.Invocation{
		Kind:    models.KindAssignRole,
		Options: models.AssignRoleOptions{RoleAssigned: traderRl, Recipient: bob},
		Invoker: alice,
	}
	s.responder.EXPECT().Defer(ctx).Return(nil)
	s.dispatcher.EXPECT().Dispatch(ctx, gomock.Any()).Return(dispatch.Outcome{
		RecordPosted: true, NotificationPosted: true, LoggingChannel: logsRef,
	})
	s.responder.EXPECT().Followup(ctx,
		"Assignment of role Trader to Bob successfully logged in <#500> and a notification has been sent.").Return(nil)

	s.NoError(s.handler.AssignRole(ctx, inv, s.responder))
}

func (s *HandlerSuite) TestFollowupErrorIsReturned() {
	ctx := context.Background()
	inv := grantAccess(models.GrantAccessOptions{ChannelGranted: vault, Recipient: bob})
	s.responder.EXPECT().Defer(ctx).Return(nil)
	s.dispatcher.EXPECT().Dispatch(ctx, gomock.Any()).Return(dispatch.Outcome{RecordPosted: true, LoggingChannel: logsRef})
	s.responder.EXPECT().Followup(ctx, gomock.Any()).Return(errors.New("token expired"))

	s.Error(s.handler.GrantAccess(ctx, inv, s.responder))
}

func (s *HandlerSuite) TestPing() {
	ctx := context.Background()
	s.responder.EXPECT().Reply(ctx, MessagePong).Return(nil)
	s.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any()).Times(0)

	s.NoError(s.handler.Ping(ctx, &models.Invocation{Kind: models.KindPing}, s.responder))
}
