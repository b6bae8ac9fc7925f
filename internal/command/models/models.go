package models

import (
	"strings"

	"tradelog/pkg/domain"
	dErrors "tradelog/pkg/domain-errors"
)

// Kind identifies a slash command.
type Kind string

const (
	KindTrade       Kind = "trade"
	KindGrantAccess Kind = "grantaccess"
	KindAssignRole  Kind = "assignrole"
	KindPing        Kind = "ping"
	KindUnknown     Kind = ""
)

// ParseKind maps a command name to its Kind. Unrecognised names return KindUnknown.
func ParseKind(name string) Kind {
	switch k := Kind(strings.ToLower(name)); k {
	case KindTrade, KindGrantAccess, KindAssignRole, KindPing:
		return k
	default:
		return KindUnknown
	}
}

func (k Kind) String() string {
	if k == KindUnknown {
		return "unknown"
	}
	return string(k)
}

// UserRef is a resolved user as seen in the invocation payload.
type UserRef struct {
	ID        domain.UserID
	Username  string
	AvatarURL string
}

func (u UserRef) Mention() string { return u.ID.Mention() }
func (u UserRef) IsZero() bool    { return u.ID.IsNil() }

// ChannelRef is a resolved channel.
type ChannelRef struct {
	ID   domain.ChannelID
	Name string
}

func (c ChannelRef) Mention() string { return c.ID.Mention() }
func (c ChannelRef) IsZero() bool    { return c.ID.IsNil() }

// RoleRef is a resolved role.
type RoleRef struct {
	ID   domain.RoleID
	Name string
}

func (r RoleRef) Mention() string { return r.ID.Mention() }
func (r RoleRef) IsZero() bool    { return r.ID.IsNil() }

// Options is the typed option set of one command. Decoding never fails;
// Validate reports structurally missing required options.
type Options interface {
	Validate() error
}

// TradeOptions are the options of /trade.
type TradeOptions struct {
	ReceivingChannel ChannelRef
	GivingChannel    ChannelRef
	Counterparty     UserRef
	ReceivingItem    string
	GivingItem       string
	Notes            string
}

func (o TradeOptions) Validate() error {
	return requireAll(
		missing(o.ReceivingChannel.IsZero(), "receiving_channel"),
		missing(o.GivingChannel.IsZero(), "giving_channel"),
		missing(o.Counterparty.IsZero(), "user"),
	)
}

// GrantAccessOptions are the options of /grantaccess.
type GrantAccessOptions struct {
	ChannelGranted ChannelRef
	Recipient      UserRef
	Notes          string
}

func (o GrantAccessOptions) Validate() error {
	return requireAll(
		missing(o.ChannelGranted.IsZero(), "channel_granted"),
		missing(o.Recipient.IsZero(), "user"),
	)
}

// AssignRoleOptions are the options of /assignrole.
type AssignRoleOptions struct {
	RoleAssigned RoleRef
	Recipient    UserRef
	Notes        string
}

func (o AssignRoleOptions) Validate() error {
	return requireAll(
		missing(o.RoleAssigned.IsZero(), "role_assigned"),
		missing(o.Recipient.IsZero(), "user"),
	)
}

// NoOptions is the option set of commands without options.
type NoOptions struct{}

func (NoOptions) Validate() error { return nil }

// Invocation is one slash command issued by a user. It is immutable once decoded.
type Invocation struct {
	ID      string
	Kind    Kind
	Name    string
	Options Options
	Invoker UserRef
	GuildID domain.GuildID
}

func missing(absent bool, name string) string {
	if absent {
		return name
	}
	return ""
}

func requireAll(names ...string) error {
	var absent []string
	for _, n := range names {
		if n != "" {
			absent = append(absent, n)
		}
	}
	if len(absent) == 0 {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, "missing required option: "+strings.Join(absent, ", "))
}
