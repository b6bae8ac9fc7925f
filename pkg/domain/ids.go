package domain

import (
	"strconv"

	dErrors "tradelog/pkg/domain-errors"
)

// Discord identifies every entity with a snowflake: an unsigned 64-bit integer
// rendered in decimal. Typed IDs keep a channel ID from being passed where a
// role ID is expected.
type (
	UserID    string
	ChannelID string
	RoleID    string
	GuildID   string
)

// IsNumeric reports whether s is a non-empty run of ASCII digits. It does not
// check the 64-bit range; use the Parse functions for that.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func parseSnowflake(kind, s string) (string, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" ID cannot be empty")
	}
	if !IsNumeric(s) {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" ID must be numeric")
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil || v == 0 {
		return "", dErrors.New(dErrors.CodeInvalidInput, kind+" ID is out of range")
	}
	return s, nil
}

// ParseUserID validates a user snowflake at a trust boundary.
func ParseUserID(s string) (UserID, error) {
	v, err := parseSnowflake("user", s)
	return UserID(v), err
}

// ParseChannelID validates a channel snowflake at a trust boundary.
func ParseChannelID(s string) (ChannelID, error) {
	v, err := parseSnowflake("channel", s)
	return ChannelID(v), err
}

// ParseRoleID validates a role snowflake at a trust boundary.
func ParseRoleID(s string) (RoleID, error) {
	v, err := parseSnowflake("role", s)
	return RoleID(v), err
}

// ParseGuildID validates a guild snowflake at a trust boundary.
func ParseGuildID(s string) (GuildID, error) {
	v, err := parseSnowflake("guild", s)
	return GuildID(v), err
}

func (id UserID) String() string    { return string(id) }
func (id ChannelID) String() string { return string(id) }
func (id RoleID) String() string    { return string(id) }
func (id GuildID) String() string   { return string(id) }

func (id UserID) IsNil() bool    { return id == "" }
func (id ChannelID) IsNil() bool { return id == "" }
func (id RoleID) IsNil() bool    { return id == "" }
func (id GuildID) IsNil() bool   { return id == "" }

// Mention renders the token Discord expands into a clickable user mention.
func (id UserID) Mention() string { return "<@" + string(id) + ">" }

// Mention renders the token Discord expands into a channel link.
func (id ChannelID) Mention() string { return "<#" + string(id) + ">" }

// Mention renders the token Discord expands into a role mention.
func (id RoleID) Mention() string { return "<@&" + string(id) + ">" }
