package audit

import (
	"fmt"
	"strings"
	"time"

	"tradelog/internal/command/models"
	dErrors "tradelog/pkg/domain-errors"
)

// Field labels shared across record kinds.
const (
	LabelNotes     = "Additional Notes"
	LabelCommunity = "Support & Community"
	LabelSpacer    = "\u200b"
)

// Branding is the fixed attribution every record carries.
type Branding struct {
	CommunityName string
	CommunityURL  string
	FooterCredit  string
}

// Input is everything a record is built from.
type Input struct {
	Kind      models.Kind
	Options   models.Options
	Invoker   models.UserRef
	Bot       models.UserRef
	Timestamp time.Time
}

// Builder turns validated command options into audit records. It performs no I/O.
type Builder struct {
	branding Branding
}

func NewBuilder(branding Branding) *Builder {
	return &Builder{branding: branding}
}

// Build produces the record for in. Missing required options are a contract
// violation reported as CodeInvariantViolation; callers validate first.
func (b *Builder) Build(in Input) (*Record, error) {
	if in.Invoker.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "invoker is required")
	}
	if in.Options == nil {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "options are required")
	}
	if err := in.Options.Validate(); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvariantViolation, "build record")
	}

	var rec *Record
	switch opts := in.Options.(type) {
	case models.TradeOptions:
		rec = b.trade(in, opts)
	case models.GrantAccessOptions:
		rec = b.grantAccess(in, opts)
	case models.AssignRoleOptions:
		rec = b.assignRole(in, opts)
	default:
		return nil, dErrors.New(dErrors.CodeInvariantViolation, fmt.Sprintf("no record layout for %T", in.Options))
	}
	if rec.Kind != in.Kind {
		return nil, dErrors.New(dErrors.CodeInvariantViolation,
			fmt.Sprintf("options for %s passed as %s", rec.Kind, in.Kind))
	}

	rec.Timestamp = in.Timestamp
	rec.Footer = Footer{
		Text:    b.footerText(in.Bot),
		IconURL: in.Bot.AvatarURL,
	}
	return rec, nil
}

func (b *Builder) trade(in Input, o models.TradeOptions) *Record {
	initiator := in.Invoker
	fields := []Field{
		{
			Label: "Trade Participants",
			Value: fmt.Sprintf("%s (Initiator) trades with %s (Recipient)", initiator.Mention(), o.Counterparty.Mention()),
		},
		{Label: LabelSpacer, Value: LabelSpacer},
		{
			Label:  initiator.Username + " Gives",
			Value:  sideValue(o.GivingChannel, o.GivingItem),
			Inline: true,
		},
		{
			Label:  o.Counterparty.Username + " Gives",
			Value:  sideValue(o.ReceivingChannel, o.ReceivingItem),
			Inline: true,
		},
	}
	fields = b.appendTrailer(fields, o.Notes)

	return &Record{
		Kind:   models.KindTrade,
		Title:  "Trade Logged",
		Color:  ColorTrade,
		Author: Author{Name: "Initiated by: " + initiator.Username, IconURL: initiator.AvatarURL},
		Fields: fields,
	}
}

func (b *Builder) grantAccess(in Input, o models.GrantAccessOptions) *Record {
	fields := []Field{
		{Label: "Granter", Value: in.Invoker.Mention(), Inline: true},
		{Label: "Recipient", Value: o.Recipient.Mention(), Inline: true},
		{Label: "Channel Granted", Value: o.ChannelGranted.Mention()},
	}
	fields = b.appendTrailer(fields, o.Notes)

	return &Record{
		Kind:   models.KindGrantAccess,
		Title:  "Access Granted Log",
		Color:  ColorGrantAccess,
		Author: actionAuthor(in.Invoker),
		Fields: fields,
	}
}

func (b *Builder) assignRole(in Input, o models.AssignRoleOptions) *Record {
	fields := []Field{
		{Label: "Assigner", Value: in.Invoker.Mention(), Inline: true},
		{Label: "Recipient", Value: o.Recipient.Mention(), Inline: true},
		{Label: "Role Assigned", Value: o.RoleAssigned.Mention()},
	}
	fields = b.appendTrailer(fields, o.Notes)

	return &Record{
		Kind:   models.KindAssignRole,
		Title:  "Role Assignment Log",
		Color:  ColorAssignRole,
		Author: actionAuthor(in.Invoker),
		Fields: fields,
	}
}

// appendTrailer adds the optional notes and the community link.
func (b *Builder) appendTrailer(fields []Field, notes string) []Field {
	if notes = strings.TrimSpace(notes); notes != "" {
		fields = append(fields, Field{Label: LabelNotes, Value: codeBlock(notes)})
	}
	return append(fields, Field{
		Label: LabelCommunity,
		Value: fmt.Sprintf("[Join %s](%s)", b.branding.CommunityName, b.branding.CommunityURL),
	})
}

func (b *Builder) footerText(bot models.UserRef) string {
	name := bot.Username
	if name == "" {
		name = "tradelog"
	}
	if b.branding.FooterCredit == "" {
		return "Logged by " + name
	}
	return "Logged by " + name + " | " + b.branding.FooterCredit
}

func actionAuthor(u models.UserRef) Author {
	return Author{Name: "Action by: " + u.Username, IconURL: u.AvatarURL}
}

// sideValue renders one party's side of a trade. The item line only appears
// when an item was given.
func sideValue(channel models.ChannelRef, item string) string {
	v := "Channel: " + channel.Mention()
	if item = strings.TrimSpace(item); item != "" {
		v += "\nItem/Vehicle: " + codeBlock(item)
	}
	return v
}

// codeBlock fences free text so user input cannot inject mentions or markdown.
func codeBlock(s string) string {
	return "```" + strings.ReplaceAll(s, "```", "'''") + "```"
}
