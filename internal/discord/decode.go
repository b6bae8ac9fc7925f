package discord

import (
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/google/uuid"

	"tradelog/internal/command/models"
	"tradelog/pkg/domain"
)

// Option names shared by the command schemas and the decoder.
const (
	optReceivingChannel = "receiving_channel"
	optGivingChannel    = "giving_channel"
	optUser             = "user"
	optReceivingItem    = "receiving_item"
	optGivingItem       = "giving_item"
	optNotes            = "notes"
	optChannelGranted   = "channel_granted"
	optRoleAssigned     = "role_assigned"
)

// Decode turns an application command interaction into an Invocation. It never
// fails: absent options decode to zero values and are reported by
// Options.Validate. Entity names come from the interaction's resolved data, so
// decoding makes no network calls.
func Decode(i *discordgo.InteractionCreate) *models.Invocation {
	data := i.ApplicationCommandData()
	opts := optionSet{byName: make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(data.Options))}
	for _, o := range data.Options {
		opts.byName[o.Name] = o
	}
	opts.resolved = data.Resolved

	inv := &models.Invocation{
		ID:      uuid.NewString(),
		Kind:    models.ParseKind(data.Name),
		Name:    data.Name,
		Invoker: userRef(invoker(i.Interaction)),
		GuildID: domain.GuildID(i.GuildID),
	}

	switch inv.Kind {
	case models.KindTrade:
		inv.Options = models.TradeOptions{
			ReceivingChannel: opts.channel(optReceivingChannel),
			GivingChannel:    opts.channel(optGivingChannel),
			Counterparty:     opts.user(optUser),
			ReceivingItem:    opts.str(optReceivingItem),
			GivingItem:       opts.str(optGivingItem),
			Notes:            opts.str(optNotes),
		}
	case models.KindGrantAccess:
		inv.Options = models.GrantAccessOptions{
			ChannelGranted: opts.channel(optChannelGranted),
			Recipient:      opts.user(optUser),
			Notes:          opts.str(optNotes),
		}
	case models.KindAssignRole:
		inv.Options = models.AssignRoleOptions{
			RoleAssigned: opts.role(optRoleAssigned),
			Recipient:    opts.user(optUser),
			Notes:        opts.str(optNotes),
		}
	default:
		inv.Options = models.NoOptions{}
	}
	return inv
}

func invoker(i *discordgo.Interaction) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

type optionSet struct {
	byName   map[string]*discordgo.ApplicationCommandInteractionDataOption
	resolved *discordgo.ApplicationCommandInteractionDataResolved
}

// id returns the snowflake carried by an entity option.
func (o optionSet) id(name string) string {
	opt, ok := o.byName[name]
	if !ok {
		return ""
	}
	id, _ := opt.Value.(string)
	return id
}

func (o optionSet) str(name string) string {
	opt, ok := o.byName[name]
	if !ok || opt.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return strings.TrimSpace(opt.StringValue())
}

func (o optionSet) channel(name string) models.ChannelRef {
	id := o.id(name)
	if id == "" {
		return models.ChannelRef{}
	}
	ref := models.ChannelRef{ID: domain.ChannelID(id)}
	if o.resolved != nil {
		if ch, ok := o.resolved.Channels[id]; ok && ch != nil {
			ref.Name = ch.Name
		}
	}
	return ref
}

func (o optionSet) user(name string) models.UserRef {
	id := o.id(name)
	if id == "" {
		return models.UserRef{}
	}
	if o.resolved != nil {
		if u, ok := o.resolved.Users[id]; ok && u != nil {
			return userRef(u)
		}
	}
	return models.UserRef{ID: domain.UserID(id)}
}

func (o optionSet) role(name string) models.RoleRef {
	id := o.id(name)
	if id == "" {
		return models.RoleRef{}
	}
	ref := models.RoleRef{ID: domain.RoleID(id)}
	if o.resolved != nil {
		if r, ok := o.resolved.Roles[id]; ok && r != nil {
			ref.Name = r.Name
		}
	}
	return ref
}
