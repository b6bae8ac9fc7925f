package discord

import (
	"context"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"tradelog/internal/command/models"
	dErrors "tradelog/pkg/domain-errors"
)

// Commands returns the slash command schemas of the bot.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        string(models.KindTrade),
			Description: "Logs a trade between two users, involving channels and/or items.",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption(optReceivingChannel, "The channel you (the command user) are receiving."),
				channelOption(optGivingChannel, "The channel the other user is receiving (you are giving)."),
				userOption("The other user involved in the trade."),
				stringOption(optReceivingItem, "Optional: Item/vehicle you are receiving."),
				stringOption(optGivingItem, "Optional: Item/vehicle the other user is receiving."),
				stringOption(optNotes, "Optional: Any additional notes for the trade."),
			},
		},
		{
			Name:        string(models.KindGrantAccess),
			Description: "Logs granting channel access to a user.",
			Options: []*discordgo.ApplicationCommandOption{
				channelOption(optChannelGranted, "The channel access is being granted to."),
				userOption("The user receiving access."),
				stringOption(optNotes, "Optional: Additional notes."),
			},
		},
		{
			Name:        string(models.KindAssignRole),
			Description: "Logs assigning a role to a user.",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionRole,
					Name:        optRoleAssigned,
					Description: "The role being assigned.",
					Required:    true,
				},
				userOption("The user receiving the role."),
				stringOption(optNotes, "Optional: Additional notes."),
			},
		},
		{
			Name:        string(models.KindPing),
			Description: "Replies with Pong! (for testing deployment)",
		},
	}
}

func channelOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionChannel,
		Name:        name,
		Description: description,
		Required:    true,
	}
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        optUser,
		Description: description,
		Required:    true,
	}
}

func stringOption(name, description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
	}
}

// CommandRegistrar replaces an application's command set.
type CommandRegistrar interface {
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

// Register overwrites the application's commands with Commands. An empty
// guildID registers globally, which can take up to an hour to propagate.
func Register(ctx context.Context, api CommandRegistrar, appID, guildID string, logger *slog.Logger) (int, error) {
	if appID == "" {
		return 0, dErrors.New(dErrors.CodeConfig, "application id is required")
	}
	scope := "global"
	if guildID != "" {
		scope = "guild"
	}
	logger.InfoContext(ctx, "registering application commands",
		"scope", scope,
		"guild_id", guildID,
		"count", len(Commands()),
	)

	registered, err := api.ApplicationCommandBulkOverwrite(appID, guildID, Commands(), discordgo.WithContext(ctx))
	if err != nil {
		return 0, dErrors.Wrap(mapError(err, "overwrite commands"), dErrors.CodeUnavailable, "command registration failed")
	}
	logger.InfoContext(ctx, "application commands registered", "scope", scope, "count", len(registered))
	return len(registered), nil
}
