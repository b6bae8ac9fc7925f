package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tradelog/internal/discord"
	"tradelog/internal/platform/config"
	"tradelog/internal/platform/logger"
)

func registerCmd() *cobra.Command {
	var logFormat string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Publish the slash command definitions",
		Long: `register replaces the application's slash commands with the bot's current
set. With GUILD_ID set the commands are scoped to that guild and appear
immediately; otherwise they are registered globally.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			creds, err := config.LoadCredentials()
			if err != nil {
				return err
			}
			log := logger.New("info", logFormat)

			session, err := discord.NewSession(creds.BotToken)
			if err != nil {
				return err
			}
			n, err := discord.Register(cmd.Context(), session, creds.ClientID, creds.GuildID, log)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully reloaded %d application (/) commands.\n", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")
	return cmd
}
