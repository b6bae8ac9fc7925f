// tradelog is a Discord bot that records trades, channel access grants and
// role assignments as audit entries in a logging channel.
//
// Usage:
//
//	tradelog register   # publish slash commands (GUILD_ID scopes them to one guild)
//	tradelog serve      # connect to the gateway and handle commands
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "tradelog",
		Short: "Audit-log bot for trades, access grants and role assignments",
		Long: `tradelog listens for slash commands and posts a structured audit record
for each one to a configured logging channel, followed by a review ping.

Configuration is read from the environment (BOT_TOKEN, CLIENT_ID,
LOGGING_CHANNEL_ID, PING_ROLE_ID and optional TRADELOG_* settings).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(registerCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
