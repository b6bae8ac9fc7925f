package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"tradelog/pkg/domain"
	dErrors "tradelog/pkg/domain-errors"
)

// Credentials identify the bot application. Command registration needs only these.
type Credentials struct {
	BotToken string `env:"BOT_TOKEN,required,notEmpty"`
	ClientID string `env:"CLIENT_ID,required,notEmpty"`
	// GuildID scopes command registration to one guild; empty means global.
	GuildID string `env:"GUILD_ID"`
}

// Bot captures the audit-log behaviour of the running bot.
type Bot struct {
	LoggingChannelID string `env:"LOGGING_CHANNEL_ID,required,notEmpty"`
	// NotificationTargetID may name a role or a user. Anything else degrades to
	// an unresolved target at dispatch time rather than failing startup.
	NotificationTargetID string        `env:"PING_ROLE_ID,required,notEmpty"`
	InvocationTimeout    time.Duration `env:"TRADELOG_INVOCATION_TIMEOUT" envDefault:"14m"`
	Presence             string        `env:"TRADELOG_PRESENCE"            envDefault:"for /trade commands"`
	Branding             Branding
}

// Branding is the fixed attribution carried by every audit record.
type Branding struct {
	CommunityName string `env:"TRADELOG_COMMUNITY_NAME"       envDefault:"S.H.A.D.O.W Technologies Collective"`
	CommunityURL  string `env:"TRADELOG_COMMUNITY_INVITE_URL" envDefault:"https://discord.gg/5H3Aam69rm"`
	FooterCredit  string `env:"TRADELOG_FOOTER_CREDIT"        envDefault:"Created by J. Paul | S.H.A.D.O.W Technologies Collective"`
}

// Observability configures logs and the health/metrics listener.
type Observability struct {
	LogLevel  string `env:"TRADELOG_LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"TRADELOG_LOG_FORMAT" envDefault:"json"`
	// MetricsAddr is the listen address for /healthz and /metrics; empty disables it.
	MetricsAddr string `env:"TRADELOG_METRICS_ADDR" envDefault:":9090"`
}

// Config is the full process configuration. It is loaded once at startup and
// never mutated afterwards.
type Config struct {
	Credentials   Credentials
	Bot           Bot
	Observability Observability
}

// Load reads and validates the full configuration from the process environment.
// Any error is a fatal configuration error.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom is Load against an explicit environment instead of the process one.
func LoadFrom(environ map[string]string) (Config, error) {
	return load(env.Options{Environment: environ})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, dErrors.Wrap(err, dErrors.CodeConfig, "parse environment")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadCredentials reads only the application credentials, for command registration.
func LoadCredentials() (Credentials, error) {
	return loadCredentials(env.Options{})
}

// LoadCredentialsFrom is LoadCredentials against an explicit environment.
func LoadCredentialsFrom(environ map[string]string) (Credentials, error) {
	return loadCredentials(env.Options{Environment: environ})
}

func loadCredentials(opts env.Options) (Credentials, error) {
	var creds Credentials
	if err := env.ParseWithOptions(&creds, opts); err != nil {
		return Credentials{}, dErrors.Wrap(err, dErrors.CodeConfig, "parse environment")
	}
	if err := creds.Validate(); err != nil {
		return Credentials{}, err
	}
	return creds, nil
}

// Validate checks identifier syntax once values are present.
func (c Credentials) Validate() error {
	var problems []string
	if _, err := domain.ParseUserID(c.ClientID); err != nil {
		problems = append(problems, "CLIENT_ID: "+err.Error())
	}
	if c.GuildID != "" {
		if _, err := domain.ParseGuildID(c.GuildID); err != nil {
			problems = append(problems, "GUILD_ID: "+err.Error())
		}
	}
	return configError(problems)
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	var problems []string
	if err := c.Credentials.Validate(); err != nil {
		problems = append(problems, err.Error())
	}
	if _, err := domain.ParseChannelID(c.Bot.LoggingChannelID); err != nil {
		problems = append(problems, "LOGGING_CHANNEL_ID: "+err.Error())
	}
	if c.Bot.InvocationTimeout <= 0 {
		problems = append(problems, "TRADELOG_INVOCATION_TIMEOUT must be positive")
	}
	return configError(problems)
}

// LoggingChannel returns the validated logging channel ID.
func (c Config) LoggingChannel() domain.ChannelID {
	return domain.ChannelID(c.Bot.LoggingChannelID)
}

func configError(problems []string) error {
	if len(problems) == 0 {
		return nil
	}
	return dErrors.New(dErrors.CodeConfig, fmt.Sprintf("invalid configuration: %s", strings.Join(problems, "; ")))
}
