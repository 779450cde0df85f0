package bot

import (
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
	"go.uber.org/zap"

	"github.com/FFMGAMER/FFM-Gen-Bot/internal/config"
	"github.com/FFMGAMER/FFM-Gen-Bot/internal/service"
)

// Bot is the Discord gateway adapter. It translates slash-command
// interactions into account-service calls; all policy lives in the service.
type Bot struct {
	session    *discordgo.Session
	accounts   *service.AccountService
	logger     *zap.Logger
	marker     string
	maxBytes   int64
	httpClient *http.Client
}

// New builds the adapter and its gateway session.
func New(cfg config.Config, accounts *service.AccountService, logger *zap.Logger) (*Bot, error) {
	if cfg.Discord.Token == "" {
		return nil, fmt.Errorf("DISCORD_TOKEN is required when the discord adapter is enabled")
	}
	session, err := discordgo.New("Bot " + cfg.Discord.Token)
	if err != nil {
		return nil, err
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentGuildPresences |
		discordgo.IntentGuildMembers

	b := &Bot{
		session:    session,
		accounts:   accounts,
		logger:     logger,
		marker:     cfg.Discord.FreeStatusMarker,
		maxBytes:   cfg.Restock.MaxFileBytes,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Start opens the gateway connection.
func (b *Bot) Start() error {
	return b.session.Open()
}

// Stop closes the gateway connection.
func (b *Bot) Stop() {
	_ = b.session.Close()
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("discord gateway ready", zap.String("user", r.User.Username))

	if _, err := s.ApplicationCommandBulkOverwrite(r.User.ID, "", commands); err != nil {
		b.logger.Error("slash command registration failed", zap.Error(err))
		return
	}
	b.logger.Info("slash commands registered", zap.Int("count", len(commands)))
}
