// Package discord binds the recommendation pipeline to Discord slash commands.
package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/anirecbot/anirec/internal/recommend"
)

// BindingStore persists the Discord-user to AniList-username association.
type BindingStore interface {
	Set(ctx context.Context, userID int64, username string) error
	Get(ctx context.Context, userID int64) (string, bool, error)
}

// Recommender runs the filter-and-choose pipeline for one category.
type Recommender interface {
	Recommend(ctx context.Context, category recommend.Category, username string, minScore int) recommend.Result
}

// Bot owns the gateway session and the slash-command surface.
type Bot struct {
	logger      *slog.Logger
	session     *discordgo.Session
	store       BindingStore
	recommender Recommender
	registered  []*discordgo.ApplicationCommand
}

// NewBot builds the bot and wires its gateway handlers. The session is not
// opened until Start.
func NewBot(log *slog.Logger, token string, store BindingStore, recommender Recommender) (*Bot, error) {
	if log == nil {
		log = slog.Default()
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("discord bot token is required")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds

	bot := &Bot{
		logger:      log.With(slog.String("adapter", "discord")),
		session:     session,
		store:       store,
		recommender: recommender,
	}
	session.AddHandler(bot.onReady)
	session.AddHandler(bot.onInteraction)
	return bot, nil
}

// Start opens the gateway session and registers the application commands.
func (b *Bot) Start(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("open session: %w", err)
	}

	for _, cmd := range commands() {
		created, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, "", cmd)
		if err != nil {
			_ = b.session.Close()
			return fmt.Errorf("register command %s: %w", cmd.Name, err)
		}
		b.registered = append(b.registered, created)
	}
	return nil
}

// Stop removes the registered commands and closes the session.
func (b *Bot) Stop(ctx context.Context) error {
	for _, cmd := range b.registered {
		if err := b.session.ApplicationCommandDelete(b.session.State.User.ID, "", cmd.ID); err != nil {
			b.logger.Warn("unregister command failed", slog.String("command", cmd.Name), slog.Any("error", err))
		}
	}
	b.registered = nil
	return b.session.Close()
}

func (b *Bot) onReady(_ *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("connected to Discord", slog.String("user", r.User.Username))
}
