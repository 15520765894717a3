package discord

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/anirecbot/anirec/internal/anilist"
	"github.com/anirecbot/anirec/internal/recommend"
)

// watchPageURL is the detail page the Watch Now button links to.
const watchPageURL = "https://anilist.co/anime/%d"

const handlerTimeout = 30 * time.Second

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handlerTimeout)
	defer cancel()

	data := i.ApplicationCommandData()
	switch data.Name {
	case cmdSetUsername:
		b.handleSetUsername(ctx, s, i, data)
	case cmdRecommend:
		b.handleRecommend(ctx, s, i, data)
	}
}

func (b *Bot) handleSetUsername(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	userID, err := interactionUserID(i)
	if err != nil {
		b.logger.Error("resolve user id failed", slog.Any("error", err))
		b.replyEphemeral(s, i, "Something went wrong. Please try again later.")
		return
	}

	opts := optionMap(data.Options)
	username := opts[optUsername].StringValue()

	if err := b.store.Set(ctx, userID, username); err != nil {
		b.logger.Error("store binding failed", slog.Int64("user_id", userID), slog.Any("error", err))
		b.replyEphemeral(s, i, "Something went wrong. Please try again later.")
		return
	}

	b.replyEphemeral(s, i, fmt.Sprintf("Your AniList username has been set to: %s", username))
}

func (b *Bot) handleRecommend(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate, data discordgo.ApplicationCommandInteractionData) {
	userID, err := interactionUserID(i)
	if err != nil {
		b.logger.Error("resolve user id failed", slog.Any("error", err))
		b.replyEphemeral(s, i, "Something went wrong. Please try again later.")
		return
	}

	opts := optionMap(data.Options)
	category, ok := recommend.ParseCategory(opts[optCategory].StringValue())
	if !ok {
		b.replyEphemeral(s, i, "Unknown recommendation category.")
		return
	}

	minScore := 0
	if opt, present := opts[optScore]; present {
		score := int(opt.IntValue())
		if msg, valid := validateScore(category, score); !valid {
			b.replyEphemeral(s, i, msg)
			return
		}
		minScore = score
	}

	username := ""
	if opt, present := opts[optUsername]; present {
		username = opt.StringValue()
	}
	if username == "" {
		stored, found, err := b.store.Get(ctx, userID)
		if err != nil {
			b.logger.Error("read binding failed", slog.Int64("user_id", userID), slog.Any("error", err))
			b.replyEphemeral(s, i, "Something went wrong. Please try again later.")
			return
		}
		if !found {
			b.replyEphemeral(s, i, "Please set your AniList username using /setusername command.")
			return
		}
		username = stored
	}

	// Fetches can outlive Discord's three-second response window, so
	// acknowledge first and fill the reply in afterwards.
	if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	}); err != nil {
		b.logger.Error("defer response failed", slog.Any("error", err))
		return
	}

	result := b.recommender.Recommend(ctx, category, username, minScore)

	content, components := recommendReply(category, result)
	edit := &discordgo.WebhookEdit{Content: &content}
	if len(components) > 0 {
		edit.Components = &components
	}
	if _, err := s.InteractionResponseEdit(i.Interaction, edit); err != nil {
		b.logger.Error("edit response failed", slog.Any("error", err))
	}
}

func (b *Bot) replyEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		b.logger.Error("send ephemeral reply failed", slog.Any("error", err))
	}
}

// validateScore checks the score option before any network call. The filter
// only has meaning for the planning fetch, so combining it with a ranking
// category is rejected rather than silently ignored.
func validateScore(category recommend.Category, score int) (string, bool) {
	if score < 0 || score > 100 {
		return "Score must be between 0 and 100.", false
	}
	if category != recommend.CategoryPlanning {
		return "The score filter only applies to the planning category.", false
	}
	return "", true
}

// recommendReply builds the reply content and the optional Watch Now button
// for a recommendation result.
func recommendReply(category recommend.Category, result recommend.Result) (string, []discordgo.MessageComponent) {
	if result.OK {
		content := fmt.Sprintf("Recommendation (%s): %s - %s", category, result.Media.Title, result.Media.SiteURL)
		return content, []discordgo.MessageComponent{watchRow(result.Media)}
	}
	if result.Exhausted {
		return fmt.Sprintf("No anime found in the %s category or all have been watched.", category), nil
	}
	return fmt.Sprintf("No anime found in the %s category.", category), nil
}

func watchRow(media anilist.Media) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label: "Watch Now",
				Style: discordgo.LinkButton,
				URL:   fmt.Sprintf(watchPageURL, media.ID),
				Emoji: &discordgo.ComponentEmoji{Name: "📺"},
			},
		},
	}
}

func optionMap(options []*discordgo.ApplicationCommandInteractionDataOption) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	result := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(options))
	for _, opt := range options {
		result[opt.Name] = opt
	}
	return result
}

// interactionUserID resolves the invoking user's snowflake whether the
// command came from a guild channel or a DM.
func interactionUserID(i *discordgo.InteractionCreate) (int64, error) {
	var raw string
	switch {
	case i.Member != nil && i.Member.User != nil:
		raw = i.Member.User.ID
	case i.User != nil:
		raw = i.User.ID
	}
	if raw == "" {
		return 0, fmt.Errorf("interaction has no user")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse user id %q: %w", raw, err)
	}
	return id, nil
}
