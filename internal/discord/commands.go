package discord

import "github.com/bwmarrin/discordgo"

// Command and option names shared between registration and dispatch.
const (
	cmdSetUsername = "setusername"
	cmdRecommend   = "recommend"

	optUsername = "username"
	optCategory = "category"
	optScore    = "score"
)

func commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        cmdSetUsername,
			Description: "Set your AniList username",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optUsername,
					Description: "AniList Username",
					Required:    true,
				},
			},
		},
		{
			Name:        cmdRecommend,
			Description: "Recommend an anime based on your preference",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optCategory,
					Description: "The type of recommendation: 'planning', 'trending', or 'popular'",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "planning", Value: "planning"},
						{Name: "trending", Value: "trending"},
						{Name: "popular", Value: "popular"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optUsername,
					Description: "AniList Username (optional)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        optScore,
					Description: "Minimum average score 0-100 (planning only)",
				},
			},
		},
	}
}
