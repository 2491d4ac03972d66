package clients

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"rmembot/models"
)

// ReactionPageFetcher lists one page of users who reacted with an emoji
type ReactionPageFetcher interface {
	FetchReactionUsersPage(
		ctx context.Context,
		channelID, messageID models.Snowflake,
		emojiAPIName string,
		limit int,
		after models.Snowflake,
	) ([]models.DiscordUser, error)
}

// DiscordClient defines the Discord API operations the bot relies on
type DiscordClient interface {
	ReactionPageFetcher

	// Message and user lookups
	GetMessage(ctx context.Context, channelID, messageID models.Snowflake) (*models.DiscordMessage, error)
	ResolveUser(ctx context.Context, userID models.Snowflake) (models.DiscordUser, error)

	// Interaction plumbing
	DeferInteraction(ctx context.Context, interaction *discordgo.Interaction, ephemeral bool) error
	RespondWithMessage(ctx context.Context, interaction *discordgo.Interaction, content string, ephemeral bool) error
	RespondWithModal(ctx context.Context, interaction *discordgo.Interaction, modal *discordgo.InteractionResponseData) error
	SendFollowup(ctx context.Context, interaction *discordgo.Interaction, content string, ephemeral bool) error

	// Command registration; an empty guildID registers global commands
	RegisterCommands(ctx context.Context, appID, guildID string, commands []*discordgo.ApplicationCommand) error
}
