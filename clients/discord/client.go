package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"rmembot/clients"
	"rmembot/core"
	"rmembot/models"
)

// DiscordClient implements the clients.DiscordClient interface on top of discordgo
type DiscordClient struct {
	session *discordgo.Session
}

// NewDiscordClient wraps an existing session. The session does not need an
// open gateway connection for REST calls.
func NewDiscordClient(session *discordgo.Session) clients.DiscordClient {
	return &DiscordClient{session: session}
}

// NewDiscordClientFromToken creates a session using the provided bot token
func NewDiscordClientFromToken(botToken string, httpClient *http.Client) (clients.DiscordClient, error) {
	session, err := discordgo.New("Bot " + botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	if httpClient != nil {
		session.Client = httpClient
	}
	return NewDiscordClient(session), nil
}

func (c *DiscordClient) FetchReactionUsersPage(
	ctx context.Context,
	channelID, messageID models.Snowflake,
	emojiAPIName string,
	limit int,
	after models.Snowflake,
) ([]models.DiscordUser, error) {
	afterID := ""
	if after != 0 {
		afterID = after.String()
	}

	users, err := c.session.MessageReactions(
		channelID.String(),
		messageID.String(),
		emojiAPIName,
		limit,
		"",
		afterID,
		discordgo.WithContext(ctx),
	)
	if err != nil {
		return nil, core.NewTransportError(fmt.Sprintf("fetch users for reaction %s", emojiAPIName), err)
	}

	result := make([]models.DiscordUser, 0, len(users))
	for _, user := range users {
		mapped, err := mapUser(user)
		if err != nil {
			return nil, core.NewTransportError("decode reaction user", err)
		}
		result = append(result, mapped)
	}
	return result, nil
}

func (c *DiscordClient) GetMessage(
	ctx context.Context,
	channelID, messageID models.Snowflake,
) (*models.DiscordMessage, error) {
	msg, err := c.session.ChannelMessage(channelID.String(), messageID.String(), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("message %s in channel %s: %w", messageID, channelID, core.ErrNotFound)
		}
		return nil, core.NewTransportError("fetch message", err)
	}
	if msg == nil {
		return nil, fmt.Errorf("message %s in channel %s: %w", messageID, channelID, core.ErrNotFound)
	}

	return MapMessage(msg, "")
}

func (c *DiscordClient) ResolveUser(ctx context.Context, userID models.Snowflake) (models.DiscordUser, error) {
	user, err := c.session.User(userID.String(), discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return models.DiscordUser{}, fmt.Errorf("user %s: %w", userID, core.ErrNotFound)
		}
		return models.DiscordUser{}, core.NewTransportError("fetch user", err)
	}
	return mapUser(user)
}

func (c *DiscordClient) DeferInteraction(ctx context.Context, interaction *discordgo.Interaction, ephemeral bool) error {
	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: messageFlags(ephemeral)},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return core.NewTransportError("defer interaction", err)
	}
	return nil
}

func (c *DiscordClient) RespondWithMessage(
	ctx context.Context,
	interaction *discordgo.Interaction,
	content string,
	ephemeral bool,
) error {
	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   messageFlags(ephemeral),
		},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return core.NewTransportError("respond to interaction", err)
	}
	return nil
}

func (c *DiscordClient) RespondWithModal(
	ctx context.Context,
	interaction *discordgo.Interaction,
	modal *discordgo.InteractionResponseData,
) error {
	err := c.session.InteractionRespond(interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: modal,
	}, discordgo.WithContext(ctx))
	if err != nil {
		return core.NewTransportError("open modal", err)
	}
	return nil
}

func (c *DiscordClient) SendFollowup(
	ctx context.Context,
	interaction *discordgo.Interaction,
	content string,
	ephemeral bool,
) error {
	_, err := c.session.FollowupMessageCreate(interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   messageFlags(ephemeral),
	}, discordgo.WithContext(ctx))
	if err != nil {
		return core.NewTransportError("send followup", err)
	}
	return nil
}

func (c *DiscordClient) RegisterCommands(
	ctx context.Context,
	appID, guildID string,
	commands []*discordgo.ApplicationCommand,
) error {
	_, err := c.session.ApplicationCommandBulkOverwrite(appID, guildID, commands, discordgo.WithContext(ctx))
	if err != nil {
		return core.NewTransportError("register commands", err)
	}
	return nil
}

// MapMessage converts a discordgo message to our model. REST responses omit
// guild_id, so callers that know the guild pass it as fallbackGuildID.
func MapMessage(msg *discordgo.Message, fallbackGuildID string) (*models.DiscordMessage, error) {
	id, err := models.ParseSnowflake(msg.ID)
	if err != nil {
		return nil, fmt.Errorf("message id: %w", err)
	}
	channelID, err := models.ParseSnowflake(msg.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("channel id: %w", err)
	}

	guildID := mo.None[models.Snowflake]()
	rawGuildID := msg.GuildID
	if rawGuildID == "" {
		rawGuildID = fallbackGuildID
	}
	if rawGuildID != "" {
		parsed, err := models.ParseSnowflake(rawGuildID)
		if err != nil {
			return nil, fmt.Errorf("guild id: %w", err)
		}
		guildID = mo.Some(parsed)
	}

	if msg.Author == nil {
		return nil, fmt.Errorf("message %s has no author", msg.ID)
	}
	author, err := mapUser(msg.Author)
	if err != nil {
		return nil, fmt.Errorf("author: %w", err)
	}

	reactions := make([]models.DiscordReaction, 0, len(msg.Reactions))
	for _, reaction := range msg.Reactions {
		if reaction == nil || reaction.Emoji == nil {
			continue
		}
		reactions = append(reactions, models.DiscordReaction{
			Emoji:   reaction.Emoji.MessageFormat(),
			APIName: reaction.Emoji.APIName(),
			Count:   reaction.Count,
		})
	}

	return &models.DiscordMessage{
		ID:        id,
		ChannelID: channelID,
		GuildID:   guildID,
		Author:    author,
		Reactions: reactions,
	}, nil
}

func mapUser(user *discordgo.User) (models.DiscordUser, error) {
	if user == nil {
		return models.DiscordUser{}, errors.New("missing user")
	}
	id, err := models.ParseSnowflake(user.ID)
	if err != nil {
		return models.DiscordUser{}, err
	}
	return models.DiscordUser{ID: id, Username: user.Username}, nil
}

func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) || restErr.Response == nil {
		return false
	}
	return restErr.Response.StatusCode == http.StatusNotFound
}

func messageFlags(ephemeral bool) discordgo.MessageFlags {
	if ephemeral {
		return discordgo.MessageFlagsEphemeral
	}
	return 0
}
