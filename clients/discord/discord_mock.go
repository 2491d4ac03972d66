package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"

	"rmembot/models"
)

// MockDiscordClient implements the clients.DiscordClient interface for testing
type MockDiscordClient struct {
	mock.Mock
}

func (m *MockDiscordClient) FetchReactionUsersPage(
	ctx context.Context,
	channelID, messageID models.Snowflake,
	emojiAPIName string,
	limit int,
	after models.Snowflake,
) ([]models.DiscordUser, error) {
	args := m.Called(ctx, channelID, messageID, emojiAPIName, limit, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DiscordUser), args.Error(1)
}

func (m *MockDiscordClient) GetMessage(
	ctx context.Context,
	channelID, messageID models.Snowflake,
) (*models.DiscordMessage, error) {
	args := m.Called(ctx, channelID, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiscordMessage), args.Error(1)
}

func (m *MockDiscordClient) ResolveUser(ctx context.Context, userID models.Snowflake) (models.DiscordUser, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.DiscordUser), args.Error(1)
}

func (m *MockDiscordClient) DeferInteraction(
	ctx context.Context,
	interaction *discordgo.Interaction,
	ephemeral bool,
) error {
	args := m.Called(ctx, interaction, ephemeral)
	return args.Error(0)
}

func (m *MockDiscordClient) RespondWithMessage(
	ctx context.Context,
	interaction *discordgo.Interaction,
	content string,
	ephemeral bool,
) error {
	args := m.Called(ctx, interaction, content, ephemeral)
	return args.Error(0)
}

func (m *MockDiscordClient) RespondWithModal(
	ctx context.Context,
	interaction *discordgo.Interaction,
	modal *discordgo.InteractionResponseData,
) error {
	args := m.Called(ctx, interaction, modal)
	return args.Error(0)
}

func (m *MockDiscordClient) SendFollowup(
	ctx context.Context,
	interaction *discordgo.Interaction,
	content string,
	ephemeral bool,
) error {
	args := m.Called(ctx, interaction, content, ephemeral)
	return args.Error(0)
}

func (m *MockDiscordClient) RegisterCommands(
	ctx context.Context,
	appID, guildID string,
	commands []*discordgo.ApplicationCommand,
) error {
	args := m.Called(ctx, appID, guildID, commands)
	return args.Error(0)
}
