package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	discordclient "rmembot/clients/discord"
	"rmembot/middleware"
	discordusecase "rmembot/usecases/discord"
)

type discordEventsFixture struct {
	handler       *DiscordEventsHandler
	discordClient *discordclient.MockDiscordClient
	useCase       *discordusecase.MockReactionMembersUseCase
}

func setupDiscordEventsHandler(t *testing.T, guildID string) *discordEventsFixture {
	session, err := discordgo.New("Bot test-token")
	require.NoError(t, err)

	discordClient := new(discordclient.MockDiscordClient)
	useCase := new(discordusecase.MockReactionMembersUseCase)
	t.Cleanup(func() {
		discordClient.AssertExpectations(t)
		useCase.AssertExpectations(t)
	})

	handler := NewDiscordEventsHandler(
		session,
		discordClient,
		useCase,
		middleware.NewErrorAlertMiddleware(middleware.SlackAlertConfig{AppName: "rmembot"}),
		discordusecase.ApplicationCommands(),
		guildID,
	)
	return &discordEventsFixture{handler: handler, discordClient: discordClient, useCase: useCase}
}

func TestDiscordEventsHandler_DispatchInteraction(t *testing.T) {
	t.Run("application commands go to the command handler", func(t *testing.T) {
		f := setupDiscordEventsHandler(t, "")
		interaction := &discordgo.Interaction{ID: "1", Type: discordgo.InteractionApplicationCommand}
		f.useCase.On("ProcessApplicationCommand", mock.Anything, interaction).Return(nil).Once()

		f.handler.dispatchInteraction(context.Background(), interaction)
	})

	t.Run("modal submits go to the modal handler", func(t *testing.T) {
		f := setupDiscordEventsHandler(t, "")
		interaction := &discordgo.Interaction{ID: "2", Type: discordgo.InteractionModalSubmit}
		f.useCase.On("ProcessModalSubmit", mock.Anything, interaction).Return(errors.New("boom")).Once()

		f.handler.dispatchInteraction(context.Background(), interaction)
	})

	t.Run("other interactions are ignored", func(t *testing.T) {
		f := setupDiscordEventsHandler(t, "")
		interaction := &discordgo.Interaction{ID: "3", Type: discordgo.InteractionPing}

		f.handler.dispatchInteraction(context.Background(), interaction)

		f.useCase.AssertNotCalled(t, "ProcessApplicationCommand", mock.Anything, mock.Anything)
		f.useCase.AssertNotCalled(t, "ProcessModalSubmit", mock.Anything, mock.Anything)
	})
}

func TestDiscordEventsHandler_RegisterCommands(t *testing.T) {
	t.Run("guild scoped", func(t *testing.T) {
		f := setupDiscordEventsHandler(t, "100")
		f.discordClient.On("RegisterCommands", mock.Anything, "app-1", "100", discordusecase.ApplicationCommands()).
			Return(nil).Once()

		require.NoError(t, f.handler.registerCommands(context.Background(), "app-1"))
	})

	t.Run("failure is returned", func(t *testing.T) {
		f := setupDiscordEventsHandler(t, "")
		f.discordClient.On("RegisterCommands", mock.Anything, "app-1", "", mock.Anything).
			Return(errors.New("missing access")).Once()

		assert.EqualError(t, f.handler.registerCommands(context.Background(), "app-1"), "missing access")
	})
}
