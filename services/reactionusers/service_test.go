package reactionusers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	discordclient "rmembot/clients/discord"
	"rmembot/core"
	"rmembot/models"
)

func TestReactionUsersService_ProcessReactionQuery(t *testing.T) {
	t.Run("message without reactions", func(t *testing.T) {
		client := new(discordclient.MockDiscordClient)
		service := NewReactionUsersService(client, 2)

		response, err := service.ProcessReactionQuery(context.Background(), testMessage(), models.DisplayModeFull.QueryParameters())

		require.NoError(t, err)
		assert.Equal(t, "No one reacted.", response.Body)
		client.AssertNotCalled(t, "FetchReactionUsersPage")
	})

	t.Run("full mode end to end", func(t *testing.T) {
		client := new(discordclient.MockDiscordClient)
		expectSinglePage(client, thumbsUp, users(1, 2))
		expectSinglePage(client, heart, users(3))
		service := NewReactionUsersService(client, 2)

		response, err := service.ProcessReactionQuery(
			context.Background(),
			testMessage(thumbsUp, heart),
			models.DisplayModeFull.QueryParameters(),
		)

		require.NoError(t, err)
		assert.Equal(t, "👍: 2: <@1> <@2>```<@1> <@2>```\n❤️: 1: <@3>```<@3>```", response.Body)
		client.AssertExpectations(t)
	})

	t.Run("members mode deduplicates", func(t *testing.T) {
		client := new(discordclient.MockDiscordClient)
		expectSinglePage(client, thumbsUp, users(1, 2))
		expectSinglePage(client, heart, users(2))
		service := NewReactionUsersService(client, 2)

		response, err := service.ProcessReactionQuery(
			context.Background(),
			testMessage(thumbsUp, heart),
			models.DisplayModeMembers.QueryParameters(),
		)

		require.NoError(t, err)
		assert.Equal(t, "```<@1> <@2>```", response.Body)
		assert.Equal(t, testHeader+"members:\n  ```<@1> <@2>```", response.Content)
	})

	t.Run("members_author lists the author first", func(t *testing.T) {
		client := new(discordclient.MockDiscordClient)
		expectSinglePage(client, thumbsUp, users(1))
		service := NewReactionUsersService(client, 2)

		response, err := service.ProcessReactionQuery(
			context.Background(),
			testMessage(thumbsUp),
			models.DisplayModeMembersAuthor.QueryParameters(),
		)

		require.NoError(t, err)
		assert.Equal(t, "```<@9> <@1>```", response.Body)
	})

	t.Run("include and exclude filters", func(t *testing.T) {
		client := new(discordclient.MockDiscordClient)
		expectSinglePage(client, thumbsUp, users(1, 2, 3))
		service := NewReactionUsersService(client, 2)

		params := models.DisplayModeReactionMembers.QueryParameters()
		params.IncludeUsers = models.NewUserSet(1, 2)
		params.ExcludeUsers = models.NewUserSet(2)

		response, err := service.ProcessReactionQuery(context.Background(), testMessage(thumbsUp), params)

		require.NoError(t, err)
		assert.Equal(t, "👍: <@1>```<@1>```", response.Body)
	})

	t.Run("excluded reaction is not fetched", func(t *testing.T) {
		client := new(discordclient.MockDiscordClient)
		expectSinglePage(client, heart, users(4))
		service := NewReactionUsersService(client, 2)

		params := models.DisplayModeReactionCount.QueryParameters()
		params.ExcludeReactions = models.NewEmojiSet("👍")

		response, err := service.ProcessReactionQuery(context.Background(), testMessage(thumbsUp, heart), params)

		require.NoError(t, err)
		assert.Equal(t, "❤️: 1", response.Body)
		client.AssertExpectations(t)
	})

	t.Run("every emoji failing leaves nothing to match", func(t *testing.T) {
		client := new(discordclient.MockDiscordClient)
		client.On("FetchReactionUsersPage", mock.Anything, testChannelID, testMessageID, "👍", 100, models.Snowflake(0)).
			Return(nil, core.NewTransportError("fetch users", errors.New("boom"))).Once()
		service := NewReactionUsersService(client, 2)

		response, err := service.ProcessReactionQuery(
			context.Background(),
			testMessage(thumbsUp),
			models.DisplayModeReactionMembers.QueryParameters(),
		)

		require.NoError(t, err)
		assert.Equal(t, "No one matched the filters.", response.Body)
	})

	t.Run("cancelled context fails the request", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		client := new(discordclient.MockDiscordClient)
		client.On("FetchReactionUsersPage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, core.NewTransportError("fetch users", context.Canceled)).Maybe()
		service := NewReactionUsersService(client, 2)

		response, err := service.ProcessReactionQuery(ctx, testMessage(thumbsUp), models.DisplayModeMembers.QueryParameters())

		assert.Nil(t, response)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
