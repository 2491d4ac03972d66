package reactionusers

import (
	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	discordclient "rmembot/clients/discord"
	"rmembot/models"
)

const (
	testChannelID = models.Snowflake(200)
	testMessageID = models.Snowflake(300)
	testGuildID   = models.Snowflake(100)
	testAuthorID  = models.Snowflake(9)
)

var (
	thumbsUp = models.DiscordReaction{Emoji: "👍", APIName: "👍", Count: 2}
	heart    = models.DiscordReaction{Emoji: "❤️", APIName: "❤️", Count: 1}
	party    = models.DiscordReaction{Emoji: "<:party:123>", APIName: "party:123", Count: 1}
)

func testMessage(reactions ...models.DiscordReaction) *models.DiscordMessage {
	return &models.DiscordMessage{
		ID:        testMessageID,
		ChannelID: testChannelID,
		GuildID:   mo.Some(testGuildID),
		Author:    models.DiscordUser{ID: testAuthorID, Username: "author"},
		Reactions: reactions,
	}
}

func users(ids ...models.Snowflake) []models.DiscordUser {
	result := make([]models.DiscordUser, len(ids))
	for i, id := range ids {
		result[i] = models.DiscordUser{ID: id}
	}
	return result
}

// userRange returns count users with consecutive IDs starting at first
func userRange(first models.Snowflake, count int) []models.DiscordUser {
	result := make([]models.DiscordUser, count)
	for i := range result {
		result[i] = models.DiscordUser{ID: first + models.Snowflake(i)}
	}
	return result
}

// expectSinglePage makes the reaction answer with one short page
func expectSinglePage(client *discordclient.MockDiscordClient, reaction models.DiscordReaction, page []models.DiscordUser) {
	client.On("FetchReactionUsersPage", mock.Anything, testChannelID, testMessageID, reaction.APIName, ReactionUsersPageSize, models.Snowflake(0)).
		Return(page, nil).Once()
}
