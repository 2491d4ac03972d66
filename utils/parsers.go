package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/mo"

	"rmembot/models"
)

var (
	mentionRegex    = regexp.MustCompile(`^<@!?(\d+)>$`)
	rawIDRegex      = regexp.MustCompile(`^\d+$`)
	messageURLRegex = regexp.MustCompile(
		`^https://(?:(?:ptb|canary)\.)?discord(?:app)?\.com/channels/(@me|\d+)/(\d+)/(\d+)/?$`,
	)
)

// MessageReference points at a message either by bare ID or by jump URL.
// ChannelID is only present when the reference was a URL.
type MessageReference struct {
	GuildID   mo.Option[models.Snowflake]
	ChannelID mo.Option[models.Snowflake]
	MessageID models.Snowflake
}

func splitTokens(input string) []string {
	return strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// ParseUserMentions extracts user IDs from mentions (<@id>, <@!id>) and raw
// IDs separated by spaces or commas. Unrecognized tokens are skipped.
func ParseUserMentions(input string) []models.Snowflake {
	var ids []models.Snowflake
	for _, token := range splitTokens(input) {
		raw := token
		if match := mentionRegex.FindStringSubmatch(token); match != nil {
			raw = match[1]
		} else if !rawIDRegex.MatchString(token) {
			continue
		}

		id, err := models.ParseSnowflake(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// ParseReactions splits an emoji list on spaces and commas
func ParseReactions(input string) []string {
	return splitTokens(input)
}

// ParseMessageReference accepts a message jump URL or a bare message ID
func ParseMessageReference(input string) (MessageReference, error) {
	input = strings.TrimSpace(input)

	if match := messageURLRegex.FindStringSubmatch(input); match != nil {
		ref := MessageReference{GuildID: mo.None[models.Snowflake]()}
		if match[1] != "@me" {
			guildID, err := models.ParseSnowflake(match[1])
			if err != nil {
				return MessageReference{}, fmt.Errorf("invalid guild ID in message URL: %w", err)
			}
			ref.GuildID = mo.Some(guildID)
		}

		channelID, err := models.ParseSnowflake(match[2])
		if err != nil {
			return MessageReference{}, fmt.Errorf("invalid channel ID in message URL: %w", err)
		}
		messageID, err := models.ParseSnowflake(match[3])
		if err != nil {
			return MessageReference{}, fmt.Errorf("invalid message ID in message URL: %w", err)
		}

		ref.ChannelID = mo.Some(channelID)
		ref.MessageID = messageID
		return ref, nil
	}

	if rawIDRegex.MatchString(input) {
		messageID, err := models.ParseSnowflake(input)
		if err != nil {
			return MessageReference{}, fmt.Errorf("invalid message ID: %w", err)
		}
		return MessageReference{
			GuildID:   mo.None[models.Snowflake](),
			ChannelID: mo.None[models.Snowflake](),
			MessageID: messageID,
		}, nil
	}

	return MessageReference{}, fmt.Errorf("invalid message identifier: %q", input)
}
