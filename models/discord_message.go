package models

import (
	"fmt"
	"strconv"

	"github.com/samber/mo"
)

// Snowflake is a Discord resource ID (messages, channels, guilds, users)
type Snowflake uint64

func (s Snowflake) String() string {
	return strconv.FormatUint(uint64(s), 10)
}

// ParseSnowflake parses the decimal string form Discord uses on the wire
func ParseSnowflake(raw string) (Snowflake, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid snowflake %q: %w", raw, err)
	}
	return Snowflake(id), nil
}

type DiscordUser struct {
	ID       Snowflake
	Username string
}

// Mention returns the token Discord renders as an interactive user mention
func (u DiscordUser) Mention() string {
	return "<@" + u.ID.String() + ">"
}

type DiscordReaction struct {
	// Emoji is the display form: a unicode emoji or <:name:id> for custom emojis
	Emoji string
	// APIName is the form the reactions endpoint expects: unicode emoji or name:id
	APIName string
	Count   int
}

type DiscordMessage struct {
	ID        Snowflake
	ChannelID Snowflake
	// GuildID is absent for direct and group messages
	GuildID   mo.Option[Snowflake]
	Author    DiscordUser
	Reactions []DiscordReaction
}

// Permalink builds the jump URL, using @me when the message has no guild
func (m *DiscordMessage) Permalink() string {
	guild := "@me"
	if guildID, ok := m.GuildID.Get(); ok {
		guild = guildID.String()
	}
	return fmt.Sprintf("https://discord.com/channels/%s/%s/%s", guild, m.ChannelID, m.ID)
}
