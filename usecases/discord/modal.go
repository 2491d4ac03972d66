package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"rmembot/models"
	"rmembot/utils"
)

const (
	detailedModalPrefix = "detailed_reaction_modal"
	detailedModalTitle  = "Reaction Members - Detailed Options"
	directMessageGuild  = "@me"
)

const (
	modalInputIncludeUsers     = "include_users"
	modalInputExcludeUsers     = "exclude_users"
	modalInputExcludeReactions = "exclude_reactions"
	modalInputMode             = "mode"
)

// detailedModalCustomID encodes the target message as
// detailed_reaction_modal:<guild|@me>:<channel>:<message>
func detailedModalCustomID(message *models.DiscordMessage) string {
	guild := directMessageGuild
	if guildID, ok := message.GuildID.Get(); ok {
		guild = guildID.String()
	}
	return fmt.Sprintf("%s:%s:%s:%s", detailedModalPrefix, guild, message.ChannelID, message.ID)
}

func parseDetailedModalCustomID(customID string) (utils.MessageReference, error) {
	parts := strings.Split(customID, ":")
	if len(parts) != 4 || parts[0] != detailedModalPrefix {
		return utils.MessageReference{}, fmt.Errorf("unexpected modal custom id %q", customID)
	}

	guildID := mo.None[models.Snowflake]()
	if parts[1] != directMessageGuild {
		parsed, err := models.ParseSnowflake(parts[1])
		if err != nil {
			return utils.MessageReference{}, fmt.Errorf("invalid guild in modal custom id: %w", err)
		}
		guildID = mo.Some(parsed)
	}

	channelID, err := models.ParseSnowflake(parts[2])
	if err != nil {
		return utils.MessageReference{}, fmt.Errorf("invalid channel in modal custom id: %w", err)
	}
	messageID, err := models.ParseSnowflake(parts[3])
	if err != nil {
		return utils.MessageReference{}, fmt.Errorf("invalid message in modal custom id: %w", err)
	}

	return utils.MessageReference{
		GuildID:   guildID,
		ChannelID: mo.Some(channelID),
		MessageID: messageID,
	}, nil
}

func shortTextInput(customID, label, placeholder, value string, maxLength int) discordgo.MessageComponent {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.TextInput{
				CustomID:    customID,
				Label:       label,
				Style:       discordgo.TextInputShort,
				Placeholder: placeholder,
				Value:       value,
				MaxLength:   maxLength,
			},
		},
	}
}

func buildDetailedModal(message *models.DiscordMessage) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: detailedModalCustomID(message),
		Title:    detailedModalTitle,
		Components: []discordgo.MessageComponent{
			shortTextInput(modalInputIncludeUsers, "Include Users", "@user1 @user2 or user IDs (optional)", "", 1000),
			shortTextInput(modalInputExcludeUsers, "Exclude Users", "@user1 @user2 or user IDs (optional)", "", 1000),
			shortTextInput(modalInputExcludeReactions, "Exclude Reactions", "👍 ❤️ 😂 (optional)", "", 500),
			shortTextInput(
				modalInputMode,
				"Mode",
				"reaction_members, full, reaction_count, members, members_author",
				string(models.DisplayModeReactionMembers),
				50,
			),
		},
	}
}

// modalValues collects the submitted text inputs by custom id
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	values := make(map[string]string)
	for _, row := range data.Components {
		var components []discordgo.MessageComponent
		switch r := row.(type) {
		case *discordgo.ActionsRow:
			components = r.Components
		case discordgo.ActionsRow:
			components = r.Components
		default:
			continue
		}

		for _, component := range components {
			switch input := component.(type) {
			case *discordgo.TextInput:
				values[input.CustomID] = strings.TrimSpace(input.Value)
			case discordgo.TextInput:
				values[input.CustomID] = strings.TrimSpace(input.Value)
			}
		}
	}
	return values
}
