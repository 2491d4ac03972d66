package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"rmembot/models"
	"rmembot/utils"
)

const (
	targetMissingText    = "⚠️ Could not find the target message."
	invalidModalText     = "⚠️ Invalid modal data."
	unknownCommandText   = "Unknown command"
	errorReplyTextFormat = "⚠️ Error: %v"
)

func unreadableMessageText(param string) string {
	return fmt.Sprintf("📝: %s\n\n⚠️ The message cannot be read.\n"+
		"- The message does not exist.\n"+
		"- You do not have permission to read the message.\n"+
		"- The message has been deleted.", param)
}

type commandOptions map[string]*discordgo.ApplicationCommandInteractionDataOption

func newCommandOptions(data discordgo.ApplicationCommandInteractionData) commandOptions {
	options := make(commandOptions, len(data.Options))
	for _, option := range data.Options {
		options[option.Name] = option
	}
	return options
}

func (o commandOptions) stringValue(name string) string {
	option, ok := o[name]
	if !ok || option.Type != discordgo.ApplicationCommandOptionString {
		return ""
	}
	return option.StringValue()
}

func (o commandOptions) boolValue(name string) bool {
	option, ok := o[name]
	if !ok || option.Type != discordgo.ApplicationCommandOptionBoolean {
		return false
	}
	return option.BoolValue()
}

// filterInput is the raw text of the user-supplied filters
type filterInput struct {
	includeUsers     string
	excludeUsers     string
	excludeReactions string
}

func (f filterInput) apply(params models.QueryParameters) models.QueryParameters {
	params.IncludeUsers = models.NewUserSet(utils.ParseUserMentions(f.includeUsers)...)
	params.ExcludeUsers = models.NewUserSet(utils.ParseUserMentions(f.excludeUsers)...)
	params.ExcludeReactions = models.NewEmojiSet(utils.ParseReactions(f.excludeReactions)...)
	return params
}

// reactionMembersParameters maps the boolean options of /reaction_members
func reactionMembersParameters(includeAuthor, showCount, uniqueUsers bool) models.QueryParameters {
	if uniqueUsers {
		return models.QueryParameters{Aggregation: models.AggregationFlattened, IncludeAuthor: includeAuthor}
	}
	return models.QueryParameters{
		Aggregation:   models.AggregationGrouped,
		IncludeAuthor: includeAuthor,
		ShowCount:     showCount,
	}
}

func interactionGuildID(interaction *discordgo.Interaction) mo.Option[models.Snowflake] {
	if interaction.GuildID == "" {
		return mo.None[models.Snowflake]()
	}
	guildID, err := models.ParseSnowflake(interaction.GuildID)
	if err != nil {
		return mo.None[models.Snowflake]()
	}
	return mo.Some(guildID)
}

func interactionUserID(interaction *discordgo.Interaction) string {
	if interaction.Member != nil && interaction.Member.User != nil {
		return interaction.Member.User.ID
	}
	if interaction.User != nil {
		return interaction.User.ID
	}
	return "unknown"
}
