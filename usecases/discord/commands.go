package discord

import (
	"github.com/bwmarrin/discordgo"

	"rmembot/models"
)

const (
	CommandRmem            = "rmem"
	CommandReactionMembers = "reaction_members"

	ContextMenuReactionMembers            = "Reaction Members"
	ContextMenuGetReactionMembers         = "Get reaction members"
	ContextMenuGetReactionGroupingMembers = "Get reaction-grouping members"
	ContextMenuDetailedMembers            = "Detailed Members"
)

const (
	optionMessage         = "message"
	optionIncludeUser     = "include_user"
	optionExcludeUser     = "exclude_user"
	optionExcludeReaction = "exclude_reaction"
	optionMode            = "mode"
	optionIsAuthorInclude = "is_author_include"
	optionIsShowCount     = "is_show_count"
	optionIsUniqueUsers   = "is_unique_users"
)

func modeChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(models.AllDisplayModes))
	for i, mode := range models.AllDisplayModes {
		choices[i] = &discordgo.ApplicationCommandOptionChoice{Name: string(mode), Value: string(mode)}
	}
	return choices
}

// ApplicationCommands returns every command the bot registers
func ApplicationCommands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        CommandRmem,
			Description: "Get reaction members information from a message",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionMessage,
					Description: "Message URL or Message ID",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionIncludeUser,
					Description: "Users to include (mention format)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionExcludeUser,
					Description: "Users to exclude (mention format)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionExcludeReaction,
					Description: "Reactions to exclude",
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionMode,
					Description: "Display mode",
					Choices:     modeChoices(),
				},
			},
		},
		{
			Name:        CommandReactionMembers,
			Description: "List the users who reacted to a message",
			Type:        discordgo.ChatApplicationCommand,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        optionMessage,
					Description: "The message ID or URL to fetch reactions from.",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        optionIsAuthorInclude,
					Description: "Whether to include the message author in the results.",
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        optionIsShowCount,
					Description: "Whether to include the count of reactions in the results.",
				},
				{
					Type:        discordgo.ApplicationCommandOptionBoolean,
					Name:        optionIsUniqueUsers,
					Description: "Whether to list unique users across all reactions instead of per reaction.",
				},
			},
		},
		{Name: ContextMenuReactionMembers, Type: discordgo.MessageApplicationCommand},
		{Name: ContextMenuGetReactionMembers, Type: discordgo.MessageApplicationCommand},
		{Name: ContextMenuGetReactionGroupingMembers, Type: discordgo.MessageApplicationCommand},
		{Name: ContextMenuDetailedMembers, Type: discordgo.MessageApplicationCommand},
	}
}
