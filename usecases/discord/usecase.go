package discord

import (
	"context"
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/samber/mo"

	"rmembot/clients"
	discordclient "rmembot/clients/discord"
	"rmembot/core"
	"rmembot/models"
	"rmembot/services"
	"rmembot/utils"
)

// Every reply of the bot is only visible to the invoking user
const ephemeralReplies = true

// ReactionMembersUseCase handles the bot's slash commands, context menus and modals
type ReactionMembersUseCase struct {
	discordClient        clients.DiscordClient
	reactionUsersService services.ReactionUsersService
}

// NewReactionMembersUseCase creates a new instance of ReactionMembersUseCase
func NewReactionMembersUseCase(
	discordClient clients.DiscordClient,
	reactionUsersService services.ReactionUsersService,
) *ReactionMembersUseCase {
	return &ReactionMembersUseCase{
		discordClient:        discordClient,
		reactionUsersService: reactionUsersService,
	}
}

func (u *ReactionMembersUseCase) ProcessApplicationCommand(ctx context.Context, interaction *discordgo.Interaction) error {
	data := interaction.ApplicationCommandData()
	requestID := core.NewID("rq")
	log.Printf("📋 [%s] Starting to process command %q from user %s in guild %s, channel %s",
		requestID, data.Name, interactionUserID(interaction), interaction.GuildID, interaction.ChannelID)

	switch data.Name {
	case CommandRmem:
		return u.handleRmemCommand(ctx, requestID, interaction, data)
	case CommandReactionMembers:
		return u.handleReactionMembersCommand(ctx, requestID, interaction, data)
	case ContextMenuReactionMembers:
		params := models.DisplayModeFull.QueryParameters()
		params.IncludeAuthor = true
		return u.handleContextMenu(ctx, requestID, interaction, data, params)
	case ContextMenuGetReactionMembers:
		return u.handleContextMenu(ctx, requestID, interaction, data, models.DisplayModeMembers.QueryParameters())
	case ContextMenuGetReactionGroupingMembers:
		return u.handleContextMenu(ctx, requestID, interaction, data, models.DisplayModeReactionMembers.QueryParameters())
	case ContextMenuDetailedMembers:
		return u.openDetailedModal(ctx, requestID, interaction, data)
	default:
		log.Printf("⚠️ [%s] Unknown command %q - replying with a notice", requestID, data.Name)
		return u.discordClient.RespondWithMessage(ctx, interaction, unknownCommandText, ephemeralReplies)
	}
}

func (u *ReactionMembersUseCase) ProcessModalSubmit(ctx context.Context, interaction *discordgo.Interaction) error {
	data := interaction.ModalSubmitData()
	requestID := core.NewID("rq")
	log.Printf("📋 [%s] Starting to process modal %q from user %s", requestID, data.CustomID, interactionUserID(interaction))

	if err := u.discordClient.DeferInteraction(ctx, interaction, ephemeralReplies); err != nil {
		return fmt.Errorf("failed to defer modal submit: %w", err)
	}

	ref, err := parseDetailedModalCustomID(data.CustomID)
	if err != nil {
		log.Printf("⚠️ [%s] Invalid modal data: %v", requestID, err)
		return u.discordClient.SendFollowup(ctx, interaction, invalidModalText, ephemeralReplies)
	}

	message, err := u.fetchMessage(ctx, requestID, interaction, ref)
	if err != nil {
		return u.discordClient.SendFollowup(
			ctx, interaction, unreadableMessageText(referencePermalink(ref)), ephemeralReplies)
	}

	values := modalValues(data)
	params := models.ParseDisplayMode(values[modalInputMode]).QueryParameters()
	params = filterInput{
		includeUsers:     values[modalInputIncludeUsers],
		excludeUsers:     values[modalInputExcludeUsers],
		excludeReactions: values[modalInputExcludeReactions],
	}.apply(params)

	return u.answerQuery(ctx, requestID, interaction, message, params)
}

func (u *ReactionMembersUseCase) handleRmemCommand(
	ctx context.Context,
	requestID string,
	interaction *discordgo.Interaction,
	data discordgo.ApplicationCommandInteractionData,
) error {
	if err := u.discordClient.DeferInteraction(ctx, interaction, ephemeralReplies); err != nil {
		return fmt.Errorf("failed to defer rmem command: %w", err)
	}

	options := newCommandOptions(data)
	messageParam := options.stringValue(optionMessage)
	message, ok := u.resolveMessageOption(ctx, requestID, interaction, messageParam)
	if !ok {
		return u.discordClient.SendFollowup(ctx, interaction, unreadableMessageText(messageParam), ephemeralReplies)
	}

	params := models.ParseDisplayMode(options.stringValue(optionMode)).QueryParameters()
	params = filterInput{
		includeUsers:     options.stringValue(optionIncludeUser),
		excludeUsers:     options.stringValue(optionExcludeUser),
		excludeReactions: options.stringValue(optionExcludeReaction),
	}.apply(params)

	return u.answerQuery(ctx, requestID, interaction, message, params)
}

func (u *ReactionMembersUseCase) handleReactionMembersCommand(
	ctx context.Context,
	requestID string,
	interaction *discordgo.Interaction,
	data discordgo.ApplicationCommandInteractionData,
) error {
	if err := u.discordClient.DeferInteraction(ctx, interaction, ephemeralReplies); err != nil {
		return fmt.Errorf("failed to defer reaction_members command: %w", err)
	}

	options := newCommandOptions(data)
	messageParam := options.stringValue(optionMessage)
	message, ok := u.resolveMessageOption(ctx, requestID, interaction, messageParam)
	if !ok {
		return u.discordClient.SendFollowup(ctx, interaction, unreadableMessageText(messageParam), ephemeralReplies)
	}

	params := reactionMembersParameters(
		options.boolValue(optionIsAuthorInclude),
		options.boolValue(optionIsShowCount),
		options.boolValue(optionIsUniqueUsers),
	)
	return u.answerQuery(ctx, requestID, interaction, message, params)
}

func (u *ReactionMembersUseCase) handleContextMenu(
	ctx context.Context,
	requestID string,
	interaction *discordgo.Interaction,
	data discordgo.ApplicationCommandInteractionData,
	params models.QueryParameters,
) error {
	if err := u.discordClient.DeferInteraction(ctx, interaction, ephemeralReplies); err != nil {
		return fmt.Errorf("failed to defer context menu %q: %w", data.Name, err)
	}

	message, ok := targetMessage(requestID, interaction, data)
	if !ok {
		return u.discordClient.SendFollowup(ctx, interaction, targetMissingText, ephemeralReplies)
	}

	return u.answerQuery(ctx, requestID, interaction, message, params)
}

func (u *ReactionMembersUseCase) openDetailedModal(
	ctx context.Context,
	requestID string,
	interaction *discordgo.Interaction,
	data discordgo.ApplicationCommandInteractionData,
) error {
	message, ok := targetMessage(requestID, interaction, data)
	if !ok {
		return u.discordClient.RespondWithMessage(ctx, interaction, targetMissingText, ephemeralReplies)
	}

	if err := u.discordClient.RespondWithModal(ctx, interaction, buildDetailedModal(message)); err != nil {
		return fmt.Errorf("failed to open detailed members modal: %w", err)
	}

	log.Printf("📋 [%s] Completed successfully - opened detailed members modal for message %s", requestID, message.ID)
	return nil
}

// answerQuery runs the reaction query and sends the result as a followup
func (u *ReactionMembersUseCase) answerQuery(
	ctx context.Context,
	requestID string,
	interaction *discordgo.Interaction,
	message *models.DiscordMessage,
	params models.QueryParameters,
) error {
	u.logFilters(ctx, requestID, params)

	response, err := u.reactionUsersService.ProcessReactionQuery(ctx, message, params)
	if err != nil {
		log.Printf("❌ [%s] Failed to process reaction query for message %s: %v", requestID, message.ID, err)
		if sendErr := u.discordClient.SendFollowup(
			ctx, interaction, fmt.Sprintf(errorReplyTextFormat, err), ephemeralReplies,
		); sendErr != nil {
			log.Printf("❌ [%s] Failed to send error reply: %v", requestID, sendErr)
		}
		return fmt.Errorf("failed to process reaction query: %w", err)
	}

	if err := u.discordClient.SendFollowup(ctx, interaction, response.Content, ephemeralReplies); err != nil {
		return fmt.Errorf("failed to send reaction members reply: %w", err)
	}

	log.Printf("📋 [%s] Completed successfully - sent reaction members for message %s", requestID, message.ID)
	return nil
}

// resolveMessageOption looks up the message named by a URL or bare ID.
// Bare IDs are looked up in the channel the command was used in.
func (u *ReactionMembersUseCase) resolveMessageOption(
	ctx context.Context,
	requestID string,
	interaction *discordgo.Interaction,
	messageParam string,
) (*models.DiscordMessage, bool) {
	ref, err := utils.ParseMessageReference(messageParam)
	if err != nil {
		log.Printf("⚠️ [%s] Could not parse message option %q: %v", requestID, messageParam, err)
		return nil, false
	}

	if ref.ChannelID.IsAbsent() {
		channelID, err := models.ParseSnowflake(interaction.ChannelID)
		if err != nil {
			log.Printf("⚠️ [%s] Interaction has no usable channel: %v", requestID, err)
			return nil, false
		}
		ref.ChannelID = mo.Some(channelID)
		ref.GuildID = interactionGuildID(interaction)
	}

	message, err := u.fetchMessage(ctx, requestID, interaction, ref)
	if err != nil {
		return nil, false
	}
	return message, true
}

func (u *ReactionMembersUseCase) fetchMessage(
	ctx context.Context,
	requestID string,
	interaction *discordgo.Interaction,
	ref utils.MessageReference,
) (*models.DiscordMessage, error) {
	channelID := ref.ChannelID.MustGet()
	message, err := u.discordClient.GetMessage(ctx, channelID, ref.MessageID)
	if err != nil {
		if core.IsNotFoundError(err) {
			log.Printf("⚠️ [%s] Message %s not found in channel %s", requestID, ref.MessageID, channelID)
		} else {
			log.Printf("⚠️ [%s] Failed to read message %s in channel %s: %v", requestID, ref.MessageID, channelID, err)
		}
		return nil, err
	}

	// REST message payloads carry no guild ID
	if message.GuildID.IsAbsent() {
		message.GuildID = ref.GuildID
		if message.GuildID.IsAbsent() {
			message.GuildID = interactionGuildID(interaction)
		}
	}
	return message, nil
}

func (u *ReactionMembersUseCase) logFilters(ctx context.Context, requestID string, params models.QueryParameters) {
	if len(params.IncludeUsers) > 0 {
		log.Printf("📋 [%s] Including only users: %s", requestID, u.describeUsers(ctx, params.IncludeUsers))
	}
	if len(params.ExcludeUsers) > 0 {
		log.Printf("📋 [%s] Excluding users: %s", requestID, u.describeUsers(ctx, params.ExcludeUsers))
	}
	if len(params.ExcludeReactions) > 0 {
		log.Printf("📋 [%s] Excluding reactions: %s",
			requestID, strings.Join(slices.Sorted(maps.Keys(params.ExcludeReactions)), " "))
	}
}

// describeUsers resolves filter IDs to usernames; IDs that cannot be
// resolved are shown as mentions
func (u *ReactionMembersUseCase) describeUsers(ctx context.Context, ids models.UserSet) string {
	names := make([]string, 0, len(ids))
	for _, id := range slices.Sorted(maps.Keys(ids)) {
		user, err := u.discordClient.ResolveUser(ctx, id)
		if err != nil {
			names = append(names, models.DiscordUser{ID: id}.Mention())
			continue
		}
		names = append(names, fmt.Sprintf("%s (%s)", user.Username, user.ID))
	}
	return strings.Join(names, ", ")
}

// targetMessage returns the message a context menu was used on
func targetMessage(
	requestID string,
	interaction *discordgo.Interaction,
	data discordgo.ApplicationCommandInteractionData,
) (*models.DiscordMessage, bool) {
	if data.Resolved == nil {
		log.Printf("⚠️ [%s] Context menu interaction has no resolved data", requestID)
		return nil, false
	}
	resolved, ok := data.Resolved.Messages[data.TargetID]
	if !ok || resolved == nil {
		log.Printf("⚠️ [%s] Target message %s is missing from resolved data", requestID, data.TargetID)
		return nil, false
	}

	message, err := discordclient.MapMessage(resolved, interaction.GuildID)
	if err != nil {
		log.Printf("⚠️ [%s] Failed to map target message %s: %v", requestID, data.TargetID, err)
		return nil, false
	}
	return message, true
}

func referencePermalink(ref utils.MessageReference) string {
	message := models.DiscordMessage{
		ID:        ref.MessageID,
		ChannelID: ref.ChannelID.OrEmpty(),
		GuildID:   ref.GuildID,
	}
	return message.Permalink()
}
