package handlers

import (
	"context"
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"

	"rmembot/clients"
	"rmembot/middleware"
	"rmembot/usecases"
)

type DiscordEventsHandler struct {
	discordSDKClient *discordgo.Session
	discordClient    clients.DiscordClient
	guildID          string
	commands         []*discordgo.ApplicationCommand
	handleCommand    middleware.InteractionHandler
	handleModal      middleware.InteractionHandler
	alertMiddleware  *middleware.ErrorAlertMiddleware
}

func NewDiscordEventsHandler(
	session *discordgo.Session,
	discordClient clients.DiscordClient,
	reactionMembersUseCase usecases.ReactionMembersUseCaseInterface,
	alertMiddleware *middleware.ErrorAlertMiddleware,
	commands []*discordgo.ApplicationCommand,
	guildID string,
) *DiscordEventsHandler {
	handler := &DiscordEventsHandler{
		discordSDKClient: session,
		discordClient:    discordClient,
		guildID:          guildID,
		commands:         commands,
		handleCommand: alertMiddleware.WrapInteractionHandler(
			"application command", reactionMembersUseCase.ProcessApplicationCommand,
		),
		handleModal:     alertMiddleware.WrapInteractionHandler("modal submit", reactionMembersUseCase.ProcessModalSubmit),
		alertMiddleware: alertMiddleware,
	}

	session.AddHandler(handler.handleReadyEvent)
	session.AddHandler(handler.handleInteractionCreatedEvent)

	// Slash commands and context menus need no privileged intents
	session.Identify.Intents = discordgo.IntentsGuilds

	return handler
}

// StartBot opens the Discord connection and starts listening for events
func (h *DiscordEventsHandler) StartBot() error {
	if err := h.discordSDKClient.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	log.Printf("🤖 Discord bot is now running and listening for interactions")
	return nil
}

// StopBot gracefully closes the Discord connection
func (h *DiscordEventsHandler) StopBot() {
	if err := h.discordSDKClient.Close(); err != nil {
		log.Printf("⚠️ Failed to close Discord session: %v", err)
	}
}

// handleReadyEvent registers the bot's commands once the gateway is ready
func (h *DiscordEventsHandler) handleReadyEvent(s *discordgo.Session, r *discordgo.Ready) {
	log.Printf("🤖 Logged in as %s#%s (%s)", r.User.Username, r.User.Discriminator, r.User.ID)

	// A bot's application ID matches its user ID
	appID := r.User.ID
	if r.Application != nil && r.Application.ID != "" {
		appID = r.Application.ID
	}
	_ = h.alertMiddleware.WrapBackgroundTask("RegisterCommands", func() error {
		return h.registerCommands(context.Background(), appID)
	})()
}

func (h *DiscordEventsHandler) registerCommands(ctx context.Context, appID string) error {
	scope := "globally"
	if h.guildID != "" {
		scope = "in guild " + h.guildID
	}

	if err := h.discordClient.RegisterCommands(ctx, appID, h.guildID, h.commands); err != nil {
		log.Printf("❌ Failed to register %d commands %s: %v", len(h.commands), scope, err)
		return err
	}

	log.Printf("✅ Registered %d commands %s", len(h.commands), scope)
	return nil
}

// handleInteractionCreatedEvent dispatches slash commands, context menus and modal submits
func (h *DiscordEventsHandler) handleInteractionCreatedEvent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	h.dispatchInteraction(context.Background(), i.Interaction)
}

func (h *DiscordEventsHandler) dispatchInteraction(ctx context.Context, interaction *discordgo.Interaction) {
	var err error
	switch interaction.Type {
	case discordgo.InteractionApplicationCommand:
		err = h.handleCommand(ctx, interaction)
	case discordgo.InteractionModalSubmit:
		err = h.handleModal(ctx, interaction)
	default:
		log.Printf("⏭️ Ignoring interaction %s of type %s", interaction.ID, interaction.Type)
		return
	}

	if err != nil {
		log.Printf("❌ Failed to process interaction %s: %v", interaction.ID, err)
	}
}
