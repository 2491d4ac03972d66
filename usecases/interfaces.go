package usecases

import (
	"context"

	"github.com/bwmarrin/discordgo"
)

// ReactionMembersUseCaseInterface defines the interface for Discord interaction handling
type ReactionMembersUseCaseInterface interface {
	ProcessApplicationCommand(ctx context.Context, interaction *discordgo.Interaction) error
	ProcessModalSubmit(ctx context.Context, interaction *discordgo.Interaction) error
}
