package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/mock"
)

// MockReactionMembersUseCase is a mock implementation of the ReactionMembersUseCase
type MockReactionMembersUseCase struct {
	mock.Mock
}

func (m *MockReactionMembersUseCase) ProcessApplicationCommand(
	ctx context.Context,
	interaction *discordgo.Interaction,
) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *MockReactionMembersUseCase) ProcessModalSubmit(ctx context.Context, interaction *discordgo.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}
