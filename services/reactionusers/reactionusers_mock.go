package reactionusers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"rmembot/models"
)

// MockReactionUsersService is a mock implementation of the ReactionUsersService interface
type MockReactionUsersService struct {
	mock.Mock
}

func (m *MockReactionUsersService) ProcessReactionQuery(
	ctx context.Context,
	message *models.DiscordMessage,
	params models.QueryParameters,
) (*models.ReactionQueryResponse, error) {
	args := m.Called(ctx, message, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReactionQueryResponse), args.Error(1)
}
