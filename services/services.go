package services

import (
	"context"

	"rmembot/models"
)

// ReactionUsersService defines the interface for reaction member queries
type ReactionUsersService interface {
	ProcessReactionQuery(
		ctx context.Context,
		message *models.DiscordMessage,
		params models.QueryParameters,
	) (*models.ReactionQueryResponse, error)
}
