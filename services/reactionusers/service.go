package reactionusers

import (
	"context"
	"fmt"
	"log"

	"rmembot/clients"
	"rmembot/models"
)

// ReactionUsersService answers "who reacted to this message" queries
type ReactionUsersService struct {
	aggregator *Aggregator
}

func NewReactionUsersService(fetcher clients.ReactionPageFetcher, fetchConcurrency int) *ReactionUsersService {
	pager := NewUserPager(fetcher)
	collector := NewReactionCollector(pager, fetchConcurrency)
	return &ReactionUsersService{aggregator: NewAggregator(collector)}
}

// ProcessReactionQuery runs the full fetch, filter, aggregate and render
// pipeline. Messages without reactions and queries filtered down to nobody
// are answered normally; per-emoji fetch failures only drop that emoji.
func (s *ReactionUsersService) ProcessReactionQuery(
	ctx context.Context,
	message *models.DiscordMessage,
	params models.QueryParameters,
) (*models.ReactionQueryResponse, error) {
	log.Printf("📋 Starting to process reaction query for message %s (%d reactions, aggregation: %s)",
		message.ID, len(message.Reactions), params.Aggregation)

	report, err := s.aggregator.Aggregate(ctx, message, params)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reactions: %w", err)
	}

	response, err := Render(message, report)
	if err != nil {
		return nil, fmt.Errorf("failed to render reactions: %w", err)
	}

	log.Printf("📋 Completed successfully - rendered reaction query for message %s", message.ID)
	return response, nil
}
