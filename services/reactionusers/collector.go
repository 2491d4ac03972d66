package reactionusers

import (
	"context"
	"fmt"
	"log"

	"github.com/gammazero/workerpool"

	"rmembot/models"
)

const defaultFetchConcurrency = 4

type reactingUsersFetcher interface {
	FetchReactingUsers(
		ctx context.Context,
		message *models.DiscordMessage,
		reaction models.DiscordReaction,
	) ([]models.DiscordUser, error)
}

// ReactionCollector fetches the reacting users of every non-excluded emoji
type ReactionCollector struct {
	pager       reactingUsersFetcher
	concurrency int
}

func NewReactionCollector(pager *UserPager, concurrency int) *ReactionCollector {
	if concurrency <= 0 {
		concurrency = defaultFetchConcurrency
	}
	return &ReactionCollector{pager: pager, concurrency: concurrency}
}

type fetchResult struct {
	users []models.DiscordUser
	err   error
}

// BuildReactionMap returns emoji -> users in the message's reaction order.
// A failed emoji is logged and left out. The only error returned is the
// context's, when the caller gave up while fetches were running.
func (c *ReactionCollector) BuildReactionMap(
	ctx context.Context,
	message *models.DiscordMessage,
	excludeReactions models.EmojiSet,
) (*models.ReactionUserMap, error) {
	var pending []models.DiscordReaction
	for _, reaction := range message.Reactions {
		if excludeReactions.Excludes(reaction) {
			log.Printf("⏭️ Skipping excluded reaction %s on message %s", reaction.Emoji, message.ID)
			continue
		}
		pending = append(pending, reaction)
	}

	results := make([]fetchResult, len(pending))
	if len(pending) > 0 {
		pool := workerpool.New(min(c.concurrency, len(pending)))
		for i, reaction := range pending {
			pool.Submit(func() {
				users, err := c.pager.FetchReactingUsers(ctx, message, reaction)
				results[i] = fetchResult{users: users, err: err}
			})
		}
		pool.StopWait()
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("reaction collection for message %s cancelled: %w", message.ID, err)
	}

	reactionMap := models.NewReactionUserMap()
	for i, reaction := range pending {
		if results[i].err != nil {
			log.Printf("❌ Failed to get users for reaction %s on message %s: %v", reaction.Emoji, message.ID, results[i].err)
			continue
		}
		reactionMap.Set(reaction.Emoji, results[i].users)
	}

	return reactionMap, nil
}
