package reactionusers

import (
	"context"
	"fmt"
	"iter"

	"rmembot/clients"
	"rmembot/models"
)

// ReactionUsersPageSize is the largest page the reactions endpoint returns
const ReactionUsersPageSize = 100

// UserPager walks every page of users who reacted with one emoji
type UserPager struct {
	fetcher  clients.ReactionPageFetcher
	pageSize int
}

func NewUserPager(fetcher clients.ReactionPageFetcher) *UserPager {
	return &UserPager{fetcher: fetcher, pageSize: ReactionUsersPageSize}
}

// Pages yields pages in order, using the last user of each page as the cursor
// for the next one. It stops after an empty or short page, or after yielding
// an error. Every iteration starts again from the first page.
func (p *UserPager) Pages(
	ctx context.Context,
	message *models.DiscordMessage,
	reaction models.DiscordReaction,
) iter.Seq2[[]models.DiscordUser, error] {
	return func(yield func([]models.DiscordUser, error) bool) {
		var after models.Snowflake
		for {
			page, err := p.fetcher.FetchReactionUsersPage(
				ctx,
				message.ChannelID,
				message.ID,
				reaction.APIName,
				p.pageSize,
				after,
			)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(page) == 0 {
				return
			}
			if !yield(page, nil) {
				return
			}
			if len(page) < p.pageSize {
				return
			}
			after = page[len(page)-1].ID
		}
	}
}

// FetchReactingUsers returns everyone who reacted with the emoji, in fetch order
func (p *UserPager) FetchReactingUsers(
	ctx context.Context,
	message *models.DiscordMessage,
	reaction models.DiscordReaction,
) ([]models.DiscordUser, error) {
	var users []models.DiscordUser
	for page, err := range p.Pages(ctx, message, reaction) {
		if err != nil {
			return nil, fmt.Errorf("failed to fetch users for reaction %s: %w", reaction.Emoji, err)
		}
		users = append(users, page...)
	}
	return users, nil
}
