package reactionusers

import (
	"context"

	"rmembot/models"
)

// reactionReport is the aggregated result of a query. The set of variants is
// closed: emptyReport, groupedReport and flattenedReport.
type reactionReport interface {
	isReactionReport()
}

// emptyReport is produced when the message has no reactions at all
type emptyReport struct{}

type groupStyle int

const (
	groupStyleMentions groupStyle = iota
	groupStyleCounted
	groupStyleCountOnly
)

type groupedReport struct {
	groups []models.ReactionUsers
	style  groupStyle
}

type flattenedReport struct {
	users []models.DiscordUser
}

func (emptyReport) isReactionReport()     {}
func (groupedReport) isReactionReport()   {}
func (flattenedReport) isReactionReport() {}

type reactionMapBuilder interface {
	BuildReactionMap(
		ctx context.Context,
		message *models.DiscordMessage,
		excludeReactions models.EmojiSet,
	) (*models.ReactionUserMap, error)
}

// Aggregator turns per-emoji user lists into the result for a query mode
type Aggregator struct {
	collector reactionMapBuilder
}

func NewAggregator(collector *ReactionCollector) *Aggregator {
	return &Aggregator{collector: collector}
}

func (a *Aggregator) Aggregate(
	ctx context.Context,
	message *models.DiscordMessage,
	params models.QueryParameters,
) (reactionReport, error) {
	if len(message.Reactions) == 0 {
		return emptyReport{}, nil
	}

	reactionMap, err := a.collector.BuildReactionMap(ctx, message, params.ExcludeReactions)
	if err != nil {
		return nil, err
	}

	if params.Aggregation == models.AggregationFlattened {
		return flattenedReport{users: flattenUnique(message, reactionMap, params)}, nil
	}
	return groupedReport{groups: groupByEmoji(reactionMap, params), style: groupStyleFor(params)}, nil
}

func groupByEmoji(reactionMap *models.ReactionUserMap, params models.QueryParameters) []models.ReactionUsers {
	var groups []models.ReactionUsers
	for _, entry := range reactionMap.Entries() {
		users := ApplyFilters(entry.Users, params.IncludeUsers, params.ExcludeUsers)
		if len(users) == 0 {
			continue
		}
		groups = append(groups, models.ReactionUsers{Emoji: entry.Emoji, Users: users})
	}
	return groups
}

// flattenUnique merges every emoji's users, author first when requested, and
// keeps the first occurrence of each user ID. The author bypasses the filters.
func flattenUnique(
	message *models.DiscordMessage,
	reactionMap *models.ReactionUserMap,
	params models.QueryParameters,
) []models.DiscordUser {
	var merged []models.DiscordUser
	if params.IncludeAuthor {
		merged = append(merged, message.Author)
	}
	for _, entry := range reactionMap.Entries() {
		merged = append(merged, ApplyFilters(entry.Users, params.IncludeUsers, params.ExcludeUsers)...)
	}

	seen := make(map[models.Snowflake]struct{}, len(merged))
	unique := make([]models.DiscordUser, 0, len(merged))
	for _, user := range merged {
		if _, ok := seen[user.ID]; ok {
			continue
		}
		seen[user.ID] = struct{}{}
		unique = append(unique, user)
	}
	return unique
}

func groupStyleFor(params models.QueryParameters) groupStyle {
	switch {
	case params.CountOnly:
		return groupStyleCountOnly
	case params.ShowCount:
		return groupStyleCounted
	default:
		return groupStyleMentions
	}
}
