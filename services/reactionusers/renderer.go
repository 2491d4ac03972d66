package reactionusers

import (
	"fmt"
	"strings"

	"rmembot/models"
)

const (
	noReactionsText = "No one reacted."
	noMatchesText   = "No one matched the filters."
	codeFence       = "```"
)

func renderHeader(message *models.DiscordMessage) string {
	return fmt.Sprintf("Information\n  📝: %s\n  🧔: %s\n\n", message.Permalink(), message.Author.Mention())
}

// Render builds the reply text for a report
func Render(message *models.DiscordMessage, report reactionReport) (*models.ReactionQueryResponse, error) {
	var section, body string
	switch r := report.(type) {
	case emptyReport:
		section, body = "Reactions", noReactionsText
	case groupedReport:
		section, body = "Reactions", renderGrouped(r)
	case flattenedReport:
		section, body = "members", renderFlattened(r)
	default:
		return nil, fmt.Errorf("unsupported reaction report %T", report)
	}

	var content strings.Builder
	content.WriteString(renderHeader(message))
	content.WriteString(section)
	content.WriteString(":\n")
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			content.WriteString("\n")
		}
		content.WriteString("  ")
		content.WriteString(line)
	}

	return &models.ReactionQueryResponse{Content: content.String(), Body: body}, nil
}

func renderGrouped(report groupedReport) string {
	if len(report.groups) == 0 {
		return noMatchesText
	}

	lines := make([]string, 0, len(report.groups))
	for _, group := range report.groups {
		count := len(group.Users)
		mentions := joinMentions(group.Users)
		switch report.style {
		case groupStyleCountOnly:
			lines = append(lines, fmt.Sprintf("%s: %d", group.Emoji, count))
		case groupStyleCounted:
			lines = append(lines, fmt.Sprintf("%s: %d: %s%s%s%s", group.Emoji, count, mentions, codeFence, mentions, codeFence))
		default:
			lines = append(lines, fmt.Sprintf("%s: %s%s%s%s", group.Emoji, mentions, codeFence, mentions, codeFence))
		}
	}
	return strings.Join(lines, "\n")
}

func renderFlattened(report flattenedReport) string {
	if len(report.users) == 0 {
		return noMatchesText
	}
	return codeFence + joinMentions(report.users) + codeFence
}

func joinMentions(users []models.DiscordUser) string {
	mentions := make([]string, len(users))
	for i, user := range users {
		mentions[i] = user.Mention()
	}
	return strings.Join(mentions, " ")
}
