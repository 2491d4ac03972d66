package reactionusers

import "rmembot/models"

// ApplyFilters keeps only included users (when include is non-empty), then
// drops excluded ones (when exclude is non-empty). Order is preserved.
func ApplyFilters(users []models.DiscordUser, include, exclude models.UserSet) []models.DiscordUser {
	filtered := make([]models.DiscordUser, 0, len(users))
	for _, user := range users {
		if len(include) > 0 && !include.Contains(user.ID) {
			continue
		}
		if len(exclude) > 0 && exclude.Contains(user.ID) {
			continue
		}
		filtered = append(filtered, user)
	}
	return filtered
}
