package models

import "strings"

type AggregationMode string

const (
	AggregationGrouped   AggregationMode = "grouped"
	AggregationFlattened AggregationMode = "flattened"
)

// DisplayMode is the user-facing mode name accepted by the rmem command
type DisplayMode string

const (
	DisplayModeReactionMembers DisplayMode = "reaction_members"
	DisplayModeFull            DisplayMode = "full"
	DisplayModeReactionCount   DisplayMode = "reaction_count"
	DisplayModeMembers         DisplayMode = "members"
	DisplayModeMembersAuthor   DisplayMode = "members_author"
)

var AllDisplayModes = []DisplayMode{
	DisplayModeReactionMembers,
	DisplayModeFull,
	DisplayModeReactionCount,
	DisplayModeMembers,
	DisplayModeMembersAuthor,
}

// ParseDisplayMode is case-insensitive and falls back to reaction_members
func ParseDisplayMode(raw string) DisplayMode {
	normalized := DisplayMode(strings.ToLower(strings.TrimSpace(raw)))
	for _, mode := range AllDisplayModes {
		if mode == normalized {
			return mode
		}
	}
	return DisplayModeReactionMembers
}

// QueryParameters returns the aggregation and rendering flags for the mode.
// Filters are left empty for the caller to fill in.
func (m DisplayMode) QueryParameters() QueryParameters {
	switch m {
	case DisplayModeFull:
		return QueryParameters{Aggregation: AggregationGrouped, ShowCount: true}
	case DisplayModeReactionCount:
		return QueryParameters{Aggregation: AggregationGrouped, CountOnly: true}
	case DisplayModeMembers:
		return QueryParameters{Aggregation: AggregationFlattened}
	case DisplayModeMembersAuthor:
		return QueryParameters{Aggregation: AggregationFlattened, IncludeAuthor: true}
	default:
		return QueryParameters{Aggregation: AggregationGrouped}
	}
}

type QueryParameters struct {
	Aggregation   AggregationMode
	IncludeAuthor bool
	ShowCount     bool
	// CountOnly renders per-emoji counts without the mention lists
	CountOnly        bool
	IncludeUsers     UserSet
	ExcludeUsers     UserSet
	ExcludeReactions EmojiSet
}

type UserSet map[Snowflake]struct{}

func NewUserSet(ids ...Snowflake) UserSet {
	set := make(UserSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func (s UserSet) Contains(id Snowflake) bool {
	_, ok := s[id]
	return ok
}

type EmojiSet map[string]struct{}

func NewEmojiSet(keys ...string) EmojiSet {
	set := make(EmojiSet, len(keys))
	for _, key := range keys {
		set[key] = struct{}{}
	}
	return set
}

// Excludes reports whether the reaction is named by its display or API form
func (s EmojiSet) Excludes(reaction DiscordReaction) bool {
	if _, ok := s[reaction.Emoji]; ok {
		return true
	}
	_, ok := s[reaction.APIName]
	return ok
}

// ReactionUsers is one emoji together with everyone who reacted with it
type ReactionUsers struct {
	Emoji string
	Users []DiscordUser
}

// ReactionUserMap maps emoji keys to their reacting users, keeping the
// order reactions appear on the message
type ReactionUserMap struct {
	entries []ReactionUsers
	index   map[string]int
}

func NewReactionUserMap() *ReactionUserMap {
	return &ReactionUserMap{index: make(map[string]int)}
}

// Set replaces the users of an existing emoji or appends a new one
func (m *ReactionUserMap) Set(emoji string, users []DiscordUser) {
	if i, ok := m.index[emoji]; ok {
		m.entries[i].Users = users
		return
	}
	m.index[emoji] = len(m.entries)
	m.entries = append(m.entries, ReactionUsers{Emoji: emoji, Users: users})
}

func (m *ReactionUserMap) Get(emoji string) ([]DiscordUser, bool) {
	i, ok := m.index[emoji]
	if !ok {
		return nil, false
	}
	return m.entries[i].Users, true
}

func (m *ReactionUserMap) Len() int {
	return len(m.entries)
}

func (m *ReactionUserMap) Entries() []ReactionUsers {
	return m.entries
}

type ReactionQueryResponse struct {
	// Content is the complete text sent back to the invoking user
	Content string `json:"content"`
	// Body is the mode-specific part of Content without the header
	Body string `json:"body"`
}
