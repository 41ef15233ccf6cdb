package feed

// AuthorProfile is the per-user display record owned by the user-profile
// subsystem. The feed only ever reads it.
type AuthorProfile struct {
	UserID        string
	UserName      string
	UserAvatarURL string
}

// ReactionEmoji is one tallied emoji within a reaction record
type ReactionEmoji struct {
	EmojiID           string   `json:"emojiId"`
	NumberOfReactions int      `json:"numberOfReactions"`
	ReactedUserIDs    []string `json:"reactedUserIds"`
}

// ReactionTally is the per-emote reaction aggregate owned by the reaction
// subsystem. A freshly posted emote has no tally record at all, so a nil
// *ReactionTally is a legitimate state rather than an error.
type ReactionTally struct {
	EmoteReactionID string
	Emojis          []ReactionEmoji
}

// Total sums the per-emoji reaction counts. A nil tally totals zero.
func (t *ReactionTally) Total() int {
	if t == nil {
		return 0
	}

	total := 0
	for _, e := range t.Emojis {
		total += e.NumberOfReactions
	}
	return total
}
