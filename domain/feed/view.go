package feed

import "time"

// EmojiSlot is one of the four emoji slots on an emote, as rendered to clients
type EmojiSlot struct {
	EmojiID string `json:"emojiId"`
}

// EmoteView is the enriched feed entry returned to clients: ledger fields
// combined with the author's display fields and the reaction summary.
type EmoteView struct {
	SequenceNumber         int64           `json:"sequenceNumber"`
	EmoteID                string          `json:"emoteId"`
	UserName               string          `json:"userName"`
	UserID                 string          `json:"userId"`
	EmoteDatetime          string          `json:"emoteDatetime"`
	EmoteReactionID        string          `json:"emoteReactionId"`
	EmoteEmojis            []EmojiSlot     `json:"emoteEmojis"`
	UserAvatarURL          string          `json:"userAvatarUrl"`
	EmoteReactionEmojis    []ReactionEmoji `json:"emoteReactionEmojis"`
	TotalNumberOfReactions int             `json:"totalNumberOfReactions"`
}

// FeedPage is one page of the feed, ordered newest-first
type FeedPage struct {
	Emotes []EmoteView `json:"emotes"`
}

// NewEmoteView assembles a view from a ledger row and its enrichment records.
// The tally may be nil; it renders as zero reactions.
func NewEmoteView(record EmoteRecord, profile AuthorProfile, tally *ReactionTally) EmoteView {
	emojis := record.Emojis()
	slots := make([]EmojiSlot, len(emojis))
	for i, id := range emojis {
		slots[i] = EmojiSlot{EmojiID: id}
	}

	reactionEmojis := []ReactionEmoji{}
	if tally != nil {
		reactionEmojis = tally.Emojis
	}

	return EmoteView{
		SequenceNumber:         record.SequenceNumber,
		EmoteID:                record.EmoteID,
		UserName:               profile.UserName,
		UserID:                 record.UserID,
		EmoteDatetime:          record.EmoteDatetime.Format(time.RFC3339),
		EmoteReactionID:        record.EmoteReactionID,
		EmoteEmojis:            slots,
		UserAvatarURL:          profile.UserAvatarURL,
		EmoteReactionEmojis:    reactionEmojis,
		TotalNumberOfReactions: tally.Total(),
	}
}
