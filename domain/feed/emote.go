package feed

import "time"

// EmoteRecord is one row of the emote ledger. The ledger is append-only from this
// service's point of view: rows are written by the posting path and only the
// soft-delete flag ever changes afterwards.
type EmoteRecord struct {
	SequenceNumber  int64     `gorm:"column:sequenceNumber;primaryKey;autoIncrement"`
	EmoteID         string    `gorm:"column:emote_id;size:64"`
	UserID          string    `gorm:"column:user_id;size:64;index"`
	EmoteDatetime   time.Time `gorm:"column:emote_datetime;index"`
	EmoteEmoji1     string    `gorm:"column:emote_emoji1;size:64"`
	EmoteEmoji2     string    `gorm:"column:emote_emoji2;size:64"`
	EmoteEmoji3     string    `gorm:"column:emote_emoji3;size:64"`
	EmoteEmoji4     string    `gorm:"column:emote_emoji4;size:64"`
	EmoteReactionID string    `gorm:"column:emote_reaction_id;size:64"`
	IsDeleted       bool      `gorm:"column:is_deleted"`
}

// TableName maps the record to the ledger table
func (EmoteRecord) TableName() string {
	return "emote_table"
}

// Emojis returns the four emoji slots in slot order. Empty slots stay in place;
// the slots carry no ordering constraint among themselves.
func (r EmoteRecord) Emojis() [4]string {
	return [4]string{r.EmoteEmoji1, r.EmoteEmoji2, r.EmoteEmoji3, r.EmoteEmoji4}
}
