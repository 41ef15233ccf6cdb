package queries

import (
	"wordless-backend/domain/feed"
	apperrors "wordless-backend/pkg/errors"
)

// GetFeedQuery represents a query for one page of the emote feed
type GetFeedQuery struct {
	// AuthorID restricts the page to one author's emotes when set
	AuthorID string

	// PageSize is the maximum number of emotes to return
	PageSize int

	// CursorSeq is the sequence number of the last emote of the previous page,
	// or nil for the first page
	CursorSeq *int64
}

// Validate validates the GetFeedQuery
func (q GetFeedQuery) Validate() error {
	if q.PageSize <= 0 {
		return apperrors.NewValidationError("page size must be a positive integer")
	}
	if q.CursorSeq != nil && *q.CursorSeq < 0 {
		return apperrors.NewValidationError("cursor sequence number must not be negative")
	}
	return nil
}

// GetFeedResult represents one assembled feed page
type GetFeedResult struct {
	Emotes []feed.EmoteView `json:"emotes"`
}
