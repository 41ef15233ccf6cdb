package ports

import (
	"context"

	"wordless-backend/domain/feed"
)

// FeedFilter narrows a ledger page query. An empty AuthorID means the global feed.
type FeedFilter struct {
	AuthorID string
}

// FeedPagination is the keyset pagination window for a ledger page query.
// CursorSeq, when set, is the sequence number of the last row of the previous
// page; the next page is bounded by that row's timestamp.
type FeedPagination struct {
	PageSize  int
	CursorSeq *int64
}

// EmoteLedger defines the interface for page queries against the emote ledger.
// This is a port in hexagonal architecture - the aggregator doesn't know about
// the implementation.
type EmoteLedger interface {
	// FetchPage returns up to PageSize non-deleted rows, newest-first by
	// timestamp. An empty page is an empty slice, not an error.
	FetchPage(ctx context.Context, filter FeedFilter, page FeedPagination) ([]feed.EmoteRecord, error)
}

// ProfileStore defines the interface for author profile point lookups.
// A missing profile surfaces as a tagged not-found error so callers can apply
// their own policy.
type ProfileStore interface {
	// GetProfile retrieves an author profile by user id
	GetProfile(ctx context.Context, userID string) (*feed.AuthorProfile, error)
}

// ReactionTallyStore defines the interface for reaction tally point lookups.
// A missing tally surfaces as a tagged not-found error; for tallies the caller
// treats that as an empty record.
type ReactionTallyStore interface {
	// GetTally retrieves a reaction tally by reaction group id
	GetTally(ctx context.Context, reactionID string) (*feed.ReactionTally, error)
}
