package handlers

import (
	"context"
	"sync"
	"testing"
	"time"

	"wordless-backend/application/ports"
	"wordless-backend/application/queries"
	"wordless-backend/domain/feed"
	apperrors "wordless-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeLedger struct {
	rows  []feed.EmoteRecord
	err   error
	calls int
}

func (f *fakeLedger) FetchPage(ctx context.Context, filter ports.FeedFilter, page ports.FeedPagination) ([]feed.EmoteRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*feed.AuthorProfile
	err      error
	calls    int
}

func (f *fakeProfileStore) GetProfile(ctx context.Context, userID string) (*feed.AuthorProfile, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("author profile")
	}
	return profile, nil
}

type fakeTallyStore struct {
	mu      sync.Mutex
	tallies map[string]*feed.ReactionTally
	err     error
	calls   int
}

func (f *fakeTallyStore) GetTally(ctx context.Context, reactionID string) (*feed.ReactionTally, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	tally, ok := f.tallies[reactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("reaction tally")
	}
	return tally, nil
}

func newTestHandler(ledger *fakeLedger, profiles *fakeProfileStore, tallies *fakeTallyStore) *GetFeedHandler {
	return NewGetFeedHandler(ledger, profiles, tallies, time.Second, nil, zap.NewNop())
}

func testRows() []feed.EmoteRecord {
	t1 := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Minute)

	return []feed.EmoteRecord{
		{
			SequenceNumber:  1,
			EmoteID:         "emote-1",
			UserID:          "user-b",
			EmoteDatetime:   t2,
			EmoteEmoji1:     ":wave:",
			EmoteReactionID: "reaction-1",
		},
		{
			SequenceNumber:  0,
			EmoteID:         "emote-0",
			UserID:          "user-a",
			EmoteDatetime:   t1,
			EmoteEmoji1:     ":sun:",
			EmoteReactionID: "reaction-0",
		},
	}
}

func testProfiles() map[string]*feed.AuthorProfile {
	return map[string]*feed.AuthorProfile{
		"user-a": {UserID: "user-a", UserName: "Aoi", UserAvatarURL: "https://cdn.example.com/aoi.png"},
		"user-b": {UserID: "user-b", UserName: "Ben", UserAvatarURL: "https://cdn.example.com/ben.png"},
	}
}

func TestGetFeedHandlerAssemblesPage(t *testing.T) {
	ledger := &fakeLedger{rows: testRows()}
	profiles := &fakeProfileStore{profiles: testProfiles()}
	tallies := &fakeTallyStore{tallies: map[string]*feed.ReactionTally{
		// Only the newest emote has a tally; the other has none yet.
		"reaction-1": {
			EmoteReactionID: "reaction-1",
			Emojis: []feed.ReactionEmoji{
				{EmojiID: ":smile:", NumberOfReactions: 2, ReactedUserIDs: []string{"u1", "u2"}},
			},
		},
	}}

	handler := newTestHandler(ledger, profiles, tallies)
	result, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 10})

	require.NoError(t, err)
	require.Len(t, result.Emotes, 2)

	// Ledger row order is preserved: newest first.
	assert.Equal(t, int64(1), result.Emotes[0].SequenceNumber)
	assert.Equal(t, int64(0), result.Emotes[1].SequenceNumber)

	assert.Equal(t, "Ben", result.Emotes[0].UserName)
	assert.Equal(t, 2, result.Emotes[0].TotalNumberOfReactions)

	assert.Equal(t, "Aoi", result.Emotes[1].UserName)
	assert.Equal(t, 0, result.Emotes[1].TotalNumberOfReactions)
	assert.Empty(t, result.Emotes[1].EmoteReactionEmojis)

	// Two enrichment lookups per row.
	assert.Equal(t, 2, profiles.calls)
	assert.Equal(t, 2, tallies.calls)
}

func TestGetFeedHandlerEmptyPage(t *testing.T) {
	handler := newTestHandler(&fakeLedger{}, &fakeProfileStore{}, &fakeTallyStore{})

	result, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 10})

	require.NoError(t, err)
	assert.NotNil(t, result.Emotes)
	assert.Empty(t, result.Emotes)
}

func TestGetFeedHandlerValidationSkipsStores(t *testing.T) {
	ledger := &fakeLedger{rows: testRows()}
	handler := newTestHandler(ledger, &fakeProfileStore{}, &fakeTallyStore{})

	_, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 0})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 0, ledger.calls)
}

func TestGetFeedHandlerLedgerFailureAbortsBeforeEnrichment(t *testing.T) {
	ledger := &fakeLedger{err: apperrors.NewLedgerUnavailableError(assert.AnError)}
	profiles := &fakeProfileStore{profiles: testProfiles()}
	tallies := &fakeTallyStore{}
	handler := newTestHandler(ledger, profiles, tallies)

	_, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 10})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeLedgerUnavailable))
	assert.Equal(t, 0, profiles.calls)
	assert.Equal(t, 0, tallies.calls)
}

func TestGetFeedHandlerAuthorMissingFailsWholePage(t *testing.T) {
	profiles := testProfiles()
	delete(profiles, "user-a")

	handler := newTestHandler(
		&fakeLedger{rows: testRows()},
		&fakeProfileStore{profiles: profiles},
		&fakeTallyStore{},
	)

	result, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 10})

	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAuthorMissing))
}

func TestGetFeedHandlerAuthorStoreUnavailable(t *testing.T) {
	handler := newTestHandler(
		&fakeLedger{rows: testRows()},
		&fakeProfileStore{err: apperrors.NewAuthorUnavailableError(assert.AnError)},
		&fakeTallyStore{},
	)

	_, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 10})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeAuthorUnavailable))
}

func TestGetFeedHandlerReactionStoreUnavailable(t *testing.T) {
	handler := newTestHandler(
		&fakeLedger{rows: testRows()},
		&fakeProfileStore{profiles: testProfiles()},
		&fakeTallyStore{err: apperrors.NewReactionUnavailableError(assert.AnError)},
	)

	_, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 10})

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeReactionUnavailable))
}

func TestGetFeedHandlerMissingTallyIsNotAnError(t *testing.T) {
	handler := newTestHandler(
		&fakeLedger{rows: testRows()},
		&fakeProfileStore{profiles: testProfiles()},
		&fakeTallyStore{}, // no tally records at all
	)

	result, err := handler.Handle(context.Background(), queries.GetFeedQuery{PageSize: 10})

	require.NoError(t, err)
	for _, emote := range result.Emotes {
		assert.Equal(t, 0, emote.TotalNumberOfReactions)
	}
}
