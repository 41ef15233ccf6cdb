package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"wordless-backend/application/queries"
	querybus "wordless-backend/application/queries/bus"
	"wordless-backend/domain/feed"
	apperrors "wordless-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newFeedHandler wires the handler to a real bus with a canned feed query
// handler, so dispatch and error unwrapping run the same code paths as
// production.
func newFeedHandler(t *testing.T, handle func(ctx context.Context, query queries.GetFeedQuery) (*queries.GetFeedResult, error)) *FeedHandler {
	t.Helper()

	bus := querybus.NewQueryBus()
	err := bus.Register(queries.GetFeedQuery{}, querybus.QueryHandlerFunc(func(ctx context.Context, query querybus.Query) (interface{}, error) {
		return handle(ctx, query.(queries.GetFeedQuery))
	}))
	require.NoError(t, err)

	return NewFeedHandler(bus, zap.NewNop())
}

func getFeed(t *testing.T, handler *FeedHandler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.GetFeed(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestGetFeedWithoutParameters(t *testing.T) {
	handler := newFeedHandler(t, func(ctx context.Context, query queries.GetFeedQuery) (*queries.GetFeedResult, error) {
		t.Fatal("handler must not be reached without parameters")
		return nil, nil
	})

	rec := getFeed(t, handler, "/api/v1/emotes")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMT-01", errorCode(t, rec))
}

func TestGetFeedInvalidParameters(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"non-numeric page size", "/api/v1/emotes?pageSize=abc"},
		{"zero page size", "/api/v1/emotes?pageSize=0"},
		{"negative page size", "/api/v1/emotes?pageSize=-3"},
		{"non-numeric cursor", "/api/v1/emotes?pageSize=10&cursorSeq=abc"},
		{"negative cursor", "/api/v1/emotes?pageSize=10&cursorSeq=-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newFeedHandler(t, func(ctx context.Context, query queries.GetFeedQuery) (*queries.GetFeedResult, error) {
				t.Fatal("handler must not be reached for invalid parameters")
				return nil, nil
			})

			rec := getFeed(t, handler, tt.target)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "EMT-02", errorCode(t, rec))
		})
	}
}

func TestGetFeedSuccess(t *testing.T) {
	var captured queries.GetFeedQuery
	handler := newFeedHandler(t, func(ctx context.Context, query queries.GetFeedQuery) (*queries.GetFeedResult, error) {
		captured = query
		return &queries.GetFeedResult{
			Emotes: []feed.EmoteView{
				{
					SequenceNumber:         7,
					EmoteID:                "e7",
					UserName:               "alice",
					UserID:                 "u1",
					EmoteDatetime:          "2024-05-01T12:00:00Z",
					EmoteReactionID:        "r7",
					EmoteEmojis:            []feed.EmojiSlot{{EmojiID: "smile"}, {}, {}, {}},
					UserAvatarURL:          "https://cdn.example.com/alice.png",
					EmoteReactionEmojis:    []feed.ReactionEmoji{},
					TotalNumberOfReactions: 0,
				},
			},
		}, nil
	})

	rec := getFeed(t, handler, "/api/v1/emotes?userId=u1&pageSize=10&cursorSeq=12")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", captured.AuthorID)
	assert.Equal(t, 10, captured.PageSize)
	require.NotNil(t, captured.CursorSeq)
	assert.Equal(t, int64(12), *captured.CursorSeq)

	var body struct {
		Emotes []map[string]interface{} `json:"emotes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Emotes, 1)
	assert.Equal(t, "e7", body.Emotes[0]["emoteId"])
	assert.Equal(t, "alice", body.Emotes[0]["userName"])
	assert.Equal(t, float64(0), body.Emotes[0]["totalNumberOfReactions"])
}

func TestGetFeedErrorCodeMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"ledger unavailable", apperrors.NewLedgerUnavailableError(errors.New("dial tcp: timeout")), http.StatusInternalServerError, "EMT-03"},
		{"author missing", apperrors.NewAuthorMissingError("u9"), http.StatusInternalServerError, "EMT-04"},
		{"author store unavailable", apperrors.NewAuthorUnavailableError(errors.New("throttled")), http.StatusInternalServerError, "EMT-04"},
		{"reaction store unavailable", apperrors.NewReactionUnavailableError(errors.New("throttled")), http.StatusInternalServerError, "EMT-05"},
		{"untagged error", errors.New("boom"), http.StatusInternalServerError, "EMT-99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newFeedHandler(t, func(ctx context.Context, query queries.GetFeedQuery) (*queries.GetFeedResult, error) {
				return nil, tt.err
			})

			rec := getFeed(t, handler, "/api/v1/emotes?pageSize=10")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}
}
