package handlers

import (
	"context"
	"fmt"
	"time"

	"wordless-backend/application/ports"
	"wordless-backend/application/queries"
	"wordless-backend/domain/feed"
	apperrors "wordless-backend/pkg/errors"
	"wordless-backend/pkg/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetFeedHandler is the feed aggregator: one ledger page query followed by a
// concurrent per-row enrichment fan-out, joined before assembly. A page is
// all-or-nothing; no partial page is ever returned.
type GetFeedHandler struct {
	ledger       ports.EmoteLedger
	profiles     ports.ProfileStore
	tallies      ports.ReactionTallyStore
	storeTimeout time.Duration
	tracer       *observability.Tracer
	logger       *zap.Logger
}

// NewGetFeedHandler creates a new feed query handler
func NewGetFeedHandler(
	ledger ports.EmoteLedger,
	profiles ports.ProfileStore,
	tallies ports.ReactionTallyStore,
	storeTimeout time.Duration,
	tracer *observability.Tracer,
	logger *zap.Logger,
) *GetFeedHandler {
	return &GetFeedHandler{
		ledger:       ledger,
		profiles:     profiles,
		tallies:      tallies,
		storeTimeout: storeTimeout,
		tracer:       tracer,
		logger:       logger,
	}
}

// Handle executes the feed query
func (h *GetFeedHandler) Handle(ctx context.Context, query queries.GetFeedQuery) (*queries.GetFeedResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	filter := ports.FeedFilter{AuthorID: query.AuthorID}
	page := ports.FeedPagination{PageSize: query.PageSize, CursorSeq: query.CursorSeq}

	var rows []feed.EmoteRecord
	err := h.tracer.TraceFunction(ctx, "ledger.FetchPage", func(ctx context.Context) error {
		ledgerCtx, cancel := context.WithTimeout(ctx, h.storeTimeout)
		defer cancel()

		var fetchErr error
		rows, fetchErr = h.ledger.FetchPage(ledgerCtx, filter, page)
		return fetchErr
	})
	if err != nil {
		h.logger.Error("Failed to fetch ledger page",
			zap.String("authorID", query.AuthorID),
			zap.Int("pageSize", query.PageSize),
			zap.Error(err),
		)
		return nil, err
	}

	if len(rows) == 0 {
		return &queries.GetFeedResult{Emotes: []feed.EmoteView{}}, nil
	}

	profiles, tallies, err := h.enrich(ctx, rows)
	if err != nil {
		h.logger.Error("Feed enrichment failed",
			zap.Int("rowCount", len(rows)),
			zap.Error(err),
		)
		return nil, err
	}

	// Assembly preserves the ledger's newest-first row order.
	views := make([]feed.EmoteView, len(rows))
	for i, row := range rows {
		views[i] = feed.NewEmoteView(row, *profiles[i], tallies[i])
	}

	return &queries.GetFeedResult{Emotes: views}, nil
}

// enrich issues the author-profile and reaction-tally lookups for every row
// concurrently and waits for all of them. The first fatal lookup cancels the
// rest of the fan-out.
func (h *GetFeedHandler) enrich(ctx context.Context, rows []feed.EmoteRecord) ([]*feed.AuthorProfile, []*feed.ReactionTally, error) {
	profiles := make([]*feed.AuthorProfile, len(rows))
	tallies := make([]*feed.ReactionTally, len(rows))

	err := h.tracer.TraceFunction(ctx, "enrichment.FanOut", func(ctx context.Context) error {
		g, gctx := errgroup.WithContext(ctx)

		for i, row := range rows {
			i, row := i, row

			g.Go(func() error {
				lookupCtx, cancel := context.WithTimeout(gctx, h.storeTimeout)
				defer cancel()

				profile, err := h.profiles.GetProfile(lookupCtx, row.UserID)
				if err != nil {
					if apperrors.IsNotFound(err) {
						// The page cannot be rendered without an author name.
						return apperrors.NewAuthorMissingError(row.UserID)
					}
					return err
				}

				profiles[i] = profile
				return nil
			})

			g.Go(func() error {
				lookupCtx, cancel := context.WithTimeout(gctx, h.storeTimeout)
				defer cancel()

				tally, err := h.tallies.GetTally(lookupCtx, row.EmoteReactionID)
				if err != nil {
					if apperrors.IsNotFound(err) {
						// No reactions yet; an absent tally is a zero tally.
						return nil
					}
					return err
				}

				tallies[i] = tally
				return nil
			})
		}

		return g.Wait()
	})
	if err != nil {
		return nil, nil, err
	}

	// A nil profile here means the fan-out raced a cancellation; surface it as
	// an internal error rather than dereferencing.
	for i := range profiles {
		if profiles[i] == nil {
			return nil, nil, apperrors.NewInternalError(fmt.Sprintf("enrichment incomplete for row %d", i))
		}
	}

	return profiles, tallies, nil
}
