package mysql

import (
	"context"

	"wordless-backend/application/ports"
	"wordless-backend/domain/feed"
	apperrors "wordless-backend/pkg/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EmoteLedger implements the EmoteLedger port against the relational emote
// table. It composes predicates mechanically; pagination and deletion policy
// live in the query construction, not in application code.
type EmoteLedger struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewEmoteLedger creates a new ledger adapter over an injected connection pool
func NewEmoteLedger(db *gorm.DB, logger *zap.Logger) *EmoteLedger {
	return &EmoteLedger{
		db:     db,
		logger: logger,
	}
}

// FetchPage returns up to PageSize non-deleted rows, newest-first by emote
// timestamp. When a cursor is supplied the page is anchored to the cursor
// row's timestamp through a correlated subquery, so concurrent inserts cannot
// shift the window.
//
// The cursor bound is inclusive (<=) on the global feed and exclusive (<)
// when scoped to one author. Callers page the two feeds differently and the
// two bounds are kept distinct on purpose.
func (l *EmoteLedger) FetchPage(ctx context.Context, filter ports.FeedFilter, page ports.FeedPagination) ([]feed.EmoteRecord, error) {
	tx := l.db.WithContext(ctx).Where("is_deleted = ?", false)

	if filter.AuthorID != "" {
		tx = tx.Where("user_id = ?", filter.AuthorID)
	}

	if page.CursorSeq != nil {
		cursorTimestamp := l.db.WithContext(ctx).
			Model(&feed.EmoteRecord{}).
			Select("emote_datetime").
			Where("sequenceNumber = ?", *page.CursorSeq).
			Order("emote_datetime DESC").
			Limit(1)

		if filter.AuthorID != "" {
			tx = tx.Where("emote_datetime < (?)", cursorTimestamp)
		} else {
			tx = tx.Where("emote_datetime <= (?)", cursorTimestamp)
		}
	}

	var rows []feed.EmoteRecord
	err := tx.Order("emote_datetime DESC").Limit(page.PageSize).Find(&rows).Error
	if err != nil {
		l.logger.Error("Ledger page query failed",
			zap.String("authorID", filter.AuthorID),
			zap.Int("pageSize", page.PageSize),
			zap.Error(err),
		)
		return nil, apperrors.NewLedgerUnavailableError(err)
	}

	return rows, nil
}
