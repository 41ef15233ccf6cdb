package handlers

import (
	"net/http"
	"strconv"

	"wordless-backend/application/queries"
	querybus "wordless-backend/application/queries/bus"
	"wordless-backend/pkg/common"
	apperrors "wordless-backend/pkg/errors"
	"wordless-backend/pkg/utils"

	"go.uber.org/zap"
)

// Stable client-facing error codes for the feed endpoint. Internal detail is
// logged server-side and never echoed.
const (
	codeMissingParams      = "EMT-01"
	codeInvalidParams      = "EMT-02"
	codeLedgerFailure      = "EMT-03"
	codeAuthorEnrichment   = "EMT-04"
	codeReactionEnrichment = "EMT-05"
	codeInternal           = "EMT-99"
)

// FeedHandler handles feed retrieval HTTP requests
type FeedHandler struct {
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *FeedHandler {
	return &FeedHandler{
		queryBus: queryBus,
		logger:   logger,
	}
}

// feedRequest represents the parsed query parameters of a feed request
type feedRequest struct {
	UserID    string `validate:"omitempty,max=64"`
	PageSize  int    `validate:"required,gt=0"`
	CursorSeq *int64 `validate:"omitempty"`
}

// GetFeed handles GET /emotes
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if len(params) == 0 {
		common.RespondErrorCode(w, http.StatusBadRequest, codeMissingParams)
		return
	}

	req, ok := h.parseRequest(w, params.Get("userId"), params.Get("pageSize"), params.Get("cursorSeq"))
	if !ok {
		return
	}

	query := queries.GetFeedQuery{
		AuthorID:  req.UserID,
		PageSize:  req.PageSize,
		CursorSeq: req.CursorSeq,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.respondQueryError(w, r, err)
		return
	}

	page, ok := result.(*queries.GetFeedResult)
	if !ok {
		h.logger.Error("Unexpected feed query result type")
		common.RespondErrorCode(w, http.StatusInternalServerError, codeInternal)
		return
	}

	common.RespondJSON(w, http.StatusOK, page)
}

// parseRequest parses and validates the raw query parameters. It writes the
// validation response itself and reports success through the second return.
func (h *FeedHandler) parseRequest(w http.ResponseWriter, userID, pageSizeRaw, cursorSeqRaw string) (feedRequest, bool) {
	req := feedRequest{UserID: userID}

	pageSize, err := strconv.Atoi(pageSizeRaw)
	if err != nil {
		common.RespondErrorCode(w, http.StatusBadRequest, codeInvalidParams)
		return req, false
	}
	req.PageSize = pageSize

	if cursorSeqRaw != "" {
		cursorSeq, err := strconv.ParseInt(cursorSeqRaw, 10, 64)
		if err != nil || cursorSeq < 0 {
			common.RespondErrorCode(w, http.StatusBadRequest, codeInvalidParams)
			return req, false
		}
		req.CursorSeq = &cursorSeq
	}

	if err := utils.ValidateStruct(req); err != nil {
		common.RespondErrorCode(w, http.StatusBadRequest, codeInvalidParams)
		return req, false
	}

	return req, true
}

// respondQueryError maps aggregator error kinds onto status codes and stable
// client-facing codes. Kinds are switched on, never string-matched.
func (h *FeedHandler) respondQueryError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperrors.GetAppError(err)
	if appErr == nil {
		h.logger.Error("Feed query failed", zap.Error(err))
		common.RespondErrorCode(w, http.StatusInternalServerError, codeInternal)
		return
	}

	h.logger.Error("Feed query failed",
		zap.String("errorType", string(appErr.Type)),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	switch appErr.Type {
	case apperrors.ErrorTypeValidation:
		common.RespondErrorCode(w, http.StatusBadRequest, codeInvalidParams)
	case apperrors.ErrorTypeLedgerUnavailable:
		common.RespondErrorCode(w, http.StatusInternalServerError, codeLedgerFailure)
	case apperrors.ErrorTypeAuthorMissing, apperrors.ErrorTypeAuthorUnavailable:
		common.RespondErrorCode(w, http.StatusInternalServerError, codeAuthorEnrichment)
	case apperrors.ErrorTypeReactionUnavailable:
		common.RespondErrorCode(w, http.StatusInternalServerError, codeReactionEnrichment)
	default:
		common.RespondErrorCode(w, http.StatusInternalServerError, codeInternal)
	}
}
