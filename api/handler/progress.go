package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rotina-app/backend/api/transport"
	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/pkg/httpcontext"
	progressUC "github.com/rotina-app/backend/usecase/progress"
)

type ProgressHandler struct {
	baseHandler
	uc *progressUC.UseCase
}

func NewProgressHandler(uc *progressUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ProgressHandler {
	return &ProgressHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Daily progress
// @Tags progress
// @Router /api/v1/progresso/diario [get]
func (h *ProgressHandler) Daily(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	date := time.Now()
	if raw := string(ctx.QueryArgs().Peek("date")); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "date must be YYYY-MM-DD", nil))
			return
		}
		date = parsed
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshot, err := h.uc.Daily(stdCtx, userID, date)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshot)
}

// @Summary Progress over a period
// @Tags progress
// @Router /api/v1/progresso/periodo [get]
func (h *ProgressHandler) Period(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	from, err := time.ParseInLocation("2006-01-02", string(ctx.QueryArgs().Peek("from")), time.Local)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "from must be YYYY-MM-DD", nil))
		return
	}
	to, err := time.ParseInLocation("2006-01-02", string(ctx.QueryArgs().Peek("to")), time.Local)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "to must be YYYY-MM-DD", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	snapshots, err := h.uc.Period(stdCtx, userID, from, to)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, snapshots)
}
