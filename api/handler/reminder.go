package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rotina-app/backend/api/transport"
	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/internal/infrastructure/reminders"
	"github.com/rotina-app/backend/internal/services"
	"github.com/rotina-app/backend/pkg/httpcontext"
)

type ReminderHandler struct {
	baseHandler
	dispatcher *services.ReminderDispatcher
}

func NewReminderHandler(dispatcher *services.ReminderDispatcher, adapter *httpcontext.Adapter, logger *zap.Logger) *ReminderHandler {
	return &ReminderHandler{
		baseHandler: newBaseHandler(adapter, logger),
		dispatcher:  dispatcher,
	}
}

// @Summary Schedule a local reminder
// @Tags reminders
// @Router /api/v1/lembretes [post]
func (h *ReminderHandler) Schedule(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	var req transport.ReminderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Titulo == "" || req.FireAt == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	fireAt, err := time.Parse(time.RFC3339, req.FireAt)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "fire_at must be RFC3339", nil))
		return
	}

	reminder := reminders.Reminder{
		UserID:     userID,
		ActivityID: req.AtividadeID,
		Title:      req.Titulo,
		Body:       req.Corpo,
		FireAt:     fireAt,
	}
	if err := h.dispatcher.Schedule(&reminder); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, reminder)
}
