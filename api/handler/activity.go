package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rotina-app/backend/api/transport"
	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/pkg/httpcontext"
	activityUC "github.com/rotina-app/backend/usecase/activity"
)

type ActivityHandler struct {
	baseHandler
	uc *activityUC.UseCase
}

func NewActivityHandler(uc *activityUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *ActivityHandler {
	return &ActivityHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List activities
// @Tags activities
// @Router /api/v1/atividades [get]
func (h *ActivityHandler) List(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if raw := string(ctx.QueryArgs().Peek("date")); raw != "" {
		date, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "date must be YYYY-MM-DD", nil))
			return
		}
		activities, err := h.uc.ListActivitiesOnDate(stdCtx, userID, date)
		if err != nil {
			h.respondError(ctx, err)
			return
		}
		h.respondSuccess(ctx, http.StatusOK, activities)
		return
	}

	activities, err := h.uc.ListActivities(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activities)
}

// @Summary Get activity
// @Tags activities
// @Router /api/v1/atividades/{id} [get]
func (h *ActivityHandler) Get(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing activity id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	activity, err := h.uc.GetActivity(stdCtx, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if activity.UserID != userID {
		h.respondError(ctx, domain.ErrActivityNotFound)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, activity)
}

// @Summary Create activity
// @Tags activities
// @Router /api/v1/atividades [post]
func (h *ActivityHandler) Create(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	activity, ok := h.parseActivity(ctx, userID)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateActivity(stdCtx, activity)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, created)
}

// @Summary Update activity
// @Tags activities
// @Router /api/v1/atividades/{id} [put]
func (h *ActivityHandler) Update(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	activity, ok := h.parseActivity(ctx, userID)
	if !ok {
		return
	}

	if activity.ID == "" {
		if id, ok := ctx.UserValue("id").(string); ok {
			activity.ID = id
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateActivity(stdCtx, activity)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Toggle activity completion
// @Tags activities
// @Router /api/v1/atividades/{id}/conclusao [patch]
func (h *ActivityHandler) ToggleCompletion(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing activity id", nil))
		return
	}

	var req transport.ToggleCompletionRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.ToggleCompletion(stdCtx, userID, id, req.Concluida)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, updated)
}

// @Summary Delete activity
// @Tags activities
// @Router /api/v1/atividades/{id} [delete]
func (h *ActivityHandler) Delete(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing activity id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteActivity(stdCtx, userID, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusNoContent, nil)
}

func (h *ActivityHandler) parseActivity(ctx *fasthttp.RequestCtx, userID string) (*domain.Activity, bool) {
	var req transport.ActivityRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "invalid payload", nil))
		return nil, false
	}

	scheduled := time.Now()
	if req.Data != "" {
		parsed, err := time.Parse(time.RFC3339, req.Data)
		if err != nil {
			h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "data must be RFC3339", nil))
			return nil, false
		}
		scheduled = parsed
	}

	activity := &domain.Activity{
		ID:          req.ID,
		UserID:      userID,
		Title:       req.Titulo,
		Description: req.Descricao,
		ScheduledAt: scheduled,
		Completed:   req.Concluida,
		Category:    domain.Category(req.Categoria),
		Priority:    domain.Priority(req.Prioridade),
	}

	if activity.Category == "" {
		activity.Category = domain.CategoryPersonal
	}
	if activity.Priority == "" {
		activity.Priority = domain.PriorityMedium
	}

	return activity, true
}
