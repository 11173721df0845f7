package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/rotina-app/backend/domain"
	"github.com/rotina-app/backend/internal/services/feed"
	"github.com/rotina-app/backend/pkg/httpcontext"
)

const streamKeepAlive = 25 * time.Second

// StreamHandler exposes the live activity feed over server-sent events.
// Each event carries the user's full activity sequence, newest first.
type StreamHandler struct {
	baseHandler
	hub *feed.Hub
}

func NewStreamHandler(hub *feed.Hub, adapter *httpcontext.Adapter, logger *zap.Logger) *StreamHandler {
	return &StreamHandler{
		baseHandler: newBaseHandler(adapter, logger),
		hub:         hub,
	}
}

// @Summary Stream live activity snapshots
// @Tags activities
// @Router /api/v1/atividades/stream [get]
func (h *StreamHandler) Stream(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	todayOnly := string(ctx.QueryArgs().Peek("view")) == "today"

	ctx.Response.Header.SetContentType("text/event-stream")
	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Connection", "keep-alive")

	updates, cancel := h.hub.Subscribe(userID)

	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()

		cell := &feed.Cell{}
		keepAlive := time.NewTicker(streamKeepAlive)
		defer keepAlive.Stop()

		for {
			select {
			case snapshot, ok := <-updates:
				if !ok {
					return
				}
				cell.Set(snapshot)

				view := cell.Latest()
				if todayOnly {
					view = cell.Today(time.Now())
				}
				if err := writeEvent(w, view); err != nil {
					return
				}

			case <-keepAlive.C:
				if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	})
}

func writeEvent(w *bufio.Writer, activities []domain.Activity) error {
	payload, err := json.Marshal(activities)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "data: %s\n\n", payload); err != nil {
		return err
	}
	return w.Flush()
}
