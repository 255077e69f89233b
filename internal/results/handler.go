package results

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skincare-client/internal/analyses"
	"skincare-client/internal/poller"
	"skincare-client/internal/shared/server/respond"
)

const watchBuffer = 32

// Handler exposes Service over HTTP.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches result routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/analyses/latest", h.getLatest)
	rg.GET("/analyses/:id", h.getResult)
	rg.GET("/analyses/:id/watch", h.watch)
}

func (h *Handler) getResult(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("id"))
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysis id is required", nil)
		return
	}
	c.Set("analysisId", analysisID)

	view, err := h.Svc.Result(c.Request.Context(), analysisID)
	if err != nil {
		h.writeError(c, view, err)
		return
	}
	respond.OK(c, view)
}

func (h *Handler) getLatest(c *gin.Context) {
	view, err := h.Svc.Latest(c.Request.Context())
	if view == nil && err == nil {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "no analyses yet", nil)
		return
	}
	if err != nil {
		var v View
		if view != nil {
			v = *view
		}
		h.writeError(c, v, err)
		return
	}
	c.Set("analysisId", view.AnalysisID)
	respond.OK(c, view)
}

func (h *Handler) writeError(c *gin.Context, view View, err error) {
	var statusErr *analyses.StatusError
	switch {
	case errors.Is(err, ErrNotReady):
		respond.Error(c, http.StatusConflict, respond.CodeNotReady, "analysis is not completed", gin.H{
			"analysisId": view.AnalysisID,
			"status":     view.Status,
		})
	case errors.Is(err, analyses.ErrNotFound):
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "analysis not found", nil)
	case errors.As(err, &statusErr):
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstream, "analysis backend error", gin.H{
			"upstreamStatus": statusErr.Code,
		})
	default:
		respond.Error(c, http.StatusBadGateway, respond.CodeUpstream, "failed to reach analysis backend", nil)
	}
}

// watch streams poll snapshots as server-sent events. A "status" event is
// sent per fetch; a completed analysis is followed by one "result" event.
// The session stops when the client goes away.
func (h *Handler) watch(c *gin.Context) {
	analysisID := strings.TrimSpace(c.Param("id"))
	if analysisID == "" {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "analysis id is required", nil)
		return
	}
	c.Set("analysisId", analysisID)

	ctx := c.Request.Context()
	events := make(chan poller.Snapshot, watchBuffer)
	session := h.Svc.Watch(ctx, analysisID, poller.Callbacks{
		OnStatus: func(snap poller.Snapshot) {
			select {
			case events <- snap:
			case <-ctx.Done():
			}
		},
	})
	defer session.Stop()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	var last poller.Snapshot
	c.Stream(func(w io.Writer) bool {
		var snap poller.Snapshot
		select {
		case <-ctx.Done():
			return false
		case snap = <-events:
		case <-session.Done():
			select {
			case snap = <-events:
			default:
				return false
			}
		}
		last = snap
		c.SSEvent("status", snap)
		if !snap.State.Settled() {
			return true
		}
		if snap.State == poller.StateCompleted {
			view, err := h.Svc.Result(ctx, analysisID)
			if err == nil {
				c.SSEvent("result", view)
			}
		}
		return false
	})
	c.Set("pollState", last.State.String())
}
