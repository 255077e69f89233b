package contentnorm

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skincare-client/internal/shared/server/respond"
)

const maxTranslateLen = 4096

// Handler exposes the translator over HTTP.
type Handler struct {
	Tr *Translator
}

// NewHandler constructs a Handler.
func NewHandler(tr *Translator) *Handler {
	return &Handler{Tr: tr}
}

type translateRequest struct {
	Text string `json:"text"`
	Kind string `json:"kind"`
}

// RegisterRoutes attaches the translate route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/translate", h.translate)
}

func (h *Handler) translate(c *gin.Context) {
	var req translateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	if len(req.Text) > maxTranslateLen {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "text too long", []map[string]string{
			{"field": "text", "issue": "too_long"},
		})
		return
	}

	var out string
	switch strings.ToLower(strings.TrimSpace(req.Kind)) {
	case "", "auto":
		out = h.Tr.Translate(req.Text)
	case "step":
		out = h.Tr.StepName(req.Text)
	case "instructions":
		out = h.Tr.Instructions(req.Text)
	case "product":
		out = h.Tr.ProductName(req.Text)
	default:
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unknown kind", []map[string]string{
			{"field": "kind", "issue": "must be one of auto, step, instructions, product"},
		})
		return
	}
	respond.OK(c, gin.H{"text": out, "active": h.Tr.Active()})
}
