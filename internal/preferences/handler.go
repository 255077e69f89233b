package preferences

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"skincare-client/internal/shared/server/respond"
)

// Handler exposes the display language preference.
type Handler struct {
	Lang *Language
}

// NewHandler constructs a Handler.
func NewHandler(lang *Language) *Handler {
	return &Handler{Lang: lang}
}

type languageRequest struct {
	Language string `json:"language"`
}

// RegisterRoutes attaches preference routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/preferences/language", h.getLanguage)
	rg.PUT("/preferences/language", h.putLanguage)
}

func (h *Handler) getLanguage(c *gin.Context) {
	respond.OK(c, gin.H{
		"language":  h.Lang.Locale().String(),
		"supported": supportedNames(),
	})
}

func (h *Handler) putLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "invalid request body", nil)
		return
	}
	tag, err := h.Lang.Set(c.Request.Context(), req.Language)
	if err != nil {
		if errors.Is(err, ErrUnsupportedLanguage) {
			respond.Error(c, http.StatusBadRequest, respond.CodeValidation, "unsupported language", []map[string]string{
				{"field": "language", "issue": "unsupported"},
			})
			return
		}
		respond.Error(c, http.StatusInternalServerError, respond.CodeInternal, "failed to save language", nil)
		return
	}
	respond.OK(c, gin.H{"language": tag.String()})
}

func supportedNames() []string {
	out := make([]string, len(Supported))
	for i, tag := range Supported {
		out[i] = tag.String()
	}
	return out
}
