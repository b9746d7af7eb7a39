package handler

import (
	"net/http"
	"strconv"

	"ccc_backoffice/internal/finance/repository"
	"ccc_backoffice/internal/finance/service"
	"ccc_backoffice/platform/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const msgInvalidRequest = "invalid request"

// Handler handles HTTP requests for the financial ledger.
type Handler struct {
	svc *service.Service
}

// New creates a new finance handler.
func New(svc *service.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes registers the ledger routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
}

func (h *Handler) List(c *gin.Context) {
	params := repository.ListParams{
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "pageSize", 25),
	}
	if raw := c.Query("jobId"); raw != "" {
		jobID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		params.JobID = &jobID
	}
	if raw := c.Query("partnerId"); raw != "" {
		partnerID, err := uuid.Parse(raw)
		if err != nil {
			httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		params.PartnerID = &partnerID
	}
	if sourceType := c.Query("sourceType"); sourceType != "" {
		params.SourceType = &sourceType
	}

	result, err := h.svc.List(c.Request.Context(), params)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, gin.H{"transactions": result})
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
