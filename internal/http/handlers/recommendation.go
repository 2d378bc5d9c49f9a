package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pulsecheck-backend/internal/http/response"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/services"
)

type RecommendationHandler struct {
	log        *logger.Logger
	recService services.RecommendationService
}

func NewRecommendationHandler(baseLog *logger.Logger, recService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:        baseLog.With("handler", "RecommendationHandler"),
		recService: recService,
	}
}

// POST /api/analyses/:id/recommendations
func (rh *RecommendationHandler) Regenerate(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("malformed analysis id"))
		return
	}

	recs, err := rh.recService.Generate(c.Request.Context(), userID, analysisID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"recommendations": recs})
}

// GET /api/analyses/:id/recommendations
func (rh *RecommendationHandler) ListByAnalysis(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("malformed analysis id"))
		return
	}

	recs, err := rh.recService.ListByAnalysis(c.Request.Context(), userID, analysisID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendations": recs})
}

// PATCH /api/recommendations/:id/status
// body: { "status": "applied" | "skipped" }
func (rh *RecommendationHandler) UpdateStatus(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	recID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("malformed recommendation id"))
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	rec, err := rh.recService.UpdateStatus(c.Request.Context(), userID, recID, req.Status)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"recommendation": rec})
}
