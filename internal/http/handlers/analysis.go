package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pulsecheck-backend/internal/http/response"
	"github.com/yungbote/pulsecheck-backend/internal/platform/logger"
	"github.com/yungbote/pulsecheck-backend/internal/services"
)

const defaultListLimit = 30

type AnalysisHandler struct {
	log             *logger.Logger
	analysisService services.AnalysisService
}

func NewAnalysisHandler(baseLog *logger.Logger, analysisService services.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{
		log:             baseLog.With("handler", "AnalysisHandler"),
		analysisService: analysisService,
	}
}

// POST /api/analyses
func (ah *AnalysisHandler) Create(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	analysis, err := ah.analysisService.Analyze(c.Request.Context(), userID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"analysis": analysis})
}

// GET /api/analyses?limit=N
func (ah *AnalysisHandler) List(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}

	limit := defaultListLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	analyses, err := ah.analysisService.ListRecent(c.Request.Context(), userID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"analyses": analyses})
}

// GET /api/analyses/:id
func (ah *AnalysisHandler) Get(c *gin.Context) {
	userID, ok := requestUserID(c)
	if !ok {
		return
	}
	analysisID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", fmt.Errorf("malformed analysis id"))
		return
	}

	analysis, err := ah.analysisService.GetByID(c.Request.Context(), userID, analysisID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"analysis": analysis})
}
