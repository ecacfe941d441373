package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/weavr-net/weavr-server/internal/modules/activity/dto"
	activity "github.com/weavr-net/weavr-server/internal/modules/activity/service"
	"github.com/weavr-net/weavr-server/pkg/response"
	"github.com/weavr-net/weavr-server/pkg/validator"
)

type ActivityHandler struct {
	service activity.ActivityService
}

func NewActivityHandler(service activity.ActivityService) *ActivityHandler {
	return &ActivityHandler{service: service}
}

func (h *ActivityHandler) GetStreak(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	streak, err := h.service.CurrentStreak(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StreakResponse{UserID: userID, Streak: streak})
}

func (h *ActivityHandler) RecordActivity(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	streak, err := h.service.RecordToday(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StreakResponse{UserID: userID, Streak: streak})
}

func (h *ActivityHandler) AwardPoints(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.AwardPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.AwardPoints(c.Request.Context(), userID, req.ActionType, req.Points); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "points awarded"})
}

// GetStreakFor returns the streak of the user named in the path.
func (h *ActivityHandler) GetStreakFor(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	streak, err := h.service.CurrentStreak(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StreakResponse{UserID: userID, Streak: streak})
}

// RecordStreakFor marks today active for the user named in the path.
func (h *ActivityHandler) RecordStreakFor(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	streak, err := h.service.RecordToday(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StreakResponse{UserID: userID, Streak: streak})
}

// AwardPointsFor appends a point ledger row for the user named in the path,
// with the action type in the path and the amount in the body.
func (h *ActivityHandler) AwardPointsFor(c *gin.Context) {
	userID, ok := parseUserID(c)
	if !ok {
		return
	}

	var body dto.AwardPointsBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.service.AwardPoints(c.Request.Context(), userID, c.Param("action"), body.Points); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "points awarded"})
}

func (h *ActivityHandler) GetPointsTotal(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	total, err := h.service.PointsTotal(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PointsTotalResponse{UserID: userID, Total: total})
}

func (h *ActivityHandler) GetPointsHistory(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	history, err := h.service.PointsHistory(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": history})
}

func parseUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return uuid.Nil, false
	}
	return userID, true
}
