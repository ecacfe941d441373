package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/weavr-net/weavr-server/internal/modules/network/dto"
	network "github.com/weavr-net/weavr-server/internal/modules/network/service"
	"github.com/weavr-net/weavr-server/pkg/response"
)

type NetworkHandler struct {
	service network.NetworkService
}

func NewNetworkHandler(service network.NetworkService) *NetworkHandler {
	return &NetworkHandler{service: service}
}

func (h *NetworkHandler) GetProximity(c *gin.Context) {
	userID, otherID, ok := parseUserPair(c)
	if !ok {
		return
	}

	proximity, err := h.service.Proximity(c.Request.Context(), userID, otherID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ProximityResponse{
		UserID:      userID,
		OtherUserID: otherID,
		Proximity:   proximity,
	})
}

func (h *NetworkHandler) GetConnectionStrength(c *gin.Context) {
	userID, otherID, ok := parseUserPair(c)
	if !ok {
		return
	}

	strength, err := h.service.ConnectionStrength(c.Request.Context(), userID, otherID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StrengthResponse{
		UserID:      userID,
		OtherUserID: otherID,
		Strength:    strength,
	})
}

func (h *NetworkHandler) GetSuggestions(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	var query dto.SuggestionsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := h.service.SuggestConnections(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SuggestionsResponse{Data: suggestions})
}

func parseUserPair(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return uuid.Nil, uuid.Nil, false
	}

	otherID, err := uuid.Parse(c.Query("other_user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "other_user_id must be a valid uuid"})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, otherID, true
}
