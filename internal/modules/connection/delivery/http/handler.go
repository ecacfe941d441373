package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/weavr-net/weavr-server/internal/modules/connection/dto"
	connection "github.com/weavr-net/weavr-server/internal/modules/connection/service"
	"github.com/weavr-net/weavr-server/pkg/response"
	"github.com/weavr-net/weavr-server/pkg/validator"
)

type ConnectionHandler struct {
	service connection.ConnectionService
}

func NewConnectionHandler(service connection.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{service: service}
}

func (h *ConnectionHandler) Connect(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateConnectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	otherID, err := uuid.Parse(req.ConnectedUserID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	resp, err := h.service.Connect(c.Request.Context(), userID, otherID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ConnectionHandler) GetMyConnections(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp, err := h.service.GetConnections(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ConnectionHandler) Disconnect(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	otherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	if err := h.service.Disconnect(c.Request.Context(), userID, otherID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "connection removed"})
}

// CheckConnectionBetween answers whether two arbitrary users are connected,
// with both users named in the request rather than taken from the session.
func (h *ConnectionHandler) CheckConnectionBetween(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	otherID, err := uuid.Parse(c.Query("other_user_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "other_user_id must be a valid uuid"})
		return
	}

	connected, err := h.service.IsConnected(c.Request.Context(), userID, otherID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": connected})
}

func (h *ConnectionHandler) CheckConnection(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	otherID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	connected, err := h.service.IsConnected(c.Request.Context(), userID, otherID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": connected})
}
