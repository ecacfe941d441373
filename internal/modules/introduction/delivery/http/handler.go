package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/weavr-net/weavr-server/internal/modules/introduction/dto"
	introduction "github.com/weavr-net/weavr-server/internal/modules/introduction/service"
	"github.com/weavr-net/weavr-server/pkg/response"
	"github.com/weavr-net/weavr-server/pkg/validator"
)

type IntroductionHandler struct {
	service introduction.IntroductionService
}

func NewIntroductionHandler(service introduction.IntroductionService) *IntroductionHandler {
	return &IntroductionHandler{service: service}
}

func (h *IntroductionHandler) CreateIntroduction(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateIntroductionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.CreateIntroduction(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *IntroductionHandler) GetSent(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	intros, err := h.service.GetSent(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": intros})
}

func (h *IntroductionHandler) GetReceived(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	intros, err := h.service.GetReceived(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": intros})
}

func (h *IntroductionHandler) UpdateStatus(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	introID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid uuid format"})
		return
	}

	var req dto.UpdateIntroductionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.UpdateStatus(c.Request.Context(), userID, introID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
