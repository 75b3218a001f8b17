package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"edi-orders/internal/edifact"
	"edi-orders/internal/repository/cache"
	"edi-orders/internal/service"
)

// CreateInterchange accepts a raw order document, generates the EDIFACT
// interchange and returns the stored record. Validation failures come
// back as 422 with the generation error code and details.
func (h *Handler) CreateInterchange(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ic, err := h.svc.GenerateInterchange(raw)
	if err != nil {
		var ge *edifact.GenerationError
		if errors.As(err, &ge) {
			status := http.StatusUnprocessableEntity
			if !edifact.IsValidation(err) {
				status = http.StatusInternalServerError
			}
			newGenerationErrorResponse(c, status, ge.Code, ge.Message, ge.Details)
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, ic)
}

// GetInterchangeByRef serves a generated interchange from the cache.
func (h *Handler) GetInterchangeByRef(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" {
		newErrorResponse(c, http.StatusBadRequest, "invalid ref")
		return
	}

	ic, err := h.svc.GetCachedInterchange(ref)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "not found")
			return
		}
		if val, ok := err.(cache.ErrorHandler); ok {
			newErrorResponse(c, val.StatusCode, err.Error())
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, ic)
}

// GetDbInterchangeByRef serves a generated interchange straight from
// postgres, bypassing the cache.
func (h *Handler) GetDbInterchangeByRef(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" {
		newErrorResponse(c, http.StatusBadRequest, "missing ref")
		return
	}

	ic, err := h.svc.GetDbInterchange(ref)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "interchange not found")
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, ic)
}

func (h *Handler) GetAllInterchanges(c *gin.Context) {
	all, err := h.svc.GetAllCachedInterchanges()
	if err != nil {
		if val, ok := err.(cache.ErrorHandler); ok {
			newErrorResponse(c, val.StatusCode, err.Error())
			return
		}
		newErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, getAllInterchangesResponse{Data: all})
}
