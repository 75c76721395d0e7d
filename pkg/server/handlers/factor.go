package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linkalytics/factorlink"
	"github.com/linkalytics/factorlink/pkg/factor"
	"github.com/linkalytics/factorlink/pkg/server/dto"
)

// FactorHandler handles factor query and expansion requests
type FactorHandler struct {
	client factorlink.Factorlink
}

// NewFactorHandler creates a new factor handler
func NewFactorHandler(client factorlink.Factorlink) *FactorHandler {
	return &FactorHandler{
		client: client,
	}
}

func errorJSON(c *gin.Context, status int, errCode, message string) {
	c.JSON(status, dto.ErrorResponse{
		Error:   errCode,
		Message: message,
	})
}

// Available handles GET /factors/:id/available
func (h *FactorHandler) Available(c *gin.Context) {
	entity := c.Param("id")

	factors, err := h.client.Available(c.Request.Context(), entity)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "lookup_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.AvailableResponse{
		Entity:  entity,
		Factors: factors,
		Total:   len(factors),
	})
}

// Lookup handles GET /factors/:id/values/:field
func (h *FactorHandler) Lookup(c *gin.Context) {
	entity := c.Param("id")
	field := c.Param("field")

	values, err := h.client.Lookup(c.Request.Context(), entity, field)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "lookup_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ValuesResponse{
		Entity: entity,
		Field:  field,
		Values: values,
		Total:  len(values),
	})
}

// GetAll handles GET /factors/:id - the full factor map for an entity
func (h *FactorHandler) GetAll(c *gin.Context) {
	entity := c.Param("id")

	tree, err := h.client.GetAll(c.Request.Context(), entity)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "lookup_failed", err.Error())
		return
	}
	if tree == nil {
		errorJSON(c, http.StatusNotFound, "entity_not_found", "no factor values found for entity")
		return
	}

	c.JSON(http.StatusOK, tree)
}

// Status handles GET /factors/:id/status
func (h *FactorHandler) Status(c *gin.Context) {
	entity := c.Param("id")

	hit, err := h.client.Status(c.Request.Context(), entity)
	if err != nil {
		switch {
		case errors.Is(err, factor.ErrEntityNotFound):
			errorJSON(c, http.StatusNotFound, "entity_not_found", "no state record for entity")
		case errors.Is(err, factor.ErrNoStateIndex):
			errorJSON(c, http.StatusNotImplemented, "no_state_index", "state index is not configured")
		default:
			errorJSON(c, http.StatusInternalServerError, "status_failed", err.Error())
		}
		return
	}

	c.JSON(http.StatusOK, hit.Source)
}

// ReverseLookup handles POST /reverse-lookup
func (h *FactorHandler) ReverseLookup(c *gin.Context) {
	var req dto.ReverseLookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	entities, err := h.client.ReverseLookup(c.Request.Context(), req.Field, req.Value)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "lookup_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.EntitiesResponse{
		Field:    req.Field,
		Value:    req.Value,
		Entities: entities,
		Total:    len(entities),
	})
}

// Reduce handles POST /reduce
func (h *FactorHandler) Reduce(c *gin.Context) {
	var req dto.ReduceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	values, err := h.client.Reduce(c.Request.Context(), req.Entity, req.Factors...)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "reduce_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, dto.ReduceResponse{
		Entity:  req.Entity,
		Factors: req.Factors,
		Values:  values,
		Total:   len(values),
	})
}

// Expand handles POST /expand
func (h *FactorHandler) Expand(c *gin.Context) {
	var req dto.ExpandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	tree, err := h.client.Expand(c.Request.Context(), req.Entity, req.Degrees, req.Factors...)
	if err != nil {
		if errors.Is(err, factor.ErrEntityNotFound) {
			errorJSON(c, http.StatusNotFound, "entity_not_found", "no factor values found for entity")
			return
		}
		errorJSON(c, http.StatusInternalServerError, "expand_failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, tree)
}
