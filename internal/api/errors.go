package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/navya-devv/optirelief/internal/dispatch"
	"github.com/navya-devv/optirelief/internal/graph"
	"github.com/navya-devv/optirelief/internal/matching"
	"github.com/navya-devv/optirelief/internal/packing"
	"github.com/navya-devv/optirelief/internal/repository"
	"github.com/navya-devv/optirelief/internal/routing"
	"github.com/navya-devv/optirelief/internal/textscan"
)

// fail translates engine errors into status categories. Caller mistakes
// surface with their message; internal faults are logged with context and
// answered with a generic body.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, dispatch.ErrInsufficientCenters),
		errors.Is(err, packing.ErrInvalidCapacity),
		errors.Is(err, packing.ErrInvalidItem),
		errors.Is(err, textscan.ErrEmptyMessage),
		errors.Is(err, graph.ErrNegativeDistance),
		errors.Is(err, graph.ErrEmptyLocationID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, graph.ErrUnknownLocation),
		errors.Is(err, routing.ErrNoRouteFound),
		errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, repository.ErrConcurrentModification):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	case errors.Is(err, matching.ErrNoVolunteersAvailable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})

	default:
		slog.Error("internal error", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
