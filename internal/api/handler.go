package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/navya-devv/optirelief/internal/dispatch"
	"github.com/navya-devv/optirelief/internal/graph"
	"github.com/navya-devv/optirelief/internal/matching"
	"github.com/navya-devv/optirelief/internal/models"
	"github.com/navya-devv/optirelief/internal/packing"
	"github.com/navya-devv/optirelief/internal/ranking"
	"github.com/navya-devv/optirelief/internal/repository"
	"github.com/navya-devv/optirelief/internal/routing"
	"github.com/navya-devv/optirelief/internal/textscan"
	"github.com/navya-devv/optirelief/internal/worker"
)

// Deps bundles the stores and engine components a Handler serves.
type Deps struct {
	Areas      repository.AreaRepository
	Supplies   repository.SupplyRepository
	Volunteers repository.VolunteerRepository
	Regions    repository.RegionRepository
	Messages   repository.MessageRepository

	Graph   *graph.Store
	Planner *routing.Planner
	Matrix  *dispatch.Matrix
	Ranker  *ranking.Ranker
	Scanner *textscan.Scanner
	Matcher *matching.Matcher

	// Persist drains analyzed messages to storage behind the response.
	Persist *worker.Pool[*models.Message]
}

type Handler struct {
	deps Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{deps: deps}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.health)

	r.GET("/api/areas", h.listAreas)
	r.POST("/api/areas", h.addArea)
	r.POST("/api/sort-priority", h.sortPriority)

	r.GET("/api/locations", h.listLocations)
	r.GET("/api/shortest-route", h.shortestRoute)

	r.GET("/api/dispatch-centers", h.listDispatchCenters)
	r.POST("/api/multi-dispatch", h.multiDispatch)

	r.GET("/api/supply-items", h.listSupplyItems)
	r.POST("/api/supply-items", h.addSupplyItem)
	r.POST("/api/optimize-supply", h.optimizeSupply)

	r.GET("/api/volunteers", h.listVolunteers)
	r.GET("/api/regions", h.listRegions)
	r.POST("/api/assign-volunteers", h.assignVolunteers)

	r.GET("/api/messages", h.listMessages)
	r.POST("/api/analyze-message", h.analyzeMessage)

	r.GET("/api/dashboard/stats", h.dashboardStats)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) listAreas(c *gin.Context) {
	areas, err := h.deps.Areas.ListAreas(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, areas)
}

type addAreaRequest struct {
	Name       string `json:"name"`
	Severity   int    `json:"severity"`
	Population int    `json:"population"`
	DelayTime  int    `json:"delay_time"`
}

func (h *Handler) addArea(c *gin.Context) {
	var req addAreaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(c, "name is required")
		return
	}
	if req.Severity < 1 || req.Severity > 10 {
		badRequest(c, "severity must be in [1,10]")
		return
	}
	if req.Population < 1 {
		badRequest(c, "population must be at least 1")
		return
	}
	if req.DelayTime < 0 {
		badRequest(c, "delay_time must not be negative")
		return
	}

	area := &models.DisasterArea{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Severity:   req.Severity,
		Population: req.Population,
		DelayTime:  req.DelayTime,
	}
	if err := h.deps.Areas.AddArea(c.Request.Context(), area); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, area)
}

func (h *Handler) sortPriority(c *gin.Context) {
	areas, err := h.deps.Areas.ListAreas(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	ranked := h.deps.Ranker.Rank(areas)
	if err := h.deps.Areas.UpdateUrgencyScores(c.Request.Context(), ranked); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, ranked)
}

func (h *Handler) listLocations(c *gin.Context) {
	c.JSON(http.StatusOK, h.deps.Graph.Locations())
}

func (h *Handler) shortestRoute(c *gin.Context) {
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		badRequest(c, "start and end locations required")
		return
	}

	route, err := h.deps.Planner.ShortestRoute(start, end)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, route)
}

func (h *Handler) listDispatchCenters(c *gin.Context) {
	centers := make([]models.Location, 0)
	for _, loc := range h.deps.Graph.Locations() {
		if loc.Center {
			centers = append(centers, loc)
		}
	}
	c.JSON(http.StatusOK, centers)
}

type multiDispatchRequest struct {
	Centers []string `json:"centers"`
}

func (h *Handler) multiDispatch(c *gin.Context) {
	var req multiDispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	result, err := h.deps.Matrix.Plan(req.Centers)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listSupplyItems(c *gin.Context) {
	items, err := h.deps.Supplies.ListSupplyItems(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type addSupplyItemRequest struct {
	Name     string `json:"item_name"`
	Weight   int    `json:"weight"`
	Utility  int    `json:"utility"`
	Quantity int    `json:"quantity"`
}

func (h *Handler) addSupplyItem(c *gin.Context) {
	var req addSupplyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Name == "" {
		badRequest(c, "item_name is required")
		return
	}
	if req.Weight < 1 {
		badRequest(c, "weight must be positive")
		return
	}
	if req.Utility < 1 || req.Utility > 10 {
		badRequest(c, "utility must be in [1,10]")
		return
	}
	if req.Quantity < 0 {
		badRequest(c, "quantity must not be negative")
		return
	}

	item := &models.SupplyItem{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Weight:   req.Weight,
		Utility:  req.Utility,
		Quantity: req.Quantity,
	}
	if err := h.deps.Supplies.AddSupplyItem(c.Request.Context(), item); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type optimizeSupplyRequest struct {
	Items    []models.SupplyItem `json:"items"`
	Capacity int                 `json:"capacity"`
}

func (h *Handler) optimizeSupply(c *gin.Context) {
	var req optimizeSupplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	items := req.Items
	if len(items) == 0 {
		// No explicit selection packs the whole catalog.
		var err error
		items, err = h.deps.Supplies.ListSupplyItems(c.Request.Context())
		if err != nil {
			h.fail(c, err)
			return
		}
	}

	result, err := packing.Optimize(items, req.Capacity)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) listVolunteers(c *gin.Context) {
	volunteers, err := h.deps.Volunteers.ListVolunteers(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, volunteers)
}

func (h *Handler) listRegions(c *gin.Context) {
	regions, err := h.deps.Regions.ListRegions(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, regions)
}

func (h *Handler) assignVolunteers(c *gin.Context) {
	ctx := c.Request.Context()

	volunteers, err := h.deps.Volunteers.ListAvailableVolunteers(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	regions, err := h.deps.Regions.ListRegions(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.deps.Matcher.Assign(volunteers, regions)
	if err != nil {
		h.fail(c, err)
		return
	}

	claims := make(map[string]string, len(result.Assignments))
	for _, a := range result.Assignments {
		claims[a.VolunteerID] = a.RegionID
	}
	if err := h.deps.Volunteers.ClaimVolunteers(ctx, claims); err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) listMessages(c *gin.Context) {
	messages, err := h.deps.Messages.ListMessages(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

type analyzeMessageRequest struct {
	Message string `json:"message"`
	Source  string `json:"source"`
}

func (h *Handler) analyzeMessage(c *gin.Context) {
	var req analyzeMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	if req.Source == "" {
		badRequest(c, "source is required")
		return
	}

	analysis, err := h.deps.Scanner.Analyze(req.Message)
	if err != nil {
		h.fail(c, err)
		return
	}

	msg := &models.Message{
		ID:            uuid.NewString(),
		Text:          req.Message,
		Source:        req.Source,
		Timestamp:     time.Now().UTC(),
		UrgencyScore:  analysis.UrgencyScore,
		UrgencyLevel:  analysis.UrgencyLevel,
		KeywordsFound: analysis.KeywordsFound,
	}

	// The response does not wait on storage; the pool persists behind it.
	if h.deps.Persist != nil {
		h.deps.Persist.Submit(msg)
	}

	c.JSON(http.StatusOK, msg)
}

func (h *Handler) dashboardStats(c *gin.Context) {
	ctx := c.Request.Context()

	messages, err := h.deps.Messages.ListMessages(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	volunteers, err := h.deps.Volunteers.ListVolunteers(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}
	areas, err := h.deps.Areas.ListAreas(ctx)
	if err != nil {
		h.fail(c, err)
		return
	}

	available, assigned := 0, 0
	for _, v := range volunteers {
		switch v.Status {
		case models.VolunteerAvailable:
			available++
		case models.VolunteerAssigned:
			assigned++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"total_requests":      len(messages),
		"active_volunteers":   available,
		"assigned_volunteers": assigned,
		"tracked_areas":       len(areas),
	})
}
