package publication

import (
	"squeezer/core/logger"
	"squeezer/core/reconcile"
	"squeezer/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for publications.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the publication routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/publication", h.HandlePublication)
}

// HandlePublication reconciles a publication.
// @Summary Reconcile Publication
// @Description Publish a repository version, remove its publication, or report it.
// @Tags publication
// @Accept json
// @Produce json
// @Param params body Params true "Module parameters"
// @Param check_mode query bool false "Report what would change without changing it"
// @Success 200 {object} map[string]interface{} "changed flag and publication"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 502 {object} map[string]interface{} "Pulp API error"
// @Router /publication [post]
func (h *Handler) HandlePublication(c *fiber.Ctx) error {
	var p Params
	if err := server.ParseParams(c, &p); err != nil {
		return server.Respond(c, reconcile.Result{}, err)
	}

	result, err := h.service.Run(c.UserContext(), p, server.CheckMode(c))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Publication reconciliation failed", zap.Error(err))
	}
	return server.Respond(c, result, err)
}
