package remote

import (
	"squeezer/core/logger"
	"squeezer/core/reconcile"
	"squeezer/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for remotes.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the remote routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/remote", h.HandleRemote)
}

// HandleRemote reconciles a remote.
// @Summary Reconcile Remote
// @Description Ensure a deb or python remote is present or absent with the given source settings, or report it.
// @Tags remote
// @Accept json
// @Produce json
// @Param params body Params true "Module parameters"
// @Param check_mode query bool false "Report what would change without changing it"
// @Success 200 {object} map[string]interface{} "changed flag and remote"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 502 {object} map[string]interface{} "Pulp API error"
// @Router /remote [post]
func (h *Handler) HandleRemote(c *fiber.Ctx) error {
	var p Params
	if err := server.ParseParams(c, &p); err != nil {
		return server.Respond(c, reconcile.Result{}, err)
	}

	result, err := h.service.Run(c.UserContext(), p, server.CheckMode(c))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Remote reconciliation failed", zap.Error(err))
	}
	return server.Respond(c, result, err)
}
