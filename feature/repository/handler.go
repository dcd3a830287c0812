package repository

import (
	"squeezer/core/logger"
	"squeezer/core/reconcile"
	"squeezer/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for repositories.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the repository routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/repository", h.HandleRepository)
}

// HandleRepository reconciles a repository.
// @Summary Reconcile Repository
// @Description Ensure a deb or python repository is present or absent, or report it.
// @Tags repository
// @Accept json
// @Produce json
// @Param params body Params true "Module parameters"
// @Param check_mode query bool false "Report what would change without changing it"
// @Success 200 {object} map[string]interface{} "changed flag and repository"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 502 {object} map[string]interface{} "Pulp API error"
// @Router /repository [post]
func (h *Handler) HandleRepository(c *fiber.Ctx) error {
	var p Params
	if err := server.ParseParams(c, &p); err != nil {
		return server.Respond(c, reconcile.Result{}, err)
	}

	result, err := h.service.Run(c.UserContext(), p, server.CheckMode(c))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Repository reconciliation failed", zap.Error(err))
	}
	return server.Respond(c, result, err)
}
