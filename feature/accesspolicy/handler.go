package accesspolicy

import (
	"squeezer/core/logger"
	"squeezer/core/reconcile"
	"squeezer/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for access policies.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the access policy routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/access-policy", h.HandleAccessPolicy)
}

// HandleAccessPolicy reconciles an access policy.
// @Summary Reconcile Access Policy
// @Description Ensure the statements and creation hooks of a viewset access policy, or report it.
// @Tags access-policy
// @Accept json
// @Produce json
// @Param params body Params true "Module parameters"
// @Param check_mode query bool false "Report what would change without changing it"
// @Success 200 {object} map[string]interface{} "changed flag and access_policy"
// @Failure 400 {object} map[string]interface{} "Invalid parameters"
// @Failure 502 {object} map[string]interface{} "Pulp API error"
// @Router /access-policy [post]
func (h *Handler) HandleAccessPolicy(c *fiber.Ctx) error {
	var p Params
	if err := server.ParseParams(c, &p); err != nil {
		return server.Respond(c, reconcile.Result{}, err)
	}

	result, err := h.service.Run(c.UserContext(), p, server.CheckMode(c))
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Access policy reconciliation failed", zap.Error(err))
	}
	return server.Respond(c, result, err)
}
