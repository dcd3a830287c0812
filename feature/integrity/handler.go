package integrity

import (
	"errors"

	"squeezer/core/logger"
	"squeezer/core/server"
	"squeezer/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleAll)
	group.Get("/pulp", h.HandlePulp)
	group.Get("/history", h.HandleHistory)
	group.Get("/archive", h.HandleArchive)
}

// HandleAll runs every check.
// @Summary Run All Integrity Checks
// @Description Checks the Pulp server status, the history table and the result archive.
// @Tags integrity
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Security ApiKeyAuth
// @Router /integrity [get]
func (h *Handler) HandleAll(c *fiber.Ctx) error {
	logger.WithRayID(h.service.logger, c).Info("Running all integrity checks")
	return c.JSON(h.service.All(c.UserContext()))
}

// HandlePulp checks the Pulp server.
// @Summary Check Pulp Server
// @Description Reads the server status and reports installed plugin versions and workers.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.PulpReport
// @Failure 502 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Security ApiKeyAuth
// @Router /integrity/pulp [get]
func (h *Handler) HandlePulp(c *fiber.Ctx) error {
	report, err := h.service.CheckPulp(c.UserContext())
	if err != nil {
		return h.fail(c, "Pulp check failed", err)
	}
	return c.JSON(report)
}

// HandleHistory checks the history table.
// @Summary Check History Table
// @Description Verifies that the invocation history table has every expected column.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.HistoryReport
// @Failure 404 {object} map[string]string "History disabled"
// @Security ApiKeyAuth
// @Router /integrity/history [get]
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	report, err := h.service.CheckHistory(c.UserContext())
	if err != nil {
		return h.fail(c, "History check failed", err)
	}
	return c.JSON(report)
}

// HandleArchive checks and optionally creates the archive bucket.
// @Summary Check Result Archive
// @Description Reports whether the archive bucket exists and which entity types it holds. Optionally creates the bucket.
// @Tags integrity
// @Produce json
// @Param fix query boolean false "Create a missing bucket"
// @Success 200 {object} checks.ArchiveReport
// @Failure 404 {object} map[string]string "Archive disabled"
// @Security ApiKeyAuth
// @Router /integrity/archive [get]
func (h *Handler) HandleArchive(c *fiber.Ctx) error {
	report, err := h.service.CheckArchive(c.UserContext())
	if err != nil {
		return h.fail(c, "Archive check failed", err)
	}

	if !report.Exists && c.Query("fix") == "true" {
		if err := h.service.FixArchive(c.UserContext()); err != nil {
			return h.fail(c, "Archive fix failed", err)
		}
		report = &checks.ArchiveReport{Bucket: report.Bucket, Exists: true, Entities: []string{}}
	}
	return c.JSON(report)
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	logger.WithRayID(h.service.logger, c).Error(msg, zap.Error(err))
	status := server.StatusFor(err)
	if errors.Is(err, ErrDisabled) {
		status = fiber.StatusNotFound
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
