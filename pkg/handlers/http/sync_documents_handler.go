package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appDocument "github.com/geniehq/genie-search/pkg/app/document"
	domainerrors "github.com/geniehq/genie-search/pkg/domain/errors"
	"github.com/geniehq/genie-search/pkg/domain/progress"
	"github.com/geniehq/genie-search/pkg/handlers/http/response"
)

type syncDocumentsHandler struct {
	logger *logrus.Logger
	syncer appDocument.Syncer
}

func NewSyncDocumentsHandler(logger *logrus.Logger, syncer appDocument.Syncer) Handler {
	return &syncDocumentsHandler{
		logger: logger,
		syncer: syncer,
	}
}

// Handle @Summary Trigger one synchronization pass
// @Description Replicates new source records into the vector store
// @Tags Sync
// @Param Authorization header string true "Authorization token"
// @Produce json
// @Success 200 {object} response.SyncResponse "Sync result"
// @Router /api/v1/sync [post]
func (h *syncDocumentsHandler) Handle(c *fiber.Ctx) error {
	result, err := h.syncer.SyncOnce(c.Context())
	if err != nil {
		if errors.Is(err, progress.ErrTrackingNotConfigured) {
			h.logger.WithError(err).Error("sync progress tracking is not configured")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Sync progress tracking is not configured"})
		}
		var storeErr *domainerrors.StoreUnavailableError
		if errors.As(err, &storeErr) {
			h.logger.WithError(err).Error("sync pass aborted")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database service unavailable"})
		}
		h.logger.WithError(err).Error("unexpected error during sync pass")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(response.SyncResponse{
		Status:          "ok",
		DocumentsSynced: result.Synced,
	})
}
