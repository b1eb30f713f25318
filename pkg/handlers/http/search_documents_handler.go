package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appDocument "github.com/geniehq/genie-search/pkg/app/document"
	domainerrors "github.com/geniehq/genie-search/pkg/domain/errors"
	"github.com/geniehq/genie-search/pkg/handlers/http/request"
	"github.com/geniehq/genie-search/pkg/handlers/http/response"
)

type searchDocumentsHandler struct {
	logger   *logrus.Logger
	searcher appDocument.Searcher
}

func NewSearchDocumentsHandler(logger *logrus.Logger, searcher appDocument.Searcher) Handler {
	return &searchDocumentsHandler{
		logger:   logger,
		searcher: searcher,
	}
}

// Handle @Summary Search documents by similarity
// @Description Ranks replicated documents against a free-text query
// @Tags Search
// @Param Authorization header string true "Authorization token"
// @Accept json
// @Produce json
// @Success 200 {object} response.SearchResponse "Search results"
// @Router /api/v1/search [post]
func (h *searchDocumentsHandler) Handle(c *fiber.Ctx) error {
	var req request.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		h.logger.WithError(err).Debug("failed to parse search request")
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	limit := appDocument.DefaultSearchLimit
	if req.Limit != nil {
		limit = *req.Limit
	}
	threshold := appDocument.DefaultSearchThreshold
	if req.Threshold != nil {
		threshold = *req.Threshold
	}

	results, err := h.searcher.Search(c.Context(), req.Query, limit, threshold)
	if err != nil {
		var storeErr *domainerrors.StoreUnavailableError
		if errors.As(err, &storeErr) {
			h.logger.WithError(err).Error("search failed")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database service unavailable"})
		}
		h.logger.WithError(err).Error("unexpected error during search")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	return c.Status(fiber.StatusOK).JSON(
		response.NewSearchResponse(results, appDocument.Digest(results)),
	)
}
