package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appDocument "github.com/geniehq/genie-search/pkg/app/document"
	domainerrors "github.com/geniehq/genie-search/pkg/domain/errors"
	"github.com/geniehq/genie-search/pkg/handlers/http/response"
)

type listDocumentsHandler struct {
	logger *logrus.Logger
	finder appDocument.Finder
}

func NewListDocumentsHandler(logger *logrus.Logger, finder appDocument.Finder) Handler {
	return &listDocumentsHandler{
		logger: logger,
		finder: finder,
	}
}

// Handle @Summary List replicated documents
// @Description Returns every replicated question/answer document
// @Tags Documents
// @Produce json
// @Success 200 {array} response.DocumentResponse "Documents"
// @Router /documents [get]
func (h *listDocumentsHandler) Handle(c *fiber.Ctx) error {
	docs, err := h.finder.FindAll(c.Context())
	if err != nil {
		var storeErr *domainerrors.StoreUnavailableError
		if errors.As(err, &storeErr) {
			h.logger.WithError(err).Error("failed to list documents")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database service unavailable"})
		}
		h.logger.WithError(err).Error("unexpected error listing documents")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
	}

	out := make([]response.DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, response.NewDocumentResponse(&docs[i]))
	}
	return c.Status(fiber.StatusOK).JSON(out)
}
