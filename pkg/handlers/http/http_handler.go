package http

import "github.com/gofiber/fiber/v2"

type Handler interface {
	Handle(ctx *fiber.Ctx) error
}

type HandlerTransport struct {
	// Documents
	ListDocumentsHandler Handler

	// Sync
	SyncDocumentsHandler Handler

	// Search
	SearchDocumentsHandler Handler

	// Misc
	GetVersionHandler Handler
}
