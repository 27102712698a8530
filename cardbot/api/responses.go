package api

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Response is the envelope of every JSON answer.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       any         `json:"data,omitempty"`
	Error      *Error      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type Pagination struct {
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
	HasPrev    bool `json:"has_prev"`
}

func sendSuccess(c *fiber.Ctx, data any) error {
	return c.Status(http.StatusOK).JSON(Response{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
}

func sendPaginated(c *fiber.Ctx, data any, p *Pagination) error {
	return c.Status(http.StatusOK).JSON(Response{
		Success:    true,
		Data:       data,
		Pagination: p,
		Timestamp:  time.Now().UTC(),
	})
}

func sendError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(Response{
		Success:   false,
		Error:     &Error{Code: code, Message: message},
		Timestamp: time.Now().UTC(),
	})
}

func sendBadRequest(c *fiber.Ctx, message string) error {
	return sendError(c, http.StatusBadRequest, "BAD_REQUEST", message)
}

func sendNotFound(c *fiber.Ctx, message string) error {
	return sendError(c, http.StatusNotFound, "NOT_FOUND", message)
}

func sendInternalServerError(c *fiber.Ctx, message string) error {
	return sendError(c, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", message)
}
