package handlers

import (
	"errors"
	"freshfold/internal/app"
	"freshfold/internal/authz"
	messageController "freshfold/internal/controllers/messages"
	requestController "freshfold/internal/controllers/requests"
	"freshfold/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RequestHandler struct {
	Handler
	requestController requestController.RequestControllerInterface
	messageController messageController.MessageControllerInterface
}

func NewRequestHandler(app app.App, router fiber.Router) *RequestHandler {
	log := logger.New("handlers").File("request_handler")
	return &RequestHandler{
		requestController: app.Controllers.Request,
		messageController: app.Controllers.Message,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *RequestHandler) Register() {
	authed := h.router.Group("/", h.middleware.RequireAuth())
	authed.Get("/categories", h.middleware.RequireResource(authz.ResourceCategories), h.getCategories)

	// Staff and admins work orders through the admin surface; the customer
	// routes are customer-only in both directions.
	requests := authed.Group("/requests", h.middleware.RequireResource(authz.ResourceCustomerRequests))
	requests.Post("", h.createRequest)
	requests.Get("", h.listRequests)
	requests.Get("/:id", h.getRequest)
	requests.Get("/:id/messages", h.listMessages)
	requests.Post("/:id/messages", h.sendMessage)
}

func (h *RequestHandler) getCategories(c *fiber.Ctx) error {
	categories, err := h.requestController.GetCategories(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load categories",
		})
	}

	return c.JSON(fiber.Map{
		"categories": categories,
	})
}

func (h *RequestHandler) createRequest(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req requestController.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	request, err := h.requestController.Create(c.UserContext(), user, &req)
	if err != nil {
		if errors.Is(err, requestController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"request": request,
	})
}

func (h *RequestHandler) listRequests(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	requests, err := h.requestController.List(c.UserContext(), user)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list requests",
		})
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

func (h *RequestHandler) getRequest(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	request, err := h.requestController.Get(c.UserContext(), user, requestID)
	if err != nil {
		if errors.Is(err, requestController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load request",
		})
	}

	return c.JSON(fiber.Map{
		"request": request,
	})
}

func (h *RequestHandler) listMessages(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	messages, err := h.messageController.List(c.UserContext(), user, requestID)
	if err != nil {
		if errors.Is(err, messageController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list messages",
		})
	}

	return c.JSON(fiber.Map{
		"messages": messages,
	})
}

func (h *RequestHandler) sendMessage(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request ID",
		})
	}

	var req messageController.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message, err := h.messageController.Send(c.UserContext(), user, requestID, &req)
	if err != nil {
		if errors.Is(err, messageController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, messageController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Request not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to send message",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": message,
	})
}
