package handlers

import (
	"errors"
	"freshfold/internal/app"
	"freshfold/internal/authz"
	messageController "freshfold/internal/controllers/messages"
	orderController "freshfold/internal/controllers/orders"
	"freshfold/internal/handlers/middleware"

	adminController "freshfold/internal/controllers/admin"
	userController "freshfold/internal/controllers/users"

	logger "github.com/Bparsons0904/goLogger"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type AdminHandler struct {
	Handler
	orderController   orderController.OrderControllerInterface
	messageController messageController.MessageControllerInterface
	userController    userController.UserControllerInterface
	adminController   adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		orderController:   app.Controllers.Order,
		messageController: app.Controllers.Message,
		userController:    app.Controllers.User,
		adminController:   app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group("/admin", h.middleware.RequireAuth())

	orders := admin.Group("/orders", h.middleware.RequireResource(authz.ResourceAdminOrders))
	orders.Get("", h.listOrders)
	orders.Get("/:id", h.getOrder)
	orders.Patch("/:id", h.updateOrderStatus)

	messages := admin.Group("/messages", h.middleware.RequireResource(authz.ResourceAdminMessages))
	messages.Get("", h.listMessages)
	messages.Post("", h.sendMessage)

	admin.Get("/inbox", h.middleware.RequireResource(authz.ResourceAdminMessages), h.getInbox)
	admin.Get("/stats", h.middleware.RequireResource(authz.ResourceAdminDashboard), h.getStats)

	users := admin.Group("/users", h.middleware.RequireResource(authz.ResourceAdminUsers))
	users.Get("", h.listUsers)
	users.Patch("/:id/role", h.cycleUserRole)
}

func (h *AdminHandler) listOrders(c *fiber.Ctx) error {
	orders, err := h.orderController.ListAll(c.UserContext(), c.Query("status"))
	if err != nil {
		if errors.Is(err, orderController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list orders",
		})
	}

	return c.JSON(fiber.Map{
		"orders": orders,
	})
}

func (h *AdminHandler) getOrder(c *fiber.Ctx) error {
	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	order, err := h.orderController.Get(c.UserContext(), orderID)
	if err != nil {
		if errors.Is(err, orderController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load order",
		})
	}

	return c.JSON(fiber.Map{
		"order": order,
	})
}

func (h *AdminHandler) updateOrderStatus(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	orderID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order ID",
		})
	}

	var req orderController.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if err := h.orderController.UpdateStatus(c.UserContext(), user, orderID, &req); err != nil {
		if errors.Is(err, orderController.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		if errors.Is(err, orderController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		if errors.Is(err, orderController.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": "Status transition not allowed",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order status",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order status updated",
	})
}

func (h *AdminHandler) listMessages(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	requestIDParam := c.Query("request_id")
	if requestIDParam == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "request_id query parameter is required",
		})
	}

	requestID, err := uuid.Parse(requestIDParam)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request_id",
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

func (h *AdminHandler) sendMessage(c *fiber.Ctx) error {
	user := middleware.GetUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Authentication required",
		})
	}

	var req messageController.AdminSendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	message, err := h.messageController.AdminSend(c.UserContext(), user, &req)
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

func (h *AdminHandler) getInbox(c *fiber.Ctx) error {
	messages, err := h.messageController.Inbox(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load inbox",
		})
	}

	return c.JSON(fiber.Map{
		"conversations": messages,
	})
}

func (h *AdminHandler) getStats(c *fiber.Ctx) error {
	stats, err := h.adminController.GetStats(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load stats",
		})
	}

	return c.JSON(stats)
}

func (h *AdminHandler) listUsers(c *fiber.Ctx) error {
	users, err := h.userController.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list users",
		})
	}

	return c.JSON(fiber.Map{
		"users": users,
	})
}

func (h *AdminHandler) cycleUserRole(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user ID",
		})
	}

	profile, err := h.userController.CycleRole(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, userController.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "User not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update user role",
		})
	}

	return c.JSON(fiber.Map{
		"user": profile,
	})
}
