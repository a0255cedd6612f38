package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/tedlabs/users-api/internal/auth"
	"github.com/tedlabs/users-api/internal/common"
	"github.com/tedlabs/users-api/internal/log"
	"github.com/tedlabs/users-api/internal/models/account"
	"github.com/tedlabs/users-api/internal/models/user"
	"github.com/tedlabs/users-api/internal/services"
)

// storeTimeout bounds every store round trip made on behalf of one request.
const storeTimeout = 5 * time.Second

type WebServer struct {
	jwtSecret     string
	app           *fiber.App
	clientService *services.ClientService
	logger        *log.Logger
}

func NewWebServer(jwtSecret string, clientService *services.ClientService, logger *log.Logger) *WebServer {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Authorization, Content-Type",
	}))

	server := &WebServer{
		jwtSecret:     jwtSecret,
		app:           app,
		clientService: clientService,
		logger:        logger,
	}
	server.SetupRoutes()
	return server
}

func (s *WebServer) Run(port int) error {
	return s.app.Listen(":" + strconv.Itoa(port))
}

// Shutdown stops the server gracefully, letting in-flight requests finish.
func (s *WebServer) Shutdown() error {
	return s.app.Shutdown()
}

func (s *WebServer) SetupRoutes() {
	s.app.Get("/", s.hello)
	s.app.Get("/health", s.healthCheck)
	s.app.Get("/routes", s.getRoutes)
	s.app.Post("/login", s.loginUser)
	s.app.Post("/signup", s.signupUser)
	s.app.Get("/users", s.tokenRequired(s.listUsers))
	s.app.Get("/users/:id", s.getUser)
	s.app.Post("/users", s.createUser)
	s.app.Delete("/users/:id", s.deleteUser)
}

// storeContext derives a bounded context for store calls from the request.
func storeContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), storeTimeout)
}

// tokenRequired gates a handler behind bearer token verification. The token
// is the second whitespace-delimited segment of the Authorization header;
// a missing header, missing token, or failed verification all reject with a
// bare 401 so callers learn nothing about why.
func (s *WebServer) tokenRequired(handler fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			s.logger.Info("Missing Authorization header")
			return c.Status(http.StatusUnauthorized).Send(nil)
		}

		parts := strings.Fields(authHeader)
		if len(parts) < 2 {
			s.logger.Info("No token in Authorization header")
			return c.Status(http.StatusUnauthorized).Send(nil)
		}

		username, err := auth.VerifyToken(parts[1], []byte(s.jwtSecret))
		if err != nil {
			s.logger.Info("Token verification failed")
			return c.Status(http.StatusUnauthorized).Send(nil)
		}

		c.Locals("username", username)
		return handler(c)
	}
}

func (s *WebServer) hello(c *fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON("Hello World!")
}

func (s *WebServer) listUsers(c *fiber.Ctx) error {
	s.logger.Info("List users request received")

	var req common.ListUsersRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("List users request validation failed:", err.Error())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	users, err := s.clientService.GetUsers(ctx, req.Name, req.Job)
	if err != nil {
		s.logger.Error("Failed to list users:", err.Error())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "an error occurred in the server"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"users_list": users})
}

func (s *WebServer) getUser(c *fiber.Ctx) error {
	s.logger.Info("Get user request received")

	var req common.GetUserRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Get user request validation failed:", err.Error())
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	found, err := s.clientService.GetUserByID(ctx, req.ID)
	if err != nil {
		s.logger.Info("User lookup came up empty:", err.Error())
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"users_list": found})
}

func (s *WebServer) createUser(c *fiber.Ctx) error {
	s.logger.Info("Create user request received")

	var req common.CreateUserRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Create user request parsing failed:", err.Error())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	saved, err := s.clientService.AddUser(ctx, &user.User{Name: req.Name, Job: req.Job})
	if err != nil {
		if errors.Is(err, user.ErrInvalidUser) {
			s.logger.Info("User rejected by schema constraints:", err.Error())
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.Error("Failed to insert user:", err.Error())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "an error occurred in the server"})
	}

	return c.Status(http.StatusCreated).JSON(saved)
}

func (s *WebServer) deleteUser(c *fiber.Ctx) error {
	s.logger.Info("Delete user request received")

	var req common.GetUserRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Delete user request validation failed:", err.Error())
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	_, err := s.clientService.DeleteUser(ctx, req.ID)
	if err != nil {
		s.logger.Info("User delete came up empty:", err.Error())
		return c.Status(http.StatusNotFound).JSON(fiber.Map{"error": "resource not found"})
	}

	return c.SendStatus(http.StatusNoContent)
}

func (s *WebServer) loginUser(c *fiber.Ctx) error {
	s.logger.Info("Login request received")

	var req common.LoginRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Login request validation failed:", err.Error())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	username, err := s.clientService.LoginUser(ctx, req.Username, req.Password)
	if err != nil {
		s.logger.Info("Login rejected")
		return c.Status(http.StatusUnauthorized).Send(nil)
	}

	token, err := auth.IssueToken(username, []byte(s.jwtSecret), auth.TokenLifetime)
	if err != nil {
		s.logger.Error("Failed to generate token:", err.Error())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
	}

	s.logger.Infof("User %s logged in", username)
	return c.Status(http.StatusOK).JSON(fiber.Map{"token": token})
}

func (s *WebServer) signupUser(c *fiber.Ctx) error {
	s.logger.Info("Signup request received")

	var req common.SignupRequest
	if err := ValidateRequest(c, &req); err != nil {
		s.logger.Info("Signup request validation failed:", err.Error())
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	ctx, cancel := storeContext(c)
	defer cancel()

	if err := s.clientService.RegisterUser(ctx, req.Username, req.Password); err != nil {
		if errors.Is(err, account.ErrUsernameTaken) {
			s.logger.Info("Signup rejected, username taken")
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		s.logger.Error("Signup failed:", err.Error())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "an error occurred in the server"})
	}

	token, err := auth.IssueToken(req.Username, []byte(s.jwtSecret), auth.TokenLifetime)
	if err != nil {
		s.logger.Error("Failed to generate token:", err.Error())
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{"error": "failed to generate token"})
	}

	s.logger.Infof("User %s signed up", req.Username)
	return c.Status(http.StatusCreated).JSON(fiber.Map{"token": token})
}

func (s *WebServer) getRoutes(c *fiber.Ctx) error {
	s.logger.Info("Get routes request received")
	routes := s.app.GetRoutes()
	return c.Status(http.StatusOK).JSON(routes)
}

func (s *WebServer) healthCheck(c *fiber.Ctx) error {
	return c.SendString("OK")
}
