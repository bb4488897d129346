package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"game-service/internal/models"
	"game-service/internal/services"
	"game-service/internal/storage"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *services.UserService
	store       *storage.Storage
}

func NewUserHandler(userService *services.UserService, store *storage.Storage) *UserHandler {
	return &UserHandler{userService: userService, store: store}
}

// Register creates an account plus its empty stats row so the player can
// join the world immediately after logging in.
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid input data",
		})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrUserAlreadyExists) {
			c.JSON(http.StatusConflict, models.ErrorResponse{
				Code:    http.StatusConflict,
				Message: "Username already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Register failed",
		})
		return
	}

	x, y := h.store.HubPosition(c.Request.Context())
	stats := &models.PlayerStats{UserID: user.ID, PositionX: x, PositionY: y}
	if err := h.store.CreatePlayerStats(c.Request.Context(), stats); err != nil && !errors.Is(err, storage.ErrStatsExist) {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Register failed",
		})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid input data",
		})
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Invalid credentials",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return
	}

	user, err := h.userService.GetProfile(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{
				Code:    http.StatusNotFound,
				Message: "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load user",
		})
		return
	}

	c.JSON(http.StatusOK, user)
}

// parseIDParam reads a positive integer path parameter, replying 400 and
// returning an error when it is malformed.
func parseIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid " + name + " parameter",
		})
		return 0, errors.New("invalid id parameter")
	}
	return id, nil
}
