package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kiash254/pos-terminal/internal/backend"
	"github.com/Kiash254/pos-terminal/internal/session"
	"github.com/Kiash254/pos-terminal/pkg/logger"
	"github.com/Kiash254/pos-terminal/pkg/response"
)

type handler struct {
	sessions *session.Manager
	logger   logger.Logger
}

// NewHandler creates a new instance of AuthHandler
func NewHandler(s *session.Manager, l logger.Logger) AuthHandler {
	return &handler{sessions: s, logger: l}
}

func (h *handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sessions.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, gin.H{"user": h.sessions.CurrentUser()})
}

// Logout never fails; the UI can always reach the login screen.
func (h *handler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	response.Success(c, "Logged out")
}

func (h *handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.sessions.Register(c.Request.Context(), backend.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Created(c, gin.H{"user": profile})
}

// Session reports the current authentication state so the UI can route
// between the login screen and the sales floor.
func (h *handler) Session(c *gin.Context) {
	response.Success(c, gin.H{
		"authenticated": h.sessions.IsAuthenticated(),
		"user":          h.sessions.CurrentUser(),
	})
}

func (h *handler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.sessions.UpdateProfile(c.Request.Context(), backend.ProfileUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, gin.H{"user": profile})
}
