package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	GenerateToken(email string) (string, error)
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginResponse represents the login response
type LoginResponse struct {
	Token   string `json:"token"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// AuthHandler issues development tokens. It stands in for the identity
// provider and must not be routed in production.
type AuthHandler struct {
	tokens TokenIssuer
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{tokens: tokens}
}

// Login handles POST /api/login
// Any well-formed email is accepted.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, "Invalid request. Email is required.")
		return
	}

	token, err := h.tokens.GenerateToken(req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:   token,
		Email:   req.Email,
		Message: "Login successful",
	})
}
