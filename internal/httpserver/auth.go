package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vehicle-storefront/internal/apiclient"
	"vehicle-storefront/internal/domain"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

type identityResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func toIdentityResponse(identity domain.Identity) identityResponse {
	return identityResponse{
		Email:     identity.Email,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
	}
}

func (h *handlers) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}
	gate, ok := h.sessionGate(c)
	if !ok {
		return
	}

	identity, err := gate.Login(c.Request.Context(), apiclient.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, apiclient.ErrRejected) || errors.Is(err, domain.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, toIdentityResponse(identity))
}

func (h *handlers) signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "firstName, lastName, email and password are required"})
		return
	}
	gate, ok := h.sessionGate(c)
	if !ok {
		return
	}

	identity, err := gate.Signup(c.Request.Context(), apiclient.SignupInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toIdentityResponse(identity))
}

func (h *handlers) logout(c *gin.Context) {
	gate, ok := h.sessionGate(c)
	if !ok {
		return
	}
	if err := gate.Logout(c.Request.Context()); err != nil {
		h.logger.Printf("logout: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) profile(c *gin.Context) {
	gate, ok := h.sessionGate(c)
	if !ok {
		return
	}
	if !gate.IsAuthenticated() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "please sign in"})
		return
	}

	profile, err := h.deps.Profile.GetProfile(c.Request.Context(), gate.Credential())
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			if invErr := gate.Invalidate(c.Request.Context()); invErr != nil {
				h.logger.Printf("invalidate session: %v", invErr)
			}
		}
		writeAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
