package handlers

import (
	"errors"
	nethttp "net/http"
	"regexp"

	"github.com/gin-gonic/gin"

	"streamify/internal/auth"
	"streamify/internal/metrics"
	"streamify/internal/models"
	"streamify/internal/services"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type AuthHandler struct {
	auth         *services.AuthService
	jwtSecret    string
	secureCookie bool
}

func NewAuthHandler(authService *services.AuthService, jwtSecret string, secureCookie bool) *AuthHandler {
	return &AuthHandler{auth: authService, jwtSecret: jwtSecret, secureCookie: secureCookie}
}

type signupBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var body signupBody
	if err := c.ShouldBindJSON(&body); err != nil {
		metrics.IncSignup(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	if body.Email == "" || body.Password == "" || body.FullName == "" {
		metrics.IncSignup(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if len(body.Password) < 6 {
		metrics.IncSignup(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "Password must be at least 6 characters long"})
		return
	}
	if !emailPattern.MatchString(body.Email) {
		metrics.IncSignup(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "Invalid email format"})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), body.Email, body.Password, body.FullName)
	if err != nil {
		metrics.IncSignup(metrics.StatusFailed)
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(nethttp.StatusBadRequest, gin.H{"message": "Email already exists, please use a different email"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		metrics.IncSignup(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	metrics.IncSignup(metrics.StatusSuccess)
	c.JSON(nethttp.StatusCreated, gin.H{"success": true, "user": user})
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		metrics.IncLogin(metrics.StatusFailed)
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), body.Email, body.Password)
	if err != nil {
		metrics.IncLogin(metrics.StatusFailed)
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
			return
		}
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	if err := h.setSessionCookie(c, user.ID); err != nil {
		metrics.IncLogin(metrics.StatusFailed)
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	metrics.IncLogin(metrics.StatusSuccess)
	c.JSON(nethttp.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(nethttp.SameSiteStrictMode)
	c.SetCookie("jwt", "", -1, "/", "", h.secureCookie, true)
	c.JSON(nethttp.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	user, err := h.auth.GetUser(c.Request.Context(), *userID)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"success": true, "user": user})
}

type onboardingBody struct {
	FullName         string `json:"fullName"`
	Bio              string `json:"bio"`
	NativeLanguage   string `json:"nativeLanguage"`
	LearningLanguage string `json:"learningLanguage"`
	Location         string `json:"location"`
}

func (h *AuthHandler) Onboard(c *gin.Context) {
	userID := userIDFromContext(c)
	if userID == nil {
		c.JSON(nethttp.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	var body onboardingBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}
	if body.FullName == "" || body.Bio == "" || body.NativeLanguage == "" || body.LearningLanguage == "" || body.Location == "" {
		c.JSON(nethttp.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	profile := models.OnboardingProfile{
		FullName:         body.FullName,
		Bio:              body.Bio,
		NativeLanguage:   body.NativeLanguage,
		LearningLanguage: body.LearningLanguage,
		Location:         body.Location,
	}
	user, err := h.auth.CompleteOnboarding(c.Request.Context(), *userID, profile)
	if err != nil {
		c.JSON(nethttp.StatusInternalServerError, gin.H{"message": "Internal server error"})
		return
	}

	c.JSON(nethttp.StatusOK, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, userID int64) error {
	token, err := auth.IssueToken(h.jwtSecret, userID)
	if err != nil {
		return err
	}

	c.SetSameSite(nethttp.SameSiteStrictMode)
	c.SetCookie("jwt", token, int(auth.TokenTTL.Seconds()), "/", "", h.secureCookie, true)
	return nil
}
