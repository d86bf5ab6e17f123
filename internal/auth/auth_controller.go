package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/crickside/config"
	"github.com/DhavalSuthar-24/crickside/internal/middleware"
	"github.com/DhavalSuthar-24/crickside/internal/user"
	"github.com/DhavalSuthar-24/crickside/pkg/responses"
	"github.com/DhavalSuthar-24/crickside/pkg/token"
	"github.com/DhavalSuthar-24/crickside/utils"
)

// AuthController handles registration and login. Everything richer (roles,
// refresh tokens, password reset) belongs to the member portal, not this
// service.
type AuthController struct {
	repo   AuthRepository
	config *config.Config
}

// NewAuthController creates a new auth controller.
func NewAuthController(repo AuthRepository, cfg *config.Config) *AuthController {
	return &AuthController{repo: repo, config: cfg}
}

// Register godoc
// @Summary Register a new member
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Signup details"
// @Success 201 {object} responses.SuccessResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	existing, err := ac.repo.FindByEmailOrUsername(req.Email)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if existing == nil {
		existing, err = ac.repo.FindByEmailOrUsername(req.Username)
		if err != nil {
			responses.InternalServerError(c, "")
			return
		}
	}
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "A user with this email or username already exists")
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}

	u := user.User{
		Username: req.Username,
		Email:    req.Email,
		Password: hashed,
		Name:     req.Name,
	}
	if err := ac.repo.CreateUser(&u); err != nil {
		responses.InternalServerError(c, "")
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Registration successful", gin.H{
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	})
}

// Login godoc
// @Summary Log in with email or username
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.ValidationError(c, err)
		return
	}

	u, err := ac.repo.FindByEmailOrUsername(req.LoginIdentifier)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if u == nil || !utils.CheckPassword(u.Password, req.Password) {
		responses.Unauthorized(c, "Invalid credentials")
		return
	}

	accessToken, err := token.GenerateJWT(u.ID, ac.config.JWT.AccessTokenSecret, ac.config.JWT.AccessTokenExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresIn:   ac.config.JWT.AccessTokenExpiryMinutes * 60,
	})
}

// GetProfile godoc
// @Summary Get the authenticated member's profile
// @Tags auth
// @Produce json
// @Success 200 {object} responses.SuccessResponse
// @Router /auth/me [get]
func (ac *AuthController) GetProfile(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	u, err := ac.repo.GetUserByID(userID)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if u == nil {
		responses.NotFound(c, "User")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "", u)
}
