package controllers

import (
	"geocheckin/dto"
	"geocheckin/response"
	"geocheckin/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// Register godoc
// @Summary  Create an account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.RegisterInput true "credentials"
// @Success  201 {object} response.Response
// @Router   /auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Please fill all the fields")
		return
	}

	user, err := ac.auth.Register(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Created(c, services.ToUserResponse(user))
}

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.LoginInput true "credentials"
// @Success  200 {object} response.Response
// @Router   /auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Please fill all the fields")
		return
	}

	resp, err := ac.auth.Login(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, resp)
}

// GoogleLogin godoc
// @Summary  Sign in with a Google ID token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    body body dto.GoogleLoginInput true "token"
// @Success  200 {object} response.Response
// @Router   /auth/google [post]
func (ac *AuthController) GoogleLogin(c *gin.Context) {
	var input dto.GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Token is required")
		return
	}

	resp, err := ac.auth.LoginWithGoogle(c.Request.Context(), input.TokenID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, resp)
}

func (ac *AuthController) Logout(c *gin.Context) {
	for _, cookie := range c.Request.Cookies() {
		c.SetCookie(cookie.Name, "", -1, "/", "", cookie.Secure, cookie.HttpOnly)
	}
	response.Success(c, nil)
}

// Profile godoc
// @Summary  Current user
// @Tags     auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Response
// @Router   /profile [get]
func (ac *AuthController) Profile(c *gin.Context) {
	userID, _, err := currentUser(c)
	if err != nil {
		_ = c.Error(err)
		return
	}

	profile, err := ac.auth.Profile(c.Request.Context(), userID)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, profile)
}
