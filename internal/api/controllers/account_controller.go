package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wayfare/internal/models/request_models"
	"wayfare/internal/models/response_models"
	"wayfare/internal/services"
	"wayfare/pkg/utils"
)

type AccountController struct {
	accountService services.AccountServiceInterface
}

func NewAccountController(accountService services.AccountServiceInterface) *AccountController {
	return &AccountController{
		accountService: accountService,
	}
}

// SignUp godoc
// @Summary Create an account
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.SignUpRequest true "Email and password"
// @Success 200 {object} utils.APIResponse
// @Router /accounts/signup [post]
func (a *AccountController) SignUp(c *gin.Context) {
	var req request_models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Valid email and password (min 8 chars) are required")
		return
	}

	if err := a.accountService.CreateAccount(c.Request.Context(), req); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Account created successfully")
}

// Login godoc
// @Summary Log in and receive a JWT
// @Tags Account
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Credentials"
// @Success 200 {object} response_models.LoginResponse
// @Router /accounts/login [post]
func (a *AccountController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Email and password are required")
		return
	}

	token, err := a.accountService.Login(req, c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.LoginResponse{Token: token}, "Logged in successfully")
}

// Me godoc
// @Summary Get the authenticated account's profile
// @Tags Account
// @Produce json
// @Success 200 {object} response_models.AccountResponse
// @Security BearerAuth
// @Router /accounts/me [get]
func (a *AccountController) Me(c *gin.Context) {
	account, err := a.accountService.GetAccountById(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, account, "Account fetched successfully")
}
