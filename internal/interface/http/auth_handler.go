package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"identity-api/internal/application"
	"identity-api/pkg/helpers"
	"identity-api/pkg/response"
	"identity-api/pkg/validation"
)

// AuthHandler serves the public account endpoints: sign-up and sign-in.
type AuthHandler struct {
	Service *application.Service
	Pub     *helpers.RabbitPublisher
	Logger  *logrus.Logger
}

func NewAuthHandler(service *application.Service, pub *helpers.RabbitPublisher, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Service: service, Pub: pub, Logger: logger}
}

type signUpRequest struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Password   string             `json:"password"`
	Telephones []telephonePayload `json:"telephones"`
}

type signUpResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signInResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// SignUp provisions an account. Field semantics are enforced by the domain
// value objects, so the request body is only checked for JSON shape here.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", validation.ToDetails(err))
		return
	}

	res, err := h.Service.SignUp(c.Request.Context(), application.SignUpInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Telephones: toTelephoneInputs(req.Telephones),
	})
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}

	publishEvent(c.Request.Context(), h.Pub, h.Logger, EventSignedUp, res.ID)
	response.Success(c, http.StatusCreated, signUpResponse{
		ID:        res.ID,
		CreatedAt: res.CreatedAt,
		UpdatedAt: res.UpdatedAt,
	}, "user created", nil)
}

// SignIn exchanges email/password for a bearer token. Every credential
// failure surfaces as the same 401.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", validation.ToDetails(err))
		return
	}

	res, err := h.Service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}

	response.Success(c, http.StatusOK, signInResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
	}, "signed in", nil)
}
