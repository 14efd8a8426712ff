package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"identity-api/internal/application"
	"identity-api/internal/domain/entity"
	"identity-api/internal/interface/middleware"
	"identity-api/pkg/helpers"
	"identity-api/pkg/response"
	"identity-api/pkg/validation"
)

// UserHandler serves the authenticated profile endpoints. Profiles are
// cached in redis on read and invalidated on every mutation.
type UserHandler struct {
	Service  *application.Service
	Cache    *redis.Client
	CacheTTL time.Duration
	Pub      *helpers.RabbitPublisher
	Logger   *logrus.Logger
}

func NewUserHandler(service *application.Service, cache *redis.Client, cacheTTL time.Duration, pub *helpers.RabbitPublisher, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Service: service, Cache: cache, CacheTTL: cacheTTL, Pub: pub, Logger: logger}
}

type profileResponse struct {
	ID         string             `json:"id"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Telephones []entity.Telephone `json:"telephones"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

type maskedUserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// updateProfileRequest distinguishes absent fields (nil) from explicit
// values, including an explicit empty telephone list.
type updateProfileRequest struct {
	Name       *string             `json:"name"`
	Email      *string             `json:"email"`
	Password   *string             `json:"password"`
	Telephones *[]telephonePayload `json:"telephones"`
}

type deleteResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func profileCacheKey(userID string) string {
	return "user:profile:" + userID
}

// GetProfile returns the caller's own profile, read through the cache.
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)
	ctx := c.Request.Context()

	if h.Cache != nil {
		var cached profileResponse
		hit, err := helpers.RedisGetJSON(ctx, h.Cache, profileCacheKey(userID), &cached)
		if err != nil && h.Logger != nil {
			h.Logger.WithError(err).Warn("profile cache read failed")
		}
		if hit {
			response.Success(c, http.StatusOK, cached, "profile", nil)
			return
		}
	}

	p, err := h.Service.GetProfile(ctx, userID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}

	res := toProfileResponse(p)
	if h.Cache != nil {
		if err := helpers.RedisSetJSON(ctx, h.Cache, profileCacheKey(userID), res, h.CacheTTL); err != nil && h.Logger != nil {
			h.Logger.WithError(err).Warn("profile cache write failed")
		}
	}
	response.Success(c, http.StatusOK, res, "profile", nil)
}

// ListUsers lists every other account with name and email redacted.
func (h *UserHandler) ListUsers(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	users, err := h.Service.ListOthers(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}

	out := make([]maskedUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, maskedUserResponse{
			ID:        u.ID,
			Name:      u.Name,
			Email:     u.Email,
			CreatedAt: u.CreatedAt,
			UpdatedAt: u.UpdatedAt,
		})
	}
	response.Success(c, http.StatusOK, out, "users", gin.H{"count": len(out)})
}

// UpdateProfile applies a partial profile change for the caller.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", validation.ToDetails(err))
		return
	}

	in := application.UpdateInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	}
	if req.Telephones != nil {
		in.Telephones = toTelephoneInputs(*req.Telephones)
	}

	p, err := h.Service.UpdateProfile(c.Request.Context(), userID, in)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}

	h.invalidate(c, userID)
	response.Success(c, http.StatusOK, toProfileResponse(p), "profile updated", nil)
}

// DeleteProfile removes the caller's account.
func (h *UserHandler) DeleteProfile(c *gin.Context) {
	userID := c.GetString(middleware.CtxUserIDKey)

	deleted, err := h.Service.DeleteAccount(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, h.Logger, err)
		return
	}

	h.invalidate(c, userID)
	publishEvent(c.Request.Context(), h.Pub, h.Logger, EventDeleted, deleted.ID)
	response.Success(c, http.StatusOK, deleteResponse{ID: deleted.ID, Name: deleted.Name}, "account deleted", nil)
}

func (h *UserHandler) invalidate(c *gin.Context, userID string) {
	if h.Cache == nil {
		return
	}
	if err := helpers.RedisDel(c.Request.Context(), h.Cache, profileCacheKey(userID)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("profile cache invalidation failed")
	}
}

func toProfileResponse(p *application.Profile) profileResponse {
	tels := p.Telephones
	if tels == nil {
		tels = []entity.Telephone{}
	}
	return profileResponse{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Telephones: tels,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
