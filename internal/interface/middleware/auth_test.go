package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-api/pkg/helpers"
)

func protectedRouter(tokens *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(tokens), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id": c.GetString(CtxUserIDKey),
			"email":   c.GetString(CtxUserEmailKey),
		})
	})
	return r
}

func doGet(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthAcceptsValidBearer(t *testing.T) {
	tokens := helpers.NewJWTManager("test-secret", time.Hour)
	token, _, err := tokens.Sign("user-1", "user@example.com")
	require.NoError(t, err)

	w := doGet(protectedRouter(tokens), "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body["user_id"])
	assert.Equal(t, "user@example.com", body["email"])
}

func TestAuthRejectsUniformly(t *testing.T) {
	tokens := helpers.NewJWTManager("test-secret", time.Hour)
	valid, _, err := tokens.Sign("user-1", "user@example.com")
	require.NoError(t, err)
	expired, _, err := helpers.NewJWTManager("test-secret", -time.Minute).Sign("user-1", "user@example.com")
	require.NoError(t, err)
	foreign, _, err := helpers.NewJWTManager("other-secret", time.Hour).Sign("user-1", "user@example.com")
	require.NoError(t, err)

	r := protectedRouter(tokens)

	cases := map[string]string{
		"missing header": "",
		"wrong scheme":   "Token " + valid,
		"lowercase bearer": "bearer " + valid,
		"scheme only":    "Bearer",
		"garbage token":  "Bearer not-a-token",
		"expired token":  "Bearer " + expired,
		"tampered token": "Bearer " + foreign,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			w := doGet(r, header)
			require.Equal(t, http.StatusUnauthorized, w.Code)

			// Every rejection carries the same opaque message.
			var body struct {
				Message string `json:"message"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "unauthorized", body.Message)
		})
	}
}
