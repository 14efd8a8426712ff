package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"identity-api/internal/application"
	"identity-api/internal/domain/valueobject"
	"identity-api/pkg/response"
)

// jsonNumber accepts both JSON numbers and numeric strings, preserving the
// decimal text for the telephone value object to parse.
type jsonNumber string

func (n *jsonNumber) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = jsonNumber(s)
		return nil
	}
	*n = jsonNumber(b)
	return nil
}

type telephonePayload struct {
	Number   jsonNumber `json:"number"`
	AreaCode jsonNumber `json:"area_code"`
}

func toTelephoneInputs(payload []telephonePayload) []valueobject.TelephoneInput {
	if payload == nil {
		return nil
	}
	out := make([]valueobject.TelephoneInput, 0, len(payload))
	for _, p := range payload {
		out = append(out, valueobject.TelephoneInput{
			Number:   string(p.Number),
			AreaCode: string(p.AreaCode),
		})
	}
	return out
}

// writeServiceError maps the use-case failure taxonomy onto HTTP statuses.
func writeServiceError(c *gin.Context, logger *logrus.Logger, err error) {
	var ve *valueobject.ValidationError
	switch {
	case errors.As(err, &ve):
		response.Error(c, http.StatusBadRequest, ve.Reason, nil)
	case errors.Is(err, application.ErrNoFieldsToUpdate):
		response.Error(c, http.StatusBadRequest, "no fields to update", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
	case errors.Is(err, application.ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "user not found", nil)
	case errors.Is(err, application.ErrUserAlreadyExists):
		response.Error(c, http.StatusConflict, "user already exists", nil)
	default:
		if logger != nil {
			logger.WithError(err).Error("unexpected service failure")
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
