package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrc-edu/matricula-backend/internal/app/models/dto"
	"github.com/mrc-edu/matricula-backend/internal/pkg/apperrors"
)

func handleError(t *testing.T, err error) (*httptest.ResponseRecorder, *dto.ErrorResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest("GET", "/test", nil)

	HandleAPIError(c, err)

	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder, &body
}

func TestHandleAPIErrorNotFound(t *testing.T) {
	recorder, body := handleError(t, apperrors.NewResourceNotFoundError("Estudiante no encontrado"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, dto.ErrorCodeResourceNotFound, body.Error.Code)
	assert.Equal(t, "Estudiante no encontrado", body.Error.Message)
}

func TestHandleAPIErrorConflict(t *testing.T) {
	recorder, body := handleError(t, apperrors.NewConflictError("Apoderado ya registrado"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, dto.ErrorCodeResourceAlreadyExists, body.Error.Code)
}

func TestHandleAPIErrorCapacityExceeded(t *testing.T) {
	recorder, body := handleError(t, apperrors.NewCapacityExceededError("No hay vacantes disponibles en esta sección"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, dto.ErrorCodeCapacityExceeded, body.Error.Code)
	assert.Equal(t, "No hay vacantes disponibles en esta sección", body.Error.Message)
}

func TestHandleAPIErrorDuplicateEnrollment(t *testing.T) {
	recorder, body := handleError(t, apperrors.NewDuplicateEnrollmentError("El estudiante ya está matriculado en este año académico"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, dto.ErrorCodeDuplicateEnrollment, body.Error.Code)
}

func TestHandleAPIErrorValidation(t *testing.T) {
	recorder, body := handleError(t, apperrors.NewValidationError("Estado inválido: Aprobado"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, dto.ErrorCodeValidationFailed, body.Error.Code)
}

func TestHandleAPIErrorInvalidCredentials(t *testing.T) {
	recorder, body := handleError(t, apperrors.ErrInvalidCredentials)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, dto.ErrorCodeInvalidCredentials, body.Error.Code)
}

func TestHandleAPIErrorUnknownIsInternal(t *testing.T) {
	recorder, body := handleError(t, errors.New("connection reset"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, dto.ErrorCodeInternalServer, body.Error.Code)
	// Internal details never leak to the client.
	assert.Equal(t, "Error interno del servidor", body.Error.Message)
}

func TestHandleAPIErrorWrappedSentinel(t *testing.T) {
	wrapped := apperrors.NewResourceNotFoundError("Matrícula no encontrada")
	recorder, _ := handleError(t, wrapped)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
