package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"streamify/internal/mocks"
	"streamify/internal/models"
	"streamify/internal/services"
)

const testJWTSecret = "test-secret"

func setupAuthRouter(users *mocks.MockUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAuthHandler(services.NewAuthService(users), testJWTSecret, false)
	r := gin.New()
	r.POST("/auth/signup", handler.Signup)
	r.POST("/auth/login", handler.Login)
	r.POST("/auth/logout", handler.Logout)
	return r
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSignupMissingFields(t *testing.T) {
	router := setupAuthRouter(new(mocks.MockUserRepository))

	rec := postJSON(t, router, "/auth/signup", map[string]string{"email": "a@example.com"})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupShortPassword(t *testing.T) {
	router := setupAuthRouter(new(mocks.MockUserRepository))

	rec := postJSON(t, router, "/auth/signup", map[string]string{
		"email":    "a@example.com",
		"password": "12345",
		"fullName": "Alice",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupInvalidEmail(t *testing.T) {
	router := setupAuthRouter(new(mocks.MockUserRepository))

	rec := postJSON(t, router, "/auth/signup", map[string]string{
		"email":    "not-an-email",
		"password": "secret123",
		"fullName": "Alice",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupDuplicateEmail(t *testing.T) {
	users := new(mocks.MockUserRepository)
	router := setupAuthRouter(users)

	users.On("GetByEmail", mock.Anything, "taken@example.com").Return(&models.User{ID: 1}, nil).Once()

	rec := postJSON(t, router, "/auth/signup", map[string]string{
		"email":    "taken@example.com",
		"password": "secret123",
		"fullName": "Alice",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignupSetsSessionCookie(t *testing.T) {
	users := new(mocks.MockUserRepository)
	router := setupAuthRouter(users)

	users.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, sql.ErrNoRows).Once()
	users.On("Create", mock.Anything, "new@example.com", mock.Anything, "Alice", mock.Anything).
		Return(&models.User{ID: 7, Email: "new@example.com", FullName: "Alice"}, nil).Once()

	rec := postJSON(t, router, "/auth/signup", map[string]string{
		"email":    "new@example.com",
		"password": "secret123",
		"fullName": "Alice",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	cookies := rec.Result().Cookies()
	var session *http.Cookie
	for _, ck := range cookies {
		if ck.Name == "jwt" {
			session = ck
		}
	}
	require.NotNil(t, session)
	require.NotEmpty(t, session.Value)
	require.True(t, session.HttpOnly)
}

func TestLoginInvalidCredentials(t *testing.T) {
	users := new(mocks.MockUserRepository)
	router := setupAuthRouter(users)

	users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, sql.ErrNoRows).Once()

	rec := postJSON(t, router, "/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	router := setupAuthRouter(new(mocks.MockUserRepository))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "jwt", cookies[0].Name)
	require.Empty(t, cookies[0].Value)
}
