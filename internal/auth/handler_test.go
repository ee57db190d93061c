package auth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/gracepoint/church-admin-backend/internal/auditlog"
	"github.com/gracepoint/church-admin-backend/internal/token"
	"github.com/gracepoint/church-admin-backend/internal/user"
)

func setupRouterWithDB(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user.User{}, &auditlog.AuditLog{}))

	auditSvc := auditlog.NewService(auditlog.NewRepository(db))
	tokens := token.NewService("test-secret", time.Hour)
	h := NewHandler(NewService(user.NewRepository(db), tokens, auditSvc))

	r := gin.New()
	r.POST("/api/auth/login", h.Login)
	r.POST("/api/auth/setup", h.Setup)
	r.POST("/api/auth/forgot-password", h.ForgotPassword)
	return r, db
}

func httpDo(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		b, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSetupThenLogin(t *testing.T) {
	r, db := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/auth/setup", map[string]string{
		"email":    "admin@example.com",
		"password": "s3cret",
		"name":     "Admin",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var u user.User
	require.NoError(t, db.First(&u, "email = ?", "admin@example.com").Error)
	require.Equal(t, user.RoleAdmin, u.Role)
	require.NotEqual(t, "s3cret", u.PasswordHash)

	w = httpDo(r, "POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	require.Equal(t, u.ID, resp.User.ID)
}

func TestSetupRefusedWhenUserExists(t *testing.T) {
	r, db := setupRouterWithDB(t)

	body := map[string]string{"email": "admin@example.com", "password": "s3cret"}
	w := httpDo(r, "POST", "/api/auth/setup", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "POST", "/api/auth/setup", map[string]string{
		"email":    "second@example.com",
		"password": "other",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	var count int64
	require.NoError(t, db.Model(&user.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestLoginWrongPassword(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/auth/setup", map[string]string{
		"email":    "admin@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httpDo(r, "POST", "/api/auth/login", map[string]string{
		"email":    "admin@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Invalid email or password", resp["message"])
	require.Empty(t, resp["token"])
}

func TestLoginUnknownEmail(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/auth/login", map[string]string{
		"email":    "ghost@example.com",
		"password": "whatever",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/auth/forgot-password", map[string]string{
		"email": "ghost@example.com",
	})
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "No account with that email", resp["message"])
}

func TestForgotPasswordStoreFailure(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/auth/setup", map[string]string{
		"email":    "admin@example.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The known account exists but the token store is down, which must
	// not read as a missing account.
	w = httpDo(r, "POST", "/api/auth/forgot-password", map[string]string{
		"email": "admin@example.com",
	})
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "Could not send reset email", resp["message"])
}

func TestLoginMissingFields(t *testing.T) {
	r, _ := setupRouterWithDB(t)

	w := httpDo(r, "POST", "/api/auth/login", map[string]string{"email": "admin@example.com"})
	require.Equal(t, http.StatusBadRequest, w.Code)
}
