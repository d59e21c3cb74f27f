package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"employee-manager/internal/config"
	"employee-manager/internal/database"
	"employee-manager/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "handler-test-secret"

// setupTestApp builds a router over a throwaway sqlite database.
func setupTestApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	cfg := &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Path:   filepath.Join(t.TempDir(), "test.db"),
		},
		JWT:      config.JWTConfig{Secret: testSecret, ExpireMinutes: 40},
		Security: config.SecurityConfig{BcryptCost: 4}, // fast hashes in tests
		App:      config.AppSubConfig{PageSize: 10},
	}

	db, err := database.Init(cfg.Database)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	return router.SetupRouter(cfg, db), db
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the "data" field of the success envelope.
func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var envelope struct {
		Code int                    `json:"code"`
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope.Data
}

// signupAndLogin creates an account and returns its token and user id.
func signupAndLogin(t *testing.T, r *gin.Engine, email, password string) (string, uint) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/signup", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decodeData(t, w)
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)

	user, _ := data["user"].(map[string]interface{})
	require.NotNil(t, user)
	id, _ := user["id"].(float64)
	require.NotZero(t, id)

	return token, uint(id)
}
