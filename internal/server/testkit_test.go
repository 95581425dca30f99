package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"newsfeed/internal/cache"
	"newsfeed/internal/config"
	"newsfeed/internal/database"
	"newsfeed/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "unit-test-secret-0123456789abcdef",
		Port:           "0",
		Env:            "test",
		SignupTokenTTL: 15 * time.Minute,
		SweepInterval:  time.Hour,
	}
}

// newTestApp builds a fully-wired Fiber app over an in-memory database.
func newTestApp(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()
	cache.SetClient(nil)

	db, err := database.ConnectTest()
	require.NoError(t, err)

	srv, err := NewServerWithDeps(testConfig(), db, nil)
	require.NoError(t, err)

	app := fiber.New()
	srv.SetupMiddleware(app)
	srv.SetupRoutes(app)
	return srv, app, db
}

// registerUser creates an account directly in the store and returns it with a
// valid bearer token.
func registerUser(t *testing.T, srv *Server, db *gorm.DB, username string) (*models.User, string) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: string(hash),
	}
	require.NoError(t, db.Create(user).Error)

	token, err := srv.authService.GenerateToken(user.ID, user.Username)
	require.NoError(t, err)
	return user, token
}

// doJSON performs a request with an optional bearer token and JSON body.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decodeBody unmarshals the response body into dest.
func decodeBody(t *testing.T, resp *http.Response, dest interface{}) {
	t.Helper()
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, dest), "body: %s", raw)
}
