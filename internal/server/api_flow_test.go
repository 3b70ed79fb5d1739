package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"murmur/internal/config"
	"murmur/internal/database"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(database.Models()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	s, err := NewServerWithDeps(&config.Config{Port: "0"}, db, nil)
	require.NoError(t, err)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app
}

// request performs a JSON request against an app and decodes the response body.
func request(t *testing.T, app *fiber.App, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	var decoded map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func registerUser(t *testing.T, app *fiber.App, username string) (token string, userID uint) {
	t.Helper()
	status, body := request(t, app, http.MethodPost, "/api/accounts/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "pw1",
	})
	require.Equal(t, http.StatusCreated, status, "register %s: %v", username, body)

	token = body["token"].(string)
	user := body["user"].(map[string]any)
	return token, uint(user["id"].(float64))
}

func TestSocialFlow(t *testing.T) {
	t.Parallel()

	_, app := setupTestServer(t)

	aliceToken, _ := registerUser(t, app, "alice")
	bobToken, bobID := registerUser(t, app, "bob")

	// bob publishes a post
	status, post := request(t, app, http.MethodPost, "/api/posts/", bobToken, map[string]any{
		"title":            "Hello",
		"content":          "first post",
		"publication_year": 2024,
	})
	require.Equal(t, http.StatusCreated, status)
	postID := fmt.Sprintf("%.0f", post["id"].(float64))

	// alice's feed is empty before following anyone
	status, feed := request(t, app, http.MethodGet, "/api/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), feed["count"])

	// alice follows bob
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/api/accounts/follow/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, status)

	// following twice is a conflict
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/api/accounts/follow/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	// bob's post now shows up in alice's feed
	status, feed = request(t, app, http.MethodGet, "/api/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), feed["count"])
	results := feed["results"].([]any)
	require.Len(t, results, 1)
	assert.Equal(t, "Hello", results[0].(map[string]any)["title"])

	// alice cannot edit bob's post
	status, _ = request(t, app, http.MethodPut, "/api/posts/"+postID, aliceToken, map[string]any{
		"title": "hijacked",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// alice's profile counts her one followee
	status, profile := request(t, app, http.MethodGet, "/api/accounts/profile", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), profile["following_count"])
	assert.Equal(t, float64(0), profile["followers_count"])

	// unfollow, then unfollowing again is a conflict
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/api/accounts/unfollow/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/api/accounts/unfollow/%d", bobID), aliceToken, nil)
	assert.Equal(t, http.StatusConflict, status)

	// feed is empty again
	status, feed = request(t, app, http.MethodGet, "/api/feed", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), feed["count"])
}

func TestSelfFollowRejected(t *testing.T) {
	t.Parallel()

	_, app := setupTestServer(t)
	token, userID := registerUser(t, app, "selena")

	status, _ := request(t, app, http.MethodPost, fmt.Sprintf("/api/accounts/follow/%d", userID), token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestTokenLifecycle(t *testing.T) {
	t.Parallel()

	_, app := setupTestServer(t)
	token, _ := registerUser(t, app, "carol")

	// logging in again returns the same key
	status, body := request(t, app, http.MethodPost, "/api/accounts/login", "", map[string]string{
		"username": "carol",
		"password": "pw1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, token, body["token"])

	// logout revokes the key
	status, _ = request(t, app, http.MethodPost, "/api/accounts/logout", token, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodGet, "/api/accounts/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// next login issues a fresh key
	status, body = request(t, app, http.MethodPost, "/api/accounts/login", "", map[string]string{
		"username": "carol",
		"password": "pw1",
	})
	require.Equal(t, http.StatusOK, status)
	assert.NotEqual(t, token, body["token"])
}

func TestCommentFlow(t *testing.T) {
	t.Parallel()

	_, app := setupTestServer(t)
	aliceToken, _ := registerUser(t, app, "ann")
	bobToken, _ := registerUser(t, app, "ben")

	status, post := request(t, app, http.MethodPost, "/api/posts/", bobToken, map[string]any{
		"title":            "Discussion",
		"content":          "talk here",
		"publication_year": 2024,
	})
	require.Equal(t, http.StatusCreated, status)
	postID := fmt.Sprintf("%.0f", post["id"].(float64))

	// ann comments on ben's post
	status, comment := request(t, app, http.MethodPost, "/api/posts/"+postID+"/comments", aliceToken, map[string]any{
		"content": "nice one",
	})
	require.Equal(t, http.StatusCreated, status)
	commentID := fmt.Sprintf("%.0f", comment["id"].(float64))

	// comments are publicly listable
	status, list := request(t, app, http.MethodGet, "/api/posts/"+postID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), list["count"])

	// ben cannot edit ann's comment
	status, _ = request(t, app, http.MethodPut, "/api/posts/"+postID+"/comments/"+commentID, bobToken, map[string]any{
		"content": "rewritten",
	})
	assert.Equal(t, http.StatusForbidden, status)

	// commenting on a missing post is not found
	status, _ = request(t, app, http.MethodPost, "/api/posts/9999/comments", aliceToken, map[string]any{
		"content": "into the void",
	})
	assert.Equal(t, http.StatusNotFound, status)

	// deleting the post removes its comments
	status, _ = request(t, app, http.MethodDelete, "/api/posts/"+postID, bobToken, nil)
	require.Equal(t, http.StatusNoContent, status)
	status, _ = request(t, app, http.MethodGet, "/api/posts/"+postID+"/comments", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAdminModeration(t *testing.T) {
	t.Parallel()

	s, app := setupTestServer(t)
	rootToken, adminID := registerUser(t, app, "root")
	userToken, userID := registerUser(t, app, "mallory")

	// promote root via direct DB write; promotion endpoints need an existing admin
	require.NoError(t, s.db.Table("users").Where("id = ?", adminID).Update("is_admin", true).Error)

	status, post := request(t, app, http.MethodPost, "/api/posts/", userToken, map[string]any{
		"title":            "Spam",
		"content":          "buy stuff",
		"publication_year": 2024,
	})
	require.Equal(t, http.StatusCreated, status)
	postID := fmt.Sprintf("%.0f", post["id"].(float64))

	// a normal user cannot promote anyone
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/promote-admin", userID), userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	// the admin deletes the offending post
	status, _ = request(t, app, http.MethodDelete, "/api/posts/"+postID, rootToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	// and can promote the user
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/api/users/%d/promote-admin", userID), rootToken, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestFollowingListEnvelope(t *testing.T) {
	t.Parallel()

	_, app := setupTestServer(t)
	aliceToken, _ := registerUser(t, app, "alice")
	_, bobID := registerUser(t, app, "bob")
	_, carolID := registerUser(t, app, "carol")

	status, _ := request(t, app, http.MethodPost, fmt.Sprintf("/api/accounts/follow/%d", bobID), aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = request(t, app, http.MethodPost, fmt.Sprintf("/api/accounts/follow/%d", carolID), aliceToken, nil)
	require.Equal(t, http.StatusOK, status)

	// count reflects the full edge set even when a page holds less
	status, body := request(t, app, http.MethodGet, "/api/accounts/following?page_size=1", aliceToken, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(2), body["count"])
	assert.Equal(t, float64(1), body["page"])
	assert.Equal(t, float64(1), body["page_size"])
	assert.Len(t, body["results"], 1)
}
