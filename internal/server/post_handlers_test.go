package server

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postPayload(title string) map[string]any {
	return map[string]any{
		"title":   title,
		"content": "Some long-form content about " + title,
		"author":  "alice",
		"tags":    []string{" Go ", "Backend", "go"},
	}
}

func createPost(t *testing.T, app *fiber.App, token, title string) map[string]any {
	t.Helper()
	resp := doJSON(t, app, http.MethodPost, "/api/posts", postPayload(title), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	return data
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	for x := 0; x < 64; x++ {
		for y := 0; y < 48; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

// doMultipart sends a multipart form request with optional image bytes.
func doMultipart(t *testing.T, app *fiber.App, method, path string, fields map[string][]string, imageContent []byte, token string) *http.Response {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)
	for key, values := range fields {
		for _, v := range values {
			require.NoError(t, writer.WriteField(key, v))
		}
	}
	if imageContent != nil {
		part, err := writer.CreateFormFile("image", "upload.png")
		require.NoError(t, err)
		_, err = part.Write(imageContent)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestCreatePostRequiresAuth(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodPost, "/api/posts", postPayload("Nope"), "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreatePostNormalizesTags(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")

	data := createPost(t, app, token, "My Post")
	assert.Equal(t, "My Post", data["title"])
	assert.Equal(t, []any{"go", "backend"}, data["tags"])
}

func TestCreatePostValidationReturns422(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")

	resp := doJSON(t, app, http.MethodPost, "/api/posts", map[string]any{}, token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "title")
	assert.Contains(t, fields, "content")
}

func TestCreatePostMultipartWithImage(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")

	resp := doMultipart(t, app, http.MethodPost, "/api/posts", map[string][]string{
		"title":   {"Illustrated"},
		"content": {"A post with a picture."},
		"author":  {"alice"},
		"tags[]":  {"Art", "go"},
	}, testPNG(t), token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	img, _ := data["image"].(string)
	assert.NotEmpty(t, img)
	assert.Equal(t, []any{"art", "go"}, data["tags"])
}

func TestGetPostsListProjectionAndMeta(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")
	createPost(t, app, token, "First")
	createPost(t, app, token, "Second")

	resp := doJSON(t, app, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data, ok := body["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	item, ok := data[0].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, item, "title")
	assert.Contains(t, item, "updatedAt")
	assert.NotContains(t, item, "content")
	assert.NotContains(t, item, "subtitle")

	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 1, meta["currentPage"])
	assert.EqualValues(t, 10, meta["perPage"])
	assert.EqualValues(t, 2, meta["total"])
	assert.EqualValues(t, 1, meta["lastPage"])
	assert.Equal(t, false, meta["hasMorePages"])
}

func TestGetPostsCamelCaseAliases(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")
	for i := 0; i < 3; i++ {
		createPost(t, app, token, fmt.Sprintf("Post %d", i))
	}

	resp := doJSON(t, app, http.MethodGet, "/api/posts?perPage=2&sortBy=title&sortDirection=asc", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 2, meta["perPage"])
	assert.EqualValues(t, 2, meta["lastPage"])
	assert.Equal(t, true, meta["hasMorePages"])

	data := body["data"].([]any)
	first := data[0].(map[string]any)
	assert.Equal(t, "Post 0", first["title"])
}

func TestGetPostsTagFilter(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")

	createPost(t, app, token, "Tagged go")

	other := postPayload("Tagged food")
	other["tags"] = []string{"food"}
	resp := doJSON(t, app, http.MethodPost, "/api/posts", other, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/posts?tags[]=food&tags[]=art", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	meta := body["meta"].(map[string]any)
	assert.EqualValues(t, 1, meta["total"])
}

func TestGetPostDetail(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")
	created := createPost(t, app, token, "Detail")

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%v", created["id"]), nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "Detail", data["title"])
	assert.Contains(t, data, "content")
	assert.Contains(t, data, "createdAt")
}

func TestGetPostMissingReturns404(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/posts/9999", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPostMalformedIDReturns404(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/posts/banana", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetPostNonPositiveIDReturns404(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodGet, "/api/posts/0", nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdatePostPartial(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")
	created := createPost(t, app, token, "Before")

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%v", created["id"]), map[string]any{
		"title": "After",
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, "After", data["title"])
	assert.Equal(t, created["content"], data["content"])
	assert.Equal(t, created["tags"], data["tags"])
}

func TestUpdatePostReplacesTags(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")
	created := createPost(t, app, token, "Retagged")

	resp := doJSON(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%v", created["id"]), map[string]any{
		"tags": []string{"Databases"},
	}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	data := body["data"].(map[string]any)
	assert.Equal(t, []any{"databases"}, data["tags"])
}

func TestUpdatePostRemoveImageAndUploadConflict(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")
	created := createPost(t, app, token, "Conflicted")

	resp := doMultipart(t, app, http.MethodPut, fmt.Sprintf("/api/posts/%v", created["id"]), map[string][]string{
		"remove_image": {"true"},
	}, testPNG(t), token)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	body := decodeBody(t, resp)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "remove_image")
}

func TestUpdatePostMissingReturns404(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")

	resp := doJSON(t, app, http.MethodPut, "/api/posts/9999", map[string]any{"title": "X"}, token)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePostThenGone(t *testing.T) {
	_, app := newTestServer(t)
	token := registerAndLogin(t, app, "ada@example.com")
	created := createPost(t, app, token, "Doomed")

	resp := doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/posts/%v", created["id"]), nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%v", created["id"]), nil, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeletePostRequiresAuth(t *testing.T) {
	_, app := newTestServer(t)

	resp := doJSON(t, app, http.MethodDelete, "/api/posts/1", nil, "")
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
