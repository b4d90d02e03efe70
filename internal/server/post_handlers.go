package server

import (
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// parsePostFilter reads the listing query parameters. CamelCase aliases
// (perPage, sortBy, sortDirection) are accepted alongside the snake_case
// names; snake_case wins when both are present.
func parsePostFilter(c *fiber.Ctx) repository.PostFilter {
	queryInt := func(keys ...string) int {
		for _, key := range keys {
			if v := c.Query(key); v != "" {
				if n, err := strconv.Atoi(v); err == nil {
					return n
				}
			}
		}
		return 0
	}
	queryString := func(keys ...string) string {
		for _, key := range keys {
			if v := c.Query(key); v != "" {
				return v
			}
		}
		return ""
	}

	var tags []string
	for _, key := range []string{"tags[]", "tags"} {
		for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
			if v := string(raw); v != "" {
				tags = append(tags, v)
			}
		}
		if len(tags) > 0 {
			break
		}
	}

	return repository.PostFilter{
		Author:    c.Query("author"),
		Search:    c.Query("search"),
		Tags:      tags,
		Sort:      queryString("sort", "sortBy"),
		Direction: queryString("direction", "sortDirection"),
		Page:      queryInt("page"),
		PerPage:   queryInt("per_page", "perPage"),
	}
}

// GetPosts returns one filtered, paginated page of posts.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	page, err := s.postService.List(c.UserContext(), parsePostFilter(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	items := make([]postListItem, 0, len(page.Items))
	for _, p := range page.Items {
		items = append(items, newPostListItem(p))
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": items,
		"meta": pageMeta(page),
	})
}

// GetPost returns a single post with its full projection.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.UserContext(), id)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"data": newPostResponse(post),
	})
}

type createPostRequest struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle"`
	Content  string   `json:"content"`
	Author   string   `json:"author"`
	Tags     []string `json:"tags"`
}

type updatePostRequest struct {
	Title       *string  `json:"title"`
	Subtitle    *string  `json:"subtitle"`
	Content     *string  `json:"content"`
	Author      *string  `json:"author"`
	Tags        []string `json:"tags"`
	RemoveImage bool     `json:"remove_image"`
}

// CreatePost accepts either a JSON body or a multipart form with an
// optional image part.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var in validation.CreatePostInput
	var imageContent []byte

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in = validation.CreatePostInput{
			Title:    formValue(form, "title"),
			Subtitle: formValue(form, "subtitle"),
			Content:  formValue(form, "content"),
			Author:   formValue(form, "author"),
			Tags:     formTags(form),
		}
		content, err := readImagePart(c)
		if err != nil {
			return respondServiceError(c, err)
		}
		imageContent = content
	} else {
		var req createPostRequest
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
				models.NewValidationError("Invalid request body"))
		}
		in = validation.CreatePostInput{
			Title:    req.Title,
			Subtitle: req.Subtitle,
			Content:  req.Content,
			Author:   req.Author,
			Tags:     req.Tags,
		}
	}

	post, err := s.postService.Create(c.UserContext(), in, imageContent)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Post created successfully",
		"data":    newPostResponse(post),
	})
}

// UpdatePost applies a partial update. Absent fields keep their stored
// values; present fields replace them.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	var in validation.UpdatePostInput
	var imageContent []byte

	if form, err := c.MultipartForm(); err == nil && form != nil {
		in = validation.UpdatePostInput{
			Title:       formValuePtr(form, "title"),
			Subtitle:    formValuePtr(form, "subtitle"),
			Content:     formValuePtr(form, "content"),
			Author:      formValuePtr(form, "author"),
			RemoveImage: parseFormBool(formValue(form, "remove_image")),
		}
		if _, present := form.Value["tags[]"]; present {
			in.Tags = formTags(form)
		} else if _, present := form.Value["tags"]; present {
			in.Tags = formTags(form)
		}
		content, err := readImagePart(c)
		if err != nil {
			return respondServiceError(c, err)
		}
		imageContent = content
	} else {
		var req updatePostRequest
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusUnprocessableEntity,
				models.NewValidationError("Invalid request body"))
		}
		in = validation.UpdatePostInput{
			Title:       req.Title,
			Subtitle:    req.Subtitle,
			Content:     req.Content,
			Author:      req.Author,
			Tags:        req.Tags,
			RemoveImage: req.RemoveImage,
		}
	}

	post, err := s.postService.Update(c.UserContext(), id, in, imageContent)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post updated successfully",
		"data":    newPostResponse(post),
	})
}

// DeletePost soft-deletes a post and removes its stored image.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c)
	if err != nil {
		return nil
	}

	if err := s.postService.Delete(c.UserContext(), id); err != nil {
		return respondServiceError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

func formValue(form *multipart.Form, key string) string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

func formValuePtr(form *multipart.Form, key string) *string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		v := values[0]
		return &v
	}
	return nil
}

func formTags(form *multipart.Form) []string {
	if values, ok := form.Value["tags[]"]; ok {
		return values
	}
	return form.Value["tags"]
}

func parseFormBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "on", "yes":
		return true
	default:
		return false
	}
}

// readImagePart reads the optional "image" file from a multipart
// request. A missing part returns nil content.
func readImagePart(c *fiber.Ctx) ([]byte, error) {
	header, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}

	file, err := header.Open()
	if err != nil {
		return nil, models.NewStorageError("failed to read uploaded image", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, models.NewStorageError("failed to read uploaded image", err)
	}
	return content, nil
}
