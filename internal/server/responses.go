package server

import (
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// Serialized projections. Password and token material never appear here.

type userResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Age       int       `json:"age"`
	BirthDate string    `json:"birth_date"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Age:       u.Age,
		BirthDate: u.BirthDate.Format("2006-01-02"),
		Phone:     u.Phone,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

type postResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Content   string    `json:"content"`
	Image     string    `json:"image"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newPostResponse(p *models.Post) postResponse {
	return postResponse{
		ID:        p.ID,
		Title:     p.Title,
		Subtitle:  p.Subtitle,
		Content:   p.Content,
		Image:     p.Image,
		Author:    p.Author,
		Tags:      p.TagNames(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// postListItem is the trimmed projection for listings.
type postListItem struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Image     string    `json:"image"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newPostListItem(p *models.Post) postListItem {
	return postListItem{
		ID:        p.ID,
		Title:     p.Title,
		Image:     p.Image,
		Author:    p.Author,
		Tags:      p.TagNames(),
		UpdatedAt: p.UpdatedAt,
	}
}

func pageMeta(page *repository.PostPage) fiber.Map {
	return fiber.Map{
		"currentPage":  page.CurrentPage,
		"perPage":      page.PerPage,
		"total":        page.Total,
		"lastPage":     page.LastPage,
		"hasMorePages": page.HasMorePages,
	}
}
