// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development only.
package seed

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// tagPool is the vocabulary seeded posts draw their tags from. Kept
// small so posts overlap and tag filters return useful result sets.
var tagPool = []string{
	"go", "databases", "web", "testing", "devops", "cloud",
	"architecture", "performance", "security", "tooling",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Factory{db: db, rng: rand.New(rand.NewSource(seed))}
}

// CreateUser constructs and persists a sample user. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	birthDate := gofakeit.DateRange(
		time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2002, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	user := &models.User{
		Name:      gofakeit.Name(),
		Age:       time.Now().Year() - birthDate.Year(),
		BirthDate: birthDate,
		Phone:     gofakeit.Phone(),
		Email:     gofakeit.Email(),
		Password:  string(hashed),
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// BuildPost constructs a tagged post without persisting it. The
// created_at spread keeps listings looking organic.
func (f *Factory) BuildPost(author string, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    strings.TrimSuffix(gofakeit.Sentence(5), "."),
		Subtitle: strings.TrimSuffix(gofakeit.Sentence(8), "."),
		Content:  gofakeit.Paragraph(2, 4, 8, "\n\n"),
		Author:   author,
	}

	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	post.CreatedAt = time.Now().
		Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePost persists a built post and attaches 1-3 random tags from
// the pool, reusing existing tag rows by normalized name.
func (f *Factory) CreatePost(author string, overrides ...func(*models.Post)) (*models.Post, error) {
	post := f.BuildPost(author, overrides...)
	if err := f.db.Omit("Tags").Create(post).Error; err != nil {
		return nil, err
	}

	names := f.pickTags(1 + f.rng.Intn(3))
	tags := make([]models.Tag, 0, len(names))
	for _, name := range service.NormalizeTags(names) {
		tag := models.Tag{Name: name}
		if err := f.db.Where("name = ?", name).FirstOrCreate(&tag).Error; err != nil {
			return nil, fmt.Errorf("tag %q: %w", name, err)
		}
		tags = append(tags, tag)
	}
	if err := f.db.Model(post).Association("Tags").Replace(&tags); err != nil {
		return nil, err
	}
	return post, nil
}

func (f *Factory) pickTags(n int) []string {
	picked := make([]string, 0, n)
	perm := f.rng.Perm(len(tagPool))
	for _, idx := range perm[:n] {
		picked = append(picked, tagPool[idx])
	}
	return picked
}
