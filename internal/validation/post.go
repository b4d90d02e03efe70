package validation

import (
	"fmt"
	"strings"
)

const (
	maxTitleLength    = 255
	maxSubtitleLength = 255
	maxAuthorLength   = 255
	maxTagLength      = 50
)

// CreatePostInput is the untrusted create-post payload before validation.
type CreatePostInput struct {
	Title    string
	Subtitle string
	Content  string
	Author   string
	Tags     []string
}

// UpdatePostInput is the untrusted update-post payload before validation.
// Nil pointers mean the field was absent from the request.
type UpdatePostInput struct {
	Title       *string
	Subtitle    *string
	Content     *string
	Author      *string
	Tags        []string
	RemoveImage bool
	HasImage    bool
}

// ValidateCreatePost returns field-level messages for every invalid field.
func ValidateCreatePost(in CreatePostInput) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(in.Title) == "" {
		fields["title"] = "title is required"
	} else if len(in.Title) > maxTitleLength {
		fields["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
	}
	if len(in.Subtitle) > maxSubtitleLength {
		fields["subtitle"] = fmt.Sprintf("subtitle must be at most %d characters", maxSubtitleLength)
	}
	if strings.TrimSpace(in.Content) == "" {
		fields["content"] = "content is required"
	}
	if strings.TrimSpace(in.Author) == "" {
		fields["author"] = "author is required"
	} else if len(in.Author) > maxAuthorLength {
		fields["author"] = fmt.Sprintf("author must be at most %d characters", maxAuthorLength)
	}
	if len(in.Tags) == 0 {
		fields["tags"] = "at least one tag is required"
	} else if msg := validateTagNames(in.Tags); msg != "" {
		fields["tags"] = msg
	}

	return fields
}

// ValidateUpdatePost returns field-level messages for every invalid field.
// Absent fields are not validated.
func ValidateUpdatePost(in UpdatePostInput) map[string]string {
	fields := map[string]string{}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			fields["title"] = "title cannot be empty"
		} else if len(*in.Title) > maxTitleLength {
			fields["title"] = fmt.Sprintf("title must be at most %d characters", maxTitleLength)
		}
	}
	if in.Subtitle != nil && len(*in.Subtitle) > maxSubtitleLength {
		fields["subtitle"] = fmt.Sprintf("subtitle must be at most %d characters", maxSubtitleLength)
	}
	if in.Content != nil && strings.TrimSpace(*in.Content) == "" {
		fields["content"] = "content cannot be empty"
	}
	if in.Author != nil {
		if strings.TrimSpace(*in.Author) == "" {
			fields["author"] = "author cannot be empty"
		} else if len(*in.Author) > maxAuthorLength {
			fields["author"] = fmt.Sprintf("author must be at most %d characters", maxAuthorLength)
		}
	}
	if in.Tags != nil {
		if len(in.Tags) == 0 {
			fields["tags"] = "at least one tag is required"
		} else if msg := validateTagNames(in.Tags); msg != "" {
			fields["tags"] = msg
		}
	}
	if in.RemoveImage && in.HasImage {
		fields["remove_image"] = "remove_image and a new image are mutually exclusive"
	}

	return fields
}

func validateTagNames(tags []string) string {
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			return "tags cannot be empty"
		}
		if len(tag) > maxTagLength {
			return fmt.Sprintf("tags must be at most %d characters", maxTagLength)
		}
	}
	return ""
}
