package blog

import (
	"github.com/rahayucraft/studio-management/internal"
	blogmodel "github.com/rahayucraft/studio-management/internal/core/datamodel/blog"
)

type CreatePostDTO struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	Content string   `json:"content,omitempty"`
	Author  string   `json:"author,omitempty"`
	Status  string   `json:"status,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

func (dto CreatePostDTO) Validate() error {
	if dto.ID <= 0 {
		return internal.NewValidationError("id must be a positive integer", internal.ErrCodeInvalidID)
	}
	if dto.Title == "" {
		return internal.NewValidationError("title is required", internal.ErrCodeValidationFailed)
	}
	if dto.Status != "" && dto.Status != blogmodel.StatusDraft && dto.Status != blogmodel.StatusPublished {
		return internal.NewValidationError("status must be draft or published", internal.ErrCodeValidationFailed)
	}
	return nil
}

type UpdatePostDTO struct {
	Title   *string   `json:"title,omitempty"`
	Content *string   `json:"content,omitempty"`
	Author  *string   `json:"author,omitempty"`
	Status  *string   `json:"status,omitempty"`
	Tags    *[]string `json:"tags,omitempty"`
}

func applyPostPatch(p *blogmodel.Post, dto UpdatePostDTO) {
	if dto.Title != nil {
		p.Title = *dto.Title
	}
	if dto.Content != nil {
		p.Content = *dto.Content
	}
	if dto.Author != nil {
		p.Author = *dto.Author
	}
	if dto.Status != nil {
		p.Status = *dto.Status
	}
	if dto.Tags != nil {
		p.Tags = *dto.Tags
	}
}
