package blog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rahayucraft/studio-management/internal"
	blogmodel "github.com/rahayucraft/studio-management/internal/core/datamodel/blog"
	"github.com/rahayucraft/studio-management/internal/notifications"
	"github.com/rahayucraft/studio-management/internal/storage"
	"github.com/rahayucraft/studio-management/internal/store"
)

type Service struct {
	store  *store.Store
	logger *slog.Logger
}

func NewService(st *store.Store, logger *slog.Logger) *Service {
	return &Service{store: st, logger: logger}
}

func (s *Service) List(ctx context.Context) []blogmodel.Post {
	var out []blogmodel.Post
	s.store.View(func(st *store.State) {
		out = append([]blogmodel.Post{}, st.BlogPosts...)
	})
	return out
}

func (s *Service) Get(ctx context.Context, id int64) (blogmodel.Post, internal.Outcome) {
	var (
		found   blogmodel.Post
		outcome = internal.OutcomeNotFound
	)
	s.store.View(func(st *store.State) {
		if p := st.FindBlogPost(id); p != nil {
			found = *p
			outcome = internal.OutcomeOK
		}
	})
	return found, outcome
}

func (s *Service) Create(ctx context.Context, dto CreatePostDTO) (blogmodel.Post, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("blog post validation failed", "error", err, "post_id", dto.ID)
		return blogmodel.Post{}, err
	}

	var (
		created   blogmodel.Post
		duplicate bool
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		if st.FindBlogPost(dto.ID) != nil {
			duplicate = true
			return nil
		}
		status := dto.Status
		if status == "" {
			status = blogmodel.StatusDraft
		}
		created = blogmodel.Post{
			ID:      dto.ID,
			Title:   dto.Title,
			Content: dto.Content,
			Author:  firstNonEmpty(dto.Author, actor),
			Status:  status,
			Tags:    dto.Tags,
		}
		if created.Status == blogmodel.StatusPublished {
			created.PublishedAt = store.Today()
		}
		st.BlogPosts = append(st.BlogPosts, created)
		notifications.RecordMutation(st, actor, "blog post", created.ID, "create")
		return []storage.Key{storage.KeyBlogPosts, storage.KeyActivityLog}
	})

	if duplicate {
		return blogmodel.Post{}, internal.NewConflictError(
			fmt.Sprintf("blog post id %d already exists", dto.ID), internal.ErrCodeDuplicateID)
	}

	s.logger.Info("blog post created", "post_id", created.ID, "status", created.Status)
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, dto UpdatePostDTO) (blogmodel.Post, internal.Outcome) {
	var (
		updated blogmodel.Post
		outcome = internal.OutcomeNotFound
	)
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		p := st.FindBlogPost(id)
		if p == nil {
			return nil
		}
		outcome = internal.OutcomeOK
		wasPublished := p.Status == blogmodel.StatusPublished
		applyPostPatch(p, dto)
		if !wasPublished && p.Status == blogmodel.StatusPublished && p.PublishedAt == "" {
			p.PublishedAt = store.Today()
		}
		notifications.RecordMutation(st, actor, "blog post", p.ID, "update")
		updated = *p
		return []storage.Key{storage.KeyBlogPosts, storage.KeyActivityLog}
	})

	if !outcome.OK() {
		s.logger.Warn("blog post not found for update", "post_id", id)
	}
	return updated, outcome
}

func (s *Service) Delete(ctx context.Context, id int64) internal.Outcome {
	outcome := internal.OutcomeNotFound
	actor := internal.ActorName(ctx)
	s.store.Update(ctx, func(st *store.State) []storage.Key {
		for i := range st.BlogPosts {
			if st.BlogPosts[i].ID == id {
				st.BlogPosts = append(st.BlogPosts[:i], st.BlogPosts[i+1:]...)
				outcome = internal.OutcomeOK
				notifications.RecordMutation(st, actor, "blog post", id, "delete")
				return []storage.Key{storage.KeyBlogPosts, storage.KeyActivityLog}
			}
		}
		return nil
	})

	if !outcome.OK() {
		s.logger.Warn("blog post not found for delete", "post_id", id)
	}
	return outcome
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
