package service

import (
	"context"
	"fmt"
	"time"

	"bloghub/internal/common"
	"bloghub/internal/domain/model"
	"bloghub/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type BlogService struct {
	blogRepo repository.BlogRepository
}

func NewBlogService(blogRepo repository.BlogRepository) *BlogService {
	return &BlogService{blogRepo: blogRepo}
}

type CreateBlogRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdateBlogRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

func (s *BlogService) CreateBlog(ctx context.Context, authorID string, req CreateBlogRequest) (*model.Blog, error) {
	if req.Title == "" || req.Content == "" {
		return nil, common.Errorf("title and content are required: %w", common.ErrBadRequest)
	}

	now := time.Now()
	blog := &model.Blog{
		ID:        uuid.NewString(),
		Slug:      slug.Make(req.Title),
		Title:     req.Title,
		Content:   req.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.blogRepo.Create(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to create blog: %w", err)
	}

	// Re-read through the repository so the response carries the author the
	// same way every other read does.
	created, err := s.blogRepo.FindByID(ctx, blog.ID)
	if err != nil {
		return blog, nil
	}
	return created, nil
}

func (s *BlogService) GetBlog(ctx context.Context, id string) (*model.Blog, error) {
	return s.blogRepo.FindByID(ctx, id)
}

func (s *BlogService) ListBlogs(ctx context.Context) ([]model.Blog, error) {
	return s.blogRepo.List(ctx)
}

func (s *BlogService) ListMyBlogs(ctx context.Context, authorID string) ([]model.Blog, error) {
	return s.blogRepo.ListByAuthor(ctx, authorID)
}

// UpdateBlog modifies a post after re-checking ownership against the
// persisted author, never against anything the client sent.
func (s *BlogService) UpdateBlog(ctx context.Context, id, actorID string, req UpdateBlogRequest) (*model.Blog, error) {
	blog, err := s.authorizeMutation(ctx, id, actorID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		blog.Title = *req.Title
		blog.Slug = slug.Make(*req.Title)
	}
	if req.Content != nil && *req.Content != "" {
		blog.Content = *req.Content
	}

	if err := s.blogRepo.Update(ctx, blog); err != nil {
		return nil, fmt.Errorf("failed to update blog: %w", err)
	}

	updated, err := s.blogRepo.FindByID(ctx, blog.ID)
	if err != nil {
		return blog, nil
	}
	return updated, nil
}

func (s *BlogService) DeleteBlog(ctx context.Context, id, actorID string) error {
	if _, err := s.authorizeMutation(ctx, id, actorID); err != nil {
		return err
	}
	if err := s.blogRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return nil
}

// authorizeMutation fetches the post and allows the mutation only for its
// recorded owner. Reads stay public and never come through here.
func (s *BlogService) authorizeMutation(ctx context.Context, id, actorID string) (*model.Blog, error) {
	blog, err := s.blogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actorID == "" || blog.AuthorID != actorID {
		return nil, common.ErrForbidden
	}
	return blog, nil
}
