package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"bloghub/internal/common"
	"bloghub/internal/domain/model"
)

type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	FindByID(ctx context.Context, id string) (*model.Blog, error)
	List(ctx context.Context) ([]model.Blog, error)
	ListByAuthor(ctx context.Context, authorID string) ([]model.Blog, error)
	// Update persists title, content and slug. author_id is written once at
	// Create and never touched again.
	Update(ctx context.Context, blog *model.Blog) error
	Delete(ctx context.Context, id string) error
}

type pgBlogRepository struct {
	db *sql.DB
}

func NewPgBlogRepository(db *sql.DB) BlogRepository {
	return &pgBlogRepository{db: db}
}

const blogSelect = `
	SELECT b.id, b.slug, b.title, b.content, b.author_id, b.created_at, b.updated_at,
	       u.id, u.name, u.email
	FROM blogs b
	JOIN users u ON u.id = b.author_id`

func (r *pgBlogRepository) Create(ctx context.Context, blog *model.Blog) error {
	query := `INSERT INTO blogs (id, slug, title, content, author_id, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.ExecContext(ctx, query,
		blog.ID, blog.Slug, blog.Title, blog.Content, blog.AuthorID, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("pgBlogRepository.Create: %w", err)
	}
	return nil
}

func (r *pgBlogRepository) FindByID(ctx context.Context, id string) (*model.Blog, error) {
	row := r.db.QueryRowContext(ctx, blogSelect+` WHERE b.id = $1`, id)
	blog, err := scanBlog(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgBlogRepository.FindByID: %w", err)
	}
	return blog, nil
}

func (r *pgBlogRepository) List(ctx context.Context) ([]model.Blog, error) {
	rows, err := r.db.QueryContext(ctx, blogSelect+` ORDER BY b.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("pgBlogRepository.List: %w", err)
	}
	return collectBlogs(rows, "List")
}

func (r *pgBlogRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.Blog, error) {
	rows, err := r.db.QueryContext(ctx, blogSelect+` WHERE b.author_id = $1 ORDER BY b.created_at DESC`, authorID)
	if err != nil {
		return nil, fmt.Errorf("pgBlogRepository.ListByAuthor: %w", err)
	}
	return collectBlogs(rows, "ListByAuthor")
}

func (r *pgBlogRepository) Update(ctx context.Context, blog *model.Blog) error {
	query := `UPDATE blogs SET slug = $2, title = $3, content = $4, updated_at = now()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, blog.ID, blog.Slug, blog.Title, blog.Content)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgBlogRepository.Update: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgBlogRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil {
		if isInvalidTextRepresentation(err) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgBlogRepository.Delete: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner) (*model.Blog, error) {
	blog := &model.Blog{Author: &model.Author{}}
	err := row.Scan(
		&blog.ID, &blog.Slug, &blog.Title, &blog.Content, &blog.AuthorID,
		&blog.CreatedAt, &blog.UpdatedAt,
		&blog.Author.ID, &blog.Author.Name, &blog.Author.Email,
	)
	if err != nil {
		return nil, err
	}
	return blog, nil
}

func collectBlogs(rows *sql.Rows, op string) ([]model.Blog, error) {
	defer rows.Close()
	blogs := []model.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("pgBlogRepository.%s: %w", op, err)
		}
		blogs = append(blogs, *blog)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgBlogRepository.%s: %w", op, err)
	}
	return blogs, nil
}
