package service

import (
	"context"
	"sync"
	"time"

	"bloghub/internal/app/limiter"
	"bloghub/internal/common"
	"bloghub/internal/domain/model"
	"bloghub/internal/domain/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	byID   map[string]*model.User
	byMail map[string]*model.User

	createErr error
	findErr   error
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: map[string]*model.User{}, byMail: map[string]*model.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byMail[u.Email]; exists {
		return common.ErrConflict
	}
	cpy := *u
	f.byID[u.ID] = &cpy
	f.byMail[u.Email] = &cpy
	return nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byMail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cpy := *u
	return &cpy, nil
}

func (f *fakeUserRepo) delete(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.byID[id]; ok {
		delete(f.byMail, u.Email)
		delete(f.byID, id)
	}
}

type fakeBlogRepo struct {
	mu    sync.Mutex
	blogs map[string]*model.Blog

	createErr error
}

var _ repository.BlogRepository = (*fakeBlogRepo)(nil)

func newFakeBlogRepo() *fakeBlogRepo {
	return &fakeBlogRepo{blogs: map[string]*model.Blog{}}
}

func (f *fakeBlogRepo) Create(_ context.Context, b *model.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	cpy := *b
	f.blogs[b.ID] = &cpy
	return nil
}

func (f *fakeBlogRepo) FindByID(_ context.Context, id string) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cpy := *b
	return &cpy, nil
}

func (f *fakeBlogRepo) List(_ context.Context) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Blog{}
	for _, b := range f.blogs {
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeBlogRepo) ListByAuthor(_ context.Context, authorID string) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []model.Blog{}
	for _, b := range f.blogs {
		if b.AuthorID == authorID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBlogRepo) Update(_ context.Context, b *model.Blog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.blogs[b.ID]
	if !ok {
		return common.ErrNotFound
	}
	stored.Slug = b.Slug
	stored.Title = b.Title
	stored.Content = b.Content
	stored.UpdatedAt = time.Now()
	return nil
}

func (f *fakeBlogRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blogs[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.blogs, id)
	return nil
}

type fakeLimiter struct {
	allowOK  bool
	allowErr error

	failBlocked bool
	failErr     error

	allowCalls   int
	failureCalls int
	successCalls int
}

var _ limiter.Limiter = (*fakeLimiter)(nil)

func (l *fakeLimiter) Allow(context.Context, string, string) (bool, time.Duration, error) {
	l.allowCalls++
	return l.allowOK, 0, l.allowErr
}

func (l *fakeLimiter) Success(context.Context, string, string) error {
	l.successCalls++
	return nil
}

func (l *fakeLimiter) Failure(context.Context, string, string) (bool, time.Duration, error) {
	l.failureCalls++
	return l.failBlocked, 0, l.failErr
}
