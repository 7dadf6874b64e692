package handler

import (
	"encoding/json"
	"net/http"

	"bloghub/internal/api/middleware"
	"bloghub/internal/app/service"
	"bloghub/internal/common"
	"bloghub/internal/domain/repository"

	"github.com/go-chi/chi/v5"
)

type BlogHandler struct {
	blogService *service.BlogService
	userRepo    repository.UserRepository
}

func NewBlogHandler(blogService *service.BlogService, userRepo repository.UserRepository) *BlogHandler {
	return &BlogHandler{blogService: blogService, userRepo: userRepo}
}

func (h *BlogHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listBlogs)       // GET /api/v1/blogs
	r.Get("/{blogID}", h.getBlog) // GET /api/v1/blogs/{id}

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator(h.userRepo))
		protected.Post("/", h.createBlog)
		protected.Get("/mine", h.listMyBlogs)
		protected.Put("/{blogID}", h.updateBlog)
		protected.Delete("/{blogID}", h.deleteBlog)
	})
}

func (h *BlogHandler) createBlog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req service.CreateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	blog, err := h.blogService.CreateBlog(r.Context(), user.ID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, blog)
}

func (h *BlogHandler) listBlogs(w http.ResponseWriter, r *http.Request) {
	blogs, err := h.blogService.ListBlogs(r.Context())
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) listMyBlogs(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	blogs, err := h.blogService.ListMyBlogs(r.Context(), user.ID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, blogs)
}

func (h *BlogHandler) getBlog(w http.ResponseWriter, r *http.Request) {
	blog, err := h.blogService.GetBlog(r.Context(), chi.URLParam(r, "blogID"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) updateBlog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	var req service.UpdateBlogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	blog, err := h.blogService.UpdateBlog(r.Context(), chi.URLParam(r, "blogID"), user.ID, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, blog)
}

func (h *BlogHandler) deleteBlog(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	if err := h.blogService.DeleteBlog(r.Context(), chi.URLParam(r, "blogID"), user.ID); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), common.ClientMessage(err))
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "Blog deleted"})
}
