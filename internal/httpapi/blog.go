package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/example/folio/internal/events"
	"github.com/example/folio/internal/store"
)

func (s *Server) ListPublishedPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(r.Context(), true)
	if err != nil {
		s.writeStoreError(w, r, err, "posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) GetPublishedPost(w http.ResponseWriter, r *http.Request) {
	post, err := s.store.GetPostBySlug(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		s.writeStoreError(w, r, err, "post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListAllPosts includes drafts. ?published=true|false narrows the list.
func (s *Server) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	published, ok := queryBool(w, r, "published")
	if !ok {
		return
	}
	posts, err := s.store.ListPosts(r.Context(), published != nil && *published)
	if err != nil {
		s.writeStoreError(w, r, err, "posts")
		return
	}
	if published != nil && !*published {
		drafts := make([]store.BlogPost, 0, len(posts))
		for _, p := range posts {
			if !p.IsPublished {
				drafts = append(drafts, p)
			}
		}
		posts = drafts
	}
	writeJSON(w, http.StatusOK, posts)
}

func (s *Server) CreatePost(w http.ResponseWriter, r *http.Request) {
	var payload BlogPostCreateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	in := store.BlogPostCreate{
		Title:       payload.Title,
		Content:     payload.Content,
		IsPublished: payload.IsPublished,
	}
	if p, ok := PrincipalFromContext(r.Context()); ok && p.AdminID > 0 {
		in.AuthorID = &p.AdminID
	}
	post, err := s.store.CreatePost(r.Context(), in)
	if err != nil {
		s.writeStoreError(w, r, err, "post")
		return
	}
	s.publish(r.Context(), events.Created, resBlogPosts, post.ID)
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var payload BlogPostUpdateRequest
	if !s.decodeJSON(w, r, &payload) {
		return
	}
	post, err := s.store.UpdatePost(r.Context(), id, payload.toStore())
	if err != nil {
		s.writeStoreError(w, r, err, "post")
		return
	}
	s.publish(r.Context(), events.Updated, resBlogPosts, id)
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) DeletePost(w http.ResponseWriter, r *http.Request) {
	s.deleteResource(w, r, resBlogPosts, "post", s.store.DeletePost)
}
