package store

import (
	"context"
	"fmt"
)

const blogColumns = "id, title, slug, content, author_id, is_published, created_at, updated_at"

func (s *Store) ListPosts(ctx context.Context, publishedOnly bool) ([]BlogPost, error) {
	query := "SELECT " + blogColumns + " FROM blog_posts"
	if publishedOnly {
		query += " WHERE is_published = 1"
	}
	query += " ORDER BY created_at DESC, id DESC"
	posts := []BlogPost{}
	err := s.db.SelectContext(ctx, &posts, query)
	return posts, err
}

func (s *Store) GetPost(ctx context.Context, id int64) (*BlogPost, error) {
	var p BlogPost
	if err := s.getOne(ctx, &p, "SELECT "+blogColumns+" FROM blog_posts WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) GetPostBySlug(ctx context.Context, slug string, publishedOnly bool) (*BlogPost, error) {
	query := "SELECT " + blogColumns + " FROM blog_posts WHERE slug = ?"
	if publishedOnly {
		query += " AND is_published = 1"
	}
	var p BlogPost
	if err := s.getOne(ctx, &p, query, slug); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreatePost(ctx context.Context, in BlogPostCreate) (*BlogPost, error) {
	slug, err := s.uniqueSlug(ctx, Slugify(in.Title), 0)
	if err != nil {
		return nil, err
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx, `INSERT INTO blog_posts (title, slug, content, author_id, is_published, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`, in.Title, slug, in.Content, in.AuthorID, in.IsPublished, now, now)
	if err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetPost(ctx, id)
}

// UpdatePost applies upd; a new title regenerates the slug.
func (s *Store) UpdatePost(ctx context.Context, id int64, upd BlogPostUpdate) (*BlogPost, error) {
	u := &updateSet{}
	if upd.Title != nil {
		slug, err := s.uniqueSlug(ctx, Slugify(*upd.Title), id)
		if err != nil {
			return nil, err
		}
		u.add("title", *upd.Title)
		u.add("slug", slug)
	}
	addIf(u, "content", upd.Content)
	addIf(u, "is_published", upd.IsPublished)
	if err := s.execUpdate(ctx, "blog_posts", id, u); err != nil {
		return nil, err
	}
	return s.GetPost(ctx, id)
}

func (s *Store) DeletePost(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "blog_posts", id)
}

// uniqueSlug appends -2, -3, ... to base until no other post uses it.
func (s *Store) uniqueSlug(ctx context.Context, base string, selfID int64) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		var count int
		err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM blog_posts WHERE slug = ? AND id <> ?", candidate, selfID)
		if err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}
