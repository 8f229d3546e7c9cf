package store

import (
	"context"

	"github.com/example/folio/internal/fields"
)

const projectColumns = "id, title, description, category, image_url, technologies, features, downloads, rating, users, status, github_url, demo_url, store_url, order_index, created_at, updated_at"

func (s *Store) ListProjects(ctx context.Context) ([]Project, error) {
	projects := []Project{}
	err := s.db.SelectContext(ctx, &projects, "SELECT "+projectColumns+" FROM projects ORDER BY order_index, created_at DESC")
	return projects, err
}

func (s *Store) GetProject(ctx context.Context, id int64) (*Project, error) {
	var p Project
	if err := s.getOne(ctx, &p, "SELECT "+projectColumns+" FROM projects WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) CreateProject(ctx context.Context, in ProjectCreate) (*Project, error) {
	if in.Status == "" {
		in.Status = DefaultProjectStatus
	}
	now := s.now()
	res, err := s.db.ExecContext(ctx, `INSERT INTO projects (title, description, category, image_url, technologies, features, downloads, rating, users, status, github_url, demo_url, store_url, order_index, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Description, in.Category, in.ImageURL,
		fields.Normalize(in.Technologies), fields.Normalize(in.Features),
		in.Downloads, in.Rating, in.Users, in.Status,
		in.GithubURL, in.DemoURL, in.StoreURL, in.OrderIndex, now, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetProject(ctx, id)
}

func (s *Store) UpdateProject(ctx context.Context, id int64, upd ProjectUpdate) (*Project, error) {
	u := &updateSet{}
	addIf(u, "title", upd.Title)
	addIf(u, "description", upd.Description)
	addIf(u, "category", upd.Category)
	addIf(u, "image_url", upd.ImageURL)
	if upd.Technologies != nil {
		u.add("technologies", fields.Normalize(*upd.Technologies))
	}
	if upd.Features != nil {
		u.add("features", fields.Normalize(*upd.Features))
	}
	addIf(u, "downloads", upd.Downloads)
	if upd.Rating != nil {
		u.add("rating", *upd.Rating)
	}
	addIf(u, "users", upd.Users)
	addIf(u, "status", upd.Status)
	addIf(u, "github_url", upd.GithubURL)
	addIf(u, "demo_url", upd.DemoURL)
	addIf(u, "store_url", upd.StoreURL)
	addIf(u, "order_index", upd.OrderIndex)
	if err := s.execUpdate(ctx, "projects", id, u); err != nil {
		return nil, err
	}
	return s.GetProject(ctx, id)
}

func (s *Store) DeleteProject(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "projects", id)
}

func (s *Store) ReorderProjects(ctx context.Context, ids []int64) error {
	return s.reorder(ctx, "projects", ids)
}
