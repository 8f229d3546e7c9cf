package store

import (
	"context"
	"errors"
)

const personalInfoColumns = "id, name, title, description, email, phone, location, github_url, linkedin_url, twitter_url, created_at, updated_at"

// GetPersonalInfo returns the single personal info row.
func (s *Store) GetPersonalInfo(ctx context.Context) (*PersonalInfo, error) {
	var p PersonalInfo
	if err := s.getOne(ctx, &p, "SELECT "+personalInfoColumns+" FROM personal_info ORDER BY id LIMIT 1"); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertPersonalInfo applies upd to the personal info row, creating it first
// when the table is empty.
func (s *Store) UpsertPersonalInfo(ctx context.Context, upd PersonalInfoUpdate) (*PersonalInfo, error) {
	current, err := s.GetPersonalInfo(ctx)
	if errors.Is(err, ErrNotFound) {
		now := s.now()
		p := PersonalInfo{CreatedAt: now, UpdatedAt: now}
		applyPersonalInfo(&p, upd)
		res, err := s.db.ExecContext(ctx, `INSERT INTO personal_info (name, title, description, email, phone, location, github_url, linkedin_url, twitter_url, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			p.Name, p.Title, p.Description, p.Email, p.Phone, p.Location, p.GithubURL, p.LinkedinURL, p.TwitterURL, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}

	u := &updateSet{}
	addIf(u, "name", upd.Name)
	addIf(u, "title", upd.Title)
	addIf(u, "description", upd.Description)
	addIf(u, "email", upd.Email)
	addIf(u, "phone", upd.Phone)
	addIf(u, "location", upd.Location)
	addIf(u, "github_url", upd.GithubURL)
	addIf(u, "linkedin_url", upd.LinkedinURL)
	addIf(u, "twitter_url", upd.TwitterURL)
	if err := s.execUpdate(ctx, "personal_info", current.ID, u); err != nil {
		return nil, err
	}
	return s.GetPersonalInfo(ctx)
}

func applyPersonalInfo(p *PersonalInfo, upd PersonalInfoUpdate) {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Name, upd.Name)
	set(&p.Title, upd.Title)
	set(&p.Description, upd.Description)
	set(&p.Email, upd.Email)
	set(&p.Phone, upd.Phone)
	set(&p.Location, upd.Location)
	set(&p.GithubURL, upd.GithubURL)
	set(&p.LinkedinURL, upd.LinkedinURL)
	set(&p.TwitterURL, upd.TwitterURL)
}
