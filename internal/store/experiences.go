package store

import (
	"context"

	"github.com/example/folio/internal/fields"
)

const experienceColumns = "id, title, company, location, period, employment_type, description, achievements, technologies, color, order_index, created_at, updated_at"

func (s *Store) ListExperiences(ctx context.Context) ([]Experience, error) {
	exps := []Experience{}
	err := s.db.SelectContext(ctx, &exps, "SELECT "+experienceColumns+" FROM experiences ORDER BY order_index, created_at DESC")
	return exps, err
}

func (s *Store) GetExperience(ctx context.Context, id int64) (*Experience, error) {
	var e Experience
	if err := s.getOne(ctx, &e, "SELECT "+experienceColumns+" FROM experiences WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) CreateExperience(ctx context.Context, in ExperienceCreate) (*Experience, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `INSERT INTO experiences (title, company, location, period, employment_type, description, achievements, technologies, color, order_index, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		in.Title, in.Company, in.Location, in.Period, in.EmploymentType, in.Description,
		fields.Normalize(in.Achievements), fields.Normalize(in.Technologies),
		in.Color, in.OrderIndex, now, now,
	)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetExperience(ctx, id)
}

func (s *Store) UpdateExperience(ctx context.Context, id int64, upd ExperienceUpdate) (*Experience, error) {
	u := &updateSet{}
	addIf(u, "title", upd.Title)
	addIf(u, "company", upd.Company)
	addIf(u, "location", upd.Location)
	addIf(u, "period", upd.Period)
	addIf(u, "employment_type", upd.EmploymentType)
	addIf(u, "description", upd.Description)
	if upd.Achievements != nil {
		u.add("achievements", fields.Normalize(*upd.Achievements))
	}
	if upd.Technologies != nil {
		u.add("technologies", fields.Normalize(*upd.Technologies))
	}
	addIf(u, "color", upd.Color)
	addIf(u, "order_index", upd.OrderIndex)
	if err := s.execUpdate(ctx, "experiences", id, u); err != nil {
		return nil, err
	}
	return s.GetExperience(ctx, id)
}

func (s *Store) DeleteExperience(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "experiences", id)
}

func (s *Store) ReorderExperiences(ctx context.Context, ids []int64) error {
	return s.reorder(ctx, "experiences", ids)
}
