package store

import "context"

const educationColumns = "id, degree, school, location, period, COALESCE(specialization, '') AS specialization, order_index, created_at, updated_at"

func (s *Store) ListEducation(ctx context.Context) ([]Education, error) {
	items := []Education{}
	err := s.db.SelectContext(ctx, &items, "SELECT "+educationColumns+" FROM education ORDER BY order_index, created_at DESC")
	return items, err
}

func (s *Store) GetEducation(ctx context.Context, id int64) (*Education, error) {
	var e Education
	if err := s.getOne(ctx, &e, "SELECT "+educationColumns+" FROM education WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) CreateEducation(ctx context.Context, in EducationCreate) (*Education, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `INSERT INTO education (degree, school, location, period, specialization, order_index, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, in.Degree, in.School, in.Location, in.Period, in.Specialization, in.OrderIndex, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetEducation(ctx, id)
}

func (s *Store) UpdateEducation(ctx context.Context, id int64, upd EducationUpdate) (*Education, error) {
	u := &updateSet{}
	addIf(u, "degree", upd.Degree)
	addIf(u, "school", upd.School)
	addIf(u, "location", upd.Location)
	addIf(u, "period", upd.Period)
	addIf(u, "specialization", upd.Specialization)
	addIf(u, "order_index", upd.OrderIndex)
	if err := s.execUpdate(ctx, "education", id, u); err != nil {
		return nil, err
	}
	return s.GetEducation(ctx, id)
}

func (s *Store) DeleteEducation(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "education", id)
}

func (s *Store) ReorderEducation(ctx context.Context, ids []int64) error {
	return s.reorder(ctx, "education", ids)
}
