package store

import "context"

const skillColumns = "id, name, category, level, color, order_index, created_at, updated_at"

func (s *Store) ListSkills(ctx context.Context) ([]Skill, error) {
	skills := []Skill{}
	err := s.db.SelectContext(ctx, &skills, "SELECT "+skillColumns+" FROM skills ORDER BY order_index, category, name")
	return skills, err
}

func (s *Store) GetSkill(ctx context.Context, id int64) (*Skill, error) {
	var sk Skill
	if err := s.getOne(ctx, &sk, "SELECT "+skillColumns+" FROM skills WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &sk, nil
}

func (s *Store) CreateSkill(ctx context.Context, in SkillCreate) (*Skill, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `INSERT INTO skills (name, category, level, color, order_index, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`, in.Name, in.Category, in.Level, in.Color, in.OrderIndex, now, now)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return s.GetSkill(ctx, id)
}

func (s *Store) UpdateSkill(ctx context.Context, id int64, upd SkillUpdate) (*Skill, error) {
	u := &updateSet{}
	addIf(u, "name", upd.Name)
	addIf(u, "category", upd.Category)
	addIf(u, "level", upd.Level)
	addIf(u, "color", upd.Color)
	addIf(u, "order_index", upd.OrderIndex)
	if err := s.execUpdate(ctx, "skills", id, u); err != nil {
		return nil, err
	}
	return s.GetSkill(ctx, id)
}

func (s *Store) DeleteSkill(ctx context.Context, id int64) error {
	return s.deleteByID(ctx, "skills", id)
}

func (s *Store) ReorderSkills(ctx context.Context, ids []int64) error {
	return s.reorder(ctx, "skills", ids)
}
