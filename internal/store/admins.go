package store

import (
	"context"
	"strings"
)

const adminColumns = "id, username, email, password_hash, is_active, last_login, created_at, updated_at"

// CreateAdmin stores a new admin. passwordHash must already be hashed.
func (s *Store) CreateAdmin(ctx context.Context, username, email, passwordHash string) (*AdminUser, error) {
	now := s.now()
	res, err := s.db.ExecContext(ctx, `INSERT INTO admin_users (username, email, password_hash, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?)`, strings.TrimSpace(username), strings.TrimSpace(email), passwordHash, true, now, now)
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
	return s.GetAdmin(ctx, id)
}

func (s *Store) GetAdmin(ctx context.Context, id int64) (*AdminUser, error) {
	var a AdminUser
	if err := s.getOne(ctx, &a, "SELECT "+adminColumns+" FROM admin_users WHERE id = ?", id); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*AdminUser, error) {
	var a AdminUser
	if err := s.getOne(ctx, &a, "SELECT "+adminColumns+" FROM admin_users WHERE username = ?", strings.TrimSpace(username)); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *Store) TouchAdminLogin(ctx context.Context, id int64) error {
	now := s.now()
	res, err := s.db.ExecContext(ctx, "UPDATE admin_users SET last_login = ?, updated_at = ? WHERE id = ?", now, now, id)
	if err != nil {
		return err
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) SetAdminPassword(ctx context.Context, id int64, passwordHash string) error {
	u := &updateSet{}
	u.add("password_hash", passwordHash)
	return s.execUpdate(ctx, "admin_users", id, u)
}

func (s *Store) CountAdmins(ctx context.Context) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, "SELECT COUNT(*) FROM admin_users")
	return n, err
}
