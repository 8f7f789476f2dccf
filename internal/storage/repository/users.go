package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// CreateUser сохраняет нового пользователя в базу данных и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int64
	query := `INSERT INTO users (username, email, password_hash, role, is_active)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role, user.IsActive).Scan(&newID); err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetUserByUsername возвращает пользователя по его username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, password_hash, role, is_active, registered_at
			  FROM users
			  WHERE username = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, username), op)
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, username, email, password_hash, role, is_active, registered_at
			  FROM users
			  WHERE id = $1`
	return s.scanUser(s.DB.QueryRowContext(ctx, query, id), op)
}

func (s *Storage) scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash,
		&u.Role, &u.IsActive, &u.RegisteredAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// ActivateUser выставляет флаг активации учётной записи.
// Переход одноразовый: повторная активация не находит строк.
func (s *Storage) ActivateUser(ctx context.Context, id int64) error {
	const op = "storage.ActivateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_active = true
			  WHERE id = $1 AND is_active = false`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// ListUsers возвращает страницу пользователей, отсортированных по дате
// регистрации, и общее количество пользователей.
func (s *Storage) ListUsers(ctx context.Context, opts models.ListOptions) ([]*models.UserInfo, int, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	order := "ASC"
	if opts.Descending {
		order = "DESC"
	}
	query := fmt.Sprintf(`SELECT id, username
			  FROM users
			  ORDER BY registered_at %s, id %s
			  LIMIT $1 OFFSET $2`, order, order)
	rows, err := s.DB.QueryContext(ctx, query, opts.PageSize, opts.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.UserInfo
	for rows.Next() {
		var item models.UserInfo
		if err := rows.Scan(&item.ID, &item.Username); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateUser обновляет данные пользователя по его ID.
func (s *Storage) UpdateUser(ctx context.Context, user models.User) error {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET username = $1, email = $2, password_hash = $3, role = $4, is_active = $5
			  WHERE id = $6`
	result, err := s.DB.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role, user.IsActive, user.ID)
	if err != nil {
		if pgErrCode(err) == pgUniqueViolation {
			return fmt.Errorf("%s: %w", op, ErrUsernameTaken)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

// RemoveUser удаляет пользователя. Публикации и рёбра подписок
// удаляются каскадно внешними ключами.
func (s *Storage) RemoveUser(ctx context.Context, id int64) error {
	const op = "storage.RemoveUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}
