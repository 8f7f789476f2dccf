package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// CreateSubscription добавляет направленное ребро подписки follower -> followee.
//
// Уникальность пары обеспечивается первичным ключом таблицы: из двух
// конкурентных вставок одна получает нарушение уникальности,
// которое переводится в ErrAlreadySubscribed.
func (s *Storage) CreateSubscription(ctx context.Context, followerID, followeeID int64) error {
	const op = "storage.CreateSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscriptions (follower_id, followee_id)
			  VALUES ($1, $2)`
	if _, err := s.DB.ExecContext(ctx, query, followerID, followeeID); err != nil {
		switch pgErrCode(err) {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrAlreadySubscribed)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RemoveSubscription удаляет ребро подписки follower -> followee.
func (s *Storage) RemoveSubscription(ctx context.Context, followerID, followeeID int64) error {
	const op = "storage.RemoveSubscription"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM subscriptions
			  WHERE follower_id = $1 AND followee_id = $2`
	result, err := s.DB.ExecContext(ctx, query, followerID, followeeID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotSubscribed)
	}
	return nil
}

// ExistsSubscription сообщает, существует ли ребро follower -> followee.
func (s *Storage) ExistsSubscription(ctx context.Context, followerID, followeeID int64) (bool, error) {
	const op = "storage.ExistsSubscription"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT EXISTS (
				SELECT 1 FROM subscriptions
				WHERE follower_id = $1 AND followee_id = $2
			  )`
	var exists bool
	if err := s.DB.QueryRowContext(ctx, query, followerID, followeeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListSubscriptions возвращает страницу пользователей, на которых
// подписан follower, и общее количество его подписок.
func (s *Storage) ListSubscriptions(ctx context.Context, followerID int64, opts models.ListOptions) ([]*models.UserInfo, int, error) {
	const op = "storage.ListSubscriptions"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM subscriptions WHERE follower_id = $1`
	if err := s.DB.QueryRowContext(ctx, countQuery, followerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT u.id, u.username
			  FROM subscriptions sub
			  JOIN users u ON u.id = sub.followee_id
			  WHERE sub.follower_id = $1
			  ORDER BY sub.created_at, u.id
			  LIMIT $2 OFFSET $3`
	rows, err := s.DB.QueryContext(ctx, query, followerID, opts.PageSize, opts.Offset())
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

// ListSubscriptionIDs возвращает ID всех пользователей, на которых подписан follower.
func (s *Storage) ListSubscriptionIDs(ctx context.Context, followerID int64) ([]int64, error) {
	const op = "storage.ListSubscriptionIDs"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT followee_id
			  FROM subscriptions
			  WHERE follower_id = $1
			  ORDER BY followee_id`
	rows, err := s.DB.QueryContext(ctx, query, followerID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
