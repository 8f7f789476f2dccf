package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// likeEscaper экранирует спецсимволы шаблона LIKE, чтобы поисковый
// префикс сравнивался буквально.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// CreatePost вставляет новую публикацию и возвращает её с проставленными
// хранилищем ID и датой создания.
func (s *Storage) CreatePost(ctx context.Context, ownerID int64, title, description string) (*models.Post, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO posts (title, description, owner_id)
			  VALUES ($1, $2, $3)
			  RETURNING id, created_at`
	post := &models.Post{
		Title:       title,
		Description: description,
		OwnerID:     ownerID,
	}
	err := s.DB.QueryRowContext(ctx, query, title, description, ownerID).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		if pgErrCode(err) == pgForeignKeyViolation {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return post, nil
}

// GetPost возвращает публикацию по её ID.
func (s *Storage) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	const op = "storage.GetPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, description, created_at, owner_id
			  FROM posts
			  WHERE id = $1`
	var post models.Post
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&post.ID, &post.Title, &post.Description, &post.CreatedAt, &post.OwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &post, nil
}

// UpdatePost обновляет заголовок и текст публикации.
// Владелец и дата создания неизменяемы.
func (s *Storage) UpdatePost(ctx context.Context, id int64, title, description string) error {
	const op = "storage.UpdatePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE posts
			  SET title = $1, description = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, title, description, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrPostNotFound)
	}
	return nil
}

// RemovePost удаляет публикацию по её ID.
func (s *Storage) RemovePost(ctx context.Context, id int64) error {
	const op = "storage.RemovePost"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM posts WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrPostNotFound)
	}
	return nil
}

// ListPostsByOwner возвращает страницу публикаций владельца и их общее
// количество с учётом поиска по префиксу заголовка.
func (s *Storage) ListPostsByOwner(ctx context.Context, ownerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	const op = "storage.ListPostsByOwner"

	return s.listPosts(ctx, op, ownerFilter, opts, ownerID, opts.Search)
}

// ListFeed возвращает страницу публикаций всех пользователей, на которых
// подписан follower, отсортированных по дате создания.
//
// Лента считается в момент запроса по текущему состоянию графа подписок,
// без какого-либо кеширования.
func (s *Storage) ListFeed(ctx context.Context, followerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	const op = "storage.ListFeed"

	where := `WHERE owner_id IN (
				SELECT followee_id FROM subscriptions WHERE follower_id = $1
			  )
			  AND ($2 = '' OR title LIKE $2 || '%')`
	return s.listPosts(ctx, op, where, opts, followerID, opts.Search)
}

// ListAllPosts возвращает страницу всех публикаций платформы.
func (s *Storage) ListAllPosts(ctx context.Context, opts models.ListOptions) ([]*models.Post, int, error) {
	const op = "storage.ListAllPosts"

	// ownerID = 0 отключает фильтр по владельцу.
	return s.listPosts(ctx, op, ownerFilter, opts, 0, opts.Search)
}

// ownerFilter общее условие выборки по владельцу и префиксу заголовка.
const ownerFilter = `WHERE ($1 = 0 OR owner_id = $1) AND ($2 = '' OR title LIKE $2 || '%')`

// listPosts выполняет подсчёт и постраничную выборку публикаций
// по переданному условию. Условие всегда использует $1 и $2.
func (s *Storage) listPosts(ctx context.Context, op, where string, opts models.ListOptions, arg1 int64, arg2 string) ([]*models.Post, int, error) {
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	arg2 = likeEscaper.Replace(arg2)

	countQuery := `SELECT COUNT(*) FROM posts ` + where
	var total int
	if err := s.DB.QueryRowContext(ctx, countQuery, arg1, arg2).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	order := "ASC"
	if opts.Descending {
		order = "DESC"
	}
	query := fmt.Sprintf(`SELECT id, title, description, created_at, owner_id
			  FROM posts %s
			  ORDER BY created_at %s, id %s
			  LIMIT $3 OFFSET $4`, where, order, order)
	rows, err := s.DB.QueryContext(ctx, query, arg1, arg2, opts.PageSize, opts.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Post
	for rows.Next() {
		var item models.Post
		if err := rows.Scan(&item.ID, &item.Title, &item.Description, &item.CreatedAt, &item.OwnerID); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}
