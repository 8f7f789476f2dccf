// Package post содержит бизнес-логику публикаций: CRUD с проверкой
// владельца, списки по подписке и ленту.
package post

import (
	"context"
	"errors"
	"log/slog"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage/repository"
)

// Ошибки доменного уровня публикаций.
var (
	// ErrPostNotFound публикация не существует либо недоступна каллеру.
	// Чужие публикации маскируются под отсутствующие, чтобы не подтверждать
	// их существование не-подписчикам.
	ErrPostNotFound = errors.New("post not found")
	// ErrUserNotFound автор не существует либо каллер на него не подписан.
	ErrUserNotFound = errors.New("user not found")
)

// Repository определяет методы для работы с публикациями в хранилище.
type Repository interface {
	// CreatePost вставляет публикацию и возвращает её с ID и датой создания.
	CreatePost(ctx context.Context, ownerID int64, title, description string) (*models.Post, error)
	// GetPost возвращает публикацию по ID.
	GetPost(ctx context.Context, id int64) (*models.Post, error)
	// UpdatePost обновляет заголовок и текст публикации.
	UpdatePost(ctx context.Context, id int64, title, description string) error
	// RemovePost удаляет публикацию по ID.
	RemovePost(ctx context.Context, id int64) error
	// ListPostsByOwner возвращает страницу публикаций владельца и их количество.
	ListPostsByOwner(ctx context.Context, ownerID int64, opts models.ListOptions) ([]*models.Post, int, error)
	// ListFeed возвращает страницу ленты follower и её размер.
	ListFeed(ctx context.Context, followerID int64, opts models.ListOptions) ([]*models.Post, int, error)
	// ListAllPosts возвращает страницу всех публикаций платформы.
	ListAllPosts(ctx context.Context, opts models.ListOptions) ([]*models.Post, int, error)
	// ExistsSubscription сообщает о наличии ребра follower -> followee.
	ExistsSubscription(ctx context.Context, followerID, followeeID int64) (bool, error)
}

// Service реализует бизнес-логику работы с публикациями.
type Service struct {
	repo Repository
	log  *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Create создает публикацию от имени владельца.
func (s *Service) Create(ctx context.Context, ownerID int64, req models.DummyPost) (*models.Post, error) {
	post, err := s.repo.CreatePost(ctx, ownerID, req.Title, req.Description)
	if err != nil {
		return nil, err
	}
	s.log.Info("post created", slog.Int64("id", post.ID), slog.Int64("owner_id", ownerID))
	return post, nil
}

// Read возвращает публикацию владельцу или администратору.
// Всем остальным, как и для несуществующих ID, возвращается ErrPostNotFound.
func (s *Service) Read(ctx context.Context, callerID int64, role string, id int64) (*models.Post, error) {
	return s.getOwned(ctx, callerID, role, id)
}

// Update обновляет публикацию владельца или от имени администратора.
func (s *Service) Update(ctx context.Context, callerID int64, role string, id int64, req models.DummyPost) (*models.Post, error) {
	post, err := s.getOwned(ctx, callerID, role, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePost(ctx, id, req.Title, req.Description); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	post.Title = req.Title
	post.Description = req.Description
	return post, nil
}

// Remove удаляет публикацию владельца или от имени администратора.
func (s *Service) Remove(ctx context.Context, callerID int64, role string, id int64) error {
	if _, err := s.getOwned(ctx, callerID, role, id); err != nil {
		return err
	}
	if err := s.repo.RemovePost(ctx, id); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}
	s.log.Info("post removed", slog.Int64("id", id))
	return nil
}

// ListOwn возвращает страницу собственных публикаций каллера.
func (s *Service) ListOwn(ctx context.Context, callerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	opts.Normalize()
	return s.repo.ListPostsByOwner(ctx, callerID, opts)
}

// ListBySubscription возвращает страницу публикаций автора, если каллер
// на него подписан. Отсутствие подписки и отсутствие автора неразличимы:
// оба случая дают ErrUserNotFound. Администратор просматривает автора
// без проверки ребра.
func (s *Service) ListBySubscription(ctx context.Context, callerID int64, role string, ownerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	if role != models.RoleAdmin {
		subscribed, err := s.repo.ExistsSubscription(ctx, callerID, ownerID)
		if err != nil {
			return nil, 0, err
		}
		if !subscribed {
			return nil, 0, ErrUserNotFound
		}
	}
	opts.Normalize()
	return s.repo.ListPostsByOwner(ctx, ownerID, opts)
}

// Feed возвращает страницу ленты каллера: публикации всех авторов,
// на которых он подписан, по возрастанию даты создания.
//
// Лента вычисляется по текущему состоянию графа подписок при каждом
// запросе. Пустой набор подписок даёт пустую ленту, а не ошибку.
func (s *Service) Feed(ctx context.Context, callerID int64, opts models.ListOptions) ([]*models.Post, int, error) {
	opts.Normalize()
	return s.repo.ListFeed(ctx, callerID, opts)
}

// ListAll возвращает страницу всех публикаций для административного списка.
func (s *Service) ListAll(ctx context.Context, opts models.ListOptions) ([]*models.Post, int, error) {
	opts.Normalize()
	return s.repo.ListAllPosts(ctx, opts)
}

// getOwned возвращает публикацию, если каллер — её владелец или администратор.
func (s *Service) getOwned(ctx context.Context, callerID int64, role string, id int64) (*models.Post, error) {
	post, err := s.repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	if post.OwnerID != callerID && role != models.RoleAdmin {
		return nil, ErrPostNotFound
	}
	return post, nil
}
