// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, публикациями и графом подписок.
// Предоставляет методы создания, чтения, обновления и удаления записей,
// а также выборку ленты по подпискам.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища. Сервисы сопоставляют их через errors.Is
// и переводят в собственные ошибки доменного уровня.
var (
	// ErrUserNotFound пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrPostNotFound публикация не найдена.
	ErrPostNotFound = errors.New("post not found")
	// ErrAlreadySubscribed ребро подписки уже существует.
	ErrAlreadySubscribed = errors.New("already subscribed")
	// ErrNotSubscribed ребро подписки отсутствует.
	ErrNotSubscribed = errors.New("not subscribed")
	// ErrUsernameTaken имя пользователя уже занято.
	ErrUsernameTaken = errors.New("username already taken")
)

// Коды ошибок PostgreSQL, по которым различаются нарушения ограничений.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, публикациями и подписками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'users'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table users missing or query error: %w", err)
	}
	return nil
}

// pgErrCode возвращает код ошибки PostgreSQL или пустую строку.
func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
