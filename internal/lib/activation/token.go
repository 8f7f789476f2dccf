// Package activation реализует одноразовые токены активации учётной записи.
//
// Токен привязан к идентификатору пользователя и к его текущему состоянию
// (флаг активации и хэш пароля): после успешной активации состояние меняется
// и тот же токен перестаёт проходить проверку. Проверка всегда fail-closed —
// любой некорректный, просроченный или чужой токен просто невалиден,
// без уточнения причины.
package activation

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// TokenMaker генерирует и проверяет токены активации
// на основе секретного ключа и срока жизни.
type TokenMaker struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewTokenMaker создаёт новый экземпляр TokenMaker.
func NewTokenMaker(secretKey string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}

// GenerateToken создает токен активации для пользователя в его текущем состоянии.
//
// Формат токена: "<метка времени base36>-<hmac-sha256 hex>".
func (m *TokenMaker) GenerateToken(user *models.User) string {
	ts := time.Now().Unix()
	return m.tokenForTimestamp(user, ts)
}

// ValidateToken проверяет токен активации.
//
// Токен невалиден, если подпись не совпадает с текущим состоянием пользователя
// (в том числе когда учётная запись уже активирована) или если истёк срок жизни.
func (m *TokenMaker) ValidateToken(user *models.User, token string) bool {
	tsPart, _, ok := strings.Cut(token, "-")
	if !ok {
		return false
	}
	ts, err := strconv.ParseInt(tsPart, 36, 64)
	if err != nil {
		return false
	}
	expected := m.tokenForTimestamp(user, ts)
	if !hmac.Equal([]byte(expected), []byte(token)) {
		return false
	}
	issued := time.Unix(ts, 0)
	if time.Since(issued) > m.tokenTTL {
		return false
	}
	return true
}

func (m *TokenMaker) tokenForTimestamp(user *models.User, ts int64) string {
	state := fmt.Sprintf("%d:%t:%s:%d", user.ID, user.IsActive, user.PasswordHash, ts)
	mac := hmac.New(sha256.New, []byte(m.secretKey))
	mac.Write([]byte(state))
	return strconv.FormatInt(ts, 36) + "-" + hex.EncodeToString(mac.Sum(nil))
}

// EncodeUID кодирует числовой идентификатор пользователя
// в urlsafe base64 для ссылки активации.
func EncodeUID(id int64) string {
	return base64.RawURLEncoding.EncodeToString([]byte(strconv.FormatInt(id, 10)))
}

// DecodeUID раскодирует идентификатор пользователя из ссылки активации.
func DecodeUID(uid string) (int64, error) {
	const op = "activation.DecodeUID"
	raw, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	id, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}
