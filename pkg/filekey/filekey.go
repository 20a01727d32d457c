// Package filekey кодирует ключ объекта в непрозрачный URL-safe токен для
// ссылок на скачивание. Токен — это обфускация, а не контроль доступа:
// любой обладатель токена может скачать файл.
package filekey

import (
	"encoding/base64"
	"errors"
	"fmt"
	"unicode/utf8"
)

// ErrMalformed возвращается, когда строка не является валидной кодировкой ключа.
var ErrMalformed = errors.New("malformed file token")

// Encode превращает ключ хранилища в токен без паддинга, пригодный для
// подстановки в path-сегмент URL без экранирования.
func Encode(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

// Decode восстанавливает ключ из токена. Инвариант: Decode(Encode(k)) == k
// для любого валидного ключа.
func Decode(token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: empty token", ErrMalformed)
	}

	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: key is not valid utf-8", ErrMalformed)
	}

	return string(raw), nil
}
