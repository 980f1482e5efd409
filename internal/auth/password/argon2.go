package password

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

// Hasher — argon2id-хеширование паролей реестра.
// Закодированная строка ($argon2id$v=19$m=...) целиком хранится
// в users.pass_hash, соль и параметры зашиты в неё же.
type Hasher struct {
	params *argon2id.Params
}

// NewDefault — дефолтные параметры библиотеки; для логина по API этого хватает.
func NewDefault() *Hasher { return &Hasher{params: argon2id.DefaultParams} }

func New(p *argon2id.Params) *Hasher { return &Hasher{params: p} }

func (h *Hasher) Hash(plain string) (string, error) {
	if h == nil || h.params == nil {
		return "", errors.New("argon2id params not set")
	}
	return argon2id.CreateHash(plain, h.params)
}

// Verify: несовпадение — это (false, nil); error означает битый хэш в базе.
func (h *Hasher) Verify(plain, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(plain, encodedHash)
}
