package web

import (
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/domain"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/health"
	"github.com/TejasDesai007/Rural-Girls-Empowerment-sub000/internal/transport/web/v1/toolkit"
)

// Deps — всё, что нужно серверу от внешнего мира.
type Deps struct {
	Users    domain.UsersRepo
	DB       health.Pinger
	Cache    domain.Cache
	Store    domain.FileStore
	Registry toolkit.Registry
	Archive  toolkit.Archiver

	Hasher    domain.PasswordHasher
	Tokens    domain.TokenManager
	Blacklist domain.TokenBlacklist

	// UploadsDir непустой только для fs-драйвера: каталог toolkit/
	// хранилища, из которого сервер раздаёт файлы по /uploads/toolkit/.
	UploadsDir string
}
