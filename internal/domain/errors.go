package domain

import "errors"

// Бизнес-ошибки (маппятся на HTTP коды в транспортном слое)
var (
	ErrBadParams        = errors.New("bad_params")         // 400
	ErrUnauth           = errors.New("unauthorized")       // 401
	ErrNotFound         = errors.New("not_found")          // 404
	ErrMethodNotAllowed = errors.New("method_not_allowed") // 405
	ErrUnexpected       = errors.New("unexpected")         // 500
)
