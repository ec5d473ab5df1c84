package models

import "errors"

// Классы ошибок домена. Слои оборачивают их через fmt.Errorf("...: %w", err),
// а обработчики сопоставляют с HTTP-статусом через errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrEventInactive = errors.New("event is inactive")
)
