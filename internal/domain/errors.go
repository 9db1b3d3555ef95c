package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSourceUnavailable   = errors.New("rate source unavailable")
	ErrAllSourcesExhausted = errors.New("all rate sources exhausted")
	ErrInvalidInput        = errors.New("invalid input")
	ErrDivisionByZero      = errors.New("total invested is zero")
)

// SourceError — отказ конкретного источника (транспорт, статус, парсинг).
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string { return fmt.Sprintf("%s: %v", e.Source, e.Err) }

func (e *SourceError) Unwrap() []error { return []error{ErrSourceUnavailable, e.Err} }
