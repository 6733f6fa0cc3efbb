package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/kitbuilder587/naver-search/internal/domain"
)

var (
	ErrUpstream       = errors.New("upstream error")
	ErrNetwork        = errors.New("network error")
	ErrInvalidRequest = errors.New("invalid request parameters")
	ErrBadResponse    = errors.New("malformed response")
)

// PageClient отдает одну страницу выдачи
type PageClient interface {
	SearchPage(ctx context.Context, req domain.PageRequest) (*domain.ResultPage, error)
}

// UpstreamError - ошибка, о которой сообщил сам сервер (не-200 или поле error)
type UpstreamError struct {
	Status  int
	Message string
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("upstream error: status %d", e.Status)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return ErrUpstream
}
