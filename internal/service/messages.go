package service

import (
	"context"
	"errors"

	"github.com/kitbuilder587/naver-search/internal/domain"
	"github.com/kitbuilder587/naver-search/internal/search"
)

const (
	MsgEnterQuery = "Please enter a search term."
	MsgNoResults  = "No results found."
	MsgUnknown    = "An unknown error occurred."
)

// MessageFor - единственная строка для пользователя. Кодов ошибок наружу не отдаем.
func MessageFor(err error) string {
	if err == nil {
		return ""
	}

	var upErr *search.UpstreamError
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return MsgEnterQuery
	case errors.Is(err, domain.ErrNoResults):
		return MsgNoResults
	case errors.Is(err, domain.ErrQueryTooLong):
		return "Search term is too long."
	case errors.Is(err, domain.ErrInvalidType), errors.Is(err, domain.ErrInvalidSort):
		return "Unsupported search option."
	case errors.As(err, &upErr):
		return "An error occurred while calling the API: " + upErr.Error()
	case errors.Is(err, search.ErrNetwork):
		return "An error occurred while calling the API: network failure."
	case errors.Is(err, context.DeadlineExceeded):
		return "An error occurred while calling the API: request timed out."
	case errors.Is(err, search.ErrBadResponse):
		return "An error occurred while calling the API: malformed response."
	default:
		return MsgUnknown
	}
}
