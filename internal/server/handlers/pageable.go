package handlers

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/iudanet/credadmin/internal/server/storage"
)

const (
	// DefaultPageSize размер страницы, если клиент его не передал
	DefaultPageSize = 20
	// MaxPageSize верхняя граница размера страницы
	MaxPageSize = 2000
)

// parsePageable читает page, size и sort ("property,asc|desc", повторяемый параметр)
func parsePageable(values url.Values) (storage.Query, error) {
	q := storage.Query{Size: DefaultPageSize}

	if raw := values.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 0 {
			return q, fmt.Errorf("invalid page %q", raw)
		}
		q.Page = page
	}

	if raw := values.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 || size > MaxPageSize {
			return q, fmt.Errorf("invalid size %q: must be between 1 and %d", raw, MaxPageSize)
		}
		q.Size = size
	}

	for _, raw := range values["sort"] {
		order, err := parseSortOrder(raw)
		if err != nil {
			return q, err
		}
		q.Sort = append(q.Sort, order)
	}

	return q, nil
}

func parseSortOrder(raw string) (storage.SortOrder, error) {
	property, dir, _ := strings.Cut(raw, ",")
	property = strings.TrimSpace(property)
	if property == "" {
		return storage.SortOrder{}, fmt.Errorf("invalid sort %q", raw)
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "asc":
		return storage.SortOrder{Property: property}, nil
	case "desc":
		return storage.SortOrder{Property: property, Desc: true}, nil
	default:
		return storage.SortOrder{}, fmt.Errorf("invalid sort direction in %q", raw)
	}
}
