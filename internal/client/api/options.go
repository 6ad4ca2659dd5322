package api

import (
	"net/url"
	"strconv"
)

// QueryOptions передаются серверу как есть: пагинация, сортировка и поисковый запрос.
// Нулевые значения не попадают в query string.
type QueryOptions struct {
	Query string
	Sort  []string
	Page  int
	Size  int
}

// Values encodes the options as URL query parameters.
func (o QueryOptions) Values() url.Values {
	v := url.Values{}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}
	if o.Size > 0 {
		v.Set("size", strconv.Itoa(o.Size))
	}
	for _, s := range o.Sort {
		v.Add("sort", s)
	}
	if o.Query != "" {
		v.Set("query", o.Query)
	}
	return v
}

// WithQuery returns a copy carrying the given search text.
func (o QueryOptions) WithQuery(q string) QueryOptions {
	cp := o
	cp.Sort = append([]string(nil), o.Sort...)
	cp.Query = q
	return cp
}
