package discovery

import (
	"net/url"
	"strconv"
	"strings"
)

// DefaultSort is the implied ordering when the URL carries no sort parameter.
const DefaultSort = "popularity.desc"

// Mode says which upstream operation a query maps to.
type Mode string

const (
	// ModeSearch runs a free-text title search; structured filters are inert.
	ModeSearch Mode = "search"
	// ModeDiscover runs a structured filter query.
	ModeDiscover Mode = "discover"
)

// Query is the full browse state: a free-text search term or a set of
// structured discover filters, plus the pagination cursor. It round-trips
// through URL query parameters so a browse view is shareable and restorable
// from a link.
type Query struct {
	Search   string
	Genre    string
	Year     string
	Sort     string
	Language string
	Page     int
}

// ParseQuery restores a Query from URL parameters, filling in the implied
// defaults for anything absent or malformed.
func ParseQuery(values url.Values) Query {
	q := Query{
		Search:   strings.TrimSpace(values.Get("search")),
		Genre:    values.Get("genre"),
		Year:     values.Get("year"),
		Sort:     values.Get("sort"),
		Language: values.Get("language"),
		Page:     1,
	}
	if q.Sort == "" {
		q.Sort = DefaultSort
	}
	if raw := values.Get("page"); raw != "" {
		if page, err := strconv.Atoi(raw); err == nil && page > 1 {
			q.Page = page
		}
	}
	return q
}

// parseRaw restores a query from a raw query string, tolerating junk.
func parseRaw(rawQuery string) Query {
	values, err := url.ParseQuery(rawQuery)
	if err != nil {
		return Query{Sort: DefaultSort, Page: 1}
	}
	return ParseQuery(values)
}

// Values encodes the query as URL parameters, omitting everything that is at
// its default so restored links stay minimal. Parse(Values(q)) == q for any
// normalized query.
func (q Query) Values() url.Values {
	values := url.Values{}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Genre != "" {
		values.Set("genre", q.Genre)
	}
	if q.Year != "" {
		values.Set("year", q.Year)
	}
	if q.Sort != "" && q.Sort != DefaultSort {
		values.Set("sort", q.Sort)
	}
	if q.Language != "" {
		values.Set("language", q.Language)
	}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	return values
}

// Encode renders the query as a canonical query string.
func (q Query) Encode() string {
	return q.Values().Encode()
}

// Mode reports whether the query is a text search or a structured discover.
// A non-blank search term always wins.
func (q Query) Mode() Mode {
	if strings.TrimSpace(q.Search) != "" {
		return ModeSearch
	}
	return ModeDiscover
}

// IsDefault reports whether the query carries no filters at all, in which case
// the browse view shows the trending shelf instead of a filtered listing.
func (q Query) IsDefault() bool {
	return q.Search == "" && q.Genre == "" && q.Year == "" && q.Language == "" &&
		(q.Sort == "" || q.Sort == DefaultSort) && q.Page <= 1
}
