// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultLimit is the number of rows returned when no limit is given.
const DefaultLimit = 20

// MaxLimit caps the "limit" query parameter.
const MaxLimit = 100

// ParseLimit extracts the "limit" query parameter as an int64 ready for
// Mongo Find().SetLimit(). Missing or invalid values yield DefaultLimit;
// values above MaxLimit are clamped.
func ParseLimit(r *http.Request) int64 {
	s := query.Get(r, "limit")
	if s == "" {
		return DefaultLimit
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return DefaultLimit
	}
	if n > MaxLimit {
		return MaxLimit
	}
	return int64(n)
}
