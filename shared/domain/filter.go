package domain

import (
	"fmt"
	"strings"

	"github.com/itchan-dev/forum/shared/errors"
)

// Filter names an ordering/selection rule applied to the discussion list.
type Filter string

const (
	FilterNone    Filter = ""
	FilterPopular Filter = "popular"
	FilterRecent  Filter = "recent"
	FilterMine    Filter = "mine"
)

// ParseFilter accepts the query-string form of a filter.
// "my" is kept as an alias of "mine" for older clients.
func ParseFilter(s string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "all":
		return FilterNone, nil
	case "popular":
		return FilterPopular, nil
	case "recent":
		return FilterRecent, nil
	case "mine", "my":
		return FilterMine, nil
	}
	return FilterNone, &errors.ValidationError{Field: "filter", Message: fmt.Sprintf("unknown filter %q", s)}
}
