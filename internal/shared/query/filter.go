package query

const (
	DefaultLimit = 10
	// Unlimited disables skip/limit.
	Unlimited = -1

	// MaxPage and MaxLimit keep Page*Limit well inside int.
	MaxPage  = 1_000_000
	MaxLimit = 1_000
)

// PageFilter is a 0-based page window. Limit -1 returns everything.
type PageFilter struct {
	Page  int
	Limit int
}

func NewPageFilter(page, limit int) PageFilter {
	if page < 0 {
		page = 0
	}
	if limit == 0 || limit < Unlimited {
		limit = DefaultLimit
	}
	page = min(page, MaxPage)
	limit = min(limit, MaxLimit)
	return PageFilter{Page: page, Limit: limit}
}

func (f PageFilter) IsUnlimited() bool {
	return f.Limit == Unlimited
}

func (f PageFilter) Offset() int {
	if f.IsUnlimited() || f.Page <= 0 {
		return 0
	}
	return f.Page * f.Limit
}

type SortFilter struct {
	SortBy    string
	SortOrder string
}

func (f SortFilter) IsDescending() bool {
	return f.SortOrder == "desc" || f.SortOrder == "DESC"
}

func (f SortFilter) OrderClause() string {
	if f.SortBy == "" {
		return ""
	}
	order := "ASC"
	if f.IsDescending() {
		order = "DESC"
	}
	return f.SortBy + " " + order
}
