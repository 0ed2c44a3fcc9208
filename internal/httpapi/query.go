package httpapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"hhscout-engine/internal/filter"
	"hhscout-engine/internal/store"
)

// projectIDFrom reads the project query parameter, falling back to the
// default project when absent.
func projectIDFrom(q url.Values) (int64, error) {
	raw := strings.TrimSpace(q.Get("project"))
	if raw == "" {
		return store.DefaultProjectID, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid project id %q", raw)
	}
	return id, nil
}

// criteriaFrom builds filter criteria from query parameters. Keyword
// lists are comma-separated; blank entries are dropped.
func criteriaFrom(q url.Values) (filter.Criteria, error) {
	var c filter.Criteria

	if raw := strings.TrimSpace(q.Get("min_salary")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c, fmt.Errorf("invalid min_salary %q", raw)
		}
		c.MinSalary = &n
	}
	if raw := strings.TrimSpace(q.Get("max_salary")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return c, fmt.Errorf("invalid max_salary %q", raw)
		}
		c.MaxSalary = &n
	}
	if raw := strings.TrimSpace(q.Get("hide_empty")); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return c, fmt.Errorf("invalid hide_empty %q", raw)
		}
		c.HideEmpty = v
	}

	c.IncludeKeywords = csvList(q.Get("include_keywords"))
	c.ExcludeKeywords = csvList(q.Get("exclude_keywords"))

	for _, f := range csvList(q.Get("search_in")) {
		switch f {
		case filter.FieldName, filter.FieldDescription, filter.FieldSkills, filter.FieldFullText:
			c.SearchIn = append(c.SearchIn, f)
		default:
			return c, fmt.Errorf("unknown search field %q", f)
		}
	}

	return c, nil
}

func csvList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// pageFrom reads page/per_page with defaults 1 and 20. per_page is
// capped so a single request cannot serialize the whole table.
func pageFrom(q url.Values) (page, perPage int) {
	page, perPage = 1, 20
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		page = n
	}
	if n, err := strconv.Atoi(q.Get("per_page")); err == nil && n > 0 {
		perPage = n
	}
	if perPage > 200 {
		perPage = 200
	}
	return page, perPage
}
