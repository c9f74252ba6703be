package handler

import (
	"errors"
	"net/url"
	"strconv"

	"listings-console/internal/domain/filter"
	"listings-console/internal/domain/pagination"

	"github.com/gofiber/fiber/v3"
)

func queryValues(c fiber.Ctx) url.Values {
	q, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		return url.Values{}
	}
	return q
}

func parseQueryIntStrict(c fiber.Ctx, key string, defaultVal int) (int, error) {
	s := c.Query(key)
	if s == "" {
		return defaultVal, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return v, nil
}

// paging reads perPage and page, defaulting to the first page at the default size.
func paging(c fiber.Ctx) (perPage, page int, err error) {
	perPage, err = parseQueryIntStrict(c, "perPage", pagination.DefaultPerPage)
	if err != nil {
		return 0, 0, err
	}
	page, err = parseQueryIntStrict(c, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	return perPage, page, nil
}

func parseID(c fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("id"), 10, 64)
}

var errBadPaging = errors.New("perPage must be one of 10, 20, 30, 40, 50 and page at least 1")

// listingsSelection reads the filters and paging of a listings URL.
func listingsSelection(c fiber.Ctx) (filter.State, int, int, error) {
	perPage, page, err := paging(c)
	if err != nil {
		return filter.State{}, 0, 0, err
	}
	if !pagination.IsPageSize(perPage) || page < 1 {
		return filter.State{}, 0, 0, errBadPaging
	}
	return filter.FromQuery(queryValues(c)), perPage, page, nil
}
