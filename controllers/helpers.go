package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-management/utils"
)

const (
	defaultPage    = 1
	defaultPerPage = 10
)

var (
	ErrInternal     = errors.New("Internal server error")
	ErrInvalidPage  = errors.New("page must be an integer")
	ErrInvalidLimit = errors.New("recordPerPage must be an integer")
)

// Pagination holds the parsed page / recordPerPage query parameters.
type Pagination struct {
	Page    int64
	PerPage int64
}

func (p Pagination) Skip() int64 {
	return (p.Page - 1) * p.PerPage
}

// parsePagination reads page and recordPerPage. Values below 1 fall back to the defaults.
func parsePagination(c *gin.Context) (Pagination, error) {
	p := Pagination{Page: defaultPage, PerPage: defaultPerPage}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, ErrInvalidPage
		}
		if n >= 1 {
			p.Page = n
		}
	}
	if raw := c.Query("recordPerPage"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return p, ErrInvalidLimit
		}
		if n >= 1 {
			p.PerPage = n
		}
	}
	return p, nil
}

func listResponse(key string, items interface{}, total int64, p Pagination) gin.H {
	return gin.H{
		"total_count": total,
		key:           items,
		"page":        p.Page,
		"per_page":    p.PerPage,
	}
}

// respondServiceError maps a service failure onto an HTTP status.
func respondServiceError(c *gin.Context, err error) {
	var verr *utils.ValidationError
	if errors.As(err, &verr) {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	utils.RespondError(c, http.StatusInternalServerError, ErrInternal)
}
