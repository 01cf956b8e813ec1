package video

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidLimit = errors.New("limit must be a positive integer")

func parseLimit(c *gin.Context, def int) (int64, error) {
	raw, ok := c.GetQuery("limit")
	if !ok {
		return int64(def), nil
	}

	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return 0, errInvalidLimit
	}

	return limit, nil
}
