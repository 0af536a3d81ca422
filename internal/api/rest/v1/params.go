package v1

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// intQuery reads an integer query parameter, falling back to def when absent
func intQuery(ctx *gin.Context, name string, def int) (int, error) {
	raw, ok := ctx.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return value, nil
}

// boundedIntQuery reads an integer query parameter and checks it lies within [min, max]
func boundedIntQuery(ctx *gin.Context, name string, def, min, max int) (int, error) {
	value, err := intQuery(ctx, name, def)
	if err != nil {
		return 0, err
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
	}
	return value, nil
}

// pageQuery reads limit and offset
func pageQuery(ctx *gin.Context, defaultLimit, maxLimit int) (limit int, offset int, err error) {
	if limit, err = boundedIntQuery(ctx, "limit", defaultLimit, 1, maxLimit); err != nil {
		return 0, 0, err
	}
	if offset, err = intQuery(ctx, "offset", 0); err != nil {
		return 0, 0, err
	}
	if offset < 0 {
		return 0, 0, fmt.Errorf("offset must not be negative")
	}
	return limit, offset, nil
}
