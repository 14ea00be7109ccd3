package v1

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tabhub/tabhub/internal/api/handler/v1/response"
	"github.com/tabhub/tabhub/internal/api/middleware"
)

func parseUintParam(ctx *gin.Context, name string) (uint, *response.Err) {
	raw := ctx.Param(name)

	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, response.ErrBadRequest(fmt.Errorf("invalid %v %q", name, raw))
	}

	return uint(value), nil
}

// parseRoundIDs reads the "rounds" query parameter, a comma-separated list of
// round IDs scoping the request.
func parseRoundIDs(ctx *gin.Context) ([]uint, *response.Err) {
	raw := ctx.Query("rounds")
	if raw == "" {
		return nil, response.ErrBadRequest(fmt.Errorf("query parameter rounds is required"))
	}

	parts := strings.Split(raw, ",")
	roundIDs := make([]uint, len(parts))
	for i, part := range parts {
		value, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return nil, response.ErrBadRequest(fmt.Errorf("invalid round ID %q", part))
		}
		roundIDs[i] = uint(value)
	}

	return roundIDs, nil
}

func editorFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrUnauthorized(fmt.Errorf("missing user in context"))
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, response.ErrUnauthorized(fmt.Errorf("malformed user in context"))
	}

	return userID, nil
}
