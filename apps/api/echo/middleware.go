package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/phoebuz/core/study"
)

// workspaceMiddleware opens the workspace of the token's identity, loading its data on
// the first request.
func workspaceMiddleware(reg *study.Registry) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context claims")
			}
			ws, err := reg.Open(ctx.Request().Context(), claims.Identity())
			if err != nil {
				return errors.Wrap(err, "opening workspace")
			}
			ctx.Set(contextWorkspaceKey, ws)
			return next(ctx)
		}
	}
}

func getContextWorkspace(ctx echo.Context) (*study.Workspace, error) {
	if ws, ok := ctx.Get(contextWorkspaceKey).(*study.Workspace); ok {
		return ws, nil
	}
	return nil, errNoWorkspace
}
