package api

import (
	xhttp "FXPulse/pkg/http"

	"github.com/labstack/echo/v4"
)

// Handlers bundles route groups behind a single server handler.
type Handlers struct {
	parts []xhttp.Handler
}

func Compose(parts ...xhttp.Handler) *Handlers {
	return &Handlers{parts: parts}
}

func (h *Handlers) RegisterRoutes(e *echo.Echo) {
	for _, p := range h.parts {
		if p != nil {
			p.RegisterRoutes(e)
		}
	}
}
