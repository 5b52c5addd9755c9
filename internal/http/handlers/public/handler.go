package public

import "github.com/techgear-vn/techgear/internal/provider"

// Handler serves the storefront and user-facing API.
type Handler struct {
	*provider.Container
}

// New creates the public handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
