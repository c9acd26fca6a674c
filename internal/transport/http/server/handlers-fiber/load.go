package handlers_fiber

import (
	"net/http"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/api"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/mapper"

	"github.com/gofiber/fiber/v2"
)

// DesignerLoad returns the per-designer workload report, optionally
// scoped to one board via the "board" query param.
func (h *Handler) DesignerLoad(c *fiber.Ctx) error {
	actor, ok := identity(c)
	if !ok {
		return unauthenticated(c)
	}

	var slug *string
	if s := c.Query("board"); s != "" {
		slug = &s
	}

	loads, err := h.uc.DesignerLoad(c.Context(), actor, slug)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(http.StatusOK).JSON(struct {
		Designers []api.DesignerLoad `json:"designers"`
	}{Designers: mapper.ToAPILoadList(loads)})
}
