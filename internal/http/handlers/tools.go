package handlers

import (
	"net/http"

	"github.com/faraz1977/ai-visionary/internal/domain"
)

type toolDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Credits     int    `json:"credits"`
}

// ToolsList returns the static tool catalog.
func (a *App) ToolsList(w http.ResponseWriter, r *http.Request) {
	catalog := domain.Tools()
	items := make([]toolDTO, 0, len(catalog))
	for _, t := range catalog {
		items = append(items, toolDTO{
			ID:          string(t.ID),
			Title:       t.Title,
			Description: t.Description,
			Icon:        t.Icon,
			Credits:     t.Credits,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
