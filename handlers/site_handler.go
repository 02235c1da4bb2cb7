package handlers

import (
	"net/http"

	"github.com/Dosada05/football-clinic/models"
	"github.com/Dosada05/football-clinic/web"
)

type SiteHandler struct {
	pages *web.Renderer
}

func NewSiteHandler(pages *web.Renderer) *SiteHandler {
	return &SiteHandler{pages: pages}
}

type landingPage struct {
	Clinic models.Clinic
}

// Landing renders the clinic page with the registration form. It also
// serves every unknown path.
func (h *SiteHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if err := h.pages.Render(w, http.StatusOK, web.PageLanding, landingPage{Clinic: models.FootballClinic}); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Clinic godoc
// @Summary Каталог клиники
// @Tags site
// @Description Schedules, plans and the options of the registration form (positions, locations, trial dates).
// @Produce json
// @Success 200 {object} map[string]interface{} "clinic"
// @Router /api/clinic [get]
func (h *SiteHandler) Clinic(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"clinic": models.FootballClinic}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
