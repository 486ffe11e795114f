package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/pucklab/puckcast/pkg/services"
)

// StandingRow is the wire shape of one team in the standings response.
type StandingRow struct {
	Abbrev             string  `json:"abbrev"`
	Name               string  `json:"name"`
	Conference         string  `json:"conference"`
	Division           string  `json:"division"`
	LogoURL            string  `json:"logo_url,omitempty"`
	Date               string  `json:"date"`
	GamesPlayed        int     `json:"games_played"`
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	OTLosses           int     `json:"ot_losses"`
	Points             int     `json:"points"`
	GoalsFor           int     `json:"goals_for"`
	GoalsAgainst       int     `json:"goals_against"`
	L10Points          int     `json:"l10_points"`
	StreakCode         string  `json:"streak_code,omitempty"`
	StreakCount        int     `json:"streak_count"`
	PlayoffProbability float64 `json:"playoff_probability"`
}

// StandingsHandler serves the scored current-season standings.
type StandingsHandler struct {
	service services.StandingsService
	logger  *zap.Logger
}

// NewStandingsHandler creates a new StandingsHandler.
func NewStandingsHandler(service services.StandingsService, logger *zap.Logger) *StandingsHandler {
	return &StandingsHandler{service: service, logger: logger}
}

// RegisterRoutes registers the standings handler's routes on the given mux.
func (h *StandingsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/standings", h.List)
}

// List handles GET /api/standings requests. An empty season yields an empty
// array, never null; only a storage failure produces an error response.
func (h *StandingsHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		_ = ErrorResponse(w, http.StatusMethodNotAllowed, "method_not_allowed", "only GET is supported")
		return
	}

	scored, err := h.service.CurrentStandings(r.Context())
	if err != nil {
		h.logger.Error("Failed to load standings", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "storage_error", "failed to load standings")
		return
	}

	rows := make([]StandingRow, 0, len(scored))
	for _, s := range scored {
		rows = append(rows, StandingRow{
			Abbrev:             s.Team.Abbrev,
			Name:               s.Team.Name,
			Conference:         s.Team.Conference,
			Division:           s.Team.Division,
			LogoURL:            s.Team.LogoURL,
			Date:               s.Snapshot.Date.Format("2006-01-02"),
			GamesPlayed:        s.Snapshot.GamesPlayed,
			Wins:               s.Snapshot.Wins,
			Losses:             s.Snapshot.Losses,
			OTLosses:           s.Snapshot.OTLosses,
			Points:             s.Snapshot.Points,
			GoalsFor:           s.Snapshot.GoalsFor,
			GoalsAgainst:       s.Snapshot.GoalsAgainst,
			L10Points:          s.Snapshot.L10Points,
			StreakCode:         s.Snapshot.StreakCode,
			StreakCount:        s.Snapshot.StreakCount,
			PlayoffProbability: s.Probability,
		})
	}

	if err := WriteJSON(w, http.StatusOK, rows); err != nil {
		h.logger.Error("Failed to encode standings response", zap.Error(err))
	}
}
