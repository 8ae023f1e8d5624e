package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"hoopsim/internal/game"

	"github.com/go-chi/chi/v5"
)

// playerSpec is the wire shape of one roster entry in a create-game request.
// Mirrors game.Player field-for-field; kept separate so the wire format
// isn't silently coupled to internal struct tags.
type playerSpec struct {
	Name        string `json:"name"`
	Pos         string `json:"pos"`
	IsSuperstar bool   `json:"isSuperstar"`

	Shooting struct {
		ThreePoint int `json:"threePoint"`
		MidRange   int `json:"midRange"`
		FreeThrow  int `json:"freeThrow"`
	} `json:"shooting"`
	Finishing struct {
		Layup int `json:"layup"`
		Dunk  int `json:"dunk"`
	} `json:"finishing"`
	Playmaking struct {
		CourtVision  int `json:"courtVision"`
		BallHandling int `json:"ballHandling"`
	} `json:"playmaking"`
	Defense struct {
		Perimeter  int `json:"perimeter"`
		Post       int `json:"post"`
		Steal      int `json:"steal"`
		Block      int `json:"block"`
		Rebounding int `json:"rebounding"`
	} `json:"defense"`
	Athletic struct {
		Speed        int `json:"speed"`
		Acceleration int `json:"acceleration"`
		Vertical     int `json:"vertical"`
		Stamina      int `json:"stamina"`
		Height       int `json:"height"`
	} `json:"athletic"`
}

func posFromString(s string) game.Position {
	switch s {
	case "SG":
		return game.SG
	case "SF":
		return game.SF
	case "PF":
		return game.PF
	case "C":
		return game.C
	default:
		return game.PG
	}
}

func (ps playerSpec) toPlayer() *game.Player {
	return &game.Player{
		Name:        ps.Name,
		Pos:         posFromString(ps.Pos),
		IsSuperstar: ps.IsSuperstar,
		Shooting: game.ShootingSkills{
			ThreePoint: ps.Shooting.ThreePoint,
			MidRange:   ps.Shooting.MidRange,
			FreeThrow:  ps.Shooting.FreeThrow,
		},
		Finishing: game.FinishingSkills{
			Layup: ps.Finishing.Layup,
			Dunk:  ps.Finishing.Dunk,
		},
		Playmaking: game.PlaymakingSkills{
			CourtVision:  ps.Playmaking.CourtVision,
			BallHandling: ps.Playmaking.BallHandling,
		},
		Defense: game.DefenseSkills{
			Perimeter:  ps.Defense.Perimeter,
			Post:       ps.Defense.Post,
			Steal:      ps.Defense.Steal,
			Block:      ps.Defense.Block,
			Rebounding: ps.Defense.Rebounding,
		},
		Athletic: game.AthleticSkills{
			Speed:        ps.Athletic.Speed,
			Acceleration: ps.Athletic.Acceleration,
			Vertical:     ps.Athletic.Vertical,
			Stamina:      ps.Athletic.Stamina,
			Height:       ps.Athletic.Height,
		},
	}
}

type teamSpec struct {
	Name   string       `json:"name"`
	Roster []playerSpec `json:"roster"`
}

func (ts teamSpec) toTeam() (*game.Team, error) {
	if len(ts.Roster) != 5 {
		return nil, errInvalidRosterSize
	}
	var roster [5]*game.Player
	for i, ps := range ts.Roster {
		roster[i] = ps.toPlayer()
	}
	return game.NewTeam(ts.Name, roster), nil
}

var errInvalidRosterSize = errors.New("roster must have exactly 5 players")

type createGameRequest struct {
	ID   string   `json:"id"`
	Seed uint32   `json:"seed"`
	Home teamSpec `json:"home"`
	Away teamSpec `json:"away"`
}

// handleCreateGame handles POST /api/games: constructs a fresh game from
// the supplied rosters and registers it with the engine, which starts its
// free-running ticker immediately.
func (h *routerHandlers) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req createGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	home, err := req.Home.toTeam()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	away, err := req.Away.toTeam()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mg, err := h.engine.CreateGame(req.ID, req.Seed, home, away)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": mg.ID})
}

// handleListGames handles GET /api/games.
func (h *routerHandlers) handleListGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"games": h.engine.ListGames()})
}

// handleDeleteGame handles DELETE /api/games/{gameID}.
func (h *routerHandlers) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	h.engine.RemoveGame(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *routerHandlers) getGameOr404(w http.ResponseWriter, r *http.Request) (*game.ManagedGame, bool) {
	id := chi.URLParam(r, "gameID")
	mg, ok := h.engine.GetGame(id)
	if !ok {
		writeError(w, http.StatusNotFound, "game not found")
		return nil, false
	}
	return mg, true
}

// handleGetState handles GET /api/games/{id}/state: returns the most
// recently published tick snapshot, a lock-free read off the snapshot pool.
func (h *routerHandlers) handleGetState(w http.ResponseWriter, r *http.Request) {
	mg, ok := h.getGameOr404(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mg.Snapshot())
}

// handleGetBoxScore handles GET /api/games/{id}/boxscore.
func (h *routerHandlers) handleGetBoxScore(w http.ResponseWriter, r *http.Request) {
	mg, ok := h.getGameOr404(w, r)
	if !ok {
		return
	}
	var box [10]game.PlayerBoxScore
	mg.WithState(func(g *game.GameState) {
		box = g.BoxScore
	})
	writeJSON(w, http.StatusOK, box)
}

// handleGetPlayByPlay handles GET /api/games/{id}/playbyplay: returns the
// most recent events from the game's in-memory history ring.
func (h *routerHandlers) handleGetPlayByPlay(w http.ResponseWriter, r *http.Request) {
	mg, ok := h.getGameOr404(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, mg.Snapshot().RecentEvents)
}

type tacticsRequest struct {
	Team    int `json:"team"`
	Offense int `json:"offense"`
	Defense int `json:"defense"`
}

// handlePostTactics handles POST /api/games/{id}/tactics.
func (h *routerHandlers) handlePostTactics(w http.ResponseWriter, r *http.Request) {
	mg, ok := h.getGameOr404(w, r)
	if !ok {
		return
	}
	var req tacticsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tactics := game.Tactics{
		Offense: game.OffenseTactic(req.Offense),
		Defense: game.DefenseTactic(req.Defense),
	}
	if err := mg.SetTactics(req.Team, tactics); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type runRequest struct {
	Ticks int `json:"ticks"`
}

// handlePostRun handles POST /api/games/{id}/run: synchronously advances a
// game by up to MaxTicksPerRun ticks, for callers driving their own pacing
// instead of relying on the engine's free-running ticker.
func (h *routerHandlers) handlePostRun(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "gameID")
	var req runRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ran, err := h.engine.RunTicks(id, req.Ticks)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"ticksRan": ran})
}

// handleGetLeaderboard handles GET /api/leaderboard: the top 10 cross-game
// scoring leaders, ranked by points minus twice turnovers.
func (h *routerHandlers) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	top := h.engine.Leaderboard().GetTop(10)
	writeJSON(w, http.StatusOK, top)
}
