package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/gridboard/pkg/board"
	"github.com/matzehuels/gridboard/pkg/buildinfo"
	"github.com/matzehuels/gridboard/pkg/drag"
	"github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/store"
)

// gridUnset opens only boards that already exist.
var gridUnset = grid.Grid{}

// =============================================================================
// Request and Response Types
// =============================================================================

type boardResponse struct {
	Name    string      `json:"name"`
	Grid    grid.Grid   `json:"grid"`
	Widgets grid.Layout `json:"widgets"`
}

type putBoardRequest struct {
	Grid    grid.Grid   `json:"grid"`
	Widgets grid.Layout `json:"widgets"`
}

type addWidgetRequest struct {
	ID     string `json:"id,omitempty"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type moveRequest struct {
	ID string `json:"id"`
	X  int    `json:"x"`
	Y  int    `json:"y"`
}

type moveResponse struct {
	Displaced []string    `json:"displaced"`
	Widgets   grid.Layout `json:"widgets"`
}

type compactResponse struct {
	Moved   int         `json:"moved"`
	Widgets grid.Layout `json:"widgets"`
}

type previewRequest struct {
	ID string  `json:"id"`
	DX float64 `json:"dx"`
	DY float64 `json:"dy"`
}

type historyResponse struct {
	Applied bool        `json:"applied"`
	Widgets grid.Layout `json:"widgets"`
}

func toResponse(b *board.Board) boardResponse {
	return boardResponse{Name: b.Name(), Grid: b.Grid(), Widgets: layoutOf(b)}
}

// layoutOf returns the board layout, never nil, so it encodes as [].
func layoutOf(b *board.Board) grid.Layout {
	if l := b.Layout(); l != nil {
		return l
	}
	return grid.Layout{}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) handleListBoards(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"boards": names})
}

func (s *Server) handleGetBoard(w http.ResponseWriter, r *http.Request) {
	b, err := s.open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(b))
}

func (s *Server) handlePutBoard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateBoardName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	var req putBoardRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Grid.CellSize == 0 && req.Grid.Gap == 0 {
		req.Grid.CellSize, req.Grid.Gap = grid.DefaultCellSize, grid.DefaultGap
	}
	if err := req.Grid.Validate(req.Widgets); err != nil {
		s.writeError(w, r, err)
		return
	}

	rec := &store.Record{Name: name, Grid: req.Grid, Widgets: req.Widgets, UpdatedAt: time.Now().UTC()}
	err := s.retire(name, func() error { return s.store.Set(r.Context(), rec) })
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	b, err := s.open(r.Context(), name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("stored board", "board", name, "widgets", len(req.Widgets))
	writeJSON(w, http.StatusOK, toResponse(b))
}

func (s *Server) handleDeleteBoard(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	err := s.retire(name, func() error {
		rec, err := s.store.Get(r.Context(), name)
		if err != nil {
			return err
		}
		if rec == nil {
			return errors.New(errors.ErrCodeBoardNotFound, "board %q does not exist", name)
		}
		return s.store.Delete(r.Context(), name)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleAddWidget(w http.ResponseWriter, r *http.Request) {
	b, err := s.open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req addWidgetRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	wgt, err := b.AddWidget(r.Context(), req.ID, grid.Size{Width: req.Width, Height: req.Height})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, wgt)
}

func (s *Server) handleRemoveWidget(w http.ResponseWriter, r *http.Request) {
	b, err := s.open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := b.RemoveWidget(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	b, err := s.open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req moveRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	displaced, err := b.Move(r.Context(), req.ID, grid.Position{X: req.X, Y: req.Y})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if displaced == nil {
		displaced = []string{}
	}
	writeJSON(w, http.StatusOK, moveResponse{Displaced: displaced, Widgets: layoutOf(b)})
}

func (s *Server) handleCompact(w http.ResponseWriter, r *http.Request) {
	b, err := s.open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	moved, err := b.Compact(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, compactResponse{Moved: moved, Widgets: layoutOf(b)})
}

// handlePreview evaluates a speculative drag without touching the board's
// own gesture state.
func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	b, err := s.open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req previewRequest
	if err := decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	layout := b.Layout()
	sess, ok := drag.Start(layout, req.ID)
	if !ok {
		s.writeError(w, r, errors.New(errors.ErrCodeWidgetNotFound, "widget %q not found", req.ID))
		return
	}
	sess = drag.Update(b.Grid(), layout, sess, req.DX, req.DY)
	writeJSON(w, http.StatusOK, sess.Feedback())
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.history(w, r, (*board.Board).Undo)
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	s.history(w, r, (*board.Board).Redo)
}

func (s *Server) history(w http.ResponseWriter, r *http.Request, step func(*board.Board, context.Context) (bool, error)) {
	b, err := s.open(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	applied, err := step(b, r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, historyResponse{Applied: applied, Widgets: layoutOf(b)})
}
