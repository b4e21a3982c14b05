package handlers

import (
	"context"
	"net/http"

	"github.com/vancomm/maze-server/internal/repository"
	"github.com/vancomm/maze-server/internal/session"
)

// record stores the outcome of a solve that just finished. Failures are
// logged and otherwise ignored, the run itself already succeeded.
func (h *MazeHandler) record(ctx context.Context, s *session.Session) {
	if h.repo == nil {
		return
	}
	rec, ok := s.TakeRecord()
	if !ok {
		return
	}
	params := repository.CreateRunParams{
		SessionId:       rec.SessionID.String(),
		Params:          rec.Params.String(),
		Width:           rec.Params.Width,
		Height:          rec.Params.Height,
		StartX:          rec.Start.X,
		StartY:          rec.Start.Y,
		EndX:            rec.End.X,
		EndY:            rec.End.Y,
		GenerationSteps: rec.GenerationSteps,
		Expanded:        rec.Expanded,
	}
	if rec.Found {
		length := rec.PathLength
		params.PathLength = &length
	}
	run, err := h.repo.CreateRun(ctx, params)
	if err != nil {
		h.log.WithError(err).WithField("session_id", rec.SessionID).Error("unable to record run")
		return
	}
	h.log.WithField("run_id", run.RunId).Debug("run recorded")
}

func (h *MazeHandler) Runs(w http.ResponseWriter, r *http.Request) {
	if h.repo == nil {
		sendError(w, h.log, http.StatusNotFound, ErrNoRecords)
		return
	}
	dto, err := decode[RunsFilterDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	runs, err := h.repo.ListRuns(r.Context(), repository.RunFilter{
		Width:  dto.Width,
		Height: dto.Height,
		Limit:  dto.Limit,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to list runs")
		return
	}
	if runs == nil {
		runs = []repository.Run{}
	}
	sendJSONOrLog(w, h.log, runs)
}
