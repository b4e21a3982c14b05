package handlers

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/maze"
	"github.com/vancomm/maze-server/internal/middleware"
	"github.com/vancomm/maze-server/internal/repository"
	"github.com/vancomm/maze-server/internal/session"
)

var (
	ErrUnauthorized = errors.New("session token required")
	ErrForbidden    = errors.New("token does not grant access to this session")
	ErrNoRecords    = errors.New("run records are not enabled")
)

// RunRepository stores finished runs. It is optional: without one the
// server forgets runs once their session is gone.
type RunRepository interface {
	CreateRun(ctx context.Context, params repository.CreateRunParams) (*repository.Run, error)
	ListRuns(ctx context.Context, filter repository.RunFilter) ([]repository.Run, error)
}

type MazeHandler struct {
	log    *logrus.Logger
	store  *session.Store
	repo   RunRepository
	jwt    *config.JWT
	ws     *config.WebSocket
	limits config.Limits

	rndMu sync.Mutex
	rnd   *rand.Rand
}

func NewMazeHandler(
	log *logrus.Logger,
	store *session.Store,
	repo RunRepository,
	jwt *config.JWT,
	ws *config.WebSocket,
	limits config.Limits,
	rnd *rand.Rand,
) *MazeHandler {
	handler := &MazeHandler{
		log:    log,
		store:  store,
		repo:   repo,
		jwt:    jwt,
		ws:     ws,
		limits: limits,
		rnd:    rnd,
	}

	return handler
}

func (h *MazeHandler) seed() uint64 {
	h.rndMu.Lock()
	defer h.rndMu.Unlock()
	return h.rnd.Uint64()
}

// statusOf maps errors from the maze and session packages to HTTP statuses.
func statusOf(err error) int {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, maze.ErrGenerationStarted),
		errors.Is(err, session.ErrNotGenerated):
		return http.StatusConflict
	case errors.Is(err, maze.ErrOutOfBounds),
		errors.Is(err, maze.ErrInvalidDimension),
		errors.Is(err, session.ErrTooManySteps),
		errors.Is(err, session.ErrInvalidSteps),
		errors.Is(err, session.ErrUnknownCommand),
		errors.Is(err, session.ErrCommandArgs):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *MazeHandler) fail(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.log.WithError(err).Error("request failed")
	}
	sendError(w, h.log, status, err)
}

func (h *MazeHandler) session(r *http.Request) (*session.Session, error) {
	return h.store.Lookup(r.PathValue("id"))
}

// Owner rejects requests whose token does not belong to the {id} session.
func (h *MazeHandler) Owner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.SessionClaims(r.Context())
		if !ok {
			sendError(w, h.log, http.StatusUnauthorized, ErrUnauthorized)
			return
		}
		if claims.SessionID != r.PathValue("id") {
			sendError(w, h.log, http.StatusForbidden, ErrForbidden)
			return
		}
		next(w, r)
	}
}

func (h *MazeHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[CreateMazeDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	params := maze.Params{Width: dto.Width, Height: dto.Height}
	if dto.Seed != nil {
		params.Seed = *dto.Seed
	} else {
		params.Seed = h.seed()
	}
	if err := params.Validate(h.limits.MaxWidth, h.limits.MaxHeight); err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}

	s, err := h.store.Create(params)
	if err != nil {
		h.fail(w, err)
		return
	}

	token, err := h.issueToken(s)
	if err != nil {
		h.store.Delete(s.ID)
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to sign session token")
		return
	}

	h.log.WithFields(logrus.Fields{
		"session_id": s.ID,
		"params":     params.String(),
	}).Debug("session created")

	sendJSONStatus(w, h.log, http.StatusCreated, CreatedMazeDTO{
		SessionID: s.ID.String(),
		TokenDTO:  token,
		Maze:      s.Snapshot(),
	})
}

func (h *MazeHandler) issueToken(s *session.Session) (TokenDTO, error) {
	claims := h.jwt.NewSessionClaims(s.ID)
	token, err := h.jwt.Sign(claims)
	if err != nil {
		return TokenDTO{}, err
	}
	return TokenDTO{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Token trades a still valid session token for one with a fresh lifetime.
func (h *MazeHandler) Token(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	s.Touch()
	token, err := h.issueToken(s)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.log.WithError(err).Error("unable to sign session token")
		return
	}
	sendJSONOrLog(w, h.log, token)
}

func (h *MazeHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	sendJSONOrLog(w, h.log, s.Snapshot())
}

func (h *MazeHandler) Text(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(s.Render()))
}

// mutate runs op on the {id} session, records a finished solve if there is
// one, and answers with the new snapshot.
func (h *MazeHandler) mutate(
	w http.ResponseWriter, r *http.Request, op func(*session.Session) error,
) {
	s, err := h.session(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	if err := op(s); err != nil {
		h.fail(w, err)
		return
	}
	h.record(r.Context(), s)
	sendJSONOrLog(w, h.log, s.Snapshot())
}

func (h *MazeHandler) steps(w http.ResponseWriter, r *http.Request) (int, bool) {
	dto, err := decode[StepsDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return 0, false
	}
	return dto.Count(), true
}

func (h *MazeHandler) Step(w http.ResponseWriter, r *http.Request) {
	n, ok := h.steps(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, func(s *session.Session) error {
		return s.Step(n, h.limits.MaxSteps)
	})
}

func (h *MazeHandler) Generate(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*session.Session).Generate)
}

func (h *MazeHandler) Restart(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*session.Session).Restart)
}

func (h *MazeHandler) Endpoints(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[EndpointsDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.log, http.StatusBadRequest, err)
		return
	}
	start, end := dto.Points()
	h.mutate(w, r, func(s *session.Session) error {
		return s.SetEndpoints(start, end)
	})
}

func (h *MazeHandler) SolveStep(w http.ResponseWriter, r *http.Request) {
	n, ok := h.steps(w, r)
	if !ok {
		return
	}
	h.mutate(w, r, func(s *session.Session) error {
		return s.SolveStep(n, h.limits.MaxSteps)
	})
}

func (h *MazeHandler) Solve(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*session.Session).Solve)
}

func (h *MazeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, err := h.session(r)
	if err != nil {
		h.fail(w, err)
		return
	}
	h.store.Delete(s.ID)
	w.WriteHeader(http.StatusNoContent)
}
