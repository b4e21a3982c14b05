package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

var ErrNotMigrated = errors.New("run table is missing, apply migrations")

// classify wraps errors that mean the schema is out of date.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UndefinedTable {
		return fmt.Errorf("%w: %s", ErrNotMigrated, pgErr.Message)
	}
	return err
}

// Run is one finished solve. Only the parameters and the outcome are kept,
// the maze itself is regenerated from Params when needed.
type Run struct {
	RunId           int64              `json:"run_id"`
	SessionId       string             `json:"session_id"`
	Params          string             `json:"params"`
	Width           int                `json:"width"`
	Height          int                `json:"height"`
	StartX          int                `json:"start_x"`
	StartY          int                `json:"start_y"`
	EndX            int                `json:"end_x"`
	EndY            int                `json:"end_y"`
	GenerationSteps int                `json:"generation_steps"`
	Expanded        int                `json:"expanded"`
	PathLength      *int               `json:"path_length"`
	CreatedAt       pgtype.Timestamptz `json:"-"`
}

type CreateRunParams struct {
	SessionId       string
	Params          string
	Width           int
	Height          int
	StartX          int
	StartY          int
	EndX            int
	EndY            int
	GenerationSteps int
	Expanded        int
	PathLength      *int
}

func (p CreateRunParams) Args() pgx.NamedArgs {
	return pgx.NamedArgs{
		"session_id":       p.SessionId,
		"params":           p.Params,
		"width":            p.Width,
		"height":           p.Height,
		"start_x":          p.StartX,
		"start_y":          p.StartY,
		"end_x":            p.EndX,
		"end_y":            p.EndY,
		"generation_steps": p.GenerationSteps,
		"expanded":         p.Expanded,
		"path_length":      p.PathLength,
	}
}

func (q *Queries) CreateRun(ctx context.Context, params CreateRunParams) (*Run, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO run (
			session_id, params, width, height, start_x, start_y, end_x, end_y,
			generation_steps, expanded, path_length
		)
		VALUES (
			@session_id, @params, @width, @height, @start_x, @start_y, @end_x, @end_y,
			@generation_steps, @expanded, @path_length
		)
		RETURNING *;`,
		params.Args(),
	)
	run, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Run])
	return run, classify(err)
}

type RunFilter struct {
	Width  *int
	Height *int
	Limit  int
}

func (f RunFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := make([]string, 0)
	args := pgx.NamedArgs{}
	if f.Width != nil {
		clauses = append(clauses, "width = @width")
		args["width"] = *f.Width
	}
	if f.Height != nil {
		clauses = append(clauses, "height = @height")
		args["height"] = *f.Height
	}
	return strings.Join(clauses, " AND "), args
}

// ListRuns returns runs shortest path first. Runs that found no path come
// last.
func (q *Queries) ListRuns(ctx context.Context, filter RunFilter) ([]Run, error) {
	query := "SELECT * FROM run"

	whereClause, args := filter.WhereClause()
	if whereClause != "" {
		query += " WHERE " + whereClause
	}

	query += " ORDER BY path_length NULLS LAST, expanded, run_id"

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	query += " LIMIT @limit;"
	args["limit"] = limit

	rows, err := q.db.Query(ctx, query, args)
	if err != nil {
		return nil, classify(err)
	}
	runs, err := pgx.CollectRows(rows, pgx.RowToStructByName[Run])
	return runs, classify(err)
}
