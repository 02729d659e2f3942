package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const attemptsTable = "attempts"

var attemptColumns = []string{
	"id", "sequence", "timestamp", "bank_locale", "answers",
	"categories", "average", "better_than", "duration_secs",
}

// attemptRepo implements AttemptRepo with ent's SQL builders.
type attemptRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func (r *attemptRepo) SaveAttempt(ctx context.Context, rec AttemptRecord) (*AttemptRecord, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return nil, fmt.Errorf("next sequence: %w", err)
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	rec.Timestamp = rec.Timestamp.UTC()
	rec.Sequence = seqNum
	if rec.Answers == nil {
		rec.Answers = map[int]string{}
	}

	answers, err := json.Marshal(rec.Answers)
	if err != nil {
		return nil, fmt.Errorf("marshal answers: %w", err)
	}
	categories, err := json.Marshal(rec.Categories)
	if err != nil {
		return nil, fmt.Errorf("marshal categories: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(attemptsTable).
		Columns(attemptColumns...).
		Values(
			rec.ID, rec.Sequence, formatTime(rec.Timestamp), rec.BankLocale,
			string(answers), string(categories), rec.Average, rec.BetterThan, rec.DurationSecs,
		).
		Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return nil, fmt.Errorf("save attempt: %w", err)
	}
	return &rec, nil
}

func (r *attemptRepo) ListAttempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(attemptsTable)).
		OrderBy(entsql.Desc("sequence"))
	applyQueryOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		rec, err := scanAttempt(&rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *attemptRepo) GetAttempt(ctx context.Context, id string) (*AttemptRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(attemptsTable)).
		Where(entsql.EQ("id", id)).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query attempt: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query attempt: %w", err)
		}
		return nil, fmt.Errorf("attempt %s: %w", id, ErrNotFound)
	}
	return scanAttempt(&rows)
}

func (r *attemptRepo) DeleteAll(ctx context.Context) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).Delete(attemptsTable).Query()

	var res sql.Result
	if err := r.drv.Exec(ctx, query, args, &res); err != nil {
		return 0, fmt.Errorf("delete attempts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return int(n), nil
}

func (r *attemptRepo) CountAttempts(ctx context.Context) (int, error) {
	return countRows(ctx, r.drv, attemptsTable)
}

func scanAttempt(rows *entsql.Rows) (*AttemptRecord, error) {
	var (
		rec                   AttemptRecord
		ts, answers, catsJSON string
	)
	err := rows.Scan(
		&rec.ID, &rec.Sequence, &ts, &rec.BankLocale, &answers,
		&catsJSON, &rec.Average, &rec.BetterThan, &rec.DurationSecs,
	)
	if err != nil {
		return nil, fmt.Errorf("scan attempt: %w", err)
	}
	if rec.Timestamp, err = parseTime(ts); err != nil {
		return nil, fmt.Errorf("parse attempt timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(answers), &rec.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	if err := json.Unmarshal([]byte(catsJSON), &rec.Categories); err != nil {
		return nil, fmt.Errorf("unmarshal categories: %w", err)
	}
	return &rec, nil
}

// applyQueryOpts adds the sequence and time window filters and the limit.
func applyQueryOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", formatTime(opts.From)))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", formatTime(opts.To)))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

func countRows(ctx context.Context, drv *entsql.Driver, table string) (int, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(table)).
		Query()

	var rows entsql.Rows
	if err := drv.Query(ctx, query, args, &rows); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return n, rows.Err()
}
