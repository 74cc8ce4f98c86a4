package archive

import (
	"bytes"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/haoyu-chen-me/seawolf-dine/internal/document"

	"github.com/google/uuid"
	"github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

// ErrNotFound is returned when a vendor has never been recorded.
var ErrNotFound = errors.New("no recorded runs")

type Config struct {
	// File is a local sqlite database, it is used when Url is empty.
	File string `json:"file"`
	// Url is a remote libsql database (ex. libsql://name.turso.io).
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func (c Config) Enabled() bool {
	return c.File != "" || c.Url != ""
}

func wrapOpenDB(err error) error {
	return fmt.Errorf("open archive: %w", err)
}

// OpenDB opens the database described by `config` without touching its schema.
func OpenDB(config Config) (*sql.DB, error) {
	if config.Url != "" {
		var opts []libsql.Option
		if config.AuthToken != "" {
			opts = append(opts, libsql.WithAuthToken(config.AuthToken))
		}
		connector, err := libsql.NewConnector(config.Url, opts...)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
		return sql.OpenDB(connector), nil
	}

	if config.File == "" {
		return nil, wrapOpenDB(fmt.Errorf("a path was not specified"))
	}
	if config.File != ":memory:" {
		err := os.MkdirAll(filepath.Dir(config.File), 0777)
		if err != nil {
			return nil, wrapOpenDB(err)
		}
	}

	db, err := sql.Open("sqlite", config.File)
	if err != nil {
		return nil, wrapOpenDB(err)
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	_, err = db.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		db.Close()
		return nil, wrapOpenDB(err)
	}
	return db, nil
}

// Store keeps a history of scrape runs.
type Store struct {
	db *sql.DB
}

// Open opens the database and makes sure the schema exists.
func Open(ctx context.Context, config Config) (*Store, error) {
	db, err := OpenDB(config)
	if err != nil {
		return nil, err
	}
	store, err := NewStore(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func NewStore(ctx context.Context, db *sql.DB) (*Store, error) {
	// some drivers only accept one statement per exec
	for _, stmt := range strings.Split(Schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		_, err := db.ExecContext(ctx, stmt)
		if err != nil {
			return nil, fmt.Errorf("apply schema: %w", err)
		}
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Result is the document a run produced for one vendor.
type Result struct {
	Vendor   string
	Document document.Document
}

type Run struct {
	StartedAt  time.Time
	FinishedAt time.Time
	Results    []Result
}

// Record saves a run and returns its id.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		"insert into scrape_run(id, started_at, finished_at) values (?, ?, ?)",
		id,
		run.StartedAt.Unix(),
		run.FinishedAt.Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}

	for _, result := range run.Results {
		var buff bytes.Buffer
		err := document.Encode(&buff, result.Document)
		if err != nil {
			return "", fmt.Errorf("record run: encode %s: %w", result.Vendor, err)
		}

		_, err = tx.ExecContext(
			ctx,
			`insert into vendor_result(run_id, vendor, date, status, message, item_count, document)
			values (?, ?, ?, ?, ?, ?, ?)`,
			id,
			result.Vendor,
			result.Document.Date,
			string(result.Document.Status),
			result.Document.Message,
			result.Document.ItemCount(),
			buff.String(),
		)
		if err != nil {
			return "", fmt.Errorf("record run: %s: %w", result.Vendor, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// Entry is a recorded vendor result.
type Entry struct {
	RunID      string
	Vendor     string
	Date       string
	Status     document.Status
	Message    string
	ItemCount  int
	RecordedAt time.Time
	// Document is the json file that was written for the vendor.
	Document string
}

const selectEntries = `select
	r.run_id, r.vendor, r.date, r.status, r.message, r.item_count, r.document, run.finished_at
from vendor_result as r
inner join scrape_run as run on run.id = r.run_id`

func scanEntry(scanner interface{ Scan(dest ...any) error }) (Entry, error) {
	var entry Entry
	var status string
	var finishedAt int64
	err := scanner.Scan(
		&entry.RunID,
		&entry.Vendor,
		&entry.Date,
		&status,
		&entry.Message,
		&entry.ItemCount,
		&entry.Document,
		&finishedAt,
	)
	if err != nil {
		return Entry{}, err
	}
	entry.Status = document.Status(status)
	entry.RecordedAt = time.Unix(finishedAt, 0)
	return entry, nil
}

// Latest returns the most recent result of `vendor`.
func (s *Store) Latest(ctx context.Context, vendor string) (Entry, error) {
	row := s.db.QueryRowContext(
		ctx,
		selectEntries+" where r.vendor = ? order by run.finished_at desc, run.rowid desc limit 1",
		vendor,
	)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%s: %w", vendor, ErrNotFound)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("latest %s: %w", vendor, err)
	}
	return entry, nil
}

// History returns up to `limit` results, newest first. An empty `vendor`
// returns results of every vendor.
func (s *Store) History(ctx context.Context, vendor string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := selectEntries
	var args []any
	if vendor != "" {
		query += " where r.vendor = ?"
		args = append(args, vendor)
	}
	query += " order by run.finished_at desc, run.rowid desc, r.vendor asc limit ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("history: %w", err)
		}
		out = append(out, entry)
	}
	return out, rows.Err()
}
