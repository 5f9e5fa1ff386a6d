// Package tracing persists pipeline events to a SQLite-backed store for
// offline inspection. It is a pure observer: nothing in mem/pipeline
// depends on a Recorder being attached.
package tracing

import (
	"database/sql"
	"fmt"

	// Registers the sqlite3 driver under "sqlite3".
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// Event is one recorded translate or cache-access outcome.
type Event struct {
	Sequence string
	Kind     string // "translate" or "cache-access"
	Address  uint64
	Hit      bool
}

// Recorder writes Events to a SQLite database, batching inserts and
// flushing when the batch fills or the process exits.
type Recorder struct {
	db        *sql.DB
	statement *sql.Stmt

	pending   []Event
	batchSize int
}

// NewRecorder opens (or creates) the SQLite database at path and prepares
// its trace table. The caller must Close the Recorder when done.
func NewRecorder(path string) (*Recorder, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("tracing: open %s: %w", path, err)
	}

	r := &Recorder{db: db, batchSize: 1000}

	if err := r.createTable(); err != nil {
		db.Close()
		return nil, err
	}

	if err := r.prepareStatement(); err != nil {
		db.Close()
		return nil, err
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

func (r *Recorder) createTable() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS trace (
			sequence TEXT NOT NULL,
			kind     TEXT NOT NULL,
			address  INTEGER NOT NULL,
			hit      INTEGER NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("tracing: create table: %w", err)
	}

	return nil
}

func (r *Recorder) prepareStatement() error {
	stmt, err := r.db.Prepare(
		`INSERT INTO trace (sequence, kind, address, hit) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("tracing: prepare insert: %w", err)
	}

	r.statement = stmt

	return nil
}

// RecordTranslation appends a translate event keyed by the virtual
// address that was translated. fault reports whether the translation
// serviced a page fault.
func (r *Recorder) RecordTranslation(virtualAddress, physicalAddress uint64, fault bool) {
	r.record(Event{
		Sequence: xid.New().String(),
		Kind:     "translate",
		Address:  virtualAddress,
		Hit:      !fault,
	})
}

// RecordCacheAccess appends a cache-access event.
func (r *Recorder) RecordCacheAccess(physicalAddress uint64, hit bool) {
	r.record(Event{
		Sequence: xid.New().String(),
		Kind:     "cache-access",
		Address:  physicalAddress,
		Hit:      hit,
	})
}

func (r *Recorder) record(e Event) {
	r.pending = append(r.pending, e)
	if len(r.pending) >= r.batchSize {
		r.Flush()
	}
}

// Flush writes every buffered event to the database in one transaction.
func (r *Recorder) Flush() {
	if len(r.pending) == 0 {
		return
	}

	tx, err := r.db.Begin()
	if err != nil {
		panic(err)
	}

	stmt := tx.Stmt(r.statement)
	for _, e := range r.pending {
		if _, err := stmt.Exec(e.Sequence, e.Kind, e.Address, e.Hit); err != nil {
			tx.Rollback()
			panic(err)
		}
	}

	if err := tx.Commit(); err != nil {
		panic(err)
	}

	r.pending = nil
}

// Close flushes any buffered events and closes the database connection.
func (r *Recorder) Close() error {
	r.Flush()

	if r.statement != nil {
		r.statement.Close()
	}

	return r.db.Close()
}
