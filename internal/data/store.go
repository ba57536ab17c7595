package data

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
)

// Pilot is the public-facing pilot payload. KufMeta holds the serialized
// shard allocation for the encounter loadout.
type Pilot struct {
	ID       string `json:"id"`
	Nickname string `json:"nickname"`
	Tag      int    `json:"tag"`
	Shards   int    `json:"shards"`
	KufMeta  string `json:"-"`
}

// RunResult is one finished encounter row.
type RunResult struct {
	PilotID   string  `json:"pilot_id"`
	Encounter string  `json:"encounter"`
	Gold      int     `json:"gold"`
	Kills     int     `json:"kills"`
	Victory   bool    `json:"victory"`
	Duration  float64 `json:"duration"`
}

// Store persists pilot progress and run history in Postgres.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// NewStore accepts an existing DB handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// NewStoreFromDB builds the store from a connection string (e.g. os.Getenv("DATABASE_URL")).
func NewStoreFromDB(connStr string) (*Store, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return NewStore(db), nil
}

// DB exposes the underlying handle for packages that run their own queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// FirstPilot is a convenience helper used when no ID is provided.
func (s *Store) FirstPilot() (Pilot, bool) {
	row := s.db.QueryRow(`
        SELECT id, nickname, tag, shards, COALESCE(kuf_meta, '')
        FROM pilots
        ORDER BY created_at ASC
        LIMIT 1
    `)

	var p Pilot
	if err := row.Scan(&p.ID, &p.Nickname, &p.Tag, &p.Shards, &p.KufMeta); err != nil {
		return Pilot{}, false
	}
	return p, true
}

// GetPilot returns a single pilot by ID.
func (s *Store) GetPilot(id string) (Pilot, bool) {
	row := s.db.QueryRow(`
        SELECT id, nickname, tag, shards, COALESCE(kuf_meta, '')
        FROM pilots
        WHERE id = $1
    `, id)

	var p Pilot
	if err := row.Scan(&p.ID, &p.Nickname, &p.Tag, &p.Shards, &p.KufMeta); err != nil {
		return Pilot{}, false
	}
	return p, true
}

// UpdateKufMeta overwrites the serialized allocation blob for a pilot.
func (s *Store) UpdateKufMeta(pilotID, meta string) error {
	_, err := s.db.Exec(`
		UPDATE pilots
		SET kuf_meta = $1,
		    updated_at = NOW()
		WHERE id = $2
	`, meta, pilotID)
	return err
}

// AdjustShards adds/subtracts and clamps to zero.
func (s *Store) AdjustShards(pilotID string, delta int) error {
	_, err := s.db.Exec(`
		UPDATE pilots
		SET shards = GREATEST(0, shards + $1),
		    updated_at = NOW()
		WHERE id = $2
	`, delta, pilotID)
	return err
}

// InsertRunResult appends a finished encounter to the pilot's history.
func (s *Store) InsertRunResult(pilotID, encounter string, gold, kills int, victory bool, duration float64) error {
	_, err := s.db.Exec(`
		INSERT INTO run_results (pilot_id, encounter, gold, kills, victory, duration)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, pilotID, encounter, gold, kills, victory, duration)
	return err
}

// RecentRuns returns the newest results for a pilot, capped at limit.
func (s *Store) RecentRuns(pilotID string, limit int) ([]RunResult, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(`
		SELECT pilot_id, encounter, gold, kills, victory, duration
		FROM run_results
		WHERE pilot_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, pilotID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []RunResult
	for rows.Next() {
		var r RunResult
		if err := rows.Scan(&r.PilotID, &r.Encounter, &r.Gold, &r.Kills, &r.Victory, &r.Duration); err != nil {
			continue
		}
		results = append(results, r)
	}
	return results, nil
}

// SpendShards deducts shards inside a transaction, failing when the balance
// cannot cover the cost.
func (s *Store) SpendShards(pilotID string, cost int) error {
	if cost < 0 {
		return errors.New("negative cost")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		UPDATE pilots SET shards = shards - $1 WHERE id = $2 AND shards >= $1
	`, cost, pilotID)
	if err != nil {
		return err
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("insufficient shards")
	}

	return tx.Commit()
}
