package plandb

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/banshee-data/surround.view/internal/config"
	"github.com/banshee-data/surround.view/internal/timeutil"
)

// ErrNotFound is returned when a rig or plan does not exist.
var ErrNotFound = errors.New("not found")

// Rig is a named rig definition as stored.
type Rig struct {
	Name        string            `json:"name"`
	Config      *config.RigConfig `json:"config"`
	CreatedAtNs int64             `json:"created_at_ns"`
	UpdatedAtNs int64             `json:"updated_at_ns"`
}

// RigStore provides persistence for rig definitions.
type RigStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewRigStore creates a new RigStore.
func NewRigStore(db *DB) *RigStore {
	return &RigStore{db: db.DB, clock: db.clock}
}

// SaveRig inserts or replaces the rig called name.
func (s *RigStore) SaveRig(name string, cfg *config.RigConfig) error {
	if name == "" {
		return fmt.Errorf("save rig: empty name")
	}
	if cfg == nil {
		return fmt.Errorf("save rig %s: nil config", name)
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal rig %s: %w", name, err)
	}

	now := s.clock.Now().UnixNano()
	_, err = s.db.Exec(`
		INSERT INTO rigs (name, config_json, created_at_ns, updated_at_ns)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			config_json = excluded.config_json,
			updated_at_ns = excluded.updated_at_ns
	`, name, string(data), now, now)
	if err != nil {
		return fmt.Errorf("save rig %s: %w", name, err)
	}
	return nil
}

// GetRig retrieves a rig by name.
func (s *RigStore) GetRig(name string) (*Rig, error) {
	row := s.db.QueryRow(`
		SELECT name, config_json, created_at_ns, updated_at_ns
		FROM rigs WHERE name = ?
	`, name)

	rig, err := scanRig(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("rig %s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get rig %s: %w", name, err)
	}
	return rig, nil
}

// ListRigs returns every stored rig ordered by name.
func (s *RigStore) ListRigs() ([]*Rig, error) {
	rows, err := s.db.Query(`
		SELECT name, config_json, created_at_ns, updated_at_ns
		FROM rigs ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list rigs: %w", err)
	}
	defer rows.Close()

	var rigs []*Rig
	for rows.Next() {
		rig, err := scanRig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan rig: %w", err)
		}
		rigs = append(rigs, rig)
	}
	return rigs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRig(row rowScanner) (*Rig, error) {
	rig := &Rig{}
	var configJSON string
	if err := row.Scan(&rig.Name, &configJSON, &rig.CreatedAtNs, &rig.UpdatedAtNs); err != nil {
		return nil, err
	}
	rig.Config = &config.RigConfig{}
	if err := json.Unmarshal([]byte(configJSON), rig.Config); err != nil {
		return nil, fmt.Errorf("decode rig %s: %w", rig.Name, err)
	}
	return rig, nil
}
