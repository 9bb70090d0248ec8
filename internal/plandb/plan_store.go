package plandb

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/banshee-data/surround.view/internal/stitch"
	"github.com/banshee-data/surround.view/internal/timeutil"
)

// StoredPlan is a plan snapshot together with the rig it was computed for.
type StoredPlan struct {
	RigName     string       `json:"rig_name"`
	CreatedAtNs int64        `json:"created_at_ns"`
	Plan        *stitch.Plan `json:"plan"`
}

// PlanStore provides persistence for computed stitch plans.
type PlanStore struct {
	db    *sql.DB
	clock timeutil.Clock
}

// NewPlanStore creates a new PlanStore.
func NewPlanStore(db *DB) *PlanStore {
	return &PlanStore{db: db.DB, clock: db.clock}
}

// InsertPlan stores plan under rigName and returns its ID.
// If plan.ID is empty, a new UUID is generated and written back.
func (s *PlanStore) InsertPlan(rigName string, plan *stitch.Plan) (string, error) {
	if plan == nil {
		return "", fmt.Errorf("insert plan: nil plan")
	}
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}

	centers, err := json.Marshal(plan.Centers)
	if err != nil {
		return "", fmt.Errorf("marshal centers: %w", err)
	}
	overlaps, err := json.Marshal(plan.Overlaps)
	if err != nil {
		return "", fmt.Errorf("marshal overlaps: %w", err)
	}
	copyAreas, err := json.Marshal(plan.CopyAreas)
	if err != nil {
		return "", fmt.Errorf("marshal copy areas: %w", err)
	}
	bowl, err := json.Marshal(plan.Bowl)
	if err != nil {
		return "", fmt.Errorf("marshal bowl: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO plans (
			plan_id, rig_name, camera_num, output_width, output_height,
			copy_area_count, centers_json, overlaps_json, copy_areas_json,
			bowl_json, created_at_ns
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		plan.ID,
		rigName,
		plan.CameraNum,
		plan.OutputWidth,
		plan.OutputHeight,
		len(plan.CopyAreas),
		string(centers),
		string(overlaps),
		string(copyAreas),
		string(bowl),
		s.clock.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert plan: %w", err)
	}
	return plan.ID, nil
}

const planColumns = `
	plan_id, rig_name, camera_num, output_width, output_height,
	centers_json, overlaps_json, copy_areas_json, bowl_json, created_at_ns
`

// GetPlan retrieves a plan by ID.
func (s *PlanStore) GetPlan(planID string) (*StoredPlan, error) {
	row := s.db.QueryRow(`SELECT `+planColumns+` FROM plans WHERE plan_id = ?`, planID)

	sp, err := scanPlan(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get plan %s: %w", planID, err)
	}
	return sp, nil
}

// ListPlans returns the plans stored for rigName, newest first.
// An empty rigName lists plans of every rig.
func (s *PlanStore) ListPlans(rigName string) ([]*StoredPlan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	var args []any
	if rigName != "" {
		query += ` WHERE rig_name = ?`
		args = append(args, rigName)
	}
	query += ` ORDER BY created_at_ns DESC, plan_id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*StoredPlan
	for rows.Next() {
		sp, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, sp)
	}
	return plans, rows.Err()
}

// DeletePlan removes a plan by ID.
func (s *PlanStore) DeletePlan(planID string) error {
	result, err := s.db.Exec(`DELETE FROM plans WHERE plan_id = ?`, planID)
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete plan %s: %w", planID, err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", planID, ErrNotFound)
	}
	return nil
}

func scanPlan(row rowScanner) (*StoredPlan, error) {
	sp := &StoredPlan{Plan: &stitch.Plan{}}
	p := sp.Plan
	var centers, overlaps, copyAreas, bowl string
	err := row.Scan(
		&p.ID, &sp.RigName, &p.CameraNum, &p.OutputWidth, &p.OutputHeight,
		&centers, &overlaps, &copyAreas, &bowl, &sp.CreatedAtNs,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(centers), &p.Centers); err != nil {
		return nil, fmt.Errorf("decode centers of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(overlaps), &p.Overlaps); err != nil {
		return nil, fmt.Errorf("decode overlaps of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(copyAreas), &p.CopyAreas); err != nil {
		return nil, fmt.Errorf("decode copy areas of %s: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(bowl), &p.Bowl); err != nil {
		return nil, fmt.Errorf("decode bowl of %s: %w", p.ID, err)
	}
	return sp, nil
}
