package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"creatoriq/internal/knowledge"
	"creatoriq/internal/quality"
)

// Artifact is published product HTML kept as catalog for later evaluations.
type Artifact struct {
	CreatorID   string
	ArtifactID  string
	ProductType knowledge.ProductType
	HTML        string
}

// QualityRecord is one stored evaluation.
type QualityRecord struct {
	ID            int64              `json:"id"`
	CreatorID     string             `json:"creatorId"`
	ArtifactID    string             `json:"artifactId"`
	ProductType   string             `json:"productType"`
	OverallScore  int                `json:"overallScore"`
	OverallPassed bool               `json:"overallPassed"`
	FailingGates  []quality.GateKey  `json:"failingGates"`
	Evaluation    quality.Evaluation `json:"evaluation"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// SaveArtifact inserts or replaces an artifact's HTML.
func (s *Store) SaveArtifact(ctx context.Context, artifact Artifact) error {
	now := formatTime(s.now())
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `INSERT INTO artifacts (creator_id, artifact_id, product_type, html, created_at, updated_at)
            VALUES (?, ?, ?, ?, ?, ?)
            ON CONFLICT (creator_id, artifact_id) DO UPDATE SET
                product_type = excluded.product_type,
                html = excluded.html,
                updated_at = excluded.updated_at`,
			artifact.CreatorID, artifact.ArtifactID, string(artifact.ProductType), artifact.HTML, now, now)
		if err != nil {
			return fmt.Errorf("save artifact %s: %w", artifact.ArtifactID, err)
		}
		return nil
	})
}

// ListArtifactHTML returns the creator's stored artifact HTML, skipping
// excludeID so an artifact is never compared with itself.
func (s *Store) ListArtifactHTML(ctx context.Context, creatorID, excludeID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT html FROM artifacts WHERE creator_id = ? AND artifact_id <> ? ORDER BY created_at, artifact_id",
		creatorID, excludeID)
	if err != nil {
		return nil, fmt.Errorf("query artifacts: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var markup string
		if err := rows.Scan(&markup); err != nil {
			return nil, fmt.Errorf("scan artifact: %w", err)
		}
		out = append(out, markup)
	}
	return out, rows.Err()
}

// SaveQualityEvaluation appends an evaluation to the creator's audit trail.
func (s *Store) SaveQualityEvaluation(ctx context.Context, creatorID, artifactID string, productType knowledge.ProductType, eval quality.Evaluation) (int64, error) {
	payload, err := json.Marshal(eval)
	if err != nil {
		return 0, fmt.Errorf("encode evaluation: %w", err)
	}
	failing, err := encodeJSON(eval.FailingGates)
	if err != nil {
		return 0, fmt.Errorf("encode failing gates: %w", err)
	}

	var id int64
	err = retryOnBusy(ctx, func() error {
		res, execErr := s.db.ExecContext(ctx, `INSERT INTO quality_evaluations
            (creator_id, artifact_id, product_type, overall_score, overall_passed, failing_gates_json, evaluation_json, created_at)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			creatorID, artifactID, string(productType), eval.OverallScore, eval.OverallPassed, failing, string(payload), formatTime(s.now()))
		if execErr != nil {
			return execErr
		}
		id, execErr = res.LastInsertId()
		return execErr
	})
	if err != nil {
		return 0, fmt.Errorf("insert quality evaluation: %w", err)
	}
	return id, nil
}

// ListQualityEvaluations returns the newest evaluations first. limit <= 0
// returns all of them.
func (s *Store) ListQualityEvaluations(ctx context.Context, creatorID string, limit int) ([]QualityRecord, error) {
	query := `SELECT id, creator_id, artifact_id, product_type, overall_score, overall_passed,
            failing_gates_json, evaluation_json, created_at
        FROM quality_evaluations WHERE creator_id = ? ORDER BY id DESC`
	args := []any{creatorID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quality evaluations: %w", err)
	}
	defer rows.Close()

	var out []QualityRecord
	for rows.Next() {
		rec, err := scanQualityRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanQualityRecord(rows *sql.Rows) (QualityRecord, error) {
	var (
		rec              QualityRecord
		failing, payload string
		createdRaw       string
	)
	if err := rows.Scan(&rec.ID, &rec.CreatorID, &rec.ArtifactID, &rec.ProductType, &rec.OverallScore,
		&rec.OverallPassed, &failing, &payload, &createdRaw); err != nil {
		return rec, fmt.Errorf("scan quality evaluation: %w", err)
	}
	gates, err := decodeJSON[quality.GateKey](failing)
	if err != nil {
		return rec, fmt.Errorf("decode failing gates %d: %w", rec.ID, err)
	}
	rec.FailingGates = gates
	if err := json.Unmarshal([]byte(payload), &rec.Evaluation); err != nil {
		return rec, fmt.Errorf("decode evaluation %d: %w", rec.ID, err)
	}
	rec.CreatedAt = parseTime(createdRaw)
	return rec, nil
}
