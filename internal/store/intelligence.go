package store

import (
	"context"
	"database/sql"
	"fmt"

	"creatoriq/internal/knowledge"
)

const intelligenceColumns = `video_id, transcript_checksum, semantic_title, abstract,
    problems_json, outcomes_json, audiences_json, themes_json, action_steps_json,
    quotes_json, product_types_json, product_angle, confidence, updated_at`

// IntelligenceChecksums maps video id to stored transcript checksum.
func (s *Store) IntelligenceChecksums(ctx context.Context, creatorID string) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT video_id, transcript_checksum FROM video_intelligence WHERE creator_id = ?", creatorID)
	if err != nil {
		return nil, fmt.Errorf("query checksums: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var id, sum string
		if err := rows.Scan(&id, &sum); err != nil {
			return nil, fmt.Errorf("scan checksum: %w", err)
		}
		out[id] = sum
	}
	return out, rows.Err()
}

// UpsertIntelligence writes records keyed by (creator, video); the last write wins.
func (s *Store) UpsertIntelligence(ctx context.Context, creatorID string, records []knowledge.VideoIntelligenceRecord) error {
	if len(records) == 0 {
		return nil
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO video_intelligence (creator_id, `+intelligenceColumns+`)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
            ON CONFLICT (creator_id, video_id) DO UPDATE SET
                transcript_checksum = excluded.transcript_checksum,
                semantic_title = excluded.semantic_title,
                abstract = excluded.abstract,
                problems_json = excluded.problems_json,
                outcomes_json = excluded.outcomes_json,
                audiences_json = excluded.audiences_json,
                themes_json = excluded.themes_json,
                action_steps_json = excluded.action_steps_json,
                quotes_json = excluded.quotes_json,
                product_types_json = excluded.product_types_json,
                product_angle = excluded.product_angle,
                confidence = excluded.confidence,
                updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("prepare upsert: %w", err)
		}
		defer stmt.Close()

		for _, rec := range records {
			args, err := intelligenceArgs(rec)
			if err != nil {
				return fmt.Errorf("encode %s: %w", rec.VideoID, err)
			}
			updated := rec.UpdatedAt
			if updated.IsZero() {
				updated = s.now()
			}
			args = append(args, formatTime(updated))
			if _, err := stmt.ExecContext(ctx, append([]any{creatorID}, args...)...); err != nil {
				return fmt.Errorf("upsert %s: %w", rec.VideoID, err)
			}
		}
		return nil
	})
}

func intelligenceArgs(rec knowledge.VideoIntelligenceRecord) ([]any, error) {
	lists := [][]string{rec.Problems, rec.Outcomes, rec.Audiences, rec.Themes, rec.ActionSteps, rec.Quotes}
	args := []any{rec.VideoID, rec.TranscriptChecksum, rec.SemanticTitle, rec.Abstract}
	for _, list := range lists {
		encoded, err := encodeJSON(list)
		if err != nil {
			return nil, err
		}
		args = append(args, encoded)
	}
	types, err := encodeJSON(rec.RecommendedProductTypes)
	if err != nil {
		return nil, err
	}
	return append(args, types, rec.ProductAngle, rec.Confidence), nil
}

// ListIntelligence returns every record for the creator ordered by video id.
func (s *Store) ListIntelligence(ctx context.Context, creatorID string) ([]knowledge.VideoIntelligenceRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+intelligenceColumns+" FROM video_intelligence WHERE creator_id = ? ORDER BY video_id", creatorID)
	if err != nil {
		return nil, fmt.Errorf("query intelligence: %w", err)
	}
	defer rows.Close()

	var out []knowledge.VideoIntelligenceRecord
	for rows.Next() {
		rec, err := scanIntelligence(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func scanIntelligence(scanner interface{ Scan(dest ...any) error }) (knowledge.VideoIntelligenceRecord, error) {
	var (
		rec        knowledge.VideoIntelligenceRecord
		lists      [6]string
		types      string
		updatedRaw string
	)
	if err := scanner.Scan(
		&rec.VideoID,
		&rec.TranscriptChecksum,
		&rec.SemanticTitle,
		&rec.Abstract,
		&lists[0], &lists[1], &lists[2], &lists[3], &lists[4], &lists[5],
		&types,
		&rec.ProductAngle,
		&rec.Confidence,
		&updatedRaw,
	); err != nil {
		return rec, fmt.Errorf("scan intelligence: %w", err)
	}

	targets := []*[]string{&rec.Problems, &rec.Outcomes, &rec.Audiences, &rec.Themes, &rec.ActionSteps, &rec.Quotes}
	for i, raw := range lists {
		decoded, err := decodeJSON[string](raw)
		if err != nil {
			return rec, fmt.Errorf("decode %s lists: %w", rec.VideoID, err)
		}
		*targets[i] = decoded
	}
	decodedTypes, err := decodeJSON[knowledge.ProductType](types)
	if err != nil {
		return rec, fmt.Errorf("decode %s product types: %w", rec.VideoID, err)
	}
	rec.RecommendedProductTypes = decodedTypes
	rec.UpdatedAt = parseTime(updatedRaw)
	return rec, nil
}
