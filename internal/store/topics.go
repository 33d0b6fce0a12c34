package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"creatoriq/internal/knowledge"
)

const topicColumns = `topic_key, topic_label, problem_statement, promise_statement, audience_fit,
    supporting_video_ids_json, evidence_quotes_json, product_types_json, confidence`

// ReplaceTopics swaps in a new topic generation for the creator. The new
// rows and the generation pointer are written in one transaction and the
// previous generation is deleted in the same transaction, so readers see
// either the old set or the new one.
func (s *Store) ReplaceTopics(ctx context.Context, creatorID string, nodes []knowledge.TopicNode) (string, error) {
	generationID := uuid.NewString()
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `INSERT INTO topic_nodes (creator_id, generation_id, position, `+topicColumns+`)
            VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare topic insert: %w", err)
		}
		defer stmt.Close()

		for i, node := range nodes {
			supporting, err := encodeJSON(node.SupportingVideoIDs)
			if err != nil {
				return err
			}
			quotes, err := encodeJSON(node.EvidenceQuotes)
			if err != nil {
				return err
			}
			types, err := encodeJSON(node.RecommendedProductTypes)
			if err != nil {
				return err
			}
			if _, err := stmt.ExecContext(ctx,
				creatorID, generationID, i,
				node.TopicKey, node.TopicLabel, node.ProblemStatement, node.PromiseStatement, node.AudienceFit,
				supporting, quotes, types, node.Confidence,
			); err != nil {
				return fmt.Errorf("insert topic %s: %w", node.TopicKey, err)
			}
		}

		if _, err := tx.ExecContext(ctx, `INSERT INTO topic_generations (creator_id, generation_id, topic_count, created_at)
            VALUES (?, ?, ?, ?)
            ON CONFLICT (creator_id) DO UPDATE SET
                generation_id = excluded.generation_id,
                topic_count = excluded.topic_count,
                created_at = excluded.created_at`,
			creatorID, generationID, len(nodes), formatTime(s.now()),
		); err != nil {
			return fmt.Errorf("update topic generation: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"DELETE FROM topic_nodes WHERE creator_id = ? AND generation_id <> ?", creatorID, generationID,
		); err != nil {
			return fmt.Errorf("delete previous topics: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return generationID, nil
}

// CurrentTopicGeneration returns the active generation id, or "" when the
// creator has never had topics.
func (s *Store) CurrentTopicGeneration(ctx context.Context, creatorID string) (string, error) {
	var generationID string
	err := s.db.QueryRowContext(ctx,
		"SELECT generation_id FROM topic_generations WHERE creator_id = ?", creatorID,
	).Scan(&generationID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query topic generation: %w", err)
	}
	return generationID, nil
}

// ListTopics returns the creator's active topic generation in stored order.
func (s *Store) ListTopics(ctx context.Context, creatorID string) ([]knowledge.TopicNode, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+topicColumns+`
        FROM topic_nodes n
        JOIN topic_generations g ON g.creator_id = n.creator_id AND g.generation_id = n.generation_id
        WHERE n.creator_id = ?
        ORDER BY n.position`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("query topics: %w", err)
	}
	defer rows.Close()

	var out []knowledge.TopicNode
	for rows.Next() {
		var (
			node                        knowledge.TopicNode
			supporting, quotes, typesJS string
		)
		if err := rows.Scan(
			&node.TopicKey, &node.TopicLabel, &node.ProblemStatement, &node.PromiseStatement, &node.AudienceFit,
			&supporting, &quotes, &typesJS, &node.Confidence,
		); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		if node.SupportingVideoIDs, err = decodeJSON[string](supporting); err != nil {
			return nil, fmt.Errorf("decode topic %s videos: %w", node.TopicKey, err)
		}
		if node.EvidenceQuotes, err = decodeJSON[string](quotes); err != nil {
			return nil, fmt.Errorf("decode topic %s quotes: %w", node.TopicKey, err)
		}
		if node.RecommendedProductTypes, err = decodeJSON[knowledge.ProductType](typesJS); err != nil {
			return nil, fmt.Errorf("decode topic %s product types: %w", node.TopicKey, err)
		}
		out = append(out, node)
	}
	return out, rows.Err()
}
