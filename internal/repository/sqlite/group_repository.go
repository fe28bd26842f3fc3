package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/avelar/wordflash/internal/models"
	"github.com/avelar/wordflash/internal/repository"
)

type groupRepository struct {
	db *sql.DB
}

// NewGroupRepository creates a new GroupRepository implementation.
func NewGroupRepository(db *sql.DB) repository.GroupRepository {
	return &groupRepository{db: db}
}

const groupColumns = "id, name, word_ids, source, category, confidence, description, created_at, updated_at"

func (r *groupRepository) Get(ctx context.Context, id string) (*models.WordGroup, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+groupColumns+` FROM word_groups WHERE id = ?`, id)
	group, err := scanGroup(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return group, nil
}

func (r *groupRepository) List(ctx context.Context) ([]models.WordGroup, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+groupColumns+` FROM word_groups ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var groups []models.WordGroup
	for rows.Next() {
		group, err := scanGroup(rows)
		if err != nil {
			return nil, err
		}
		groups = append(groups, *group)
	}
	return groups, rows.Err()
}

func (r *groupRepository) Insert(ctx context.Context, group models.WordGroup) error {
	wordIDs, err := marshalJSON(group.WordIDs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
INSERT INTO word_groups (`+groupColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
`, group.ID, group.Name, wordIDs, string(group.Source), string(group.Category),
		group.Confidence, group.Description, group.CreatedAt, group.UpdatedAt)
	return err
}

func (r *groupRepository) Update(ctx context.Context, group models.WordGroup) error {
	wordIDs, err := marshalJSON(group.WordIDs)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
UPDATE word_groups
SET name = ?, word_ids = ?, source = ?, category = ?, confidence = ?, description = ?, updated_at = ?
WHERE id = ?
`, group.Name, wordIDs, string(group.Source), string(group.Category),
		group.Confidence, group.Description, group.UpdatedAt, group.ID)
	return err
}

func (r *groupRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM word_groups WHERE id = ?`, id)
	return err
}

func scanGroup(row rowScanner) (*models.WordGroup, error) {
	var group models.WordGroup
	var wordIDs string
	err := row.Scan(&group.ID, &group.Name, &wordIDs, &group.Source, &group.Category,
		&group.Confidence, &group.Description, &group.CreatedAt, &group.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := unmarshalJSON(wordIDs, &group.WordIDs); err != nil {
		return nil, err
	}
	return &group, nil
}
