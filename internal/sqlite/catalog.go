package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/repository"
)

const motionTypeColumns = `
	t.id, t.owner_id, t.name, t.description, t.class, t.precedence,
	t.requires_second, t.debatable, t.amendable, t.interrupts,
	t.voting_threshold, t.created_at`

// CatalogRepository implements catalog.Repository for SQLite
type CatalogRepository struct {
	db querier
}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository(db *DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// CreateSet inserts the motion types and a set grouping them in one transaction
func (r *CatalogRepository) CreateSet(ctx context.Context, set *catalog.MotionSet, types []catalog.MotionType) error {
	return withTx(ctx, r.db, func(q querier) error {
		for _, mt := range types {
			_, err := q.ExecContext(ctx, `
				INSERT INTO motion_types (
					id, owner_id, name, description, class, precedence,
					requires_second, debatable, amendable, interrupts,
					voting_threshold, created_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				mt.ID, mt.OwnerID, mt.Name, mt.Description, mt.Class, mt.Precedence,
				mt.RequiresSecond, mt.Debatable, mt.Amendable, mt.Interrupts,
				mt.Threshold, mt.CreatedAt,
			)
			if err != nil {
				if isForeignKeyViolation(err) {
					return repository.ErrForeignKeyViolation
				}
				return fmt.Errorf("failed to create motion type: %w", err)
			}
		}

		_, err := q.ExecContext(ctx,
			`INSERT INTO motion_sets (id, name, owner_id, created_at) VALUES (?, ?, ?, ?)`,
			set.ID, set.Name, set.OwnerID, set.CreatedAt)
		if err != nil {
			if isForeignKeyViolation(err) {
				return repository.ErrForeignKeyViolation
			}
			return fmt.Errorf("failed to create motion set: %w", err)
		}

		for i, typeID := range set.MotionTypeIDs {
			_, err := q.ExecContext(ctx,
				`INSERT INTO motion_set_types (set_id, motion_type_id, position) VALUES (?, ?, ?)`,
				set.ID, typeID, i)
			if err != nil {
				if isForeignKeyViolation(err) {
					return repository.ErrForeignKeyViolation
				}
				return fmt.Errorf("failed to add motion type to set: %w", err)
			}
		}
		return nil
	})
}

// GetType retrieves a motion type by ID
func (r *CatalogRepository) GetType(ctx context.Context, id string) (*catalog.MotionType, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+motionTypeColumns+` FROM motion_types t WHERE t.id = ?`, id)
	mt, err := scanMotionType(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get motion type: %w", err)
	}
	return mt, nil
}

// ListTypesByOwner returns the motion types authored by ownerID
func (r *CatalogRepository) ListTypesByOwner(ctx context.Context, ownerID string) ([]catalog.MotionType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+motionTypeColumns+` FROM motion_types t WHERE t.owner_id = ? ORDER BY t.created_at, t.class, t.precedence`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list motion types: %w", err)
	}
	defer rows.Close()

	types := []catalog.MotionType{}
	for rows.Next() {
		mt, err := scanMotionType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan motion type: %w", err)
		}
		types = append(types, *mt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating motion types: %w", err)
	}
	return types, nil
}

// GetSet retrieves a motion set with its type IDs in order
func (r *CatalogRepository) GetSet(ctx context.Context, id string) (*catalog.MotionSet, error) {
	var set catalog.MotionSet
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, owner_id, created_at FROM motion_sets WHERE id = ?`, id).Scan(
		&set.ID,
		&set.Name,
		&set.OwnerID,
		&set.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get motion set: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT motion_type_id FROM motion_set_types WHERE set_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get motion set types: %w", err)
	}
	defer rows.Close()

	set.MotionTypeIDs = []string{}
	for rows.Next() {
		var typeID string
		if err := rows.Scan(&typeID); err != nil {
			return nil, fmt.Errorf("failed to scan motion set type: %w", err)
		}
		set.MotionTypeIDs = append(set.MotionTypeIDs, typeID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating motion set types: %w", err)
	}
	return &set, nil
}

func scanMotionType(s scanner) (*catalog.MotionType, error) {
	var mt catalog.MotionType
	if err := s.Scan(motionTypeDest(&mt)...); err != nil {
		return nil, err
	}
	return &mt, nil
}

// motionTypeDest lists scan targets in motionTypeColumns order.
func motionTypeDest(mt *catalog.MotionType) []any {
	return []any{
		&mt.ID,
		&mt.OwnerID,
		&mt.Name,
		&mt.Description,
		&mt.Class,
		&mt.Precedence,
		&mt.RequiresSecond,
		&mt.Debatable,
		&mt.Amendable,
		&mt.Interrupts,
		&mt.Threshold,
		&mt.CreatedAt,
	}
}
