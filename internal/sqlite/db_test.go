package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/ganot/committee/internal/domain/catalog"
	"github.com/ganot/committee/internal/domain/user"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// NewTestDB creates a new in-memory SQLite database for testing
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := New(":memory:")
	require.NoError(t, err, "failed to create test database")

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertUser(t *testing.T, db *DB, id string) *user.User {
	t.Helper()
	u := &user.User{
		ID:           id,
		Email:        fmt.Sprintf("%s@example.com", id),
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: "hash",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), u))
	return u
}

func insertDefaultSet(t *testing.T, db *DB, ownerID string) (*catalog.MotionSet, map[string]catalog.MotionType) {
	t.Helper()
	types := catalog.DefaultMotionTypes()
	byName := make(map[string]catalog.MotionType, len(types))
	set := &catalog.MotionSet{ID: uuid.NewString(), Name: catalog.DefaultSetName, OwnerID: ownerID, CreatedAt: time.Now()}
	for i := range types {
		types[i].ID = uuid.NewString()
		types[i].OwnerID = ownerID
		types[i].CreatedAt = time.Now()
		set.MotionTypeIDs = append(set.MotionTypeIDs, types[i].ID)
		byName[types[i].Name] = types[i]
	}
	require.NoError(t, NewCatalogRepository(db).CreateSet(context.Background(), set, types))
	return set, byName
}

// TestMigrations verifies that migrations run successfully and are repeatable
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)
	require.NoError(t, db.RunMigrations())

	tables := []string{
		"users",
		"rosters",
		"roster_members",
		"motion_types",
		"motion_sets",
		"motion_set_types",
		"meetings",
		"meeting_attendance",
		"motions",
		"meeting_motions",
		"voting_records",
		"votes",
		"activity_log",
	}

	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestMotionTypeConstraints verifies the class and threshold checks
func TestMotionTypeConstraints(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertUser(t, db, "u1")

	_, err := db.ExecContext(ctx, `
		INSERT INTO motion_types (id, owner_id, name, class, precedence, requires_second, debatable, amendable, interrupts, voting_threshold, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"t1", "u1", "Odd", "unknown", 1, 0, "yes", 0, 0, "majority", time.Now())
	require.Error(t, err, "should fail with invalid class")

	_, err = db.ExecContext(ctx, `
		INSERT INTO motion_types (id, owner_id, name, class, precedence, requires_second, debatable, amendable, interrupts, voting_threshold, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		"t2", "ghost", "Odd", "main", 1, 0, "yes", 0, 0, "majority", time.Now())
	require.Error(t, err, "should fail with unknown owner")
}

func TestInTx_RollsBack(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()

	boom := fmt.Errorf("boom")
	err := db.InTx(ctx, func(tx *sql.Tx) error {
		repo := &UserRepository{db: tx}
		require.NoError(t, repo.Create(ctx, &user.User{ID: "u1", Email: "u1@example.com", CreatedAt: time.Now()}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count))
	require.Zero(t, count)
}
