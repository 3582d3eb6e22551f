// Package sqlite provides the SQLite-backed storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/libroquest/gamebook-server/internal/model"
	"github.com/libroquest/gamebook-server/internal/storage"
	"github.com/libroquest/gamebook-server/internal/storage/sqlite/migrations"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store persists game state in SQLite
type Store struct {
	db *sql.DB // nil inside a transaction
	q  dbtx
}

// Ensure Store implements the interface
var _ storage.Storage = (*Store)(nil)

// Open opens a SQLite store at path and applies embedded migrations.
// The DSN enables WAL, foreign keys and a 5s busy timeout so light write
// contention waits instead of failing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=foreign_keys(ON)" +
		"&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db, q: db}, nil
}

// Close closes the SQLite handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// isUniqueViolation reports whether err is a unique or primary key
// constraint failure on the named column ("table.column")
func isUniqueViolation(err error, column string) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	switch sqliteErr.Code() {
	case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
		return strings.Contains(err.Error(), column)
	}
	return false
}

// Player operations

func (s *Store) CreatePlayer(ctx context.Context, player *model.Player) error {
	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO players (id, document, name, school, gender, money, level, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(player.ID),
		player.Document,
		player.Name,
		string(player.School),
		string(player.Gender),
		player.Money,
		player.Level,
		toMillis(player.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "players.document") {
			return model.ErrDocumentTaken
		}
		return fmt.Errorf("create player: %w", err)
	}
	return nil
}

func (s *Store) scanPlayer(row *sql.Row) (*model.Player, error) {
	var p model.Player
	var id, school, gender string
	var createdAt int64
	err := row.Scan(&id, &p.Document, &p.Name, &school, &gender, &p.Money, &p.Level, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("scan player: %w", err)
	}
	p.ID = model.PlayerID(id)
	p.School = model.School(school)
	p.Gender = model.Gender(gender)
	p.CreatedAt = fromMillis(createdAt)
	return &p, nil
}

const playerColumns = "id, document, name, school, gender, money, level, created_at"

func (s *Store) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	row := s.q.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE id = ?", string(id))
	return s.scanPlayer(row)
}

func (s *Store) GetPlayerByDocument(ctx context.Context, document string) (*model.Player, error) {
	row := s.q.QueryRowContext(ctx, "SELECT "+playerColumns+" FROM players WHERE document = ?", document)
	return s.scanPlayer(row)
}

func (s *Store) UpdatePlayer(ctx context.Context, player *model.Player) error {
	result, err := s.q.ExecContext(
		ctx,
		`UPDATE players SET name = ?, school = ?, gender = ?, money = ?, level = ? WHERE id = ?`,
		player.Name,
		string(player.School),
		string(player.Gender),
		player.Money,
		player.Level,
		string(player.ID),
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	if affected == 0 {
		return model.ErrPlayerNotFound
	}
	return nil
}

// Session operations

func (s *Store) CreateSession(ctx context.Context, session *model.Session) error {
	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO sessions (token, player_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		session.Token,
		string(session.PlayerID),
		toMillis(session.CreatedAt),
		toMillis(session.ExpiresAt),
	)
	if err != nil {
		if isUniqueViolation(err, "sessions.token") {
			return model.ErrDuplicateToken
		}
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

func (s *Store) GetSession(ctx context.Context, token string) (*model.Session, error) {
	row := s.q.QueryRowContext(
		ctx,
		"SELECT token, player_id, created_at, expires_at FROM sessions WHERE token = ?",
		token,
	)
	var sess model.Session
	var playerID string
	var createdAt, expiresAt int64
	if err := row.Scan(&sess.Token, &playerID, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrSessionNotFound
		}
		return nil, fmt.Errorf("scan session: %w", err)
	}
	sess.PlayerID = model.PlayerID(playerID)
	sess.CreatedAt = fromMillis(createdAt)
	sess.ExpiresAt = fromMillis(expiresAt)
	return &sess, nil
}

func (s *Store) DeleteSession(ctx context.Context, token string) (int, error) {
	result, err := s.q.ExecContext(ctx, "DELETE FROM sessions WHERE token = ?", token)
	if err != nil {
		return 0, fmt.Errorf("delete session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete session: %w", err)
	}
	return int(affected), nil
}

// Item catalog operations

func (s *Store) SaveItem(ctx context.Context, item *model.Item) error {
	if item.ID == "" {
		item.ID = model.ItemIDFor(item.Name)
	}
	_, err := s.q.ExecContext(
		ctx,
		`INSERT INTO items (id, name, item_type) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET item_type = excluded.item_type`,
		string(item.ID),
		item.Name,
		item.ItemType,
	)
	if err != nil {
		return fmt.Errorf("save item: %w", err)
	}
	return nil
}

func (s *Store) GetItemByName(ctx context.Context, name string) (*model.Item, error) {
	row := s.q.QueryRowContext(ctx, "SELECT id, name, item_type FROM items WHERE name = ?", name)
	var item model.Item
	var id string
	if err := row.Scan(&id, &item.Name, &item.ItemType); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrItemNotFound
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	item.ID = model.ItemID(id)
	return &item, nil
}

func (s *Store) GetItemsByNames(ctx context.Context, names []string) ([]*model.Item, error) {
	if len(names) == 0 {
		return nil, nil
	}
	placeholders := strings.Repeat("?,", len(names))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(names))
	for i, name := range names {
		args[i] = name
	}
	rows, err := s.q.QueryContext(
		ctx,
		"SELECT id, name, item_type FROM items WHERE name IN ("+placeholders+")",
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*model.Item
	for rows.Next() {
		var item model.Item
		var id string
		if err := rows.Scan(&id, &item.Name, &item.ItemType); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.ID = model.ItemID(id)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}

// Earned item operations

func (s *Store) HasEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) (bool, error) {
	row := s.q.QueryRowContext(
		ctx,
		"SELECT 1 FROM earned_items WHERE player_id = ? AND item_id = ?",
		string(playerID),
		string(itemID),
	)
	var found int
	if err := row.Scan(&found); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check earned item: %w", err)
	}
	return true, nil
}

func (s *Store) AddEarnedItem(ctx context.Context, playerID model.PlayerID, itemID model.ItemID) error {
	// The composite primary key enforces at-most-one link per (player, item)
	_, err := s.q.ExecContext(
		ctx,
		"INSERT OR IGNORE INTO earned_items (player_id, item_id) VALUES (?, ?)",
		string(playerID),
		string(itemID),
	)
	if err != nil {
		return fmt.Errorf("add earned item: %w", err)
	}
	return nil
}

func (s *Store) GetEarnedItems(ctx context.Context, playerID model.PlayerID) ([]*model.Item, error) {
	rows, err := s.q.QueryContext(
		ctx,
		`SELECT i.id, i.name, i.item_type
		 FROM items i
		 JOIN earned_items e ON e.item_id = i.id
		 WHERE e.player_id = ?`,
		string(playerID),
	)
	if err != nil {
		return nil, fmt.Errorf("query earned items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*model.Item
	for rows.Next() {
		var item model.Item
		var id string
		if err := rows.Scan(&id, &item.Name, &item.ItemType); err != nil {
			return nil, fmt.Errorf("scan earned item: %w", err)
		}
		item.ID = model.ItemID(id)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate earned items: %w", err)
	}
	return items, nil
}

// Time record operations

func (s *Store) AppendTimeRecord(ctx context.Context, record *model.TimeRecord) error {
	_, err := s.q.ExecContext(
		ctx,
		"INSERT INTO time_records (player_id, level, seconds) VALUES (?, ?, ?)",
		string(record.PlayerID),
		record.Level,
		record.Seconds,
	)
	if err != nil {
		return fmt.Errorf("append time record: %w", err)
	}
	return nil
}

// InTx runs fn inside a database transaction. A nested call joins the
// enclosing transaction.
func (s *Store) InTx(ctx context.Context, fn func(storage.Storage) error) error {
	if s.db == nil {
		return fn(s)
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	if err := fn(&Store{q: tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// CountTimeRecords reports how many time rows exist for a player. Only tests
// read the time log back.
func (s *Store) CountTimeRecords(ctx context.Context, playerID model.PlayerID) (int, error) {
	row := s.q.QueryRowContext(
		ctx,
		"SELECT COUNT(*) FROM time_records WHERE player_id = ?",
		string(playerID),
	)
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("count time records: %w", err)
	}
	return count, nil
}
