package store

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/annapclub/clarity-bot/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = buildPostgresDSNFromEnv()
	}
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	s := &PostgresStore{pool: pool}
	if err := s.runMigrations(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func buildPostgresDSNFromEnv() string {
	host := strings.TrimSpace(os.Getenv("POSTGRES_HOST"))
	if host == "" {
		host = "localhost"
	}
	port := strings.TrimSpace(os.Getenv("POSTGRES_PORT"))
	if port == "" {
		port = "5432"
	}
	db := strings.TrimSpace(os.Getenv("POSTGRES_DB"))
	if db == "" {
		db = "clarity_bot"
	}
	user := strings.TrimSpace(os.Getenv("POSTGRES_USER"))
	if user == "" {
		user = "clarity_bot"
	}
	pass := os.Getenv("POSTGRES_PASSWORD")
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", urlEscape(user), urlEscape(pass), host, port, db)
}

func urlEscape(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		":", "%3A",
		"/", "%2F",
		"@", "%40",
		"?", "%3F",
		"#", "%23",
		"[", "%5B",
		"]", "%5D",
	)
	return r.Replace(s)
}

func (s *PostgresStore) runMigrations(ctx context.Context) error {
	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, "migrations")
}

func (s *PostgresStore) UpsertUser(user types.User) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
INSERT INTO users (user_id, username, first_name, last_name, first_seen_ts, last_seen_ts)
VALUES ($1, $2, $3, $4, NOW(), NOW())
ON CONFLICT (user_id) DO UPDATE SET
  username = EXCLUDED.username,
  first_name = EXCLUDED.first_name,
  last_name = EXCLUDED.last_name,
  last_seen_ts = NOW();
`, user.UserID, strings.TrimSpace(user.Username), strings.TrimSpace(user.FirstName), strings.TrimSpace(user.LastName))
	return err
}

func (s *PostgresStore) GetUser(userID int64) (*types.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var u types.User
	err := s.pool.QueryRow(ctx, `
SELECT user_id, username, first_name, last_name, first_seen_ts, last_seen_ts, subscribed, consent_shown
FROM users
WHERE user_id = $1
`, userID).Scan(&u.UserID, &u.Username, &u.FirstName, &u.LastName, &u.FirstSeen, &u.LastSeen, &u.Subscribed, &u.ConsentShown)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) HasBeenOffered(userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var shown bool
	err := s.pool.QueryRow(ctx, `
SELECT consent_shown FROM users WHERE user_id = $1
`, userID).Scan(&shown)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return shown, nil
}

func (s *PostgresStore) MarkOffered(userID int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
INSERT INTO users (user_id, consent_shown)
VALUES ($1, TRUE)
ON CONFLICT (user_id) DO UPDATE SET
  consent_shown = TRUE,
  last_seen_ts = NOW();
`, userID)
	return err
}

func (s *PostgresStore) SetSubscribed(userID int64, subscribed bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := s.pool.Exec(ctx, `
INSERT INTO users (user_id, subscribed)
VALUES ($1, $2)
ON CONFLICT (user_id) DO UPDATE SET
  subscribed = EXCLUDED.subscribed,
  last_seen_ts = NOW();
`, userID, subscribed)
	return err
}

func (s *PostgresStore) IsSubscribed(userID int64) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var subscribed bool
	err := s.pool.QueryRow(ctx, `
SELECT subscribed FROM users WHERE user_id = $1
`, userID).Scan(&subscribed)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return subscribed, nil
}

func (s *PostgresStore) AllSubscribedIDs() ([]int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	rows, err := s.pool.Query(ctx, `
SELECT user_id FROM users WHERE subscribed ORDER BY user_id
`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int64, 0)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *PostgresStore) UnsubscribeAll() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	tag, err := s.pool.Exec(ctx, `
UPDATE users SET subscribed = FALSE WHERE subscribed
`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *PostgresStore) CountUsers() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (s *PostgresStore) CountSubscribed() (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var n int64
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE subscribed`).Scan(&n)
	return n, err
}

func (s *PostgresStore) Append(userID int64, eventType string, ts time.Time, meta string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var metaArg interface{}
	if meta != "" {
		metaArg = meta
	}
	_, err := s.pool.Exec(ctx, `
INSERT INTO events (user_id, event_type, ts, meta)
VALUES ($1, $2, $3, $4)
`, userID, eventType, ts.UTC(), metaArg)
	return err
}

func (s *PostgresStore) LastEvent(userID int64, eventType string) (*types.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	var e types.Event
	var meta *string
	err := s.pool.QueryRow(ctx, `
SELECT id, user_id, event_type, ts, meta
FROM events
WHERE user_id = $1 AND event_type = $2
ORDER BY id DESC
LIMIT 1
`, userID, eventType).Scan(&e.ID, &e.UserID, &e.Type, &e.TS, &meta)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if meta != nil {
		e.Meta = *meta
	}
	return &e, nil
}

func (s *PostgresStore) CountDistinctUsers(eventType string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var n int64
	var err error
	if eventType == "" {
		err = s.pool.QueryRow(ctx, `
SELECT COUNT(DISTINCT user_id) FROM events WHERE ts >= $1 AND ts < $2
`, from.UTC(), to.UTC()).Scan(&n)
	} else {
		err = s.pool.QueryRow(ctx, `
SELECT COUNT(DISTINCT user_id) FROM events WHERE event_type = $1 AND ts >= $2 AND ts < $3
`, eventType, from.UTC(), to.UTC()).Scan(&n)
	}
	return n, err
}

func (s *PostgresStore) CountEvents(eventType string, from, to time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var n int64
	err := s.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM events WHERE event_type = $1 AND ts >= $2 AND ts < $3
`, eventType, from.UTC(), to.UTC()).Scan(&n)
	return n, err
}

func (s *PostgresStore) Export(from, to time.Time) ([]types.Event, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	rows, err := s.pool.Query(ctx, `
SELECT id, user_id, event_type, ts, meta
FROM events
WHERE ts >= $1 AND ts < $2
ORDER BY id
`, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]types.Event, 0)
	for rows.Next() {
		var e types.Event
		var meta *string
		if err := rows.Scan(&e.ID, &e.UserID, &e.Type, &e.TS, &meta); err != nil {
			return nil, err
		}
		if meta != nil {
			e.Meta = *meta
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
