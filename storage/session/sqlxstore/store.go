package sqlxstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core/session"
)

// store persists sessions in a Postgres table for deployments where neither
// a single process (inmem) nor Redis is available. It does not implement
// session.Watcher.
type store struct {
	db  *sqlx.DB
	ttl time.Duration
}

var _ session.Store = (*store)(nil)

func New(db *sqlx.DB, ttl time.Duration) *store {
	return &store{db: db, ttl: ttl}
}

func (st *store) Save(ctx context.Context, sid string, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	_, err = st.db.ExecContext(ctx, `
		INSERT INTO sessions (key, payload, updated_at, expires_at)
		VALUES ($1, $2, now(), $3)
		ON CONFLICT (key)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = now(), expires_at = EXCLUDED.expires_at`,
		session.StorageKeyPrefix+sid, data, time.Now().UTC().Add(st.ttl),
	)
	return errors.Wrap(err, "writing session")
}

func (st *store) Read(ctx context.Context, sid string) (*session.Session, error) {
	var data []byte
	err := st.db.QueryRowxContext(ctx,
		`SELECT payload FROM sessions WHERE key = $1 AND expires_at > now()`,
		session.StorageKeyPrefix+sid,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "reading session")
	}

	sess := new(session.Session)
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, errors.Wrap(err, "decoding session")
	}
	return sess, nil
}

func (st *store) Clear(ctx context.Context, sid string) error {
	_, err := st.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE key = $1`, session.StorageKeyPrefix+sid)
	return errors.Wrap(err, "deleting session")
}

// PurgeExpired removes sessions past their expiry; the admin CLI runs it.
func (st *store) PurgeExpired(ctx context.Context) (int64, error) {
	res, err := st.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= now()`)
	if err != nil {
		return 0, errors.Wrap(err, "purging sessions")
	}
	n, err := res.RowsAffected()
	return n, errors.Wrap(err, "purging sessions")
}
