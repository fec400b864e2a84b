package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/Kings001-stack/SMS/core"
	"github.com/Kings001-stack/SMS/core/session"
)

// events channel carrying session change notifications across instances
const eventChannel = "sms:session-events"

type store struct {
	rdb *redis.Client
	ttl time.Duration
}

var (
	_ session.Store   = (*store)(nil)
	_ session.Watcher = (*store)(nil)
)

func New(rdb *redis.Client, ttl time.Duration) *store {
	return &store{rdb: rdb, ttl: ttl}
}

// Open connects to Redis per config and fails fast when it is unreachable.
func Open(ctx context.Context, conf *core.Config) (*store, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		return nil, errors.Wrap(err, "redis ping")
	}
	return New(rdb, conf.Session.TTL), nil
}

func (st *store) Close() error { return st.rdb.Close() }

func (st *store) Save(ctx context.Context, sid string, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}
	if err := st.rdb.Set(ctx, session.StorageKeyPrefix+sid, data, st.ttl).Err(); err != nil {
		return errors.Wrap(err, "writing session")
	}
	st.publish(ctx, session.Event{SID: sid, Op: session.OpSave})
	return nil
}

func (st *store) Read(ctx context.Context, sid string) (*session.Session, error) {
	data, err := st.rdb.Get(ctx, session.StorageKeyPrefix+sid).Bytes()
	if err == redis.Nil {
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
	deleted, err := st.rdb.Del(ctx, session.StorageKeyPrefix+sid).Result()
	if err != nil {
		return errors.Wrap(err, "deleting session")
	}
	if deleted > 0 {
		st.publish(ctx, session.Event{SID: sid, Op: session.OpClear})
	}
	return nil
}

func (st *store) Watch(ctx context.Context) (<-chan session.Event, error) {
	sub := st.rdb.Subscribe(ctx, eventChannel)
	// force the subscription before returning so no event is missed
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, errors.Wrap(err, "subscribing to session events")
	}

	ch := make(chan session.Event, 8)
	go func() {
		defer close(ch)
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var ev session.Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					continue
				}
				select {
				case ch <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch, nil
}

func (st *store) publish(ctx context.Context, ev session.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	// best effort; a missed event only delays another instance's view
	_ = st.rdb.Publish(ctx, eventChannel, data).Err()
}
