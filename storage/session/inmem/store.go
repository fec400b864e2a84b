package inmemstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/Kings001-stack/SMS/core/session"
)

// Store keeps serialized sessions in a mutex-guarded map. Payloads are kept
// as raw JSON so reads exercise the same decode path as the durable stores.
type Store struct {
	mutex sync.RWMutex
	table map[string][]byte

	watchMu  sync.Mutex
	watchers []chan session.Event
}

var (
	_ session.Store   = (*Store)(nil)
	_ session.Watcher = (*Store)(nil)
)

func New() *Store {
	return &Store{table: make(map[string][]byte)}
}

func (st *Store) Save(ctx context.Context, sid string, sess session.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.Wrap(err, "encoding session")
	}

	st.mutex.Lock()
	st.table[session.StorageKeyPrefix+sid] = data
	st.mutex.Unlock()

	st.notify(session.Event{SID: sid, Op: session.OpSave})
	return nil
}

func (st *Store) Read(ctx context.Context, sid string) (*session.Session, error) {
	st.mutex.RLock()
	data, ok := st.table[session.StorageKeyPrefix+sid]
	st.mutex.RUnlock()
	if !ok {
		return nil, nil
	}

	sess := new(session.Session)
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, errors.Wrap(err, "decoding session")
	}
	return sess, nil
}

func (st *Store) Clear(ctx context.Context, sid string) error {
	st.mutex.Lock()
	_, existed := st.table[session.StorageKeyPrefix+sid]
	delete(st.table, session.StorageKeyPrefix+sid)
	st.mutex.Unlock()

	if existed {
		st.notify(session.Event{SID: sid, Op: session.OpClear})
	}
	return nil
}

// SaveRaw stores an arbitrary payload under the session key; tests use it to
// plant corrupt documents.
func (st *Store) SaveRaw(sid string, data []byte) {
	st.mutex.Lock()
	st.table[session.StorageKeyPrefix+sid] = data
	st.mutex.Unlock()
}

func (st *Store) Watch(ctx context.Context) (<-chan session.Event, error) {
	ch := make(chan session.Event, 8)

	st.watchMu.Lock()
	st.watchers = append(st.watchers, ch)
	st.watchMu.Unlock()

	go func() {
		<-ctx.Done()
		st.watchMu.Lock()
		for i, w := range st.watchers {
			if w == ch {
				st.watchers = append(st.watchers[:i], st.watchers[i+1:]...)
				break
			}
		}
		st.watchMu.Unlock()
		close(ch)
	}()
	return ch, nil
}

func (st *Store) notify(ev session.Event) {
	st.watchMu.Lock()
	defer st.watchMu.Unlock()
	for _, ch := range st.watchers {
		select {
		case ch <- ev:
		default: // slow watcher, drop
		}
	}
}
