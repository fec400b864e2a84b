package session

import (
	"context"

	"github.com/pkg/errors"
)

// Event Ops
const (
	OpSave  = "save"
	OpClear = "clear"
)

var ErrWatchUnsupported = errors.New("store does not support watching")

type (
	// Store persists sessions keyed by session id. Implementations live in
	// storage/session; Read returns (nil, nil) when no session exists and an
	// error for backend failures or corrupt payloads - the Service is the
	// boundary that degrades both to "no session".
	Store interface {
		Save(ctx context.Context, sid string, sess Session) error
		Read(ctx context.Context, sid string) (*Session, error)
		Clear(ctx context.Context, sid string) error
	}

	// Watcher is implemented by stores that can report session changes made
	// through another Service instance sharing the same store.
	Watcher interface {
		Watch(ctx context.Context) (<-chan Event, error)
	}

	// Event describes a session change observed in the store.
	Event struct {
		SID string
		Op  string
	}
)
