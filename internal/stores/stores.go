// Package stores holds the per-entity observable state containers
// behind the console views. Each store owns the full lifecycle of one
// entity list, from fetch and local filtering through mutation and
// reconciliation: after any
// successful fetch or reconciling mutation, the visible items are
// exactly the entities matching the active filters, enforced locally
// rather than by trusting upstream filtering.
package stores

import (
	"encoding/json"
	"errors"
	"sync"

	"shopx-support-console/internal/gqlclient"
)

// observable is the shared state-container base: mutex-guarded fields,
// subscriber notification, and a monotonic fetch sequence used to
// discard out-of-order responses when fetches overlap.
//
// Store methods compute their full next state first and then commit it
// in one locked step, so interleaved async handlers can never publish
// a half-applied transition.
type observable struct {
	mu       sync.Mutex
	subs     map[int]func()
	nextSub  int
	fetchSeq uint64
}

// Subscribe registers fn to run after every committed state change and
// returns its cancel func. Callbacks run outside the store lock.
func (o *observable) Subscribe(fn func()) (cancel func()) {
	o.mu.Lock()
	if o.subs == nil {
		o.subs = make(map[int]func())
	}
	id := o.nextSub
	o.nextSub++
	o.subs[id] = fn
	o.mu.Unlock()

	return func() {
		o.mu.Lock()
		delete(o.subs, id)
		o.mu.Unlock()
	}
}

func (o *observable) notifyList() []func() {
	fns := make([]func(), 0, len(o.subs))
	for _, fn := range o.subs {
		fns = append(fns, fn)
	}
	return fns
}

// commit applies a state transition atomically and notifies.
func (o *observable) commit(apply func()) {
	o.mu.Lock()
	apply()
	fns := o.notifyList()
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// beginFetch claims a new fetch generation. Responses belonging to an
// older generation are dropped by commitFetch.
func (o *observable) beginFetch() uint64 {
	o.mu.Lock()
	o.fetchSeq++
	seq := o.fetchSeq
	o.mu.Unlock()
	return seq
}

// commitFetch applies a fetch result only when seq is still the
// current generation. Reports whether the commit happened.
func (o *observable) commitFetch(seq uint64, apply func()) bool {
	o.mu.Lock()
	if seq != o.fetchSeq {
		o.mu.Unlock()
		return false
	}
	apply()
	fns := o.notifyList()
	o.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
	return true
}

// errEmptyMutationResult fires when a mutation succeeded at the
// transport level but returned no entity to reconcile with.
var errEmptyMutationResult = errors.New("mutation returned no result")

// envelopeError converts a non-empty errors list into the joined-message
// error mutation callers see.
func envelopeError(errs []gqlclient.ResponseError) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New(gqlclient.JoinErrors(errs))
}

// mutationError normalizes executor failures: a structured ClientError
// becomes its joined backend messages, anything else passes through.
func mutationError(err error) error {
	var clientErr *gqlclient.ClientError
	if errors.As(err, &clientErr) {
		if joined := envelopeError(clientErr.Errors); joined != nil {
			return joined
		}
	}
	return err
}

// flexibleID tolerates backends that serialize ids as numbers.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

func (f flexibleID) String() string { return string(f) }

func isNumericID(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func intOrDefault(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
