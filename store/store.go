package store

import "sync"

// Store serialises dispatches so every action sees the result of the previous one.
type Store struct {
	mu    sync.Mutex
	state State
}

func New() *Store {
	return &Store{state: Initial()}
}

func (st *Store) Dispatch(a Action) State {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state = Reduce(st.state, a)
	return st.state
}

func (st *Store) State() State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state
}
