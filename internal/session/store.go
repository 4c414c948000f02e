// Package session holds per-requester transient state: the admin upload
// session and the pending gated request. Nothing here is persisted; a
// restart drops all sessions and the admin simply restarts the upload flow.
package session

import "sync"

// UploadState is the admin upload session state.
type UploadState int

const (
	// Idle means no upload is in progress.
	Idle UploadState = iota
	// AwaitingAsset means the admin was prompted and the next photo or
	// video they send will be cataloged.
	AwaitingAsset
)

// Store keys all transient state by requester identity. The transport layer
// delivers one requester's events serially, so access per key is not
// contended; the mutex only guards the maps across distinct requesters.
type Store struct {
	mu      sync.Mutex
	uploads map[int64]UploadState
	pending map[int64]string
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{
		uploads: make(map[int64]UploadState),
		pending: make(map[int64]string),
	}
}

// UploadStateOf returns the requester's upload session state (Idle if none).
func (s *Store) UploadStateOf(id int64) UploadState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads[id]
}

// BeginUpload moves the requester's session to AwaitingAsset.
func (s *Store) BeginUpload(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[id] = AwaitingAsset
}

// FinishUpload returns the requester's session to Idle.
func (s *Store) FinishUpload(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.uploads, id)
}

// SetPending records the reference the requester is trying to obtain, so a
// later membership recheck can resume without re-stating it.
func (s *Store) SetPending(id int64, ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[id] = ref
}

// Pending returns the requester's pending reference, if any.
func (s *Store) Pending(id int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ref, ok := s.pending[id]
	return ref, ok
}

// ClearPending drops the requester's pending reference.
func (s *Store) ClearPending(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
}
