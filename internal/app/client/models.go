package client

import (
	"errors"
	"sync"
	"time"
)

// DraftTTL срок жизни локального черновика письма.
const DraftTTL = 72 * time.Hour

var ErrDraftNotFound = errors.New("черновик не найден")

// Draft неотправленное письмо по счету. Ключ - идентификатор заявки.
type Draft struct {
	RequestID string    `json:"request_id"`
	Subject   string    `json:"subject"`
	CC        string    `json:"cc"`
	BCC       string    `json:"bcc"`
	ReplyTo   string    `json:"reply_to"`
	Content   string    `json:"content"`
	SavedAt   time.Time `json:"saved_at"`
}

// DraftStore локальное хранилище черновиков. Сервер остается источником истины,
// черновик живет DraftTTL после последнего сохранения.
type DraftStore interface {
	SaveDraft(d Draft) error
	GetDraft(requestID string) (*Draft, error)
	DeleteDraft(requestID string) error
	Purge() (int, error)
	Close() error
}

// MemoryDraftStore хранилище черновиков в памяти.
type MemoryDraftStore struct {
	mu     sync.Mutex
	drafts map[string]Draft
	ttl    time.Duration
	now    func() time.Time
}

func NewMemoryDraftStore(ttl time.Duration, now func() time.Time) *MemoryDraftStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryDraftStore{
		drafts: make(map[string]Draft),
		ttl:    ttl,
		now:    now,
	}
}

func (m *MemoryDraftStore) SaveDraft(d Draft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.SavedAt = m.now().UTC()
	m.drafts[d.RequestID] = d
	return nil
}

func (m *MemoryDraftStore) GetDraft(requestID string) (*Draft, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.drafts[requestID]
	if !ok {
		return nil, ErrDraftNotFound
	}
	if m.now().Sub(d.SavedAt) > m.ttl {
		delete(m.drafts, requestID)
		return nil, ErrDraftNotFound
	}
	return &d, nil
}

func (m *MemoryDraftStore) DeleteDraft(requestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, requestID)
	return nil
}

func (m *MemoryDraftStore) Purge() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, d := range m.drafts {
		if m.now().Sub(d.SavedAt) > m.ttl {
			delete(m.drafts, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryDraftStore) Close() error {
	return nil
}
