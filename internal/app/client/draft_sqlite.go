package client

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDraftStore черновики писем в локальной SQLite базе.
type SQLiteDraftStore struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

func NewSQLiteDraftStore(path string, ttl time.Duration) (*SQLiteDraftStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия базы данных: %w", err)
	}

	storage := &SQLiteDraftStore{db: db, ttl: ttl, now: time.Now}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ошибка инициализации таблиц: %w", err)
	}

	return storage, nil
}

func (s *SQLiteDraftStore) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS drafts (
			request_id TEXT PRIMARY KEY,
			subject TEXT NOT NULL DEFAULT '',
			cc TEXT NOT NULL DEFAULT '',
			bcc TEXT NOT NULL DEFAULT '',
			reply_to TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			saved_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_drafts_saved ON drafts(saved_at);
	`)
	return err
}

// SaveDraft сохраняет черновик, заменяя предыдущий для той же заявки.
func (s *SQLiteDraftStore) SaveDraft(d Draft) error {
	if d.RequestID == "" {
		return errors.New("черновик без идентификатора заявки")
	}
	_, err := s.db.Exec(`
		INSERT INTO drafts (request_id, subject, cc, bcc, reply_to, content, saved_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(request_id) DO UPDATE SET
			subject = excluded.subject,
			cc = excluded.cc,
			bcc = excluded.bcc,
			reply_to = excluded.reply_to,
			content = excluded.content,
			saved_at = excluded.saved_at
	`, d.RequestID, d.Subject, d.CC, d.BCC, d.ReplyTo, d.Content, s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("ошибка сохранения черновика: %w", err)
	}
	return nil
}

// GetDraft возвращает черновик; просроченный удаляется и считается отсутствующим.
func (s *SQLiteDraftStore) GetDraft(requestID string) (*Draft, error) {
	var d Draft
	var savedAt int64

	err := s.db.QueryRow(`
		SELECT request_id, subject, cc, bcc, reply_to, content, saved_at
		FROM drafts
		WHERE request_id = ?
	`, requestID).Scan(&d.RequestID, &d.Subject, &d.CC, &d.BCC, &d.ReplyTo, &d.Content, &savedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка получения черновика: %w", err)
	}

	d.SavedAt = time.UnixMilli(savedAt).UTC()
	if s.now().Sub(d.SavedAt) > s.ttl {
		if err := s.DeleteDraft(requestID); err != nil {
			return nil, err
		}
		return nil, ErrDraftNotFound
	}
	return &d, nil
}

func (s *SQLiteDraftStore) DeleteDraft(requestID string) error {
	if _, err := s.db.Exec("DELETE FROM drafts WHERE request_id = ?", requestID); err != nil {
		return fmt.Errorf("ошибка удаления черновика: %w", err)
	}
	return nil
}

// Purge удаляет все просроченные черновики.
func (s *SQLiteDraftStore) Purge() (int, error) {
	cutoff := s.now().Add(-s.ttl).UnixMilli()
	res, err := s.db.Exec("DELETE FROM drafts WHERE saved_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки черновиков: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки черновиков: %w", err)
	}
	return int(n), nil
}

func (s *SQLiteDraftStore) Close() error {
	return s.db.Close()
}
