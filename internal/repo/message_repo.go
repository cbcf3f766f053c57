// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// ConversationMessage model.
package repo

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ayurmitra/wellness-backend/internal/domain"
)

// NextSeq returns the next sequence number for a session (1-based). Call it
// inside the same transaction as the subsequent CreateMessage so concurrent
// turns in one session cannot interleave sequence numbers.
func NextSeq(db *gorm.DB, sessionID string) (int, error) {
	var max int
	err := db.Raw("SELECT COALESCE(MAX(seq), 0) FROM conversation_messages WHERE session_id = ?", sessionID).Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// CreateMessage inserts a new message row with the given sequence number.
func CreateMessage(db *gorm.DB, m *domain.ConversationMessage) (*domain.ConversationMessage, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	return m, db.Create(m).Error
}

// ListRecentMessages returns the last limit messages of a session in
// chronological order (oldest first), suitable for prompting history.
func ListRecentMessages(db *gorm.DB, sessionID string, limit int) ([]domain.ConversationMessage, error) {
	var out []domain.ConversationMessage
	q := db.Where("session_id = ?", sessionID).Order("seq DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	// reverse into ascending seq order
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

// CountMessages uses a raw COUNT so a missing table surfaces as an error.
func CountMessages(db *gorm.DB, sessionID string) (int64, error) {
	var total int64
	err := db.Raw("SELECT COUNT(*) FROM conversation_messages WHERE session_id = ?", sessionID).Scan(&total).Error
	return total, err
}

// ListMessagesPage returns a paginated slice ordered by ascending sequence.
func ListMessagesPage(db *gorm.DB, sessionID string, offset, limit int) ([]domain.ConversationMessage, error) {
	var out []domain.ConversationMessage
	err := db.
		Where("session_id = ?", sessionID).
		Order("seq ASC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetMessage fetches a message by ID.
func GetMessage(db *gorm.DB, id string) (*domain.ConversationMessage, error) {
	var m domain.ConversationMessage
	if err := db.Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}
