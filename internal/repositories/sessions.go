package repositories

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/rohits-web03/folio/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SessionStore persists login sessions for the auth middleware.
type SessionStore struct {
	db *gorm.DB
}

func NewSessionStore(db *gorm.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Create starts a session for userID that expires after ttl.
func (s *SessionStore) Create(ctx context.Context, userID string, ttl time.Duration) (*models.Session, error) {
	payload, err := json.Marshal(models.SessionData{UserID: userID})
	if err != nil {
		return nil, err
	}
	session := models.Session{
		SID:    uuid.NewString(),
		Sess:   datatypes.JSON(payload),
		Expire: s.db.NowFunc().Add(ttl),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Get returns the live session with the given id, or nil if it is unknown or expired.
func (s *SessionStore) Get(ctx context.Context, sid string) (*models.Session, error) {
	if sid == "" {
		return nil, nil
	}
	var session models.Session
	err := s.db.WithContext(ctx).
		Where("sid = ? AND expire > ?", sid, s.db.NowFunc()).
		Take(&session).Error
	return found(&session, err)
}

func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	return s.db.WithContext(ctx).Where("sid = ?", sid).Delete(&models.Session{}).Error
}

// PurgeExpired removes every expired session and reports how many were removed.
func (s *SessionStore) PurgeExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Where("expire <= ?", s.db.NowFunc()).Delete(&models.Session{})
	return res.RowsAffected, res.Error
}

// RunPurge calls PurgeExpired every interval until ctx is cancelled.
// A non-positive interval disables purging and returns at once.
func (s *SessionStore) RunPurge(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		log.Println("[sessions] purge disabled")
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			n, err := s.PurgeExpired(ctx)
			if err != nil {
				log.Printf("[sessions] purge failed: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("[sessions] purged %d expired sessions", n)
			}
		}
	}
}
