package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Session is a login session owned by the auth layer. Sess is an opaque JSON payload.
type Session struct {
	SID    string         `json:"sid" gorm:"column:sid;type:varchar(64);primaryKey"`
	Sess   datatypes.JSON `json:"sess" gorm:"not null"`
	Expire time.Time      `json:"expire" gorm:"not null;index:idx_session_expire"`
}

type SessionData struct {
	UserID string `json:"userId"`
}

// Data decodes the session payload. A malformed payload yields an empty SessionData.
func (s *Session) Data() SessionData {
	var data SessionData
	_ = json.Unmarshal(s.Sess, &data)
	return data
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.Expire)
}
