package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Session identifies the signed-in back-office user. It is read once at
// startup and handed to whatever stamps audit strings.
type Session struct {
	UserID    int    `json:"userId"`
	CompanyID int    `json:"companyId"`
	UserName  string `json:"userName"`
}

// sessionWire accepts the field spellings the web client stores.
type sessionWire struct {
	UserIDUpper int    `json:"userID"`
	UserID      int    `json:"userId"`
	CompanyID   int    `json:"companyId"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
}

func (s *Session) UnmarshalJSON(data []byte) error {
	var w sessionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decoding session: %w", err)
	}
	s.UserID = CoalesceInt(w.UserIDUpper, w.UserID)
	s.CompanyID = w.CompanyID
	s.UserName = CoalesceStr(w.UserName, w.Email)
	return nil
}

// IsAnonymous reports whether no user record was available.
func (s Session) IsAnonymous() bool {
	return s.UserID == 0 && s.UserName == ""
}

// AuditLog formats the who/when string stamped on created and updated records.
func (s Session) AuditLog(now time.Time) string {
	who := s.UserName
	if who == "" {
		who = fmt.Sprintf("user#%d", s.UserID)
	}
	return fmt.Sprintf("%s %s", who, now.UTC().Format(time.RFC3339))
}
