package stockledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a ledger participant. The ledger is multi-user so that one
// household can track several brokerage accounts side by side; a user here
// is a label, not an authentication principal.
type User struct {
	ID         string
	Name       string
	Phone      string // optional contact fields, display only
	Email      string
	CreateTime time.Time
}

// NewUser creates a user with a fresh id.
func NewUser(name string) User {
	return User{
		ID:         uuid.NewString(),
		Name:       name,
		CreateTime: time.Now(),
	}
}

// Validate checks the user fields at the input boundary.
func (u User) Validate() error {
	if u.Name == "" {
		return errors.New("user name must not be empty")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for User, keeping a
// stable field order in the ledger file.
func (u User) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", u.ID)
	w.Append("name", u.Name)
	w.Optional("phone", u.Phone)
	w.Optional("email", u.Email)
	if !u.CreateTime.IsZero() {
		w.Append("createTime", u.CreateTime.UTC().Format(time.RFC3339))
	}
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for User.
func (u *User) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID         string `json:"id"`
		Name       string `json:"name"`
		Phone      string `json:"phone"`
		Email      string `json:"email"`
		CreateTime string `json:"createTime"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	u.ID = temp.ID
	u.Name = temp.Name
	u.Phone = temp.Phone
	u.Email = temp.Email
	if temp.CreateTime != "" {
		created, err := time.Parse(time.RFC3339, temp.CreateTime)
		if err != nil {
			return fmt.Errorf("invalid createTime %q: %w", temp.CreateTime, err)
		}
		u.CreateTime = created
	}
	return nil
}
