package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is the aggregate root for the user domain.
// Email is the identity key. Password holds a bcrypt hash and never leaves the server.
// Profile carries any extra registration fields the front end sends; the core never reads them.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Role      Role               `bson:"role,omitempty"`
	IsRequest bool               `bson:"isRequest"`
	WannaBe   Role               `bson:"wannaBe,omitempty"`
	Password  string             `bson:"password,omitempty"`
	CreatedAt time.Time          `bson:"createdAt,omitempty"`
	Profile   map[string]any     `bson:",inline"`
}

// reserved keys are owned by the struct fields and stripped from Profile.
var reserved = map[string]struct{}{
	"_id": {}, "email": {}, "role": {}, "isRequest": {}, "wannaBe": {}, "password": {}, "createdAt": {},
}

// ErrInvalidProfileKey is returned for profile keys the document store cannot hold.
var ErrInvalidProfileKey = errors.New("invalid profile key")

// NewUserFromPayload builds a user from a registration body.
// Role state is never taken from the client; a new user starts without a role.
// The plain password is returned separately so the caller can hash it.
// Keys starting with "$" or containing "." are rejected at any depth.
func NewUserFromPayload(payload map[string]any) (*User, string, error) {
	u := &User{Profile: map[string]any{}}
	if v, ok := payload["email"].(string); ok {
		u.Email = strings.TrimSpace(v)
	}
	var password string
	if v, ok := payload["password"].(string); ok {
		password = v
	}
	for k, v := range payload {
		if _, skip := reserved[k]; skip {
			continue
		}
		if err := checkKeys(k, v); err != nil {
			return nil, "", err
		}
		u.Profile[k] = v
	}
	return u, password, nil
}

func checkKeys(key string, v any) error {
	if key == "" || strings.HasPrefix(key, "$") || strings.Contains(key, ".") {
		return fmt.Errorf("%w: %q", ErrInvalidProfileKey, key)
	}
	return checkValue(v)
}

func checkValue(v any) error {
	switch x := v.(type) {
	case map[string]any:
		for k, inner := range x {
			if err := checkKeys(k, inner); err != nil {
				return err
			}
		}
	case []any:
		for _, inner := range x {
			if err := checkValue(inner); err != nil {
				return err
			}
		}
	}
	return nil
}

// MarshalJSON flattens Profile next to the known fields and omits the password.
func (u User) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(u.Profile)+6)
	for k, v := range u.Profile {
		out[k] = v
	}
	if !u.ID.IsZero() {
		out["_id"] = u.ID
	}
	out["email"] = u.Email
	if u.Role != "" {
		out["role"] = u.Role
	}
	out["isRequest"] = u.IsRequest
	if u.WannaBe != "" {
		out["wannaBe"] = u.WannaBe
	}
	if !u.CreatedAt.IsZero() {
		out["createdAt"] = u.CreatedAt
	}
	return json.Marshal(out)
}
