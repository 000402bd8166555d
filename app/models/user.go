package models

import (
	"encoding/json"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

// Role is the privilege a user holds.
type Role int

const (
	RoleStandard Role = iota
	RoleAdmin
)

func (r Role) String() string {
	if r == RoleAdmin {
		return "admin"
	}
	return "standard"
}

// ParseRole maps a stored role string to a Role. Anything other than
// "admin" is standard.
func ParseRole(s string) Role {
	if s == "admin" {
		return RoleAdmin
	}
	return RoleStandard
}

// IsZero lets omitempty drop the standard role, matching documents that
// were written without a role field.
func (r Role) IsZero() bool { return r == RoleStandard }

func (r Role) MarshalJSON() ([]byte, error) { return json.Marshal(r.String()) }

func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}

func (r Role) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.TypeString, bsoncore.AppendString(nil, r.String()), nil
}

func (r *Role) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	s, _ := bson.RawValue{Type: t, Value: data}.StringValueOK()
	*r = ParseRole(s)
	return nil
}

// User is a registered diner or administrator, keyed by email.
type User struct {
	ID    primitive.ObjectID `bson:"_id,omitempty"  json:"_id"`
	Name  string             `bson:"name,omitempty" json:"name,omitempty"`
	Email string             `bson:"email"          json:"email"`
	Role  Role               `bson:"role,omitempty" json:"role,omitempty"`
}

// IsAdmin reports whether u holds the admin role. A nil user is not admin.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
