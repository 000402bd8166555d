package models_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/masudmolla6/bistro-restaurant-server/app/models"
)

func TestRoleBSON(t *testing.T) {
	admin := models.User{Email: "boss@x.com", Role: models.RoleAdmin}
	raw, err := bson.Marshal(admin)
	require.NoError(t, err)
	assert.Equal(t, "admin", bson.Raw(raw).Lookup("role").StringValue())

	standard := models.User{Email: "a@x.com"}
	raw, err = bson.Marshal(standard)
	require.NoError(t, err)
	_, err = bson.Raw(raw).LookupErr("role")
	assert.Error(t, err, "standard role is not written")

	var got models.User
	require.NoError(t, bson.Unmarshal(mustBSON(t, bson.M{"email": "x@x.com", "role": "admin"}), &got))
	assert.True(t, got.IsAdmin())

	for _, doc := range []bson.M{
		{"email": "x@x.com"},
		{"email": "x@x.com", "role": "Admin"},
		{"email": "x@x.com", "role": "superuser"},
		{"email": "x@x.com", "role": 1},
	} {
		var u models.User
		require.NoError(t, bson.Unmarshal(mustBSON(t, doc), &u))
		assert.False(t, u.IsAdmin(), "%v", doc)
	}
}

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(models.User{Email: "boss@x.com", Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"role":"admin"`)

	b, err = json.Marshal(models.User{Email: "a@x.com"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), `"role"`)

	var nilUser *models.User
	assert.False(t, nilUser.IsAdmin())
}

func TestParseIDs(t *testing.T) {
	ids, err := models.ParseIDs([]string{"642c155b2c4774f05c36eeaa"})
	require.NoError(t, err)
	assert.Equal(t, "642c155b2c4774f05c36eeaa", ids[0].Hex())

	ids, err = models.ParseIDs(nil)
	require.NoError(t, err)
	assert.NotNil(t, ids)
	assert.Empty(t, ids)

	_, err = models.ParseIDs([]string{"642c155b2c4774f05c36eeaa", "nope"})
	assert.ErrorIs(t, err, models.ErrInvalidID)
}

func mustBSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	b, err := bson.Marshal(v)
	require.NoError(t, err)
	return b
}
