package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/database"
)

func TestIndexes(t *testing.T) {
	idx := database.Indexes()
	require.Len(t, idx, 3)

	users := idx[database.Users]
	require.Len(t, users, 1)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, users[0].Keys)
	require.NotNil(t, users[0].Options.Unique)
	assert.True(t, *users[0].Options.Unique)

	for _, coll := range []string{database.Carts, database.Payments} {
		require.Len(t, idx[coll], 1, coll)
		assert.Nil(t, idx[coll][0].Options.Unique, coll)
	}
}
