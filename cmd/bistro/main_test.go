package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/masudmolla6/bistro-restaurant-server/app/repositories"
)

const seedJSON = `{
  "menu": [
    {"_id": "642c155b2c4774f05c36eeaa", "name": "Haddock", "recipe": "Chargrilled fresh tuna steak", "image": "https://example.com/h.jpg", "category": "salad", "price": 14.7},
    {"name": "Tuna Niçoise", "category": "dessert", "price": 10.5}
  ],
  "reviews": [
    {"name": "Jane Doe", "details": "Great food", "rating": 5}
  ]
}`

func TestSeed(t *testing.T) {
	data, err := readSeed(strings.NewReader(seedJSON))
	require.NoError(t, err)

	ctx := context.Background()
	store := repositories.NewMemoryStore()
	menuN, reviewN, err := seed(ctx, store, data)
	require.NoError(t, err)
	assert.Equal(t, 2, menuN)
	assert.Equal(t, 1, reviewN)

	menu, _ := store.Menu.All(ctx)
	require.Len(t, menu, 2)
	assert.Equal(t, "642c155b2c4774f05c36eeaa", menu[0].ID.Hex())
	assert.False(t, menu[1].ID.IsZero())
}

func TestReadSeedRejectsBadIDs(t *testing.T) {
	_, err := readSeed(strings.NewReader(`{"menu":[{"_id":"1"}]}`))
	assert.Error(t, err)

	_, err = readSeed(strings.NewReader(`{"dishes":[]}`))
	assert.Error(t, err)
}

func TestRouteList(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printRoutes(&out))

	table := out.String()
	for _, want := range []string{"/admin-stats", "/order-stats", "/users/admin/{email}", "payments.intent"} {
		assert.Contains(t, table, want)
	}
	for _, line := range strings.Split(table, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 4 && fields[1] == "/admin-stats" {
			assert.Equal(t, "token,admin", fields[3])
		}
		if len(fields) == 4 && fields[1] == "/reviews" {
			assert.Equal(t, "-", fields[3])
		}
	}
}

func TestTokenCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"token", "--email", "a@x.com"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out.String()), "."))
}

func TestBootRequiresSecretOutsideLocal(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	rt, err := boot(context.Background(), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ACCESS_TOKEN_SECRET")
	assert.Nil(t, rt)

	t.Setenv("ACCESS_TOKEN_SECRET", "prod-signing-key-0123456789abcdef")
	rt, err = boot(context.Background(), true)
	require.NoError(t, err)
	t.Cleanup(func() { rt.shutdown(context.Background()) })

	forged := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "boss@x.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := forged.SignedString([]byte("change-me-in-production"))
	require.NoError(t, err)
	_, err = rt.deps.Issuer.Verify(raw)
	assert.Error(t, err, "token signed with the built-in key")
}

func TestBootAllowsDefaultSecretLocally(t *testing.T) {
	t.Setenv("APP_ENV", "local")
	t.Setenv("ACCESS_TOKEN_SECRET", "")

	rt, err := boot(context.Background(), true)
	require.NoError(t, err)
	rt.shutdown(context.Background())
}
