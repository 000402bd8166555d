package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/collection"
)

type order struct {
	email string
	items []string
	price float64
}

var orders = []order{
	{"a@x.com", []string{"A", "B"}, 15},
	{"b@x.com", nil, 0},
	{"a@x.com", []string{"A"}, 10},
}

func TestFlatMapSkipsEmpty(t *testing.T) {
	got := collection.FlatMap(orders, func(o order) []string { return o.items })
	assert.Equal(t, []string{"A", "B", "A"}, got)
}

func TestGroupByAndSum(t *testing.T) {
	byEmail := collection.GroupBy(orders, func(o order) string { return o.email })
	assert.Len(t, byEmail, 2)
	assert.Equal(t, 25.0, collection.Sum(byEmail["a@x.com"], func(o order) float64 { return o.price }))
	assert.Equal(t, 0.0, collection.Sum([]order(nil), func(o order) float64 { return o.price }))
}

func TestKeyByAndFirst(t *testing.T) {
	idx := collection.KeyBy(orders, func(o order) float64 { return o.price })
	assert.Equal(t, "b@x.com", idx[0].email)

	o, ok := collection.First(orders, func(o order) bool { return o.price > 12 })
	assert.True(t, ok)
	assert.Equal(t, 15.0, o.price)

	_, ok = collection.First(orders, func(o order) bool { return o.price > 100 })
	assert.False(t, ok)
}

func TestIndex(t *testing.T) {
	assert.Equal(t, 2, collection.Index(orders, func(o order) bool { return o.price == 10 }))
	assert.Equal(t, -1, collection.Index(orders, func(o order) bool { return o.price < 0 }))
}

func TestFilterReject(t *testing.T) {
	paid := func(o order) bool { return o.price > 0 }
	assert.Len(t, collection.Filter(orders, paid), 2)
	assert.Len(t, collection.Reject(orders, paid), 1)

	none := collection.Filter(orders, func(order) bool { return false })
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGroupByCountsAsIntegers(t *testing.T) {
	byPaid := collection.GroupBy(orders, func(o order) bool { return o.price > 0 })
	n := collection.Sum(byPaid[true], func(o order) int64 { return int64(len(o.items)) })
	assert.Equal(t, int64(3), n)
}
