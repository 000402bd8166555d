package logger_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/masudmolla6/bistro-restaurant-server/pkg/logger"
)

type captureInserter struct {
	mu   sync.Mutex
	docs []logger.Entry
}

func (c *captureInserter) InsertMany(_ context.Context, docs []interface{}, _ ...*options.InsertManyOptions) (*mongo.InsertManyResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, d := range docs {
		c.docs = append(c.docs, d.(logger.Entry))
	}
	return &mongo.InsertManyResult{}, nil
}

func TestMongoSinkFlushesOnClose(t *testing.T) {
	col := &captureInserter{}
	sink := logger.NewMongoSink(col, slog.LevelInfo)

	log := slog.New(sink).With("request_id", "rid-1")
	log.Info("payment recorded", "transaction_id", "tx_1")
	log.Debug("dropped by level")
	log.WithGroup("store").Warn("slow query", "collection", "payments")

	sink.Close()
	sink.Close()

	require.Len(t, col.docs, 2)
	assert.Equal(t, "payment recorded", col.docs[0].Msg)
	assert.Equal(t, "rid-1", col.docs[0].RequestID)
	assert.Equal(t, "tx_1", col.docs[0].Attrs["transaction_id"])
	assert.Equal(t, "WARN", col.docs[1].Level)
	assert.Equal(t, "payments", col.docs[1].Attrs["store.collection"])
}

func TestMultiHandlerFansOut(t *testing.T) {
	a, b := &captureInserter{}, &captureInserter{}
	sa := logger.NewMongoSink(a, slog.LevelInfo)
	sb := logger.NewMongoSink(b, slog.LevelError)

	slog.New(logger.NewMultiHandler(sa, sb)).Info("hello")
	sa.Close()
	sb.Close()

	assert.Len(t, a.docs, 1)
	assert.Empty(t, b.docs)
}
