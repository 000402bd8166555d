package logger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	sinkQueueSize = 4096
	sinkBatchSize = 50
	sinkDrainTick = 2 * time.Second
)

// Entry is the document shape written to the log collection.
type Entry struct {
	Time      time.Time `bson:"time"`
	Level     string    `bson:"level"`
	Msg       string    `bson:"msg"`
	RequestID string    `bson:"request_id,omitempty"`
	Attrs     bson.M    `bson:"attrs,omitempty"`
}

// Inserter is the subset of *mongo.Collection the sink needs.
type Inserter interface {
	InsertMany(ctx context.Context, documents []interface{}, opts ...*options.InsertManyOptions) (*mongo.InsertManyResult, error)
}

// MongoSink is a slog.Handler that batches records into a Mongo collection
// from a single background goroutine. Handle never blocks: when the queue is
// full the record is dropped.
type MongoSink struct {
	level slog.Leveler
	col   Inserter
	state *sinkState
	attrs []slog.Attr
	group string
}

type sinkState struct {
	queue     chan Entry
	done      chan struct{}
	finished  chan struct{}
	closeOnce sync.Once
}

// NewMongoSink starts the drain loop. Call Close on shutdown to flush.
func NewMongoSink(col Inserter, level slog.Leveler) *MongoSink {
	s := &MongoSink{
		level: level,
		col:   col,
		state: &sinkState{
			queue:    make(chan Entry, sinkQueueSize),
			done:     make(chan struct{}),
			finished: make(chan struct{}),
		},
	}
	go s.drainLoop()
	return s
}

// EnsureIndexes creates the descending time index used to browse logs.
func EnsureIndexes(ctx context.Context, col *mongo.Collection) error {
	_, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "time", Value: -1}},
	})
	return err
}

func (s *MongoSink) Enabled(_ context.Context, l slog.Level) bool {
	return s.level == nil || l >= s.level.Level()
}

func (s *MongoSink) Handle(_ context.Context, r slog.Record) error {
	entry := Entry{
		Time:  r.Time,
		Level: r.Level.String(),
		Msg:   r.Message,
		Attrs: bson.M{},
	}

	add := func(a slog.Attr) {
		if a.Key == "request_id" {
			entry.RequestID = a.Value.String()
			return
		}
		key := a.Key
		if s.group != "" {
			key = s.group + "." + key
		}
		entry.Attrs[key] = a.Value.Resolve().Any()
	}
	for _, a := range s.attrs {
		add(a)
	}
	r.Attrs(func(a slog.Attr) bool {
		add(a)
		return true
	})

	select {
	case s.state.queue <- entry:
	default:
	}
	return nil
}

func (s *MongoSink) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *s
	next.attrs = append(append([]slog.Attr(nil), s.attrs...), attrs...)
	return &next
}

func (s *MongoSink) WithGroup(name string) slog.Handler {
	next := *s
	if next.group != "" {
		name = next.group + "." + name
	}
	next.group = name
	return &next
}

func (s *MongoSink) drainLoop() {
	defer close(s.state.finished)

	ticker := time.NewTicker(sinkDrainTick)
	defer ticker.Stop()

	batch := make([]interface{}, 0, sinkBatchSize)
	flush := func() {
		if len(batch) == 0 {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_, _ = s.col.InsertMany(ctx, batch)
		batch = batch[:0]
	}

	for {
		select {
		case e := <-s.state.queue:
			batch = append(batch, e)
			if len(batch) >= sinkBatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.state.done:
			for len(s.state.queue) > 0 {
				batch = append(batch, <-s.state.queue)
			}
			flush()
			return
		}
	}
}

// Close flushes queued records and stops the drain loop. Safe to call twice.
func (s *MongoSink) Close() {
	s.state.closeOnce.Do(func() { close(s.state.done) })
	<-s.state.finished
}

// ─── Fan-out ──────────────────────────────────────────────────────────────────

// MultiHandler sends each record to every wrapped handler.
type MultiHandler struct {
	handlers []slog.Handler
}

func NewMultiHandler(hs ...slog.Handler) *MultiHandler {
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) Enabled(ctx context.Context, l slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, l) {
			return true
		}
	}
	return false
}

func (m *MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			_ = h.Handle(ctx, r.Clone())
		}
	}
	return nil
}

func (m *MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithAttrs(attrs)
	}
	return &MultiHandler{handlers: hs}
}

func (m *MultiHandler) WithGroup(name string) slog.Handler {
	hs := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		hs[i] = h.WithGroup(name)
	}
	return &MultiHandler{handlers: hs}
}
