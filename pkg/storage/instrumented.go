// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
	"time"

	"github.com/oneconcern/localvcs/pkg/metrics"
	"go.uber.org/zap"
)

// Instrument decorates a store with logging and metrics
func Instrument(l *zap.Logger, m *metrics.Metrics, store Store) Store {
	if l == nil {
		l = zap.NewNop()
	}
	return &instrumentedStore{
		store: store,
		m:     m,
		l:     l.With(zap.String("store", store.String())),
	}
}

type instrumentedStore struct {
	store Store
	m     *metrics.Metrics
	l     *zap.Logger
}

func (i *instrumentedStore) done(op string, start time.Time, err error, fields ...zap.Field) {
	i.m.StorageOp(i.store.String(), op, start, err)
	fields = append(fields, zap.Duration("duration", time.Since(start)))
	if err != nil {
		i.l.Warn("storage "+op+" failed", append(fields, zap.Error(err))...)
		return
	}
	i.l.Debug("storage "+op, fields...)
}

func (i *instrumentedStore) Has(ctx context.Context, key string) (has bool, err error) {
	defer func(start time.Time) { i.done("has", start, err, zap.String("key", key)) }(time.Now())
	return i.store.Has(ctx, key)
}

func (i *instrumentedStore) Get(ctx context.Context, key string) (rdr io.ReadCloser, err error) {
	defer func(start time.Time) { i.done("get", start, err, zap.String("key", key)) }(time.Now())
	return i.store.Get(ctx, key)
}

func (i *instrumentedStore) Put(ctx context.Context, key string, rdr io.Reader, newKey NewKey) (err error) {
	defer func(start time.Time) {
		i.done("put", start, err, zap.String("key", key), zap.Bool("exclusive", bool(newKey)))
	}(time.Now())
	return i.store.Put(ctx, key, rdr, newKey)
}

func (i *instrumentedStore) Meta(ctx context.Context, key string) (size int64, updated time.Time, err error) {
	defer func(start time.Time) { i.done("meta", start, err, zap.String("key", key)) }(time.Now())
	return i.store.Meta(ctx, key)
}

func (i *instrumentedStore) Delete(ctx context.Context, key string) (err error) {
	defer func(start time.Time) { i.done("delete", start, err, zap.String("key", key)) }(time.Now())
	return i.store.Delete(ctx, key)
}

func (i *instrumentedStore) Keys(ctx context.Context) (keys []string, err error) {
	defer func(start time.Time) { i.done("keys", start, err, zap.Int("count", len(keys))) }(time.Now())
	return i.store.Keys(ctx)
}

func (i *instrumentedStore) Clear(ctx context.Context) (err error) {
	defer func(start time.Time) { i.done("clear", start, err) }(time.Now())
	return i.store.Clear(ctx)
}

func (i *instrumentedStore) String() string {
	return i.store.String()
}

// Close the decorated store, if it knows how to
func (i *instrumentedStore) Close() error {
	if closer, ok := i.store.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
