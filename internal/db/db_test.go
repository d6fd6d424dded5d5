package db

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sujalbistaa/moodcanvas/internal/models"
	"github.com/sujalbistaa/moodcanvas/internal/store"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	tests := []struct {
		name string
		url  string
		want interface{}
	}{
		{"DefaultIsMemory", "", &store.MemoryStore{}},
		{"Memory", "memory://", &store.MemoryStore{}},
		{"SQLiteInMemory", "sqlite://", &store.SQLStore{}},
		{"Redis", "redis://" + mr.Addr() + "/0", &store.RedisStore{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			st, closeFn, err := OpenStore(ctx, tc.url, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(func() { assert.NoError(t, closeFn()) })
			assert.IsType(t, tc.want, st)

			saved, err := st.Append(ctx, models.Submission{ID: 1, Type: models.TypeText, UserContent: "hi", AIResponse: "x"})
			require.NoError(t, err)
			assert.Equal(t, int64(1), saved.ID)
		})
	}
}

func TestOpenStoreRejectsUnknownScheme(t *testing.T) {
	_, _, err := OpenStore(context.Background(), "mysql://localhost/db", zap.NewNop())
	assert.Error(t, err)
}

func TestOpenRedisUnreachable(t *testing.T) {
	_, err := OpenRedis(context.Background(), "redis://127.0.0.1:1", zap.NewNop())
	assert.Error(t, err)
}
