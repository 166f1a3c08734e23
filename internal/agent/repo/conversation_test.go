package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/cloudwego/eino/schema"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T, ttl time.Duration) (*RedisConversationRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisConversationRepository(rdb, ttl), mr
}

func TestConversationRoundTrip(t *testing.T) {
	r, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("derivative of x^2")))
	require.NoError(t, r.AddMessage(ctx, "c1", schema.AssistantMessage("$$2 x$$", nil)))

	hist, err := r.LoadHistory(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, "c1", hist.ConversationID)
	require.Len(t, hist.Messages, 2)
	require.Equal(t, schema.User, hist.Messages[0].Role)
	require.Equal(t, "derivative of x^2", hist.Messages[0].Content)
	require.Equal(t, schema.Assistant, hist.Messages[1].Role)

	n, err := r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	require.Equal(t, 2, n)
}

func TestConversationEmptyHistory(t *testing.T) {
	r, _ := newTestRepo(t, time.Minute)
	hist, err := r.LoadHistory(context.Background(), "missing")
	require.NoError(t, err)
	require.Empty(t, hist.Messages)
}

func TestConversationRecentMessages(t *testing.T) {
	r, _ := newTestRepo(t, time.Minute)
	ctx := context.Background()
	for i := 0; i < 4; i++ {
		require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("q")))
		require.NoError(t, r.AddMessage(ctx, "c1", schema.AssistantMessage("a", nil)))
	}

	recent, err := r.RecentMessages(ctx, "c1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 4)

	none, err := r.RecentMessages(ctx, "c1", 0)
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestConversationTTLRefreshedOnWrite(t *testing.T) {
	r, mr := newTestRepo(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("q")))
	require.Greater(t, mr.TTL("mathchat:c1:messages"), time.Duration(0))
}

func TestConversationClearHistory(t *testing.T) {
	r, _ := newTestRepo(t, 0)
	ctx := context.Background()
	require.NoError(t, r.AddMessage(ctx, "c1", schema.UserMessage("q")))
	require.NoError(t, r.ClearHistory(ctx, "c1"))

	n, err := r.GetMessageCount(ctx, "c1")
	require.NoError(t, err)
	require.Zero(t, n)
}
