package feedws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/saeid-a/FitJourney/internal/catalog"
	"github.com/saeid-a/FitJourney/internal/models"
	"github.com/saeid-a/FitJourney/internal/onboarding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeConn struct {
	incoming  chan []byte
	written   chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		incoming: make(chan []byte, 8),
		written:  make(chan []byte, 64),
		closed:   make(chan struct{}),
	}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case p := <-f.incoming:
		return 1, p, nil
	case <-f.closed:
		return 0, nil, errors.New("connection closed")
	}
}

func (f *fakeConn) WriteMessage(_ int, data []byte) error {
	select {
	case <-f.closed:
		return errors.New("connection closed")
	default:
	}
	f.written <- data
	return nil
}

func (f *fakeConn) Close() error {
	f.closeOnce.Do(func() { close(f.closed) })
	return nil
}

type staticSource []models.CommunityPost

func (s staticSource) Posts() []models.CommunityPost { return s }

func startHub(t *testing.T, source postsSource) (*Hub, context.CancelFunc) {
	t.Helper()
	hub := NewHub(source, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.done
	})
	return hub, cancel
}

func decode(t *testing.T, payload []byte) Message {
	t.Helper()
	var m Message
	require.NoError(t, json.Unmarshal(payload, &m))
	return m
}

func receive(t *testing.T, ch <-chan []byte) []byte {
	t.Helper()
	select {
	case p, ok := <-ch:
		require.True(t, ok, "channel closed")
		return p
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestRegisterSendsCurrentFeed(t *testing.T) {
	hub, _ := startHub(t, staticSource(onboarding.SeedPosts()))
	client := NewClient(hub, newFakeConn())
	hub.Register(client)

	msg := decode(t, receive(t, client.send))
	assert.Equal(t, MessagePosts, msg.Type)
	require.Len(t, msg.Posts, 3)
	assert.Equal(t, "Carlos Silva", msg.Posts[0].Author)
}

func TestOnChangeBroadcastsOnlyFeedChanges(t *testing.T) {
	hub, _ := startHub(t, staticSource(nil))
	a := NewClient(hub, newFakeConn())
	b := NewClient(hub, newFakeConn())
	hub.Register(a)
	hub.Register(b)
	receive(t, a.send)
	receive(t, b.send)

	hub.OnChange(onboarding.Change{Kind: onboarding.ProfileChanged, Profile: models.UserProfile{Name: "Ana"}})
	hub.OnChange(onboarding.Change{Kind: onboarding.ProfileReset})
	assert.Zero(t, len(hub.broadcast))

	posts := []models.CommunityPost{{ID: "p1", Author: "Ana", Body: "hello", CreatedLabel: "now"}}
	hub.OnChange(onboarding.Change{Kind: onboarding.PostsChanged, Posts: posts})

	for _, client := range []*Client{a, b} {
		msg := decode(t, receive(t, client.send))
		assert.Equal(t, MessagePosts, msg.Type)
		assert.Equal(t, posts, msg.Posts)
	}
}

func TestSlowClientIsDropped(t *testing.T) {
	hub, _ := startHub(t, staticSource(nil))
	client := NewClient(hub, newFakeConn())
	hub.Register(client)

	for i := 0; i < 40; i++ {
		hub.OnChange(onboarding.Change{Kind: onboarding.PostsChanged})
	}
	require.Eventually(t, func() bool { return len(hub.broadcast) == 0 }, 2*time.Second, time.Millisecond)
	// Run takes the next register only after finishing the last broadcast.
	hub.Register(NewClient(hub, newFakeConn()))

	received := 0
	for range client.send {
		received++
	}
	assert.Equal(t, cap(client.send), received)
}

func TestFullBroadcastQueueKeepsNewestSnapshot(t *testing.T) {
	// Not running, so nothing drains the queue.
	hub := NewHub(staticSource(nil), zap.NewNop())

	total := cap(hub.broadcast) + 5
	for i := 0; i < total; i++ {
		posts := []models.CommunityPost{{ID: fmt.Sprintf("p%d", i), Author: "Ana", Body: "hello", CreatedLabel: "now"}}
		hub.OnChange(onboarding.Change{Kind: onboarding.PostsChanged, Posts: posts})
	}
	require.Equal(t, cap(hub.broadcast), len(hub.broadcast))

	var last Message
	for len(hub.broadcast) > 0 {
		last = decode(t, <-hub.broadcast)
	}
	require.Len(t, last.Posts, 1)
	assert.Equal(t, fmt.Sprintf("p%d", total-1), last.Posts[0].ID)
}

func TestShutdownClosesClients(t *testing.T) {
	hub, cancel := startHub(t, staticSource(nil))
	client := NewClient(hub, newFakeConn())
	hub.Register(client)
	receive(t, client.send)

	cancel()
	<-hub.done

	_, ok := <-client.send
	assert.False(t, ok)

	late := NewClient(hub, newFakeConn())
	hub.Register(late)
	_, ok = <-late.send
	assert.False(t, ok)
}

func TestPumpsApplyFeedActions(t *testing.T) {
	ctrl := onboarding.New(catalog.MustDefault(), onboarding.DefaultState())
	defer ctrl.Close()
	hub, _ := startHub(t, ctrl)
	ctrl.Subscribe(hub)

	fc := newFakeConn()
	client := NewClient(hub, fc)
	hub.Register(client)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		client.WritePump()
	}()
	go func() {
		defer wg.Done()
		client.ReadPump(ctrl)
	}()

	initial := decode(t, receive(t, fc.written))
	require.Equal(t, MessagePosts, initial.Type)
	require.Equal(t, 24, initial.Posts[0].LikeCount)

	fc.incoming <- []byte(`{"type":"like","post_id":"1"}`)
	fc.incoming <- []byte(`{"type":"dance"}`)

	var sawLike, sawError bool
	for !(sawLike && sawError) {
		msg := decode(t, receive(t, fc.written))
		switch msg.Type {
		case MessagePosts:
			assert.Equal(t, 25, msg.Posts[0].LikeCount)
			sawLike = true
		case MessageError:
			assert.Equal(t, "unsupported message type", msg.Error)
			sawError = true
		}
	}
	assert.Equal(t, 25, ctrl.Posts()[0].LikeCount)

	require.NoError(t, fc.Close())
	wg.Wait()
}
