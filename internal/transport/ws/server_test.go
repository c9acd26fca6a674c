package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/AlexRizo/flowee-bodesa-backend/internal/entities"
	"github.com/AlexRizo/flowee-bodesa-backend/internal/realtime"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

type userStub struct {
	user *entities.User
	err  error
}

func (s *userStub) GetUser(_ context.Context, _ string) (*entities.User, error) {
	return s.user, s.err
}

func (s *userStub) CreateUser(_ context.Context, _ entities.Identity, _ entities.User) (*entities.User, error) {
	panic("not used")
}

func (s *userStub) ListUsers(_ context.Context, _ entities.Identity, _ int) ([]entities.User, int, error) {
	panic("not used")
}

func (s *userStub) DeleteUser(_ context.Context, _ entities.Identity, _ string) error {
	panic("not used")
}

func (s *userStub) MyBoards(_ context.Context, _ entities.Identity) ([]entities.Board, error) {
	panic("not used")
}

func signToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"id": userID}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func startServer(t *testing.T, hub *realtime.Hub, stub *userStub) *httptest.Server {
	t.Helper()
	srv := NewServer(zap.NewNop().Sugar(), hub, stub, testSecret, time.Minute)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func wsURL(ts *httptest.Server, token string) string {
	url := strings.Replace(ts.URL, "http://", "ws://", 1) + "/ws"
	if token != "" {
		url += "?token=" + token
	}
	return url
}

func readEvent(ctx context.Context, t *testing.T, conn *websocket.Conn) realtime.Event {
	t.Helper()
	var ev realtime.Event
	require.NoError(t, wsjson.Read(ctx, conn, &ev))
	return ev
}

func TestHandshakeRequiresToken(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop().Sugar(), 8)
	ts := startServer(t, hub, &userStub{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, wsURL(ts, ""), nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestHandshakeRejectsDisabledAccount(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop().Sugar(), 8)
	stub := &userStub{user: &entities.User{ID: "u1", Role: entities.RoleDesigner, Active: false}}
	ts := startServer(t, hub, stub)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	_, resp, err := websocket.Dial(ctx, wsURL(ts, signToken(t, "u1")), nil)
	require.Error(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserGroupAutoJoin(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop().Sugar(), 8)
	stub := &userStub{user: &entities.User{ID: "u1", Role: entities.RoleDesigner, Active: true}}
	ts := startServer(t, hub, stub)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(ts, signToken(t, "u1")), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	require.Equal(t, "ready", readEvent(ctx, t, conn).Name)

	hub.PublishUser("u1", realtime.Event{Name: realtime.EventNotification, Payload: "hello"})

	ev := readEvent(ctx, t, conn)
	require.Equal(t, realtime.EventNotification, ev.Name)
	require.Equal(t, "hello", ev.Payload)
}

func TestJoinBoardFrame(t *testing.T) {
	hub := realtime.NewHub(zap.NewNop().Sugar(), 8)
	stub := &userStub{user: &entities.User{ID: "u1", Role: entities.RolePublisher, Active: true}}
	ts := startServer(t, hub, stub)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, wsURL(ts, signToken(t, "u1")), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "done")

	require.Equal(t, "ready", readEvent(ctx, t, conn).Name)

	require.NoError(t, wsjson.Write(ctx, conn, clientFrame{Action: "join-board", Board: "promos"}))

	// The join frame is processed asynchronously; publish until the
	// subscription is live.
	received := make(chan realtime.Event, 1)
	go func() {
		var ev realtime.Event
		if err := wsjson.Read(ctx, conn, &ev); err == nil {
			received <- ev
		}
	}()

	var got realtime.Event
	require.Eventually(t, func() bool {
		hub.PublishBoard("promos", realtime.Event{Name: realtime.EventRequestCreated})
		select {
		case got = <-received:
			return true
		default:
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)

	require.Equal(t, realtime.EventRequestCreated, got.Name)
}
