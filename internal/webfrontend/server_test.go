package webfrontend

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/la2go/internal/config"
	"github.com/udisondev/la2go/internal/store"
)

type memAccountStore struct {
	mu      sync.Mutex
	byLogin map[string]store.Account
	nextID  int64
}

func newMemAccountStore() *memAccountStore {
	return &memAccountStore{byLogin: make(map[string]store.Account)}
}

func (m *memAccountStore) GetByID(ctx context.Context, id int64) (store.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byLogin {
		if a.ID == id {
			return a, nil
		}
	}
	return store.Account{}, store.ErrNotFound
}

func (m *memAccountStore) GetByLogin(ctx context.Context, login string) (store.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byLogin[login]
	if !ok {
		return store.Account{}, store.ErrNotFound
	}
	return a, nil
}

func (m *memAccountStore) Create(ctx context.Context, login, passwordHash string) (store.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	a := store.Account{ID: m.nextID, Login: login, PasswordHash: passwordHash}
	m.byLogin[login] = a
	return a, nil
}

type memTicketStore struct {
	mu      sync.Mutex
	issued  map[int64][]byte
}

func newMemTicketStore() *memTicketStore {
	return &memTicketStore{issued: make(map[int64][]byte)}
}

func (m *memTicketStore) Issue(ctx context.Context, accountID int64, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.issued[accountID] = append([]byte(nil), value...)
	return nil
}

func (m *memTicketStore) Redeem(ctx context.Context, value []byte, maxAge time.Duration) (store.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for accountID, v := range m.issued {
		if bytes.Equal(v, value) {
			return store.Ticket{AccountID: accountID, Value: value}, nil
		}
	}
	return store.Ticket{}, store.ErrNotFound
}

type plaintextVerifier struct{}

func (plaintextVerifier) Hash(password string) (string, error) { return password, nil }
func (plaintextVerifier) Verify(password, hash string) (bool, error) { return password == hash, nil }

func testServer(t *testing.T, accounts *memAccountStore, tickets *memTicketStore) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Game.ServerName = "Almetica"
	return NewServer(cfg, accounts, tickets, plaintextVerifier{}, slog.Default())
}

func startTestServer(t *testing.T, s *Server) (base string, stop func()) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		require.NoError(t, s.Serve(ctx, ln))
	}()

	return "http://" + ln.Addr().String(), func() {
		cancel()
		<-done
	}
}

func TestHandleServerListReturnsXML(t *testing.T) {
	s := testServer(t, newMemAccountStore(), newMemTicketStore())
	base, stop := startTestServer(t, s)
	defer stop()

	resp, err := http.Get(base + "/server/list.europe")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var list ServerListResponse
	require.NoError(t, xml.Unmarshal(body, &list))
	require.Len(t, list.Servers, 1)
	require.Equal(t, "Almetica", list.Servers[0].Name)
	require.Equal(t, "PVE", list.Servers[0].Category)
}

func TestHandleServerListReflectsPVPCategory(t *testing.T) {
	accounts := newMemAccountStore()
	tickets := newMemTicketStore()
	cfg := config.Default()
	cfg.Game.PVP = true
	s := NewServer(cfg, accounts, tickets, plaintextVerifier{}, slog.Default())
	base, stop := startTestServer(t, s)
	defer stop()

	resp, err := http.Get(base + "/server/list.europe")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var list ServerListResponse
	require.NoError(t, xml.Unmarshal(body, &list))
	require.Equal(t, "PVP", list.Servers[0].Category)
}

func TestHandleAuthSucceedsAndIssuesTicket(t *testing.T) {
	accounts := newMemAccountStore()
	tickets := newMemTicketStore()
	account, err := accounts.Create(context.Background(), "player1", "secret")
	require.NoError(t, err)

	s := testServer(t, accounts, tickets)
	base, stop := startTestServer(t, s)
	defer stop()

	form := url.Values{"username": {"player1"}, "password": {"secret"}}
	resp, err := http.PostForm(base+"/auth", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var auth authResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
	require.NotEmpty(t, auth.Ticket)

	tickets.mu.Lock()
	_, issued := tickets.issued[account.ID]
	tickets.mu.Unlock()
	require.True(t, issued)
}

func TestHandleAuthRejectsWrongPassword(t *testing.T) {
	accounts := newMemAccountStore()
	tickets := newMemTicketStore()
	_, err := accounts.Create(context.Background(), "player1", "secret")
	require.NoError(t, err)

	s := testServer(t, accounts, tickets)
	base, stop := startTestServer(t, s)
	defer stop()

	form := url.Values{"username": {"player1"}, "password": {"wrong"}}
	resp, err := http.PostForm(base+"/auth", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var auth authResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&auth))
	require.Empty(t, auth.Ticket)
}

func TestHandleAuthRejectsUnknownAccount(t *testing.T) {
	s := testServer(t, newMemAccountStore(), newMemTicketStore())
	base, stop := startTestServer(t, s)
	defer stop()

	form := url.Values{"username": {"ghost"}, "password": {"whatever"}}
	resp, err := http.PostForm(base+"/auth", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLoginRejectsEmptyCredentials(t *testing.T) {
	s := testServer(t, newMemAccountStore(), newMemTicketStore())

	_, err := s.login(context.Background(), "", "whatever")
	require.ErrorIs(t, err, ErrInvalidLogin)

	_, err = s.login(context.Background(), "player1", "")
	require.ErrorIs(t, err, ErrInvalidLogin)
}

func TestServeShutsDownOnContextCancellation(t *testing.T) {
	s := testServer(t, newMemAccountStore(), newMemTicketStore())
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.Serve(ctx, ln)
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}
