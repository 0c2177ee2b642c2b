package webfrontend

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"net/http"

	"github.com/udisondev/la2go/internal/passwordverifier"
	"github.com/udisondev/la2go/internal/store"
)

const ticketLength = 16

// ServerListEntry describes one game server in the /server/list response.
type ServerListEntry struct {
	XMLName   xml.Name `xml:"server"`
	ID        int64    `xml:"id"`
	Category  string   `xml:"category"`
	RawName   string   `xml:"raw_name"`
	Name      string   `xml:"name"`
	Crowdness string   `xml:"crowdness"`
	Open      string   `xml:"open"`
	IP        string   `xml:"ip"`
	Port      int      `xml:"port"`
	Lang      int      `xml:"lang"`
	Popup     string   `xml:"popup"`
}

// ServerListResponse wraps the entries the client's server-selection
// screen expects.
type ServerListResponse struct {
	XMLName xml.Name          `xml:"server_list"`
	Servers []ServerListEntry `xml:"server"`
}

// authResponse is the JSON body returned by POST /auth.
type authResponse struct {
	Ticket string `json:"ticket"`
}

// handleServerList answers GET /server/list.<region>. Only one server is
// ever listed; region is accepted for client compatibility and otherwise
// only logged.
func (s *Server) handleServerList(w http.ResponseWriter, r *http.Request) {
	region := r.PathValue("region")

	category := "PVE"
	if s.cfg.Game.PVP {
		category = "PVP"
	}

	resp := ServerListResponse{
		Servers: []ServerListEntry{{
			ID:        1,
			Category:  category,
			RawName:   s.cfg.Game.ServerName,
			Name:      s.cfg.Game.ServerName,
			Crowdness: "None",
			Open:      "Recommended",
			IP:        s.cfg.Network.BindAddress,
			Port:      s.cfg.Network.GamePort,
			Lang:      1,
			Popup:     "",
		}},
	}

	body, err := xml.MarshalIndent(resp, "", "  ")
	if err != nil {
		s.log.Error("webfrontend: marshalling server list", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	s.log.Debug("webfrontend: server list requested", "region", region)
	w.Header().Set("Content-Type", "application/xml")
	w.Write([]byte(xml.Header))
	w.Write(body)
}

// handleAuth answers POST /auth. It reads a username/password form,
// verifies the account's password hash, and on success mints a fresh
// login ticket and returns it base64-encoded.
func (s *Server) handleAuth(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.log.Warn("webfrontend: malformed auth form", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	ticket, err := s.login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidLogin) {
			s.log.Info("webfrontend: invalid login", "username", username)
			s.writeAuthResponse(w, http.StatusUnauthorized, "")
			return
		}
		s.log.Error("webfrontend: login failed", "username", username, "error", err)
		s.writeAuthResponse(w, http.StatusInternalServerError, "")
		return
	}

	s.log.Info("webfrontend: account created an auth ticket", "username", username)
	s.writeAuthResponse(w, http.StatusOK, base64.StdEncoding.EncodeToString(ticket))
}

func (s *Server) writeAuthResponse(w http.ResponseWriter, status int, ticket string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(authResponse{Ticket: ticket}); err != nil {
		s.log.Error("webfrontend: encoding auth response", "error", err)
	}
}

// login verifies username/password against the account store and, on
// success, mints and stores a fresh ticket for LoginArbiter to redeem.
func (s *Server) login(ctx context.Context, username, password string) ([]byte, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidLogin
	}

	account, err := s.accounts.GetByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("looking up account %q: %w", username, err)
	}

	ok, err := s.verifier.Verify(password, account.PasswordHash)
	if err != nil {
		if errors.Is(err, passwordverifier.ErrPasswordHashWrongFormat) || errors.Is(err, passwordverifier.ErrUnsupportedPasswordHash) {
			return nil, ErrInvalidLogin
		}
		return nil, fmt.Errorf("verifying password for %q: %w", username, err)
	}
	if !ok {
		return nil, ErrInvalidLogin
	}

	value := make([]byte, ticketLength)
	if _, err := rand.Read(value); err != nil {
		return nil, fmt.Errorf("generating ticket: %w", err)
	}

	if err := s.tickets.Issue(ctx, account.ID, value); err != nil {
		return nil, fmt.Errorf("issuing ticket for account %d: %w", account.ID, err)
	}

	return value, nil
}
