package global

import (
	"context"
	"time"

	"github.com/udisondev/la2go/internal/bus"
	"github.com/udisondev/la2go/internal/protocol/packet"
)

func (w *World) connectionManagerTick() {
	w.handleRegisterConnections()
	w.handleCheckVersion()
	w.handleLoginArbiter()
	w.handlePong()
	w.pingSweep()

	w.inbox.registerConnections = w.inbox.registerConnections[:0]
	w.inbox.checkVersion = w.inbox.checkVersion[:0]
	w.inbox.loginArbiter = w.inbox.loginArbiter[:0]
	w.inbox.pong = w.inbox.pong[:0]
}

func (w *World) handleRegisterConnections() {
	for _, m := range w.inbox.registerConnections {
		id := w.ids.new()
		w.connections[id] = &Connection{
			ID:          id,
			BackChannel: m.ConnectionChannel,
			CreatedAt:   time.Now(),
			LastPong:    time.Now(),
		}
		m.ConnectionChannel <- bus.RegisterConnectionFinished{ConnectionGlobalWorldID: id}
	}
}

func (w *World) handleCheckVersion() {
	for _, m := range w.inbox.checkVersion {
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		if len(m.Packet.Version) != 2 {
			w.send(c, bus.ResponseCheckVersion{ConnectionGlobalWorldID: c.ID, Packet: packet.SCheckVersion{OK: false}})
			w.markForDeletion(c.ID)
			continue
		}
		c.IsVersionChecked = true
		w.send(c, bus.ResponseCheckVersion{ConnectionGlobalWorldID: c.ID, Packet: packet.SCheckVersion{OK: true}})
	}
}

func (w *World) handleLoginArbiter() {
	for _, m := range w.inbox.loginArbiter {
		c, ok := w.connections[m.ConnectionGlobalWorldID]
		if !ok {
			continue
		}
		if err := w.tryLoginArbiter(c, m.Packet); err != nil {
			w.log.Info("login arbiter failed", "connection", c.ID, "error", err)
			w.send(c, bus.ResponseLoginArbiter{
				ConnectionGlobalWorldID: c.ID,
				Packet:                  packet.SLoginArbiter{Success: false, Status: 0},
			})
			w.markForDeletion(c.ID)
		}
	}
}

func (w *World) tryLoginArbiter(c *Connection, p packet.CLoginArbiter) error {
	if len(p.Ticket) == 0 {
		return errEmptyTicket
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	maxAge := time.Duration(w.cfg.TicketMaxAge) * time.Second
	ticket, err := w.tickets.Redeem(ctx, p.Ticket, maxAge)
	if err != nil {
		return err
	}

	if _, taken := w.accountIndex[ticket.AccountID]; taken {
		return errAccountAlreadyConnected
	}

	account, err := w.accounts.GetByID(ctx, ticket.AccountID)
	if err != nil {
		return err
	}

	c.Account = &Account{AccountID: account.ID, Region: p.Region}
	w.accountIndex[account.ID] = c.ID

	if !c.IsVersionChecked {
		w.send(c, bus.ResponseCheckVersion{ConnectionGlobalWorldID: c.ID, Packet: packet.SCheckVersion{OK: true}})
		c.IsVersionChecked = true
	}
	w.send(c, bus.ResponseLoadingScreenControlInfo{ConnectionGlobalWorldID: c.ID, Packet: packet.SLoadingScreenControlInfo{CustomScreenEnabled: false}})
	w.send(c, bus.ResponseRemainPlayTime{ConnectionGlobalWorldID: c.ID, Packet: packet.SRemainPlayTime{AccountType: 6, MinutesLeft: 0}})
	w.send(c, bus.ResponseLoginArbiter{
		ConnectionGlobalWorldID: c.ID,
		AccountID:               account.ID,
		Packet: packet.SLoginArbiter{
			Success:     true,
			Status:      65538,
			Region:      p.Region,
			PvpDisabled: !w.cfg.PVP,
		},
	})
	w.send(c, bus.ResponseLoginAccountInfo{
		ConnectionGlobalWorldID: c.ID,
		Packet: packet.SLoginAccountInfo{
			ServerName:  w.cfg.ServerName,
			AccountID:   account.ID,
			IntegrityIV: 0,
		},
	})
	return nil
}

func (w *World) handlePong() {
	for _, m := range w.inbox.pong {
		if c, ok := w.connections[m.ConnectionGlobalWorldID]; ok {
			c.LastPong = time.Now()
			c.WaitingForPong = false
		}
	}
}

func (w *World) pingSweep() {
	now := time.Now()
	for _, c := range w.connections {
		if c.MarkedForDeletion {
			continue
		}
		if c.Account == nil {
			if now.Sub(c.CreatedAt) >= time.Duration(w.cfg.UnauthenticatedGrace)*time.Second {
				w.markForDeletion(c.ID)
			}
			continue
		}

		age := now.Sub(c.LastPong)
		pongTimeout := time.Duration(w.cfg.PongTimeout) * time.Second
		pingInterval := time.Duration(w.cfg.PingInterval) * time.Second

		switch {
		case age >= pongTimeout:
			w.markForDeletion(c.ID)
		case age >= pingInterval && !c.WaitingForPong:
			w.send(c, bus.ResponsePing{ConnectionGlobalWorldID: c.ID, Packet: packet.SPing{}})
			c.WaitingForPong = true
		}
	}
}
