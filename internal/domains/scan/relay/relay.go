package relay

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"comicvault-backend/internal/domains/scan/model"
	"comicvault-backend/internal/domains/scan/session"
)

const (
	// Thời gian chờ message đầu tiên (role handshake)
	handshakeTimeout = 15 * time.Second

	janitorInterval = time.Minute
)

// Relay pairs desktop và phone sockets qua scan sessions.
// Desktop mở session (hiện QR), phone join bằng session ID,
// barcode-scanned events được forward nguyên văn sang desktop.
type Relay struct {
	store      session.Store
	sessionTTL time.Duration
	upgrader   websocket.Upgrader

	mu    sync.Mutex
	pairs map[string]*pair

	done chan struct{}
	once sync.Once
}

type pair struct {
	desktop *Channel
	phone   *Channel
}

func NewRelay(store session.Store, sessionTTL time.Duration) *Relay {
	r := &Relay{
		store:      store,
		sessionTTL: sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Phone và desktop ở origin khác nhau (QR flow)
			CheckOrigin: func(*http.Request) bool { return true },
		},
		pairs: make(map[string]*pair),
		done:  make(chan struct{}),
	}

	go r.janitor()
	return r
}

// Shutdown stops the janitor và đóng mọi socket đang mở
func (r *Relay) Shutdown() {
	r.once.Do(func() { close(r.done) })

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.pairs {
		if p.desktop != nil {
			p.desktop.Close()
		}
		if p.phone != nil {
			p.phone.Close()
		}
		delete(r.pairs, id)
	}
}

// HandleConnection - GET /ws/scan
// Message đầu tiên quyết định role: desktop-connect hoặc phone-connect
func (r *Relay) HandleConnection(c *gin.Context) {
	conn, err := r.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("[Scan] Websocket upgrade failed")
		return
	}

	ch := NewChannel(conn)

	conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	env, err := ch.ReadEnvelope()
	if err != nil {
		ch.Close()
		return
	}
	conn.SetReadDeadline(time.Time{})

	ctx := c.Request.Context()

	switch env.Event {
	case model.EventDesktopConnect:
		r.serveDesktop(ctx, ch)
	case model.EventPhoneConnect:
		r.servePhone(ctx, ch, env.Data)
	default:
		log.Warn().Str("event", env.Event).Msg("[Scan] Unknown handshake event")
		ch.Close()
	}
}

func (r *Relay) serveDesktop(ctx context.Context, ch *Channel) {
	sess, err := r.store.Create(ctx)
	if err != nil {
		log.Error().Err(err).Msg("[Scan] Failed to create session")
		ch.Close()
		return
	}

	r.mu.Lock()
	r.pairs[sess.ID] = &pair{desktop: ch}
	r.mu.Unlock()

	if err := ch.Send(model.EventSessionCreated, model.SessionCreatedPayload{SessionID: sess.ID}); err != nil {
		r.endSession(ctx, sess.ID, ch)
		return
	}

	log.Info().Str("session_id", sess.ID).Msg("[Scan] Desktop connected")

	// Desktop chỉ nhận; mọi inbound message bị bỏ qua.
	// Read loop tồn tại để phát hiện disconnect.
	for {
		if _, err := ch.ReadEnvelope(); err != nil {
			break
		}
	}

	r.endSession(ctx, sess.ID, ch)
}

func (r *Relay) servePhone(ctx context.Context, ch *Channel, data json.RawMessage) {
	var payload model.PhoneConnectPayload
	if err := json.Unmarshal(data, &payload); err != nil || payload.SessionID == "" {
		ch.Send(model.EventSessionUnavailable, nil)
		ch.Close()
		return
	}

	sessionID := payload.SessionID

	if err := r.store.BindPhone(ctx, sessionID); err != nil {
		log.Warn().Err(err).Str("session_id", sessionID).Msg("[Scan] Phone join rejected")
		ch.Send(model.EventSessionUnavailable, nil)
		ch.Close()
		return
	}

	r.mu.Lock()
	p, ok := r.pairs[sessionID]
	if ok {
		p.phone = ch
	}
	r.mu.Unlock()

	if !ok {
		// Store biết session nhưng desktop socket đã biến mất
		ch.Send(model.EventSessionUnavailable, nil)
		ch.Close()
		r.store.End(ctx, sessionID)
		return
	}

	if desktop := r.desktopFor(sessionID); desktop != nil {
		desktop.Send(model.EventPhoneConnected, nil)
	}

	log.Info().Str("session_id", sessionID).Msg("[Scan] Phone paired")

	for {
		env, err := ch.ReadEnvelope()
		if err != nil {
			break
		}

		if env.Event != model.EventBarcodeScanned {
			continue
		}

		var scanned model.BarcodeScannedPayload
		if err := json.Unmarshal(env.Data, &scanned); err != nil {
			log.Warn().Err(err).Msg("[Scan] Malformed barcode-scanned payload")
			continue
		}
		// Payload phải khớp session của chính socket này
		if scanned.SessionID != sessionID {
			log.Warn().
				Str("session_id", sessionID).
				Str("claimed", scanned.SessionID).
				Msg("[Scan] Session mismatch, event dropped")
			continue
		}

		desktop := r.desktopFor(sessionID)
		if desktop == nil {
			break
		}
		if err := desktop.SendEnvelope(*env); err != nil {
			log.Warn().Err(err).Str("session_id", sessionID).Msg("[Scan] Relay to desktop failed")
			break
		}
	}

	r.endSession(ctx, sessionID, ch)
}

func (r *Relay) desktopFor(sessionID string) *Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.pairs[sessionID]; ok {
		return p.desktop
	}
	return nil
}

// endSession tears down the pairing from either side.
// Peer còn lại nhận peer-disconnected rồi bị đóng socket.
func (r *Relay) endSession(ctx context.Context, sessionID string, closing *Channel) {
	r.mu.Lock()
	p, ok := r.pairs[sessionID]
	if ok {
		delete(r.pairs, sessionID)
	}
	r.mu.Unlock()

	r.store.End(ctx, sessionID)
	closing.Close()

	if !ok {
		return
	}

	for _, peer := range []*Channel{p.desktop, p.phone} {
		if peer == nil || peer == closing {
			continue
		}
		peer.Send(model.EventPeerDisconnected, nil)
		peer.Close()
	}

	log.Info().Str("session_id", sessionID).Msg("[Scan] Session ended")
}

// janitor sweeps Idle sessions quá TTL (desktop mở QR rồi bỏ đi)
func (r *Relay) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			cutoff := time.Now().UTC().Add(-r.sessionTTL)
			swept, err := r.store.SweepIdle(context.Background(), cutoff)
			if err != nil {
				log.Error().Err(err).Msg("[Scan] Session sweep failed")
				continue
			}

			for _, id := range swept {
				r.mu.Lock()
				p, ok := r.pairs[id]
				if ok {
					delete(r.pairs, id)
				}
				r.mu.Unlock()

				if ok && p.desktop != nil {
					p.desktop.Close()
				}
			}

			if len(swept) > 0 {
				log.Info().Int("count", len(swept)).Msg("[Scan] Swept stale sessions")
			}
		}
	}
}
