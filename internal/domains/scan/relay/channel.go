package relay

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"comicvault-backend/internal/domains/scan/model"
)

const writeTimeout = 10 * time.Second

// Channel wraps một websocket connection với write mutex.
// Gorilla cho phép đúng một concurrent writer; relay và janitor
// có thể ghi cùng lúc nên phải serialize ở đây.
type Channel struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewChannel(conn *websocket.Conn) *Channel {
	return &Channel{conn: conn}
}

// Send marshals data vào envelope rồi ghi xuống socket
func (c *Channel) Send(event string, data interface{}) error {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return err
		}
		raw = b
	}

	return c.SendEnvelope(model.Envelope{Event: event, Data: raw})
}

// SendEnvelope ghi envelope đã có sẵn (relay path, không re-marshal payload)
func (c *Channel) SendEnvelope(env model.Envelope) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.conn.WriteJSON(env)
}

// ReadEnvelope blocks đến message tiếp theo
func (c *Channel) ReadEnvelope() (*model.Envelope, error) {
	var env model.Envelope
	if err := c.conn.ReadJSON(&env); err != nil {
		return nil, err
	}
	return &env, nil
}

func (c *Channel) Close() error {
	return c.conn.Close()
}
