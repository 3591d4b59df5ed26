package game

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"baduk/internal/domain/game"
)

const (
	sendBuffer = 16
	writeWait  = 10 * time.Second
)

type subscriber struct {
	conn *websocket.Conn
	send chan any
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.send) })
}

// Hub fans committed game updates out to websocket subscribers.
type Hub struct {
	log  *zap.SugaredLogger
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func NewHub(log *zap.SugaredLogger) *Hub {
	return &Hub{
		log:  log,
		subs: make(map[string]map[*subscriber]struct{}),
	}
}

// Publish queues update for every subscriber of key. A subscriber whose
// queue is full is dropped rather than stalling the game.
func (h *Hub) Publish(key string, update game.GameUpdate) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[key] {
		select {
		case sub.send <- update:
		default:
			h.log.Warnf("game %s: dropping slow subscriber %s", key, sub.conn.RemoteAddr())
			delete(h.subs[key], sub)
			sub.close()
		}
	}
}

// subscribe registers conn for key and queues the snapshot as its first
// message. The snapshot is taken under the hub lock, so no update committed
// afterwards can be missed; at worst the newest view arrives twice.
func (h *Hub) subscribe(key string, conn *websocket.Conn, snapshot func() (game.GameUpdate, error)) (*subscriber, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	initial, err := snapshot()
	if err != nil {
		return nil, err
	}
	sub := &subscriber{conn: conn, send: make(chan any, sendBuffer)}
	sub.send <- initial
	if h.subs[key] == nil {
		h.subs[key] = make(map[*subscriber]struct{})
	}
	h.subs[key][sub] = struct{}{}
	return sub, nil
}

func (h *Hub) unsubscribe(key string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[key][sub]; ok {
		delete(h.subs[key], sub)
		sub.close()
	}
	if len(h.subs[key]) == 0 {
		delete(h.subs, key)
	}
}

// reply queues a message for a single subscriber, used for command errors.
func (h *Hub) reply(key string, sub *subscriber, msg any) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[key][sub]; !ok {
		return
	}
	select {
	case sub.send <- msg:
	default:
	}
}

// Subscribers returns how many connections follow key.
func (h *Hub) Subscribers(key string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[key])
}

// writeLoop is the only writer on sub.conn.
func writeLoop(log *zap.SugaredLogger, sub *subscriber) {
	for msg := range sub.send {
		_ = sub.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := sub.conn.WriteJSON(msg); err != nil {
			log.Warnf("websocket write to %s failed: %v", sub.conn.RemoteAddr(), err)
			break
		}
	}
	_ = sub.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	sub.conn.Close()
}
