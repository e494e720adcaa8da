package notify

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/renthaus/enlistd/internal/platform/logger"
)

type Event string

const (
	EventPaymentReceived    Event = "PaymentReceived"
	EventAgreementCompleted Event = "AgreementCompleted"
)

// Message is the cross-process notification envelope. Channel is the owner
// email so a landlord's stream only sees their own enlistments.
type Message struct {
	Channel string `json:"channel"`
	Event   Event  `json:"event"`
	Data    any    `json:"data,omitempty"`
}

type Client struct {
	ID       uuid.UUID
	Owner    string
	Channels map[string]bool
	Outbound chan Message
	done     chan struct{}
}

// Hub fans notification messages out to connected SSE clients.
type Hub struct {
	mu            sync.RWMutex
	log           *logger.Logger
	subscriptions map[string]map[*Client]bool
	onDrop        func()
	onClients     func(n int)
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		log:           log.With("component", "NotifyHub"),
		subscriptions: make(map[string]map[*Client]bool),
	}
}

// SetInstrumentation wires optional drop/client-count callbacks.
func (hub *Hub) SetInstrumentation(onDrop func(), onClients func(n int)) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	hub.onDrop = onDrop
	hub.onClients = onClients
}

func (hub *Hub) NewClient(owner string) *Client {
	return &Client{
		ID:       uuid.New(),
		Owner:    owner,
		Channels: make(map[string]bool),
		Outbound: make(chan Message, 10),
		done:     make(chan struct{}),
	}
}

func (hub *Hub) AddChannel(client *Client, channel string) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	channel = strings.TrimSpace(channel)
	if channel == "" {
		return
	}
	client.Channels[channel] = true

	clients, exists := hub.subscriptions[channel]
	if !exists {
		clients = make(map[*Client]bool)
		hub.subscriptions[channel] = clients
	}
	clients[client] = true
	hub.notifyClientCount()

	hub.log.Debug("notify client subscribed", "client_id", client.ID, "channel", channel)
}

func (hub *Hub) RemoveClient(client *Client) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	for ch := range client.Channels {
		if subMap, ok := hub.subscriptions[ch]; ok {
			delete(subMap, client)
			if len(subMap) == 0 {
				delete(hub.subscriptions, ch)
			}
		}
	}
	client.Channels = make(map[string]bool)
	hub.notifyClientCount()
	hub.log.Debug("notify client unsubscribed", "client_id", client.ID)
}

func (hub *Hub) notifyClientCount() {
	if hub.onClients == nil {
		return
	}
	n := 0
	for _, clients := range hub.subscriptions {
		n += len(clients)
	}
	hub.onClients(n)
}

func (hub *Hub) Broadcast(msg Message) {
	hub.mu.RLock()
	defer hub.mu.RUnlock()

	if msg.Channel == "" {
		return
	}
	clientsMap, ok := hub.subscriptions[msg.Channel]
	if !ok {
		return
	}
	for c := range clientsMap {
		select {
		case c.Outbound <- msg:
		default:
			if hub.onDrop != nil {
				hub.onDrop()
			}
			hub.log.Warn("dropping notify message; outbound buffer full", "client_id", c.ID)
		}
	}
}

func (hub *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request, client *Client) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	heartbeat := time.NewTicker(15 * time.Second)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			hub.log.Debug("notify client context done", "client_id", client.ID, "err", ctx.Err())
			return
		case <-client.done:
			return
		case <-heartbeat.C:
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()
		case msg := <-client.Outbound:
			jsonBytes, err := json.Marshal(msg)
			if err != nil {
				hub.log.Warn("failed to marshal notify message", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", string(jsonBytes))
			flusher.Flush()
		}
	}
}

func (hub *Hub) CloseClient(client *Client) {
	close(client.done)
	hub.RemoveClient(client)
	close(client.Outbound)
}
