package realtime

import (
	"errors"
	"fmt"
	"sync"

	"mindhaven/internal/infra/logger"
)

// ErrHandshakeFailed is returned when a channel's accept step fails during
// registration. The channel is closed and never added to the registry.
var ErrHandshakeFailed = errors.New("connection handshake failed")

// PresenceListener is notified when a user's channel count transitions
// between zero and non-zero. Callbacks run while the registry lock is held
// so transitions are always delivered in the order they happen; they must
// not block and must not call back into the registry.
type PresenceListener interface {
	UserOnline(userID string)
	UserOffline(userID string)
}

// Registry is the process-wide mapping of user identity to that user's
// live channels. It is constructed once at server start, injected into
// every component that delivers payloads, and drained at shutdown. All
// operations are serialized by a single mutex so register, deregister and
// delivery never observe a torn channel set.
type Registry struct {
	Logger *logger.Logger

	mu          sync.Mutex
	connections map[string][]Channel
	listener    PresenceListener
}

func NewRegistry(logger *logger.Logger) *Registry {
	return &Registry{
		Logger:      logger,
		connections: make(map[string][]Channel),
	}
}

// SetPresenceListener wires the publisher in after construction. Must be
// called before the first Register.
func (r *Registry) SetPresenceListener(listener PresenceListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// Register performs the accept handshake and adds the channel to the
// user's set. On handshake failure the channel is closed and discarded.
func (r *Registry) Register(userID string, channel Channel) error {
	if err := channel.Accept(); err != nil {
		channel.Close()
		r.Logger.Error(fmt.Sprintf("Handshake failed for user %s: %v", userID, err))
		return fmt.Errorf("%w: %v", ErrHandshakeFailed, err)
	}

	r.mu.Lock()
	first := len(r.connections[userID]) == 0
	r.connections[userID] = append(r.connections[userID], channel)
	// The online notification happens under the lock. A concurrent
	// deregister of the last channel would otherwise race its offline
	// notification past this one and cancel the freshly started publisher.
	if first && r.listener != nil {
		r.listener.UserOnline(userID)
	}
	r.mu.Unlock()

	r.Logger.Info(fmt.Sprintf("New channel registered for user %s", userID))
	return nil
}

// Deregister removes the channel from the user's set. Removing a channel
// that is not registered is a no-op. Removing the last channel deletes the
// user's entry entirely; an empty set is never left behind.
func (r *Registry) Deregister(userID string, channel Channel) {
	r.mu.Lock()
	channels, ok := r.connections[userID]
	removed := false
	if ok {
		for i, candidate := range channels {
			if candidate == channel {
				r.connections[userID] = append(channels[:i], channels[i+1:]...)
				removed = true
				break
			}
		}
	}
	if removed && len(r.connections[userID]) == 0 {
		delete(r.connections, userID)
		if r.listener != nil {
			r.listener.UserOffline(userID)
		}
	}
	r.mu.Unlock()

	if removed {
		r.Logger.Info(fmt.Sprintf("Channel deregistered for user %s", userID))
	}
}

// Unicast delivers the payload to every channel currently registered for
// the user. A failing channel is closed and deregistered; delivery to the
// remaining channels continues. A user with no channels is a silent no-op.
func (r *Registry) Unicast(userID string, payload any) {
	r.mu.Lock()
	channels := make([]Channel, len(r.connections[userID]))
	copy(channels, r.connections[userID])
	r.mu.Unlock()

	for _, channel := range channels {
		if err := channel.Send(payload); err != nil {
			r.Logger.Warn(fmt.Sprintf("Delivery to a channel of user %s failed, dropping it: %v", userID, err))
			channel.Close()
			r.Deregister(userID, channel)
		}
	}
}

// Broadcast unicasts the payload to every registered user.
func (r *Registry) Broadcast(payload any) {
	r.mu.Lock()
	userIDs := make([]string, 0, len(r.connections))
	for userID := range r.connections {
		userIDs = append(userIDs, userID)
	}
	r.mu.Unlock()

	for _, userID := range userIDs {
		r.Unicast(userID, payload)
	}
}

// ChannelCount reports how many live channels one user has.
func (r *Registry) ChannelCount(userID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.connections[userID])
}

// Introspect returns a consistent snapshot of total channel count and
// distinct user count.
func (r *Registry) Introspect() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	channelCount := 0
	for _, channels := range r.connections {
		channelCount += len(channels)
	}
	return channelCount, len(r.connections)
}

// Drain closes every channel and empties the registry. Called once at
// shutdown; offline notifications fire for every drained user.
func (r *Registry) Drain() {
	r.mu.Lock()
	for userID, channels := range r.connections {
		for _, channel := range channels {
			channel.Close()
		}
		if r.listener != nil {
			r.listener.UserOffline(userID)
		}
	}
	r.connections = make(map[string][]Channel)
	r.mu.Unlock()

	r.Logger.Info("Connection registry drained")
}
