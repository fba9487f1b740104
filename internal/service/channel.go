package service

import "sync"

// ChannelRegistry tracks the member sets of live channels. Entries exist only
// while a session is IN_PROGRESS and are dropped on end or cancel.
type ChannelRegistry struct {
	mu       sync.Mutex
	channels map[string]map[string]struct{}
}

func NewChannelRegistry() *ChannelRegistry {
	return &ChannelRegistry{channels: make(map[string]map[string]struct{})}
}

// Open registers a new channel with the starting user as sole member.
func (r *ChannelRegistry) Open(channelID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.channels[channelID] = map[string]struct{}{userID: {}}
}

// Join adds a user to a channel's member set. Idempotent for existing members.
func (r *ChannelRegistry) Join(channelID, userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members, ok := r.channels[channelID]
	if !ok {
		members = make(map[string]struct{})
		r.channels[channelID] = members
	}
	members[userID] = struct{}{}
}

// Close retires a channel and its member set.
func (r *ChannelRegistry) Close(channelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.channels, channelID)
}

// Members returns the current member ids of a channel.
func (r *ChannelRegistry) Members(channelID string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make([]string, 0, len(r.channels[channelID]))
	for id := range r.channels[channelID] {
		members = append(members, id)
	}
	return members
}

// Active reports whether the channel is currently registered.
func (r *ChannelRegistry) Active(channelID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.channels[channelID]
	return ok
}
