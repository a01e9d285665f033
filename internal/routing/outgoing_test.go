package routing

import (
	"errors"
	"testing"

	"session-router/internal/host"
	"session-router/internal/stats"
)

// mockAdapter records sends and can fail selectively
type mockAdapter struct {
	channel  host.ChannelInfo
	sendFunc func(text string) error
	sent     []string
}

func (m *mockAdapter) Channel() host.ChannelInfo {
	return m.channel
}

func (m *mockAdapter) Send(text string) error {
	m.sent = append(m.sent, text)
	if m.sendFunc != nil {
		return m.sendFunc(text)
	}
	return nil
}

// mockRegistry maps sessions to adapters
type mockRegistry struct {
	adapters map[string][]host.ChannelAdapter
}

func (m *mockRegistry) AdaptersForSession(session string) []host.ChannelAdapter {
	return m.adapters[session]
}

func TestOutgoingDispatcher_FanOut(t *testing.T) {
	slack := &mockAdapter{channel: host.ChannelInfo{Type: "slack", ID: "C1"}}
	discord := &mockAdapter{channel: host.ChannelInfo{Type: "discord", ID: "D1"}}
	registry := &mockRegistry{adapters: map[string][]host.ChannelAdapter{
		"support": {slack, discord},
	}}
	cfg := RouterConfig{OutgoingRoutes: []OutgoingRoute{
		{SourceSession: "support"},
	}}
	recorder := stats.NewRecorder()
	d := NewOutgoingDispatcher(staticProvider(cfg), registry, recorder, nil)

	got := d.Dispatch(OutgoingMessage{Session: "support", Response: "done"})

	if got != "done" {
		t.Errorf("Dispatch() = %q, want response returned unchanged", got)
	}
	if len(slack.sent) != 1 || len(discord.sent) != 1 {
		t.Errorf("expected one send per adapter, got slack=%d discord=%d", len(slack.sent), len(discord.sent))
	}
	if snap := recorder.GetStats(); snap.OutgoingRouted != 2 {
		t.Errorf("OutgoingRouted = %d, want 2", snap.OutgoingRouted)
	}
}

func TestOutgoingDispatcher_SourceSessionFilter(t *testing.T) {
	slack := &mockAdapter{channel: host.ChannelInfo{Type: "slack", ID: "C1"}}
	registry := &mockRegistry{adapters: map[string][]host.ChannelAdapter{
		"billing": {slack},
	}}
	cfg := RouterConfig{OutgoingRoutes: []OutgoingRoute{
		{SourceSession: "support"},
	}}
	d := NewOutgoingDispatcher(staticProvider(cfg), registry, stats.NewRecorder(), nil)

	d.Dispatch(OutgoingMessage{Session: "billing", Response: "x"})

	if len(slack.sent) != 0 {
		t.Errorf("expected no sends for non-matching source session, got %d", len(slack.sent))
	}
}

func TestOutgoingDispatcher_ChannelConstraintsFilterAdapters(t *testing.T) {
	slack := &mockAdapter{channel: host.ChannelInfo{Type: "slack", ID: "C1"}}
	discord := &mockAdapter{channel: host.ChannelInfo{Type: "discord", ID: "D1"}}
	registry := &mockRegistry{adapters: map[string][]host.ChannelAdapter{
		"support": {slack, discord},
	}}
	cfg := RouterConfig{OutgoingRoutes: []OutgoingRoute{
		{ChannelType: "slack"},
	}}
	recorder := stats.NewRecorder()
	d := NewOutgoingDispatcher(staticProvider(cfg), registry, recorder, nil)

	d.Dispatch(OutgoingMessage{Session: "support", Response: "done"})

	if len(slack.sent) != 1 {
		t.Errorf("slack sends = %d, want 1", len(slack.sent))
	}
	if len(discord.sent) != 0 {
		t.Errorf("discord sends = %d, want 0", len(discord.sent))
	}
	if snap := recorder.GetStats(); snap.OutgoingRouted != 1 {
		t.Errorf("OutgoingRouted = %d, want 1", snap.OutgoingRouted)
	}
}

func TestOutgoingDispatcher_SendFailureIsolation(t *testing.T) {
	failing := &mockAdapter{
		channel:  host.ChannelInfo{Type: "slack", ID: "C1"},
		sendFunc: func(string) error { return errors.New("connection reset") },
	}
	healthy := &mockAdapter{channel: host.ChannelInfo{Type: "slack", ID: "C2"}}
	registry := &mockRegistry{adapters: map[string][]host.ChannelAdapter{
		"support": {failing, healthy},
	}}
	cfg := RouterConfig{OutgoingRoutes: []OutgoingRoute{{}}}
	recorder := stats.NewRecorder()
	d := NewOutgoingDispatcher(staticProvider(cfg), registry, recorder, nil)

	got := d.Dispatch(OutgoingMessage{Session: "support", Response: "done"})

	if got != "done" {
		t.Errorf("Dispatch() = %q, want response returned unchanged despite failure", got)
	}
	if len(healthy.sent) != 1 {
		t.Errorf("expected send to remaining adapter after failure, got %d", len(healthy.sent))
	}

	snap := recorder.GetStats()
	if snap.OutgoingRouted != 1 {
		t.Errorf("OutgoingRouted = %d, want 1", snap.OutgoingRouted)
	}
	if snap.Errors != 1 {
		t.Errorf("Errors = %d, want 1", snap.Errors)
	}
}

func TestOutgoingDispatcher_MissingRegistryCountsError(t *testing.T) {
	cfg := RouterConfig{OutgoingRoutes: []OutgoingRoute{{}}}
	recorder := stats.NewRecorder()
	d := NewOutgoingDispatcher(staticProvider(cfg), nil, recorder, nil)

	got := d.Dispatch(OutgoingMessage{Session: "support", Response: "done"})

	if got != "done" {
		t.Errorf("Dispatch() = %q, want response returned unchanged", got)
	}
	if snap := recorder.GetStats(); snap.Errors != 1 {
		t.Errorf("Errors = %d, want 1", snap.Errors)
	}
}

func TestOutgoingDispatcher_NoAdaptersForSession(t *testing.T) {
	registry := &mockRegistry{adapters: map[string][]host.ChannelAdapter{}}
	cfg := RouterConfig{OutgoingRoutes: []OutgoingRoute{{}}}
	recorder := stats.NewRecorder()
	d := NewOutgoingDispatcher(staticProvider(cfg), registry, recorder, nil)

	d.Dispatch(OutgoingMessage{Session: "support", Response: "done"})

	snap := recorder.GetStats()
	if snap.OutgoingRouted != 0 || snap.Errors != 0 {
		t.Errorf("expected no counts for a session with no adapters, got %+v", snap)
	}
}
