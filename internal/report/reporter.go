// Package report builds the read-only reporting payloads consumed by
// external status surfaces. Every builder is a pure transformation from a
// rule set and a stats snapshot; nothing here mutates router state.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"session-router/internal/routing"
	"session-router/internal/stats"
)

// Status is the high-level health summary.
type Status struct {
	Enabled       bool `json:"enabled"`
	IncomingRules int  `json:"incomingRules"`
	OutgoingRules int  `json:"outgoingRules"`
}

// IncomingRuleView describes one configured incoming route.
type IncomingRuleView struct {
	Source      string   `json:"source"`
	Targets     []string `json:"targets"`
	ChannelType string   `json:"channelType,omitempty"`
	ChannelID   string   `json:"channelId,omitempty"`
	Summary     string   `json:"summary"`
}

// OutgoingRuleView describes one configured outgoing route.
type OutgoingRuleView struct {
	Source      string `json:"source"`
	ChannelType string `json:"channelType,omitempty"`
	ChannelID   string `json:"channelId,omitempty"`
	Summary     string `json:"summary"`
}

// RuleListing is the full rule inventory.
type RuleListing struct {
	Incoming []IncomingRuleView `json:"incoming"`
	Outgoing []OutgoingRuleView `json:"outgoing"`
}

// RouteHit is one ledger entry rendered for reporting.
type RouteHit struct {
	Route string `json:"route"`
	Count uint64 `json:"count"`
}

// Uptime describes how long the recorder has been collecting.
type Uptime struct {
	Millis    int64  `json:"millis"`
	Seconds   int64  `json:"seconds"`
	StartedAt string `json:"startedAt"`
	Human     string `json:"human"`
}

// Statistics is the full counters payload.
type Statistics struct {
	Routed         uint64     `json:"routed"`
	OutgoingRouted uint64     `json:"outgoingRouted"`
	Total          uint64     `json:"total"`
	Errors         uint64     `json:"errors"`
	RouteHits      []RouteHit `json:"routeHits"`
	Uptime         Uptime     `json:"uptime"`
}

// BuildStatus derives the status summary. The enabled flag is supplied by
// the caller; it reflects whether the surrounding subsystem is running.
func BuildStatus(enabled bool, cfg routing.RouterConfig) Status {
	return Status{
		Enabled:       enabled,
		IncomingRules: len(cfg.Routes),
		OutgoingRules: len(cfg.OutgoingRoutes),
	}
}

// BuildRuleListing renders every configured route with a human summary.
func BuildRuleListing(cfg routing.RouterConfig) RuleListing {
	listing := RuleListing{
		Incoming: make([]IncomingRuleView, 0, len(cfg.Routes)),
		Outgoing: make([]OutgoingRuleView, 0, len(cfg.OutgoingRoutes)),
	}

	for _, rule := range cfg.Routes {
		targets := rule.TargetSessions
		if targets == nil {
			targets = []string{}
		}
		listing.Incoming = append(listing.Incoming, IncomingRuleView{
			Source:      sourceLabel(rule.SourceSession),
			Targets:     targets,
			ChannelType: rule.ChannelType,
			ChannelID:   rule.ChannelID,
			Summary:     incomingSummary(rule),
		})
	}

	for _, rule := range cfg.OutgoingRoutes {
		listing.Outgoing = append(listing.Outgoing, OutgoingRuleView{
			Source:      sourceLabel(rule.SourceSession),
			ChannelType: rule.ChannelType,
			ChannelID:   rule.ChannelID,
			Summary:     outgoingSummary(rule),
		})
	}

	return listing
}

// BuildStatistics renders a stats snapshot, computing uptime relative to
// now. Route hits are sorted by key so payloads are deterministic.
func BuildStatistics(snap stats.Snapshot, now time.Time) Statistics {
	keys := make([]string, 0, len(snap.RouteHits))
	for k := range snap.RouteHits {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	hits := make([]RouteHit, 0, len(keys))
	for _, k := range keys {
		hits = append(hits, RouteHit{Route: k, Count: snap.RouteHits[k]})
	}

	elapsed := now.Sub(snap.StartedAt)
	if elapsed < 0 {
		elapsed = 0
	}

	return Statistics{
		Routed:         snap.MessagesRouted,
		OutgoingRouted: snap.OutgoingRouted,
		Total:          snap.MessagesRouted + snap.OutgoingRouted,
		Errors:         snap.Errors,
		RouteHits:      hits,
		Uptime: Uptime{
			Millis:    elapsed.Milliseconds(),
			Seconds:   int64(elapsed.Seconds()),
			StartedAt: snap.StartedAt.UTC().Format(time.RFC3339),
			Human:     FormatUptime(elapsed),
		},
	}
}

// FormatUptime renders an elapsed duration using the single largest
// applicable unit pair: "<d>d <h>h", "<h>h <m>m", "<m>m <s>s", or "<s>s".
func FormatUptime(elapsed time.Duration) string {
	totalSeconds := int64(elapsed.Seconds())
	if totalSeconds < 0 {
		totalSeconds = 0
	}

	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

func sourceLabel(source string) string {
	if source == "" {
		return "*"
	}
	return source
}

func incomingSummary(rule routing.IncomingRoute) string {
	targets := "(none)"
	if len(rule.TargetSessions) > 0 {
		targets = strings.Join(rule.TargetSessions, ", ")
	}

	summary := sourceLabel(rule.SourceSession) + " -> " + targets
	if rule.ChannelType != "" {
		summary += " [" + rule.ChannelType + "]"
	}
	return summary
}

func outgoingSummary(rule routing.OutgoingRoute) string {
	summary := sourceLabel(rule.SourceSession) + " -> channels"
	if rule.ChannelType != "" {
		summary += " [" + rule.ChannelType + "]"
	}
	if rule.ChannelID != "" {
		summary += " #" + rule.ChannelID
	}
	return summary
}
