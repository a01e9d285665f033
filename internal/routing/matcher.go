package routing

// Matches reports whether an incoming route applies to a message.
//
// Each set field requires exact, case-sensitive equality with the
// corresponding message field; absent fields are wildcards. A channel
// constraint on the route never matches a message without channel info.
// Pure predicate: no side effects and no error cases.
func Matches(rule IncomingRoute, msg IncomingMessage) bool {
	if rule.SourceSession != "" && rule.SourceSession != msg.Session {
		return false
	}

	if rule.ChannelType != "" {
		if msg.Channel == nil || msg.Channel.Type != rule.ChannelType {
			return false
		}
	}

	if rule.ChannelID != "" {
		if msg.Channel == nil || msg.Channel.ID != rule.ChannelID {
			return false
		}
	}

	return true
}

// matchesAdapter reports whether an outgoing route's channel constraints
// accept a channel. Absent constraints match every adapter.
func matchesAdapter(rule OutgoingRoute, channelType, channelID string) bool {
	if rule.ChannelType != "" && rule.ChannelType != channelType {
		return false
	}
	if rule.ChannelID != "" && rule.ChannelID != channelID {
		return false
	}
	return true
}
