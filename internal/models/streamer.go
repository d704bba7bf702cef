package models

type PlatformInfo struct {
	PlatformName string `json:"platformName"`
	ChannelUrl   string `json:"channelUrl"`
}

// Streamer is one tracked entity as known to the client. IsActive is a pure
// client-side preference and never comes from the server; IsFollowed and
// FollowCount are server baselines refreshed on fetch.
type Streamer struct {
	Uuid            string         `json:"uuid"`
	Name            string         `json:"name"`
	ProfileImageUrl string         `json:"profileImageUrl,omitempty"`
	Platforms       []PlatformInfo `json:"platforms,omitempty"`
	FollowCount     int            `json:"followCount"`
	IsFollowed      bool           `json:"isFollowed"`
	IsActive        bool           `json:"isActive"`
}

func (s Streamer) Clone() Streamer {
	out := s
	if s.Platforms != nil {
		out.Platforms = make([]PlatformInfo, len(s.Platforms))
		copy(out.Platforms, s.Platforms)
	}
	return out
}

func cloneStreamers(in []Streamer) []Streamer {
	out := make([]Streamer, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
