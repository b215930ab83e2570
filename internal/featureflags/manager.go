// Package featureflags evaluates runtime feature toggles configured through
// the FEATURE_FLAGS string.
package featureflags

import (
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// Manager holds flags parsed from a comma-separated key=value list,
// e.g. "feed_ranking=on,profile_badges=25%,legacy_listing=off".
type Manager struct {
	flags map[string]string
}

// NewManager parses the configured flag list. Malformed pairs are skipped.
func NewManager(raw string) *Manager {
	out := make(map[string]string)

	for _, pair := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		key = normalize(key)
		value = normalize(value)
		if key == "" || value == "" {
			continue
		}
		out[key] = value
	}

	return &Manager{flags: out}
}

// Enabled evaluates one flag for one user. Values are on/true/1, off/false/0,
// or "N%" for a deterministic per-user rollout. Unknown flags are disabled.
func (m *Manager) Enabled(name string, userID uint) bool {
	if m == nil {
		return false
	}

	value, ok := m.flags[normalize(name)]
	if !ok {
		return false
	}

	switch value {
	case "on", "true", "1":
		return true
	case "off", "false", "0":
		return false
	}

	if strings.HasSuffix(value, "%") {
		pct, err := strconv.Atoi(strings.TrimSuffix(value, "%"))
		if err != nil || pct <= 0 {
			return false
		}
		if pct >= 100 {
			return true
		}
		// Partial rollouts need a stable identity to bucket on.
		if userID == 0 {
			return false
		}
		return rolloutBucket(name, userID) < pct
	}

	return false
}

// Raw returns a copy of the configured flag values.
func (m *Manager) Raw() map[string]string {
	out := make(map[string]string, len(m.flags))
	for k, v := range m.flags {
		out[k] = v
	}
	return out
}

// Snapshot evaluates every configured flag for one user.
func (m *Manager) Snapshot(userID uint) map[string]bool {
	out := make(map[string]bool, len(m.flags))
	for name := range m.flags {
		out[name] = m.Enabled(name, userID)
	}
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// rolloutBucket hashes (flag, user) into 0..99.
func rolloutBucket(name string, userID uint) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s:%d", normalize(name), userID)))
	return int(h.Sum32() % 100)
}
