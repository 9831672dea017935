// Package registry holds the process-scoped mutable state of the server: the
// mapping from connection handle to user and the set of active matches.
//
// The registry is deliberately not synchronized. The session coordinator
// serializes every handler invocation under a single mutex, because
// matchmaking scans the full user set and must never observe a half-updated
// user.
package registry

import (
	"fmt"

	"github.com/pixelplay/tictactoe-server/internal/apperror"
	"github.com/pixelplay/tictactoe-server/internal/entity"
)

type Registry struct {
	users   map[string]*entity.User
	order   []string // insertion order, keeps matchmaking scans deterministic
	matches []*entity.Match
}

func New() *Registry {
	return &Registry{
		users: make(map[string]*entity.User),
	}
}

// Register creates and stores a fresh user for the handle. A duplicate handle
// is a contract violation on the transport side and is reported as an error
// rather than silently overwritten.
func (that *Registry) Register(handle string) (*entity.User, error) {
	if _, ok := that.users[handle]; ok {
		return nil, fmt.Errorf("%w: %s", apperror.ErrDuplicateHandle, handle)
	}

	user := entity.NewUser(handle)
	that.users[handle] = user
	that.order = append(that.order, handle)

	return user, nil
}

func (that *Registry) Get(handle string) (*entity.User, bool) {
	user, ok := that.users[handle]
	return user, ok
}

// Remove deletes the user for the handle. Removing an unknown handle is a
// no-op.
func (that *Registry) Remove(handle string) {
	if _, ok := that.users[handle]; !ok {
		return
	}

	delete(that.users, handle)
	for i, id := range that.order {
		if id == handle {
			that.order = append(that.order[:i], that.order[i+1:]...)
			break
		}
	}
}

// Users returns all registered users in insertion order.
func (that *Registry) Users() []*entity.User {
	users := make([]*entity.User, 0, len(that.order))
	for _, handle := range that.order {
		users = append(users, that.users[handle])
	}
	return users
}

func (that *Registry) AddMatch(match *entity.Match) {
	that.matches = append(that.matches, match)
}

// RemoveMatch detaches a match from the active set by identity. Unknown
// matches are ignored.
func (that *Registry) RemoveMatch(match *entity.Match) {
	for i, m := range that.matches {
		if m == match {
			that.matches = append(that.matches[:i], that.matches[i+1:]...)
			return
		}
	}
}

// MatchByUser returns the first active match referencing the handle.
func (that *Registry) MatchByUser(handle string) (*entity.Match, bool) {
	for _, match := range that.matches {
		if match.HasParticipant(handle) {
			return match, true
		}
	}
	return nil, false
}

// MatchesByUser returns every active match referencing the handle. A user
// is expected to sit in at most one; more than one is a cleanup case.
func (that *Registry) MatchesByUser(handle string) []*entity.Match {
	var matches []*entity.Match
	for _, match := range that.matches {
		if match.HasParticipant(handle) {
			matches = append(matches, match)
		}
	}
	return matches
}

// Stats is a read-only snapshot of the registry counts.
type Stats struct {
	TotalUsers     int `json:"total_users"`
	ActiveMatches  int `json:"active_matches"`
	UsersOnline    int `json:"users_online"`
	UsersPlaying   int `json:"users_playing"`
	UsersAvailable int `json:"users_available"`
}

func (that *Registry) Stats() Stats {
	stats := Stats{
		TotalUsers:    len(that.users),
		ActiveMatches: len(that.matches),
	}

	for _, user := range that.users {
		if user.Online {
			stats.UsersOnline++
		}
		if user.Playing {
			stats.UsersPlaying++
		}
		if user.Available {
			stats.UsersAvailable++
		}
	}

	return stats
}
