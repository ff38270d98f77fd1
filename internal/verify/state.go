// Package verify implements an abstract model of the session/privilege
// gate §4.4 enforces at runtime, and enumerates its reachable states to
// check the safety and reachability properties the dispatcher must
// preserve. It depends on nothing outside this package: the model mirrors
// internal/session and internal/privilege's gating logic without
// importing them, so a change to the real gate cannot silently desync the
// model from what it is meant to check.
package verify

// RequestType is an abstract class of dispatched transaction, standing in
// for the real wire transaction types the model does not need to name
// individually.
type RequestType int

const (
	RequestPing RequestType = iota
	RequestGetUserInfo
	RequestGetFileList
	RequestGetNewsCategories
	RequestPostNewsArticle
	RequestGetClientInfo
)

// Privilege bits used by the model, mirroring a subset of
// internal/privilege.Privileges without importing it.
const (
	NoPrivileges     uint64 = 0
	DownloadFile     uint64 = 1 << 0
	NewsReadArticle  uint64 = 1 << 1
	NewsPostArticle  uint64 = 1 << 2
	GetClientInfo    uint64 = 1 << 3
	DefaultUserPrivs        = DownloadFile | NewsReadArticle | NewsPostArticle | GetClientInfo
)

// allRequestTypes enumerates every RequestType the model exercises.
func allRequestTypes() []RequestType {
	return []RequestType{
		RequestPing,
		RequestGetUserInfo,
		RequestGetFileList,
		RequestGetNewsCategories,
		RequestPostNewsArticle,
		RequestGetClientInfo,
	}
}

// RequiredPrivilege returns the privilege bit r requires, or NoPrivileges
// if r only requires authentication (or nothing at all).
func (r RequestType) RequiredPrivilege() uint64 {
	switch r {
	case RequestGetFileList:
		return DownloadFile
	case RequestGetNewsCategories:
		return NewsReadArticle
	case RequestPostNewsArticle:
		return NewsPostArticle
	case RequestGetClientInfo:
		return GetClientInfo
	default:
		return NoPrivileges
	}
}

// RequiresAuthentication reports whether r may only be delivered to an
// authenticated session. Every request type requires authentication
// except Ping.
func (r RequestType) RequiresAuthentication() bool {
	return r != RequestPing
}

// IsPrivileged reports whether r requires a specific privilege bit beyond
// plain authentication.
func (r RequestType) IsPrivileged() bool {
	return r.RequiredPrivilege() != NoPrivileges
}

// ModelSession is one client's abstract authentication state.
type ModelSession struct {
	Authenticated bool
	UserID        uint32
	Privileges    uint64
}

// HasPrivilege reports whether the session is authenticated and holds
// every bit of required. An unauthenticated session never has any
// privileges, matching internal/session.Session.HasPrivilege.
func (s ModelSession) HasPrivilege(required uint64) bool {
	return s.Authenticated && s.Privileges&required == required
}

// ModelMessage is one request queued for later delivery to a client.
type ModelMessage struct {
	Request RequestType
}

// EffectKind distinguishes the observable outcome an Effect records.
type EffectKind int

const (
	EffectAuthenticated EffectKind = iota
	EffectLoggedOut
	EffectRejectedUnauthenticated
	EffectRejectedInsufficientPrivilege
	EffectPrivilegedCompleted
	EffectUnprivilegedCompleted
)

// Effect is one observable outcome appended to a SystemState's history as
// actions are applied.
type Effect struct {
	Kind              EffectKind
	Client            int
	UserID            uint32
	Request           RequestType
	RequiredPrivilege uint64
	SessionPrivileges uint64
}

// SystemState is the full abstract state the model explores: every
// client's session, its queued messages, and the effect history so far.
// SystemState holds slices, so it is not comparable; Explore's visited
// set is keyed by the string configKey builds from its sessions and
// queues.
type SystemState struct {
	Sessions   []ModelSession
	Queues     [][]ModelMessage
	Effects    []Effect
	QueueDepth int
}

// NewSystemState returns a SystemState with numClients fresh,
// unauthenticated sessions, empty queues, and the per-client queue depth
// bound D (§4.9) a SendRequest action must respect.
func NewSystemState(numClients, queueDepth int) SystemState {
	return SystemState{
		Sessions:   make([]ModelSession, numClients),
		Queues:     make([][]ModelMessage, numClients),
		QueueDepth: queueDepth,
	}
}

// Clone returns a deep copy, so Apply can mutate the copy without
// aliasing the state it was derived from.
func (s SystemState) Clone() SystemState {
	sessions := make([]ModelSession, len(s.Sessions))
	copy(sessions, s.Sessions)

	queues := make([][]ModelMessage, len(s.Queues))
	for i, q := range s.Queues {
		cq := make([]ModelMessage, len(q))
		copy(cq, q)
		queues[i] = cq
	}

	effects := make([]Effect, len(s.Effects))
	copy(effects, s.Effects)

	return SystemState{Sessions: sessions, Queues: queues, Effects: effects, QueueDepth: s.QueueDepth}
}

// FirstAuthIndex returns the index of client's first EffectAuthenticated
// in the history, or -1 if it never authenticated.
func (s SystemState) FirstAuthIndex(client int) int {
	for i, e := range s.Effects {
		if e.Kind == EffectAuthenticated && e.Client == client {
			return i
		}
	}
	return -1
}

// FirstPrivilegedIndex returns the index of client's first
// EffectPrivilegedCompleted in the history, or -1 if none occurred.
func (s SystemState) FirstPrivilegedIndex(client int) int {
	for i, e := range s.Effects {
		if e.Kind == EffectPrivilegedCompleted && e.Client == client {
			return i
		}
	}
	return -1
}

// HasEffectKind reports whether any effect in the history matches kind.
func (s SystemState) HasEffectKind(kind EffectKind) bool {
	for _, e := range s.Effects {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

// AnyQueueDepthAtLeast reports whether some client's queue holds at least
// n messages.
func (s SystemState) AnyQueueDepthAtLeast(n int) bool {
	for _, q := range s.Queues {
		if len(q) >= n {
			return true
		}
	}
	return false
}
