package verify

import (
	"fmt"
	"strings"
)

// Config bounds the state space Explore enumerates, mirroring §4.9's "N
// clients (default 2) and per-client queue depth D (default 2)".
type Config struct {
	NumClients int
	QueueDepth int

	// LoginCandidates is the set of (userID, privileges) pairs a Login
	// action may pick. Bounding this set (rather than exploring every
	// u32/u64 combination) is what keeps the state space finite.
	LoginCandidates []loginCandidate
}

type loginCandidate struct {
	UserID     uint32
	Privileges uint64
}

// DefaultConfig returns §4.9's default scenario: two clients, queue depth
// two, and logins that can grant either the full default privilege set or
// none at all (enough to exercise both the success and rejection paths).
func DefaultConfig() Config {
	return Config{
		NumClients: 2,
		QueueDepth: 2,
		LoginCandidates: []loginCandidate{
			{UserID: 1, Privileges: DefaultUserPrivs},
			{UserID: 2, Privileges: NoPrivileges},
		},
	}
}

// Result is the outcome of a full exploration: every safety violation
// found (empty if none), and which reachability witnesses were observed
// on at least one explored path.
type Result struct {
	Violations     []string
	Witnesses      map[string]bool
	StatesExplored int
}

// Explore performs a breadth-first enumeration of every state reachable
// from the empty scenario under cfg, checking the safety invariants on
// each newly reached state and recording which reachability witnesses it
// exhibits. Expansion is deduplicated on (sessions, queues) — the only
// part of the state that influences which actions are valid and how they
// transition — so a bug that only manifests through the effect history
// is still caught the first time a given configuration is reached, while
// the explored graph stays finite.
func Explore(cfg Config) Result {
	initial := NewSystemState(cfg.NumClients, cfg.QueueDepth)

	result := Result{Witnesses: map[string]bool{
		WitnessRejectedUnauthenticated:       false,
		WitnessRejectedInsufficientPrivilege: false,
		WitnessPrivilegedCompleted:           false,
		WitnessQueueDepthAtLeastTwo:          false,
	}}

	visited := map[string]bool{configKey(initial): true}
	frontier := []SystemState{initial}
	result.StatesExplored = 1
	recordWitnesses(&result, initial)

	for len(frontier) > 0 {
		var next []SystemState
		for _, state := range frontier {
			for _, action := range generateActions(state, cfg) {
				if !IsValid(state, action) {
					continue
				}
				child := Apply(state, action)

				if violation := CheckSafety(child); violation != "" {
					result.Violations = append(result.Violations, violation)
				}
				recordWitnesses(&result, child)

				key := configKey(child)
				if visited[key] {
					continue
				}
				visited[key] = true
				result.StatesExplored++
				next = append(next, child)
			}
		}
		frontier = next
	}

	return result
}

func recordWitnesses(result *Result, state SystemState) {
	for name, ok := range Witnesses(state) {
		if ok {
			result.Witnesses[name] = true
		}
	}
}

// generateActions enumerates every action worth trying from state: a
// Login per login candidate, a Logout, a SendRequest per request type,
// and a DeliverRequest per queue position, for every client.
func generateActions(state SystemState, cfg Config) []Action {
	var actions []Action
	for client := 0; client < cfg.NumClients; client++ {
		for _, cand := range cfg.LoginCandidates {
			actions = append(actions, Action{
				Kind: ActionLogin, Client: client,
				UserID: cand.UserID, Privileges: cand.Privileges,
			})
		}
		actions = append(actions, Action{Kind: ActionLogout, Client: client})

		if len(state.Queues[client]) < cfg.QueueDepth {
			for _, req := range allRequestTypes() {
				actions = append(actions, Action{Kind: ActionSendRequest, Client: client, Request: req})
			}
		}
		for i := range state.Queues[client] {
			actions = append(actions, Action{Kind: ActionDeliverRequest, Client: client, QueueIndex: i})
		}
	}
	return actions
}

// configKey serializes the part of a SystemState that determines future
// transitions (sessions and queues, not the effect history) into a string
// suitable as a visited-set key.
func configKey(state SystemState) string {
	var b strings.Builder
	for _, s := range state.Sessions {
		fmt.Fprintf(&b, "s(%v,%d,%d)|", s.Authenticated, s.UserID, s.Privileges)
	}
	for _, q := range state.Queues {
		b.WriteString("q(")
		for _, m := range q {
			fmt.Fprintf(&b, "%d,", m.Request)
		}
		b.WriteString(")|")
	}
	return b.String()
}
