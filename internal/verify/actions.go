package verify

// ActionKind distinguishes the four events the model can take.
type ActionKind int

const (
	ActionLogin ActionKind = iota
	ActionLogout
	ActionSendRequest
	ActionDeliverRequest
)

// Action is one discrete event explored by Enumerate. Only the fields
// relevant to Kind are meaningful.
type Action struct {
	Kind       ActionKind
	Client     int
	UserID     uint32
	Privileges uint64
	Request    RequestType
	QueueIndex int
}

// IsValid reports whether action may be taken from state, matching the
// preconditions of §4.9: Login requires the client not already
// authenticated, Logout requires the opposite, SendRequest{client,type}
// is valid iff |queue| < D (state.QueueDepth), and DeliverRequest
// requires a message at QueueIndex.
func IsValid(state SystemState, action Action) bool {
	if action.Client < 0 || action.Client >= len(state.Sessions) {
		return false
	}
	switch action.Kind {
	case ActionLogin:
		return !state.Sessions[action.Client].Authenticated
	case ActionLogout:
		return state.Sessions[action.Client].Authenticated
	case ActionSendRequest:
		return len(state.Queues[action.Client]) < state.QueueDepth
	case ActionDeliverRequest:
		return action.QueueIndex >= 0 && action.QueueIndex < len(state.Queues[action.Client])
	default:
		return false
	}
}

// Apply is the pure transition function of §4.9: it returns the state
// resulting from taking action against state, leaving state itself
// untouched. Calling Apply on an invalid action is a no-op clone.
func Apply(state SystemState, action Action) SystemState {
	next := state.Clone()
	if !IsValid(state, action) {
		return next
	}

	switch action.Kind {
	case ActionLogin:
		applyLogin(&next, action.Client, action.UserID, action.Privileges)
	case ActionLogout:
		applyLogout(&next, action.Client)
	case ActionSendRequest:
		applySendRequest(&next, action.Client, action.Request)
	case ActionDeliverRequest:
		applyDeliverRequest(&next, action.Client, action.QueueIndex)
	}
	return next
}

func applyLogin(state *SystemState, client int, userID uint32, privileges uint64) {
	state.Sessions[client] = ModelSession{Authenticated: true, UserID: userID, Privileges: privileges}
	state.Effects = append(state.Effects, Effect{Kind: EffectAuthenticated, Client: client, UserID: userID})
}

func applyLogout(state *SystemState, client int) {
	state.Sessions[client] = ModelSession{}
	state.Effects = append(state.Effects, Effect{Kind: EffectLoggedOut, Client: client})
}

func applySendRequest(state *SystemState, client int, request RequestType) {
	state.Queues[client] = append(state.Queues[client], ModelMessage{Request: request})
}

// applyDeliverRequest removes the message at queueIndex and applies the
// same gate rules as the real dispatcher's precondition gate (§4.4):
// authentication first, then the required privilege bit, recording the
// outcome as an Effect.
func applyDeliverRequest(state *SystemState, client, queueIndex int) {
	queue := state.Queues[client]
	message := queue[queueIndex]
	state.Queues[client] = append(append([]ModelMessage{}, queue[:queueIndex]...), queue[queueIndex+1:]...)

	session := state.Sessions[client]
	request := message.Request

	if request.RequiresAuthentication() && !session.Authenticated {
		state.Effects = append(state.Effects, Effect{
			Kind: EffectRejectedUnauthenticated, Client: client, Request: request,
		})
		return
	}

	required := request.RequiredPrivilege()
	if required != NoPrivileges && !session.HasPrivilege(required) {
		state.Effects = append(state.Effects, Effect{
			Kind: EffectRejectedInsufficientPrivilege, Client: client,
			Request: request, RequiredPrivilege: required,
		})
		return
	}

	if request.IsPrivileged() {
		state.Effects = append(state.Effects, Effect{
			Kind: EffectPrivilegedCompleted, Client: client, Request: request,
			RequiredPrivilege: required, SessionPrivileges: session.Privileges,
		})
		return
	}

	state.Effects = append(state.Effects, Effect{
		Kind: EffectUnprivilegedCompleted, Client: client, Request: request,
	})
}
