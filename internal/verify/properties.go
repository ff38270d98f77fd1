package verify

// AuthPrecedesPrivilegedEffects checks S1/S3: every client's first
// PrivilegedEffectCompleted, if any, has a strictly later history index
// than that client's first Authenticated.
func AuthPrecedesPrivilegedEffects(state SystemState) bool {
	for client := range state.Sessions {
		privIdx := state.FirstPrivilegedIndex(client)
		if privIdx == -1 {
			continue
		}
		authIdx := state.FirstAuthIndex(client)
		if authIdx == -1 || authIdx >= privIdx {
			return false
		}
	}
	return true
}

// PrivilegedEffectsHoldRequiredPrivilege checks S2: for every
// PrivilegedEffectCompleted, the recorded session privileges actually
// contain the privilege bit the request required.
func PrivilegedEffectsHoldRequiredPrivilege(state SystemState) bool {
	for _, e := range state.Effects {
		if e.Kind != EffectPrivilegedCompleted {
			continue
		}
		if e.SessionPrivileges&e.RequiredPrivilege != e.RequiredPrivilege {
			return false
		}
	}
	return true
}

// CheckSafety runs every safety invariant (S1-S3) against state,
// returning the name of the first one that fails, or "" if all hold.
func CheckSafety(state SystemState) string {
	if !AuthPrecedesPrivilegedEffects(state) {
		return "S1/S3: authentication must precede a client's first privileged effect"
	}
	if !PrivilegedEffectsHoldRequiredPrivilege(state) {
		return "S2: privileged effect recorded without the required privilege bit held"
	}
	return ""
}

// Witness names for the four reachability properties §4.9 requires at
// least one explored path to exhibit.
const (
	WitnessRejectedUnauthenticated       = "rejected unauthenticated request"
	WitnessRejectedInsufficientPrivilege = "rejected insufficient privilege"
	WitnessPrivilegedCompleted           = "completed privileged operation"
	WitnessQueueDepthAtLeastTwo          = "client queue holds at least two messages"
)

// Witnesses reports which reachability witnesses state exhibits.
func Witnesses(state SystemState) map[string]bool {
	return map[string]bool{
		WitnessRejectedUnauthenticated:       state.HasEffectKind(EffectRejectedUnauthenticated),
		WitnessRejectedInsufficientPrivilege: state.HasEffectKind(EffectRejectedInsufficientPrivilege),
		WitnessPrivilegedCompleted:           state.HasEffectKind(EffectPrivilegedCompleted),
		WitnessQueueDepthAtLeastTwo:          state.AnyQueueDepthAtLeast(2),
	}
}
