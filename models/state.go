package models

// InspectionState diturunkan murni dari keberadaan SecurityCheck dan
// CheckerData, tidak pernah disimpan di database.
type InspectionState string

const (
	StatePendingSecurity InspectionState = "PENDING_SECURITY"
	StatePendingChecker  InspectionState = "PENDING_CHECKER"
	StateComplete        InspectionState = "COMPLETE"
)

func DeriveState(hasSecurityCheck, hasCheckerData bool) InspectionState {
	switch {
	case !hasSecurityCheck:
		return StatePendingSecurity
	case !hasCheckerData:
		return StatePendingChecker
	default:
		return StateComplete
	}
}
