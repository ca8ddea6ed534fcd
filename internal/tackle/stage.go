package tackle

// Stage is the phase a rod is in.
type Stage int

const (
	StageReset Stage = iota
	StageRetrieve
	StagePull
	StagePirk
	StageElevate
	StageLift
	StageDrift
	StageSink
)

// String returns the string representation of the stage
func (s Stage) String() string {
	switch s {
	case StageReset:
		return "reset"
	case StageRetrieve:
		return "retrieve"
	case StagePull:
		return "pull"
	case StagePirk:
		return "pirk"
	case StageElevate:
		return "elevate"
	case StageLift:
		return "lift"
	case StageDrift:
		return "drift"
	case StageSink:
		return "sink"
	default:
		return "unknown"
	}
}
