package tackle

// Outcome is the typed result of one tackle operation. Done means the
// operation reached its normal end; every other value names the condition
// that stopped it.
type Outcome int

const (
	Done Outcome = iota
	FishHooked
	FishCaptured
	LineAtEnd
	LineSnagged
	LureBroken
	TackleBroken
	BaitNotChosen
	DryMixNotChosen
	Disconnected
	TicketExpired
	StuckAtCasting
	CoffeeTimeout
	GearRatioTimeout
	PirkTimeout
	ElevateTimeout
	LiftTimeout
	DriftTimeout
	SinkTimeout
	ItemNotFound
)

// Outcomes lists every outcome, in declaration order.
var Outcomes = []Outcome{
	Done, FishHooked, FishCaptured, LineAtEnd, LineSnagged, LureBroken,
	TackleBroken, BaitNotChosen, DryMixNotChosen, Disconnected, TicketExpired,
	StuckAtCasting, CoffeeTimeout, GearRatioTimeout, PirkTimeout, ElevateTimeout,
	LiftTimeout, DriftTimeout, SinkTimeout, ItemNotFound,
}

// String returns the string representation of the outcome
func (o Outcome) String() string {
	switch o {
	case Done:
		return "done"
	case FishHooked:
		return "fish hooked"
	case FishCaptured:
		return "fish captured"
	case LineAtEnd:
		return "line at end"
	case LineSnagged:
		return "line snagged"
	case LureBroken:
		return "lure broken"
	case TackleBroken:
		return "tackle broken"
	case BaitNotChosen:
		return "bait not chosen"
	case DryMixNotChosen:
		return "dry mix not chosen"
	case Disconnected:
		return "disconnected"
	case TicketExpired:
		return "ticket expired"
	case StuckAtCasting:
		return "stuck at casting"
	case CoffeeTimeout:
		return "coffee timeout"
	case GearRatioTimeout:
		return "gear ratio timeout"
	case PirkTimeout:
		return "pirk timeout"
	case ElevateTimeout:
		return "elevate timeout"
	case LiftTimeout:
		return "lift timeout"
	case DriftTimeout:
		return "drift timeout"
	case SinkTimeout:
		return "sink timeout"
	case ItemNotFound:
		return "item not found"
	default:
		return "unknown"
	}
}

// Fatal reports whether the outcome ends the session whatever the mode.
func (o Outcome) Fatal() bool {
	switch o {
	case LineAtEnd, Disconnected, TackleBroken:
		return true
	}
	return false
}
