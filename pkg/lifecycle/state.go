package lifecycle

import (
	"errors"
	"time"

	"github.com/younsl/ebsreaper/internal/models"
	"github.com/younsl/ebsreaper/pkg/utils"
)

// ErrInconsistentState is returned when a cycle date is stored without its ticket id
var ErrInconsistentState = errors.New("tracking state has a date but no ticket id")

// State is the cleanup cycle state
type State int

const (
	NoCycle State = iota
	CycleOpen
)

func (s State) String() string {
	switch s {
	case NoCycle:
		return "NoCycle"
	case CycleOpen:
		return "CycleOpen"
	default:
		return "Unknown"
	}
}

// Action is what a run has to do after scanning
type Action int

const (
	ActionNone Action = iota
	ActionOpenTicket
	ActionRemind
	ActionDelete
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionOpenTicket:
		return "open-ticket"
	case ActionRemind:
		return "remind"
	case ActionDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Offsets are the day offsets, counted from the first detection date, of each transition
type Offsets struct {
	FirstNotice  int
	SecondNotice int
	Deletion     int
}

// Decision is the outcome of Decide
type Decision struct {
	State  State  // state before the action
	Next   State  // state once the action completed
	Action Action
	Due    time.Time // date the matching offset points at, zero for ActionNone/ActionOpenTicket
}

// Decide computes the action for today from the persisted tracking state.
//
// Reminders are checked before deletion, so if an offset pair coincides the reminder
// wins. Config validation keeps offsets distinct.
func Decide(tracking models.TrackingState, today time.Time, offsets Offsets, haveVolumes bool) (Decision, error) {
	if !tracking.Open() {
		if haveVolumes {
			return Decision{State: NoCycle, Next: CycleOpen, Action: ActionOpenTicket}, nil
		}
		return Decision{State: NoCycle, Next: NoCycle, Action: ActionNone}, nil
	}

	if tracking.TicketID == "" {
		return Decision{}, ErrInconsistentState
	}

	initial := *tracking.InitialDate
	for _, offset := range []int{offsets.FirstNotice, offsets.SecondNotice} {
		due := utils.AddDays(initial, offset)
		if utils.SameDate(due, today) {
			return Decision{State: CycleOpen, Next: CycleOpen, Action: ActionRemind, Due: due}, nil
		}
	}

	due := utils.AddDays(initial, offsets.Deletion)
	if utils.SameDate(due, today) {
		return Decision{State: CycleOpen, Next: NoCycle, Action: ActionDelete, Due: due}, nil
	}

	return Decision{State: CycleOpen, Next: CycleOpen, Action: ActionNone}, nil
}
