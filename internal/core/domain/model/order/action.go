package order

import (
	"fmt"
	"slices"

	"orderdesk/internal/pkg/errs"
)

// Action is an operation that moves an order to another status.
type Action int

const (
	UnknownAction Action = iota
	Cancel
	RevertToDev
	SettleByTech
	RequestPayment
	StartDevelopment
	Ship
	ConfirmReceipt
	Verify
	Settle
)

var actionNames = map[Action]string{
	Cancel:           "CANCEL",
	RevertToDev:      "REVERT_TO_DEV",
	SettleByTech:     "SETTLE_BY_TECH",
	RequestPayment:   "REQUEST_PAYMENT",
	StartDevelopment: "START_DEVELOPMENT",
	Ship:             "SHIP",
	ConfirmReceipt:   "CONFIRM_RECEIPT",
	Verify:           "VERIFY",
	Settle:           "SETTLE",
}

// Actions returns every valid action.
func Actions() []Action {
	return []Action{
		Cancel,
		RevertToDev,
		SettleByTech,
		RequestPayment,
		StartDevelopment,
		Ship,
		ConfirmReceipt,
		Verify,
		Settle,
	}
}

// ParseAction maps a wire name such as "REVERT_TO_DEV" to its Action.
func ParseAction(s string) (Action, error) {
	for a, name := range actionNames {
		if name == s {
			return a, nil
		}
	}
	return UnknownAction, errs.NewValueIsInvalidErrorWithCause(
		"action is invalid",
		fmt.Errorf("%q is not a known action", s),
	)
}

func (a Action) Validate() error {
	if _, ok := actionNames[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action is invalid", fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "UNKNOWN"
}

type transition struct {
	from []Status
	to   Status
}

var nonTerminal = []Status{
	PendingAssignment,
	PendingPayment,
	InDevelopment,
	Shipped,
	Received,
	PendingSettlement,
	Verified,
}

// transitions is the lifecycle table. Anything not listed is illegal.
var transitions = map[Action]transition{
	Cancel:           {from: nonTerminal, to: Cancelled},
	RevertToDev:      {from: []Status{Shipped, Received}, to: InDevelopment},
	SettleByTech:     {from: []Status{Received}, to: PendingSettlement},
	RequestPayment:   {from: []Status{PendingAssignment}, to: PendingPayment},
	StartDevelopment: {from: []Status{PendingPayment}, to: InDevelopment},
	Ship:             {from: []Status{InDevelopment}, to: Shipped},
	ConfirmReceipt:   {from: []Status{Shipped}, to: Received},
	Verify:           {from: []Status{PendingSettlement}, to: Verified},
	Settle:           {from: []Status{Verified}, to: Settled},
}

// Transition is one row of the lifecycle table as exposed to callers.
type Transition struct {
	Action Action
	From   []Status
	To     Status
}

// Transitions returns a copy of the lifecycle table ordered as Actions.
func Transitions() []Transition {
	result := make([]Transition, 0, len(transitions))
	for _, a := range Actions() {
		t := transitions[a]
		result = append(result, Transition{
			Action: a,
			From:   slices.Clone(t.from),
			To:     t.to,
		})
	}
	return result
}

// ActionFor resolves a requested target status into the action that reaches it from
// the current status. It fails with an IllegalTransitionError when no row matches.
func ActionFor(from, to Status) (Action, error) {
	for _, a := range Actions() {
		t := transitions[a]
		if t.to == to && from.In(t.from...) {
			return a, nil
		}
	}
	return UnknownAction, errs.NewIllegalTransitionError(from.String(), "MOVE_TO_"+to.String())
}
