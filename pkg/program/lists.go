package program

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// ListCapacity is the number of keys a freshly initialized subscription
// list can hold before it has to be reallocated.
const ListCapacity = 200

// ListCapacityThreshold is the account size, in bytes, of a list holding
// ListCapacity keys: discriminator, vec length prefix and the keys.
const ListCapacityThreshold = 8 + 4 + ListCapacity*32

// ListState is the observed on-chain state of one subscription list.
type ListState struct {
	Exists bool
	Size   int
}

// ListStep is one preparatory or final instruction of the list sequence.
type ListStep int

const (
	StepInitMySubscriptions ListStep = iota + 1
	StepInitSubscribersList
	StepReallocAddSubscriptionsLists
	StepAddSubscriptionsLists
)

func (s ListStep) String() string {
	switch s {
	case StepInitMySubscriptions:
		return "init_my_subscriptions_list"
	case StepInitSubscribersList:
		return "init_subscribers_list"
	case StepReallocAddSubscriptionsLists:
		return "realloc_add_subscriptions_lists"
	case StepAddSubscriptionsLists:
		return "add_subscriptions_lists"
	default:
		return fmt.Sprintf("ListStep(%d)", int(s))
	}
}

// PlanListSteps decides which instructions link a subscriber and a
// provider in their cross-referencing lists.
//
// Missing lists are initialized first and then grown and appended with a
// realloc. When both exist, a realloc is still needed while either list is
// below ListCapacityThreshold; lists at or above it are appended to as is.
func PlanListSteps(mySubscriptions, subscribersList ListState) []ListStep {
	var steps []ListStep
	if !mySubscriptions.Exists {
		steps = append(steps, StepInitMySubscriptions)
	}
	if !subscribersList.Exists {
		steps = append(steps, StepInitSubscribersList)
	}
	if len(steps) > 0 {
		return append(steps, StepReallocAddSubscriptionsLists)
	}
	if mySubscriptions.Size < ListCapacityThreshold || subscribersList.Size < ListCapacityThreshold {
		return []ListStep{StepReallocAddSubscriptionsLists}
	}
	return []ListStep{StepAddSubscriptionsLists}
}

// BuildListStep returns the instruction of step.
func BuildListStep(programID solana.PublicKey, step ListStep, a ListsAccounts) (*Instruction, error) {
	switch step {
	case StepInitMySubscriptions:
		return NewInitMySubscriptionsList(programID, a)
	case StepInitSubscribersList:
		return NewInitSubscribersList(programID, a)
	case StepReallocAddSubscriptionsLists:
		return NewReallocAddSubscriptionsLists(programID, a)
	case StepAddSubscriptionsLists:
		return NewAddSubscriptionsLists(programID, a)
	default:
		return nil, fmt.Errorf("unknown list step %d", int(step))
	}
}
