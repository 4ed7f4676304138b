package program

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPlanListSteps verifies the full existence/size decision table.
func TestPlanListSteps(t *testing.T) {
	small := ListCapacityThreshold - 1
	full := ListCapacityThreshold

	missing := ListState{}
	smallList := ListState{Exists: true, Size: small}
	fullList := ListState{Exists: true, Size: full}

	tests := []struct {
		name string
		my   ListState
		subs ListState
		want []ListStep
	}{
		{"both missing", missing, missing, []ListStep{StepInitMySubscriptions, StepInitSubscribersList, StepReallocAddSubscriptionsLists}},
		{"my missing", missing, fullList, []ListStep{StepInitMySubscriptions, StepReallocAddSubscriptionsLists}},
		{"subscribers missing", fullList, missing, []ListStep{StepInitSubscribersList, StepReallocAddSubscriptionsLists}},
		{"my small, subscribers missing", smallList, missing, []ListStep{StepInitSubscribersList, StepReallocAddSubscriptionsLists}},
		{"my missing, subscribers small", missing, smallList, []ListStep{StepInitMySubscriptions, StepReallocAddSubscriptionsLists}},
		{"both small", smallList, smallList, []ListStep{StepReallocAddSubscriptionsLists}},
		{"my small", smallList, fullList, []ListStep{StepReallocAddSubscriptionsLists}},
		{"subscribers small", fullList, smallList, []ListStep{StepReallocAddSubscriptionsLists}},
		{"both at threshold", fullList, fullList, []ListStep{StepAddSubscriptionsLists}},
		{"both above threshold", ListState{Exists: true, Size: full + 3200}, ListState{Exists: true, Size: full + 32}, []ListStep{StepAddSubscriptionsLists}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanListSteps(tt.my, tt.subs))
		})
	}
}

func TestListCapacityThreshold(t *testing.T) {
	assert.Equal(t, 6412, ListCapacityThreshold)
}

func TestBuildListStep(t *testing.T) {
	a := ListsAccounts{Subscriber: key(1), DataProvider: key(2), MySubscriptions: key(3), SubscribersList: key(4)}
	for _, step := range []ListStep{StepInitMySubscriptions, StepInitSubscribersList, StepReallocAddSubscriptionsLists, StepAddSubscriptionsLists} {
		ix, err := BuildListStep(testProgramID, step, a)
		require.NoError(t, err)
		assert.Equal(t, step.String(), ix.Name())
	}

	_, err := BuildListStep(testProgramID, ListStep(99), a)
	require.Error(t, err)
	assert.Equal(t, "ListStep(99)", ListStep(99).String())
}
