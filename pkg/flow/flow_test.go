package flow

import (
	"testing"

	sflow "github.com/alibaba/sentinel-golang/core/flow"
	"github.com/stretchr/testify/require"
)

func TestRules(t *testing.T) {
	require.Empty(t, Rules("toggle", 0))

	rules := Rules("toggle", 50)
	require.Len(t, rules, 1)
	require.Equal(t, "toggle", rules[0].Resource)
	require.Equal(t, float64(50), rules[0].Threshold)
	require.Equal(t, sflow.Reject, rules[0].ControlBehavior)
	require.Equal(t, uint32(1000), rules[0].StatIntervalInMs)
}
