package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCapture(t *testing.T) {
	t.Run("flipping exactly at the defense threshold", func(t *testing.T) {
		gs, _ := newTestState(t, nil, nil)
		gs.Pressure["OH"] = Pressure{P1: 3}

		owner, captured := Capture(gs, "OH")

		require.True(t, captured, "Net pressure equal to defense should capture")
		require.Equal(t, P1, owner)
		require.True(t, gs.Players[P1].Owns("OH"))
		require.Equal(t, Pressure{}, gs.Pressure["OH"], "Both counters should reset")
	})

	t.Run("holding below the threshold", func(t *testing.T) {
		gs, _ := newTestState(t, nil, nil)
		gs.Pressure["OH"] = Pressure{P1: 2}

		_, captured := Capture(gs, "OH")

		require.False(t, captured)
		require.False(t, gs.Players[P1].Owns("OH"))
		require.Equal(t, Pressure{P1: 2}, gs.Pressure["OH"], "Pressure below threshold should be kept")
	})

	t.Run("opposing pressure offsets net pressure", func(t *testing.T) {
		gs, _ := newTestState(t, nil, nil)
		gs.Pressure["OH"] = Pressure{P1: 5, P2: 3}

		_, captured := Capture(gs, "OH")

		require.False(t, captured, "Net pressure 2 should not beat defense 3")
		require.Equal(t, 2, NetPressure(gs, "OH", P1))
		require.Equal(t, 0, NetPressure(gs, "OH", P2), "Net pressure is floored at zero")
	})

	t.Run("taking a territory from its owner", func(t *testing.T) {
		gs, _ := newTestState(t, nil, nil)
		gs.Players[P2].States["CA"] = true
		gs.Pressure["CA"] = Pressure{P1: 2}

		owner, captured := Capture(gs, "CA")

		require.True(t, captured)
		require.Equal(t, P1, owner)
		require.False(t, gs.Players[P2].Owns("CA"), "Prior owner should lose the territory")
		require.True(t, gs.Players[P1].Owns("CA"))
	})

	t.Run("re-evaluating a resolved territory is a no-op", func(t *testing.T) {
		gs, _ := newTestState(t, nil, nil)
		gs.Pressure["OH"] = Pressure{P1: 3}
		Capture(gs, "OH")
		logLen := len(gs.Log)

		_, captured := Capture(gs, "OH")

		require.False(t, captured)
		require.True(t, gs.Players[P1].Owns("OH"))
		require.Len(t, gs.Log, logLen)
	})

	t.Run("ignoring unknown territories", func(t *testing.T) {
		gs, _ := newTestState(t, nil, nil)

		_, captured := Capture(gs, "ZZ")

		require.False(t, captured)
	})
}

func TestContested(t *testing.T) {
	gs, _ := newTestState(t, nil, nil)
	gs.Pressure["TX"] = Pressure{P2: 1}
	gs.Pressure["CA"] = Pressure{P1: 1}

	require.Equal(t, []string{"CA", "TX"}, gs.Contested())
}
