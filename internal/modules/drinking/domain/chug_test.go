package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestChug(settings Settings) (*ChugEngine, *State) {
	state := &State{GameOngoing: true}
	stats := &Stats{}
	wobble := newWobbleEngine(settings, state, stats, &fakeRandom{}, NopFeedback{})
	return newChugEngine(settings, state, stats, NopFeedback{}, wobble), state
}

func TestChugSuccessBoundaryIsExclusive(t *testing.T) {
	t.Parallel()
	settings := quickSettings()

	above, state := newTestChug(settings)
	require.NoError(t, above.RunChugAttempt())
	assert.Equal(t, TransitionChain, above.Step(0.5+eps, Press(KeyAction)))
	assert.Equal(t, 1, state.Chugs)

	below, state := newTestChug(settings)
	require.NoError(t, below.RunChugAttempt())
	assert.Equal(t, TransitionFailure, below.Step(0.5-eps, Press(KeyAction)))
	assert.Equal(t, 0, state.Chugs)

	exact, _ := newTestChug(settings)
	require.NoError(t, exact.RunChugAttempt())
	assert.Equal(t, TransitionFailure, exact.Step(0.5, Press(KeyAction)))
}

func TestChugAttemptSetsDrinkingAndClearsStagger(t *testing.T) {
	t.Parallel()
	chug, state := newTestChug(quickSettings())
	state.Staggered = true

	require.NoError(t, chug.RunChugAttempt())
	assert.True(t, state.Drinking)
	assert.False(t, state.Staggered)
	assert.Zero(t, chug.TimeCounter())

	assert.Equal(t, TransitionNone, chug.Step(0.1, nil))
	assert.True(t, state.Drinking)
	assert.Equal(t, TransitionFailure, chug.Step(1.0, nil))
	assert.False(t, state.Drinking)
	assert.InDelta(t, 1.0, chug.TimeLimit(), 1e-12)
}

func TestChugRefusesWhenGameIsOver(t *testing.T) {
	t.Parallel()
	chug, state := newTestChug(quickSettings())
	state.GameOngoing = false
	assert.ErrorIs(t, chug.RunChugAttempt(), ErrGameOver)
	assert.False(t, state.Drinking)
}

func TestStaggerTakesPriorityOverPressInSameAttempt(t *testing.T) {
	t.Parallel()
	chug, state := newTestChug(quickSettings())
	require.NoError(t, chug.RunChugAttempt())
	require.Equal(t, TransitionNone, chug.Step(0.7, nil))

	state.Staggered = true
	assert.Equal(t, TransitionStagger, chug.Step(0.1, Press(KeyAction)))
	assert.Equal(t, 0, state.Chugs)
	assert.InDelta(t, 1.0, chug.TimeLimit(), 1e-12)
}

func TestTimeLimitShrinksOnEverySuccess(t *testing.T) {
	t.Parallel()
	s, err := NewSession(quickSettings(), &fakeRandom{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Tick(0, nil))
	require.Equal(t, PhaseRacing, s.Phase())

	limits := []float64{s.Snapshot().TimeLimit}
	for i := 0; i < 3; i++ {
		require.NoError(t, chugOnce(s))
		limits = append(limits, s.Snapshot().TimeLimit)
	}
	want := []float64{1.0, 0.9, 0.81, 0.729}
	for i := range want {
		assert.InDelta(t, want[i], limits[i], 1e-9, "limit %d", i)
	}
	assert.Equal(t, PhaseRacing, s.Phase())
	assert.Equal(t, 3, s.State().Chugs)
}

func TestWobbleActivatesAtCumulativeThresholdOnce(t *testing.T) {
	t.Parallel()
	settings := quickSettings()
	settings.ChugsPerMug = 2
	settings.ChugsBeforeWobble = 3
	settings.NewMugDelay = 0
	s, err := NewSession(settings, &fakeRandom{}, nil)
	require.NoError(t, err)
	require.NoError(t, s.Tick(0, nil))

	require.NoError(t, chugOnce(s))
	require.NoError(t, chugOnce(s))
	assert.Equal(t, WobbleInactive, s.Snapshot().WobblePhase)

	// mug boundary: chugs reset but the cumulative count keeps going
	require.NoError(t, s.Tick(0, nil))
	require.NoError(t, chugOnce(s))
	assert.Equal(t, WobbleWaitingForDrinking, s.Snapshot().WobblePhase)
}
