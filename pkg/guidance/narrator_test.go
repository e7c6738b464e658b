package guidance_test

import (
	"fmt"
	"testing"

	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/guidance"

	"github.com/stretchr/testify/assert"
)

// northboundRoute builds n points spaced ~111m apart heading due north.
func northboundRoute(n int) []datastructure.Coordinate {
	route := make([]datastructure.Coordinate, 0, n)
	for i := 0; i < n; i++ {
		route = append(route, datastructure.NewCoordinate(9.93+float64(i)*0.001, 76.26))
	}
	return route
}

func TestNarrate(t *testing.T) {
	t.Run("full route narrates start, turns, approach, arrival", func(t *testing.T) {
		route := northboundRoute(16)
		instructions := guidance.Narrate(route, "Town Hall Shelter", 1.67, 20)

		// 16 points -> segment size 1 -> 15 turn steps
		assert.Len(t, instructions, 18)
		assert.Equal(t, guidance.KindStart, instructions[0].Kind)
		assert.Equal(t, guidance.KindApproach, instructions[len(instructions)-2].Kind)
		assert.Equal(t, guidance.KindArrival, instructions[len(instructions)-1].Kind)
		for _, ins := range instructions[1 : len(instructions)-2] {
			assert.Equal(t, guidance.KindTurn, ins.Kind)
		}

		assert.Equal(t,
			"Navigation started. Proceed to Town Hall Shelter. Total distance is 1.7 kilometers. Estimated travel time is 20 minutes. Follow the route and avoid hazards.",
			instructions[0].Text)
		assert.Equal(t, guidance.PriorityHigh, instructions[0].Priority)

		// first segment uses the compass, the rest the relative turn
		assert.Contains(t, instructions[1].Text, "head north")
		assert.Contains(t, instructions[2].Text, "continue straight ahead")

		assert.Equal(t, "You are approaching Town Hall Shelter. Prepare to arrive.",
			instructions[len(instructions)-2].Text)
		assert.Equal(t, "You have arrived at Town Hall Shelter. Navigation complete. Stay safe.",
			instructions[len(instructions)-1].Text)
	})

	t.Run("routes shorter than two points narrate to nothing", func(t *testing.T) {
		assert.Empty(t, guidance.Narrate(nil, "Shelter", 0, 0))
		assert.Empty(t, guidance.Narrate(northboundRoute(1), "Shelter", 0, 0))
	})

	t.Run("dense routes compress to roughly fifteen segments", func(t *testing.T) {
		route := northboundRoute(150)
		instructions := guidance.Narrate(route, "Shelter", 16.6, 200)

		turns := 0
		for _, ins := range instructions {
			if ins.Kind == guidance.KindTurn {
				turns = turns + 1
			}
		}
		assert.GreaterOrEqual(t, turns, 10)
		assert.LessOrEqual(t, turns, 16)
	})

	t.Run("deterministic for identical input", func(t *testing.T) {
		route := northboundRoute(40)
		first := guidance.Narrate(route, "Shelter", 4.3, 52)
		second := guidance.Narrate(route, "Shelter", 4.3, 52)
		assert.Equal(t, first, second)
	})

	t.Run("turn steps carry bearing and remaining distance", func(t *testing.T) {
		route := northboundRoute(16)
		instructions := guidance.Narrate(route, "Shelter", 1.67, 20)

		turn := instructions[1]
		assert.InDelta(t, 0.0, turn.BearingDeg, 1.0)
		assert.Greater(t, turn.DistanceM, 100.0)
		assert.Greater(t, turn.RemainingM, 0.0)
	})
}

func TestTurnDirection(t *testing.T) {
	cases := []struct {
		angle float64
		want  string
	}{
		{0, "Continue straight ahead"},
		{22.4, "Continue straight ahead"},
		{22.5, "Turn slightly right"},
		{45, "Turn slightly right"},
		{90, "Turn right"},
		{135, "Turn sharp right"},
		{180, "Make a U-turn"},
		{225, "Turn sharp left"},
		{270, "Turn left"},
		{315, "Turn slightly left"},
		{337.5, "Continue straight ahead"},
		{359.9, "Continue straight ahead"},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%.1f degrees", c.angle), func(t *testing.T) {
			assert.Equal(t, c.want, guidance.TurnDirection(c.angle))
		})
	}
}

func TestCardinalDirection(t *testing.T) {
	assert.Equal(t, "Head north", guidance.CardinalDirection(0))
	assert.Equal(t, "Head north", guidance.CardinalDirection(350))
	assert.Equal(t, "Head east", guidance.CardinalDirection(90))
	assert.Equal(t, "Head south", guidance.CardinalDirection(180))
	assert.Equal(t, "Head west", guidance.CardinalDirection(270))
}
