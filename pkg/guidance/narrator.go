package guidance

import (
	"fmt"
	"math"
	"strings"

	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/geo"
)

const (
	// the route is partitioned into roughly this many logical segments
	// regardless of raw point density
	targetSegments = 15

	// chunks shorter than this are GPS noise and emit no instruction
	minSegmentM = 5.0
)

// Narrate converts a route polyline into ordered turn-by-turn instructions:
// one start summary, ~15 turn steps, one approach, one arrival. Routes with
// fewer than 2 points narrate to nothing. Deterministic: identical inputs
// produce byte-identical output.
func Narrate(route []datastructure.Coordinate, targetName string, distKm float64, etaMin int) []Instruction {
	if len(route) < 2 {
		return []Instruction{}
	}

	instructions := []Instruction{}

	startMsg := fmt.Sprintf("Navigation started. Proceed to %s. Total distance is %.1f kilometers. Estimated travel time is %d minutes. Follow the route and avoid hazards.",
		targetName, distKm, etaMin)
	instructions = append(instructions, Instruction{
		Kind:     KindStart,
		Text:     startMsg,
		Priority: PriorityHigh,
	})

	segmentSize := len(route) / targetSegments
	if segmentSize < 1 {
		segmentSize = 1
	}

	prevBearing := math.NaN()
	cumulativeM := 0.0

	for i := 0; i < len(route)-1; i += segmentSize {
		current := route[i]
		var next datastructure.Coordinate
		if i+segmentSize >= len(route) {
			next = route[len(route)-1]
		} else {
			next = route[i+segmentSize]
		}

		segmentM := geo.HaversineDistanceM(current, next)
		cumulativeM += segmentM

		if segmentM < minSegmentM {
			continue
		}

		bearing := geo.Bearing(current.Lat, current.Lon, next.Lat, next.Lon)

		var direction string
		if !math.IsNaN(prevBearing) {
			turnAngle := math.Mod(bearing-prevBearing+360, 360)
			direction = TurnDirection(turnAngle)
		} else {
			direction = CardinalDirection(bearing)
		}

		remainingM := distKm*1000 - cumulativeM
		text := fmt.Sprintf("In %s, %s.%s", formatDistance(segmentM), strings.ToLower(direction), remainingText(remainingM))
		if remainingM < 0 {
			remainingM = 0
		}

		instructions = append(instructions, Instruction{
			Kind:       KindTurn,
			Text:       text,
			DistanceM:  segmentM,
			BearingDeg: bearing,
			RemainingM: remainingM,
			Priority:   PriorityNormal,
		})
		prevBearing = bearing
	}

	instructions = append(instructions, Instruction{
		Kind:     KindApproach,
		Text:     fmt.Sprintf("You are approaching %s. Prepare to arrive.", targetName),
		Priority: PriorityHigh,
	})
	instructions = append(instructions, Instruction{
		Kind:     KindArrival,
		Text:     fmt.Sprintf("You have arrived at %s. Navigation complete. Stay safe.", targetName),
		Priority: PriorityHigh,
	})

	return instructions
}

// TurnDirection classifies a relative turn angle in [0,360) into one of 8
// buckets. The buckets partition the full circle with no gaps or overlaps.
func TurnDirection(turnAngle float64) string {
	switch {
	case turnAngle >= 337.5 || turnAngle < 22.5:
		return "Continue straight ahead"
	case turnAngle < 67.5:
		return "Turn slightly right"
	case turnAngle < 112.5:
		return "Turn right"
	case turnAngle < 157.5:
		return "Turn sharp right"
	case turnAngle < 202.5:
		return "Make a U-turn"
	case turnAngle < 247.5:
		return "Turn sharp left"
	case turnAngle < 292.5:
		return "Turn left"
	default:
		return "Turn slightly left"
	}
}

// CardinalDirection classifies an absolute bearing into a compass quadrant,
// used for the first emitted segment when no previous bearing exists.
func CardinalDirection(bearing float64) string {
	switch {
	case bearing >= 315 || bearing < 45:
		return "Head north"
	case bearing < 135:
		return "Head east"
	case bearing < 225:
		return "Head south"
	default:
		return "Head west"
	}
}

func formatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d meters", int(meters))
	}
	return fmt.Sprintf("%.1f kilometers", meters/1000)
}

func remainingText(remainingM float64) string {
	if remainingM > 1000 {
		return fmt.Sprintf(" %.1f kilometers remaining", remainingM/1000)
	}
	if remainingM > 0 {
		return fmt.Sprintf(" %d meters remaining", int(remainingM))
	}
	return ""
}
