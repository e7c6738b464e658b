package service

import (
	"context"
	"math"

	"crowdshield/pkg/alert"
	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/geo"
	"crowdshield/pkg/gps"
	"crowdshield/pkg/guidance"
	"crowdshield/pkg/observability"
	"crowdshield/pkg/risk"
	"crowdshield/pkg/routing"
	"crowdshield/util"

	"log/slog"
)

type GraphSource interface {
	Obtain(ctx context.Context, online bool, center datastructure.Coordinate, radiusM float64) datastructure.Graph
}

type RoutePlanner interface {
	Route(g datastructure.Graph, origin, target datastructure.Coordinate,
		mode routing.Mode, hazards []datastructure.HazardArea) datastructure.PlannedRoute
}

// GraphStore is the optional read-through cache in front of network fetches.
type GraphStore interface {
	Get(center datastructure.Coordinate, radiusM float64) (datastructure.Graph, bool)
	Put(center datastructure.Coordinate, radiusM float64, g datastructure.Graph)
}

// AdvisoryPublisher fans a High/Critical assessment out to downstream
// channels (broadcast, SMS, TTS).
type AdvisoryPublisher interface {
	Publish(ctx context.Context, adv alert.Advisory) error
}

// Shelter is a known safe destination.
type Shelter struct {
	Name     string                   `json:"name"`
	Location datastructure.Coordinate `json:"location"`
	Capacity int                      `json:"capacity"`
}

// FallbackShelter is used when no shelter list is configured.
var FallbackShelter = Shelter{
	Name:     "Fallback Shelter",
	Location: datastructure.NewCoordinate(9.93, 76.26),
	Capacity: 50,
}

type EvacuationService struct {
	graphs  GraphSource
	planner RoutePlanner
	cache   GraphStore        // nil disables caching
	alerts  AdvisoryPublisher // nil disables publishing
	metrics *observability.Metrics
	logger  *slog.Logger
	sim     *gps.Simulator

	shelters         []Shelter
	thresholds       risk.Thresholds
	walkSpeedKmh     float64
	dispatchSpeedKmh float64
}

func NewEvacuationService(graphs GraphSource, planner RoutePlanner, cache GraphStore,
	alerts AdvisoryPublisher, metrics *observability.Metrics, logger *slog.Logger,
	sim *gps.Simulator, shelters []Shelter, thresholds risk.Thresholds,
	walkSpeedKmh, dispatchSpeedKmh float64) *EvacuationService {

	if len(shelters) == 0 {
		shelters = []Shelter{FallbackShelter}
	}
	if walkSpeedKmh <= 0 {
		walkSpeedKmh = 5.0
	}
	if dispatchSpeedKmh <= 0 {
		dispatchSpeedKmh = 30.0
	}
	return &EvacuationService{
		graphs:           graphs,
		planner:          planner,
		cache:            cache,
		alerts:           alerts,
		metrics:          metrics,
		logger:           logger,
		sim:              sim,
		shelters:         shelters,
		thresholds:       thresholds.Normalize(),
		walkSpeedKmh:     walkSpeedKmh,
		dispatchSpeedKmh: dispatchSpeedKmh,
	}
}

// RiskSignals carries the optional environment inputs accompanying a routing
// request. Nil means no assessment is performed. Thresholds, when set,
// override the service defaults for this request only.
type RiskSignals struct {
	Weather       risk.Weather
	FloodOverride bool
	Crowd         risk.CrowdTelemetry
	SurgeOverride bool
	Thresholds    *risk.Thresholds
}

type PlanRequest struct {
	Origin      datastructure.Coordinate
	Mode        routing.Mode
	Online      bool
	RadiusM     float64
	Hazards     []datastructure.HazardArea
	Shelters    []Shelter // optional per-request candidates; empty uses the configured list
	ShelterName string    // empty selects the nearest shelter
	Signals     *RiskSignals
	Labels      risk.Labels
}

type PlanResult struct {
	Route        datastructure.PlannedRoute
	Shelter      Shelter
	ETAMinutes   int
	Instructions []guidance.Instruction
	Risk         *risk.Snapshot
}

// PlanEvacuation computes a full evacuation plan: shelter selection, graph
// acquisition, routing, narration, and an optional risk assessment. It never
// fails; degradation is expressed through the route strategy tag.
func (uc *EvacuationService) PlanEvacuation(ctx context.Context, req PlanRequest) PlanResult {
	req.Origin = datastructure.NewCoordinate(
		util.TruncateFloat64(req.Origin.Lat, 6),
		util.TruncateFloat64(req.Origin.Lon, 6),
	)
	shelter := uc.selectShelter(req.Origin, req.ShelterName, req.Shelters)

	g := uc.obtainGraph(ctx, req.Online, req.Origin, req.RadiusM)

	route := uc.planner.Route(g, req.Origin, shelter.Location, req.Mode, req.Hazards)
	uc.metrics.RouteRequests.WithLabelValues(string(req.Mode), string(route.Strategy)).Inc()
	if route.BlockedEdges > 0 {
		uc.metrics.BlockedEdges.Add(float64(route.BlockedEdges))
	}

	eta := etaMinutes(route.DistanceKm, uc.walkSpeedKmh)
	instructions := guidance.Narrate(route.Points, shelter.Name, route.DistanceKm, eta)

	result := PlanResult{
		Route:        route,
		Shelter:      shelter,
		ETAMinutes:   eta,
		Instructions: instructions,
	}

	if req.Signals != nil {
		snapshot := uc.assess(*req.Signals, req.Labels)
		result.Risk = &snapshot
		uc.maybePublish(ctx, snapshot, string(route.Strategy), shelter.Name)
	}

	uc.logger.Info("evacuation plan computed",
		"shelter", shelter.Name,
		"strategy", string(route.Strategy),
		"distance_km", route.DistanceKm,
		"eta_min", eta,
		"blocked_edges", route.BlockedEdges,
		"hazard_area_m2", totalHazardAreaM2(req.Hazards))

	return result
}

// totalHazardAreaM2 sums the spherical area of every hazard polygon, for
// operator visibility into how much ground the mask covers.
func totalHazardAreaM2(hazards []datastructure.HazardArea) float64 {
	total := 0.0
	for _, h := range hazards {
		if !h.Valid() {
			continue
		}
		ring := make([]datastructure.Coordinate, 0, len(h.Polygon[0]))
		for _, p := range h.Polygon[0] {
			ring = append(ring, datastructure.NewCoordinate(p[1], p[0]))
		}
		total += geo.PolygonAreaM2(ring)
	}
	return total
}

// AssessRisk runs the fusion engine on its own, without routing.
func (uc *EvacuationService) AssessRisk(ctx context.Context, signals RiskSignals, labels risk.Labels) risk.Snapshot {
	snapshot := uc.assess(signals, labels)
	uc.maybePublish(ctx, snapshot, "", "")
	return snapshot
}

func (uc *EvacuationService) assess(signals RiskSignals, labels risk.Labels) risk.Snapshot {
	thresholds := uc.thresholds
	if signals.Thresholds != nil {
		thresholds = signals.Thresholds.Normalize()
	}
	snapshot := risk.Assess(signals.Weather, signals.FloodOverride,
		signals.Crowd, signals.SurgeOverride, thresholds, labels)
	uc.metrics.RiskAssessments.WithLabelValues(snapshot.Tier.String()).Inc()
	return snapshot
}

func (uc *EvacuationService) maybePublish(ctx context.Context, s risk.Snapshot, strategy, shelterName string) {
	if uc.alerts == nil || s.Tier < risk.TierHigh {
		return
	}
	adv := alert.Advisory{
		Tier:            s.Tier.String(),
		Drivers:         s.Drivers,
		Recommendations: s.Recommendations,
		RouteStrategy:   strategy,
		ShelterName:     shelterName,
		IssuedAt:        s.AssessedAt,
	}
	if err := uc.alerts.Publish(ctx, adv); err != nil {
		uc.logger.Error("advisory publish failed", "tier", adv.Tier, "error", err)
	}
}

func (uc *EvacuationService) obtainGraph(ctx context.Context, online bool,
	center datastructure.Coordinate, radiusM float64) datastructure.Graph {

	if uc.cache != nil && online {
		if g, ok := uc.cache.Get(center, radiusM); ok {
			uc.metrics.GraphLoads.WithLabelValues("cache").Inc()
			return g
		}
	}

	g := uc.graphs.Obtain(ctx, online, center, radiusM)
	uc.metrics.GraphLoads.WithLabelValues(string(g.Source())).Inc()

	if uc.cache != nil && online && g.Source() == datastructure.GraphSourceNetwork {
		uc.cache.Put(center, radiusM, g)
	}
	return g
}

func (uc *EvacuationService) selectShelter(origin datastructure.Coordinate, name string, candidates []Shelter) Shelter {
	if len(candidates) == 0 {
		candidates = uc.shelters
	}
	if name != "" {
		for _, s := range candidates {
			if s.Name == name {
				return s
			}
		}
	}
	best := candidates[0]
	bestDist := math.Inf(1)
	for _, s := range candidates {
		d := geo.HaversineDistance(origin, s.Location)
		if d < bestDist {
			bestDist = d
			best = s
		}
	}
	return best
}

func etaMinutes(distKm, speedKmh float64) int {
	if speedKmh <= 0 {
		return 0
	}
	return int(distKm / speedKmh * 60)
}

// LiveLocation returns a jittered mock position for a state. Used by the demo
// GPS endpoint until real device feeds exist.
func (uc *EvacuationService) LiveLocation(state string, jitterMeters float64) datastructure.Coordinate {
	if uc.sim == nil {
		return gps.MockLocationForState(state)
	}
	return uc.sim.LiveLocation(state, jitterMeters)
}
