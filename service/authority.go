package service

import (
	"context"

	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/routing"
)

// Role-based playbooks keyed by the responder persona.
var playbooksRole = map[string][]string{
	"Local Authority":  {"Issue public advisory", "Activate shelters", "Coordinate transport"},
	"First Responder":  {"Dispatch ground team", "Prepare medical aid", "Coordinate with command"},
	"Community Leader": {"Open local shelter", "Broadcast instructions", "Assist elderly"},
}

// Severity-based playbooks keyed by tier name.
var playbooksSeverity = map[string][]string{
	"Critical": {"Dispatch Ambulance", "Deploy Rescue Boat"},
	"High":     {"Dispatch Fire Truck", "Send Medical Team"},
	"Medium":   {"Send Patrol", "Open Shelter"},
	"Low":      {"Monitor Situation"},
}

type DispatchRequest struct {
	Identifier string // a role (e.g. "Local Authority") or a tier (e.g. "Critical")
	Origin     datastructure.Coordinate
	Incident   datastructure.Coordinate
	Online     bool
	RadiusM    float64
	Hazards    []datastructure.HazardArea
}

type DispatchResult struct {
	Identifier string
	Actions    []string
	Route      datastructure.PlannedRoute
	ETAMinutes int
	DistanceM  int
}

// Dispatch selects a micro-playbook for the identifier and overlays a route
// with an ETA at response-vehicle speed. Unknown identifiers fall back to
// monitoring only.
func (uc *EvacuationService) Dispatch(ctx context.Context, req DispatchRequest) DispatchResult {
	actions, ok := playbooksRole[req.Identifier]
	if !ok {
		actions, ok = playbooksSeverity[req.Identifier]
	}
	if !ok {
		actions = []string{"Monitor Situation"}
	}

	g := uc.obtainGraph(ctx, req.Online, req.Origin, req.RadiusM)
	route := uc.planner.Route(g, req.Origin, req.Incident, routing.ModeShortest, req.Hazards)
	uc.metrics.RouteRequests.WithLabelValues("dispatch", string(route.Strategy)).Inc()

	eta := etaMinutes(route.DistanceKm, uc.dispatchSpeedKmh)

	uc.logger.Info("authority dispatched",
		"identifier", req.Identifier,
		"actions", len(actions),
		"strategy", string(route.Strategy),
		"eta_min", eta)

	return DispatchResult{
		Identifier: req.Identifier,
		Actions:    actions,
		Route:      route,
		ETAMinutes: eta,
		DistanceM:  int(route.DistanceKm * 1000),
	}
}
