package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"crowdshield/domain"
	"crowdshield/pkg/datastructure"
	"crowdshield/pkg/guidance"
	"crowdshield/pkg/risk"
	"crowdshield/pkg/routing"
	"crowdshield/service"
	"crowdshield/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/twpayne/go-polyline"
)

type EvacuationService interface {
	PlanEvacuation(ctx context.Context, req service.PlanRequest) service.PlanResult
	AssessRisk(ctx context.Context, signals service.RiskSignals, labels risk.Labels) risk.Snapshot
	Dispatch(ctx context.Context, req service.DispatchRequest) service.DispatchResult
	LiveLocation(state string, jitterMeters float64) datastructure.Coordinate
}

type EvacuationHandler struct {
	svc EvacuationService
}

func EvacuationRouter(r *chi.Mux, svc EvacuationService) {
	handler := &EvacuationHandler{svc}

	r.Group(func(r chi.Router) {
		r.Route("/api/evacuations", func(r chi.Router) {
			r.Post("/route", handler.planEvacuation)
		})
		r.Route("/api/risk", func(r chi.Router) {
			r.Post("/assess", handler.assessRisk)
		})
		r.Route("/api/authority", func(r chi.Router) {
			r.Post("/dispatch", handler.dispatch)
		})
		r.Route("/api/gps", func(r chi.Router) {
			r.Get("/mock", handler.mockLocation)
		})
	})
}

type Coord struct {
	Lat float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon float64 `json:"lon" validate:"required,lt=180,gt=-180"`
}

type HazardRequest struct {
	Name     string  `json:"name"`
	Severity string  `json:"severity"`
	Ring     []Coord `json:"ring" validate:"required,min=3,dive"`
}

type CrowdPointRequest struct {
	Lat    float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon    float64 `json:"lon" validate:"required,lt=180,gt=-180"`
	People int     `json:"people" validate:"omitempty,gte=0"`
}

type SignalsRequest struct {
	RainfallMM  float64             `json:"rainfall_mm" validate:"omitempty,gte=0"`
	WindKph     float64             `json:"wind_kph" validate:"omitempty,gte=0"`
	Flood       bool                `json:"flood"`
	Crowd       []CrowdPointRequest `json:"crowd" validate:"omitempty,dive"`
	TotalPeople int                 `json:"total_people" validate:"omitempty,gte=0"`
	AreaM2      float64             `json:"area_m2" validate:"omitempty,gt=0"`
	Surge       bool                `json:"surge"`
	Thresholds  *risk.Thresholds    `json:"thresholds"`
}

type ShelterRequest struct {
	Name     string  `json:"name" validate:"required"`
	Lat      float64 `json:"lat" validate:"required,lt=90,gt=-90"`
	Lon      float64 `json:"lon" validate:"required,lt=180,gt=-180"`
	Capacity int     `json:"capacity" validate:"omitempty,gte=0"`
}

type RouteRequest struct {
	SrcLat   float64           `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon   float64           `json:"src_lon" validate:"required,lt=180,gt=-180"`
	Mode     string            `json:"mode" validate:"omitempty,oneof=shortest fastest safest"`
	Online   bool              `json:"online"`
	RadiusM  float64           `json:"radius_m" validate:"omitempty,gt=0"`
	Shelter  string            `json:"shelter"`
	Shelters []ShelterRequest  `json:"shelters" validate:"omitempty,dive"`
	Hazards  []HazardRequest   `json:"hazards" validate:"omitempty,dive"`
	Signals  *SignalsRequest   `json:"signals"`
	Labels   map[string]string `json:"labels"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	if s.SrcLat == 0 || s.SrcLon == 0 {
		return errors.New("invalid request")
	}
	if s.Mode == "" {
		s.Mode = string(routing.ModeSafest)
	}
	return nil
}

type ShelterResponse struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Capacity int     `json:"capacity"`
}

type RouteResponse struct {
	Path         string                 `json:"path"`
	Route        []Coord                `json:"route"`
	Strategy     string                 `json:"strategy"`
	DistanceKm   float64                `json:"distance_km"`
	BlockedEdges int                    `json:"blocked_edges"`
	ETAMinutes   int                    `json:"eta_minutes"`
	Shelter      ShelterResponse        `json:"shelter"`
	Instructions []guidance.Instruction `json:"instructions"`
	Risk         *risk.Snapshot         `json:"risk,omitempty"`
}

func NewRouteResponse(res service.PlanResult) *RouteResponse {
	route := make([]Coord, 0, len(res.Route.Points))
	for _, c := range res.Route.Points {
		route = append(route, Coord{Lat: c.Lat, Lon: c.Lon})
	}
	return &RouteResponse{
		Path:         encodePath(res.Route.Points),
		Route:        route,
		Strategy:     string(res.Route.Strategy),
		DistanceKm:   util.RoundFloat(res.Route.DistanceKm, 2),
		BlockedEdges: res.Route.BlockedEdges,
		ETAMinutes:   res.ETAMinutes,
		Shelter: ShelterResponse{
			Name:     res.Shelter.Name,
			Lat:      res.Shelter.Location.Lat,
			Lon:      res.Shelter.Location.Lon,
			Capacity: res.Shelter.Capacity,
		},
		Instructions: res.Instructions,
		Risk:         res.Risk,
	}
}

func encodePath(points []datastructure.Coordinate) string {
	coords := make([][]float64, 0, len(points))
	for _, c := range points {
		coords = append(coords, []float64{c.Lat, c.Lon})
	}
	return string(polyline.EncodeCoords(coords))
}

func (h *EvacuationHandler) planEvacuation(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	hazards, err := buildHazards(data.Hazards)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	res := h.svc.PlanEvacuation(r.Context(), service.PlanRequest{
		Origin:      datastructure.NewCoordinate(data.SrcLat, data.SrcLon),
		Mode:        routing.Mode(data.Mode),
		Online:      data.Online,
		RadiusM:     data.RadiusM,
		Hazards:     hazards,
		Shelters:    buildShelters(data.Shelters),
		ShelterName: data.Shelter,
		Signals:     buildSignals(data.Signals),
		Labels:      risk.Labels(data.Labels),
	})

	render.Status(r, http.StatusOK)
	render.JSON(w, r, NewRouteResponse(res))
}

type AssessRequest struct {
	// empty signals are legal: the scorers report no-data drivers instead
	Signals SignalsRequest    `json:"signals"`
	Labels  map[string]string `json:"labels"`
}

func (s *AssessRequest) Bind(r *http.Request) error {
	return nil
}

func (h *EvacuationHandler) assessRisk(w http.ResponseWriter, r *http.Request) {
	data := &AssessRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	snapshot := h.svc.AssessRisk(r.Context(), *buildSignals(&data.Signals), risk.Labels(data.Labels))

	render.Status(r, http.StatusOK)
	render.JSON(w, r, snapshot)
}

type DispatchHTTPRequest struct {
	Identifier  string          `json:"identifier" validate:"required"`
	SrcLat      float64         `json:"src_lat" validate:"required,lt=90,gt=-90"`
	SrcLon      float64         `json:"src_lon" validate:"required,lt=180,gt=-180"`
	IncidentLat float64         `json:"incident_lat" validate:"required,lt=90,gt=-90"`
	IncidentLon float64         `json:"incident_lon" validate:"required,lt=180,gt=-180"`
	Online      bool            `json:"online"`
	RadiusM     float64         `json:"radius_m" validate:"omitempty,gt=0"`
	Hazards     []HazardRequest `json:"hazards" validate:"omitempty,dive"`
}

func (s *DispatchHTTPRequest) Bind(r *http.Request) error {
	if s.Identifier == "" || s.SrcLat == 0 || s.SrcLon == 0 || s.IncidentLat == 0 || s.IncidentLon == 0 {
		return errors.New("invalid request")
	}
	return nil
}

type DispatchResponse struct {
	Identifier string   `json:"identifier"`
	Actions    []string `json:"actions"`
	Path       string   `json:"path"`
	Strategy   string   `json:"strategy"`
	ETAMinutes int      `json:"eta_minutes"`
	DistanceM  int      `json:"distance_m"`
}

func (h *EvacuationHandler) dispatch(w http.ResponseWriter, r *http.Request) {
	data := &DispatchHTTPRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	validate := validator.New()
	if err := validate.Struct(*data); err != nil {
		english := en.New()
		uni := ut.New(english, english)
		trans, _ := uni.GetTranslator("en")
		_ = enTranslations.RegisterDefaultTranslations(validate, trans)
		vv := translateError(err, trans)
		render.Render(w, r, ErrValidation(err, vv))
		return
	}

	hazards, err := buildHazards(data.Hazards)
	if err != nil {
		render.Render(w, r, ErrChi(err))
		return
	}

	res := h.svc.Dispatch(r.Context(), service.DispatchRequest{
		Identifier: data.Identifier,
		Origin:     datastructure.NewCoordinate(data.SrcLat, data.SrcLon),
		Incident:   datastructure.NewCoordinate(data.IncidentLat, data.IncidentLon),
		Online:     data.Online,
		RadiusM:    data.RadiusM,
		Hazards:    hazards,
	})

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &DispatchResponse{
		Identifier: res.Identifier,
		Actions:    res.Actions,
		Path:       encodePath(res.Route.Points),
		Strategy:   string(res.Route.Strategy),
		ETAMinutes: res.ETAMinutes,
		DistanceM:  res.DistanceM,
	})
}

type MockLocationResponse struct {
	State string  `json:"state"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

func (h *EvacuationHandler) mockLocation(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	jitter, _ := strconv.ParseFloat(r.URL.Query().Get("jitter_m"), 64)

	loc := h.svc.LiveLocation(state, jitter)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &MockLocationResponse{State: state, Lat: loc.Lat, Lon: loc.Lon})
}

func buildHazards(reqs []HazardRequest) ([]datastructure.HazardArea, error) {
	hazards := make([]datastructure.HazardArea, 0, len(reqs))
	for _, hz := range reqs {
		ring := make([]datastructure.Coordinate, 0, len(hz.Ring))
		for _, c := range hz.Ring {
			ring = append(ring, datastructure.NewCoordinate(c.Lat, c.Lon))
		}
		area := datastructure.NewHazardArea(hz.Name, hz.Severity, ring)
		if !area.Valid() {
			return nil, domain.WrapErrorf(nil, domain.ErrBadParamInput,
				"hazard %q has a degenerate ring", hz.Name)
		}
		hazards = append(hazards, area)
	}
	return hazards, nil
}

func buildSignals(req *SignalsRequest) *service.RiskSignals {
	if req == nil {
		return nil
	}
	points := make([]risk.CrowdPoint, 0, len(req.Crowd))
	for _, p := range req.Crowd {
		points = append(points, risk.CrowdPoint{Lat: p.Lat, Lon: p.Lon, People: p.People})
	}
	return &service.RiskSignals{
		Weather:       risk.Weather{RainfallMM: req.RainfallMM, WindKph: req.WindKph},
		FloodOverride: req.Flood,
		Crowd: risk.CrowdTelemetry{
			Points:      points,
			TotalPeople: req.TotalPeople,
			AreaM2:      req.AreaM2,
		},
		SurgeOverride: req.Surge,
		Thresholds:    req.Thresholds,
	}
}

func buildShelters(reqs []ShelterRequest) []service.Shelter {
	shelters := make([]service.Shelter, 0, len(reqs))
	for _, s := range reqs {
		shelters = append(shelters, service.Shelter{
			Name:     s.Name,
			Location: datastructure.NewCoordinate(s.Lat, s.Lon),
			Capacity: s.Capacity,
		})
	}
	return shelters
}

type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	StatusText    string   `json:"status"`          // user-level status message
	AppCode       int64    `json:"code,omitempty"`  // application-specific error code
	ErrorText     string   `json:"error,omitempty"` // application-level error message, for debugging
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 500,
		StatusText:     "Internal server error.",
		ErrorText:      err.Error(),
	}
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: 400,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

func ErrChi(err error) render.Renderer {
	statusText := ""
	switch getStatusCode(err) {
	case http.StatusNotFound:
		statusText = "Resource not found."
	case http.StatusInternalServerError:
		statusText = "Internal server error."
	case http.StatusBadRequest:
		statusText = "Bad request."
	default:
		statusText = "Error."
	}

	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: getStatusCode(err),
		StatusText:     statusText,
		ErrorText:      err.Error(),
	}
}

func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}
	var ierr *domain.Error
	if !errors.As(err, &ierr) {
		return http.StatusInternalServerError
	}
	switch ierr.Code() {
	case domain.ErrInternalServerError:
		return http.StatusInternalServerError
	case domain.ErrNoPathFound:
		return http.StatusNotFound
	case domain.ErrBadParamInput, domain.ErrInvalidGeometry:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	validatorErrs := err.(validator.ValidationErrors)
	for _, e := range validatorErrs {
		translatedErr := fmt.Errorf(e.Translate(trans))
		errs = append(errs, translatedErr)
	}
	return errs
}
