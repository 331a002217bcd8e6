// Package http exposes the impact computation over a JSON API, plus health,
// readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/emberwatch/fire-impact-service/internal/county"
	"github.com/emberwatch/fire-impact-service/internal/domain"
	"github.com/emberwatch/fire-impact-service/internal/geo"
	"github.com/emberwatch/fire-impact-service/internal/impact"
	"github.com/emberwatch/fire-impact-service/internal/observability"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// ImpactPublisher pushes computed results to a message broker. Optional;
// publish failures never fail the request.
type ImpactPublisher interface {
	Publish(ctx context.Context, req domain.SpreadRequest, result *domain.AggregateResult) error
}

// ImpactRecorder persists computed results. Optional; write failures never
// fail the request.
type ImpactRecorder interface {
	Record(ctx context.Context, req domain.SpreadRequest, result *domain.AggregateResult) error
}

// Options carries the request-independent knobs for the impact endpoint.
type Options struct {
	MatchStrategy   county.MatchStrategy
	WindGridSize    int
	WindGridSpanDeg float64
}

// Server exposes the impact API over HTTP.
type Server struct {
	httpServer *http.Server
	aggregator *impact.Aggregator
	publisher  ImpactPublisher
	recorder   ImpactRecorder
	opts       Options
	validate   *validator.Validate
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewServer creates an HTTP server with the impact route plus /healthz,
// /readyz, and /metrics. publisher and recorder may be nil when the
// corresponding sink is disabled.
func NewServer(addr string, agg *impact.Aggregator, ready ReadinessChecker,
	publisher ImpactPublisher, recorder ImpactRecorder, opts Options,
	logger *slog.Logger, metrics *observability.Metrics) *Server {

	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		aggregator: agg,
		publisher:  publisher,
		recorder:   recorder,
		opts:       opts,
		validate:   validator.New(),
		logger:     logger,
		metrics:    metrics,
	}

	mux.HandleFunc("POST /v1/impact", s.handleImpact)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// impactRequest is the wire shape of an impact computation. The origin can
// arrive either as a combined directional string ("32.95N 100.53W") or as
// numeric lat/lon; exactly one form is required. The numeric bounds pin the
// origin inside the projection's CONUS extent.
type impactRequest struct {
	Origin string   `json:"origin,omitempty"`
	Lat    *float64 `json:"lat,omitempty" validate:"omitempty,gte=20,lte=50"`
	Lon    *float64 `json:"lon,omitempty" validate:"omitempty,gte=-125,lte=-65"`

	RadiusKm         float64 `json:"radius_km" validate:"required,gt=0,lte=100"`
	WindSpeed        float64 `json:"wind_speed" validate:"gte=0,lte=100"`
	WindDirectionDeg float64 `json:"wind_direction_deg" validate:"gte=0,lte=360"`

	IncludeNearest   bool `json:"include_nearest,omitempty"`
	IncludeWindField bool `json:"include_wind_field,omitempty"`
}

// countyView is an AffectedCounty with the renderer's presentation fields
// attached: the clamped heat value, its red-scale color, and the affected
// share as a percentage for the summary table.
type countyView struct {
	domain.AffectedCounty
	AffectedSharePct float64 `json:"affected_share_pct"`
	Heat             float64 `json:"heat"`
	HeatColor        string  `json:"heat_color"`
}

type impactResponse struct {
	TotalContributingPopulation float64                `json:"total_contributing_population"`
	Counties                    []countyView           `json:"counties"`
	SpreadPolygon               []domain.Coordinate    `json:"spread_polygon"`
	ComputedAt                  time.Time              `json:"computed_at"`
	NearestCounties             []impact.NearestCounty `json:"nearest_counties,omitempty"`
	WindField                   *geo.WindField         `json:"wind_field,omitempty"`
}

func (s *Server) handleImpact(w http.ResponseWriter, r *http.Request) {
	var in impactRequest
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	origin, err := s.resolveOrigin(in)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.validate.Struct(in); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	req := domain.SpreadRequest{
		Origin:   origin,
		RadiusKm: in.RadiusKm,
		Wind:     domain.WindVector{Speed: in.WindSpeed, DirectionDeg: in.WindDirectionDeg},
	}

	result, err := s.aggregator.Compute(r.Context(), req)
	if err != nil {
		s.writeComputeError(w, err)
		return
	}

	resp := impactResponse{
		TotalContributingPopulation: result.TotalContributingPopulation,
		Counties:                    make([]countyView, 0, len(result.Counties)),
		SpreadPolygon:               result.SpreadPolygon,
		ComputedAt:                  result.ComputedAt,
	}
	for _, c := range result.Counties {
		h := domain.Heat(c.IntersectionFraction)
		resp.Counties = append(resp.Counties, countyView{
			AffectedCounty:   c,
			AffectedSharePct: h * 100,
			Heat:             h,
			HeatColor:        domain.HeatColor(h),
		})
	}

	if in.IncludeNearest {
		nearest, err := s.aggregator.Nearest(r.Context(), origin, s.opts.MatchStrategy)
		if err != nil {
			s.logger.Warn("nearest-county annotation failed", "error", err)
		} else {
			resp.NearestCounties = nearest
		}
	}
	if in.IncludeWindField {
		resp.WindField = geo.NewWindField(origin, req.Wind, s.opts.WindGridSize, s.opts.WindGridSpanDeg)
	}

	s.sink(r.Context(), req, result)
	writeJSON(w, http.StatusOK, resp)
}

// resolveOrigin picks the combined-string or numeric origin form. Exactly one
// must be present.
func (s *Server) resolveOrigin(in impactRequest) (domain.Coordinate, error) {
	if in.Origin != "" {
		if in.Lat != nil || in.Lon != nil {
			return domain.Coordinate{}, errors.New("provide either origin or lat/lon, not both")
		}
		c, err := domain.ParseCoordinate(in.Origin)
		if err != nil {
			return domain.Coordinate{}, err
		}
		if c.Lat < 20 || c.Lat > 50 || c.Lon < -125 || c.Lon > -65 {
			return domain.Coordinate{}, errors.New("origin outside the supported extent")
		}
		return c, nil
	}
	if in.Lat == nil || in.Lon == nil {
		return domain.Coordinate{}, errors.New("origin or lat/lon is required")
	}
	return domain.Coordinate{Lat: *in.Lat, Lon: *in.Lon}, nil
}

// sink forwards the result to the optional publisher and recorder. Failures
// are logged and counted but never surface to the client.
func (s *Server) sink(ctx context.Context, req domain.SpreadRequest, result *domain.AggregateResult) {
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, req, result); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Warn("publishing impact result failed", "error", err)
		}
	}
	if s.recorder != nil {
		if err := s.recorder.Record(ctx, req, result); err != nil {
			s.metrics.RecordErrors.Inc()
			s.logger.Warn("recording impact result failed", "error", err)
		}
	}
}

func (s *Server) writeComputeError(w http.ResponseWriter, err error) {
	var (
		ire *domain.InvalidRequestError
		pe  *domain.ParseError
		dse *domain.DataSourceError
	)
	switch {
	case errors.As(err, &ire), errors.As(err, &pe):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &dse):
		s.logger.Error("county dataset unavailable", "error", err)
		writeError(w, http.StatusServiceUnavailable, "county dataset unavailable")
	default:
		s.logger.Error("impact computation failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// validationMessage flattens the first field violation into a client-facing
// message.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid field " + verrs[0].Field()
	}
	return "invalid request"
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
