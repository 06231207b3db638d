// Package server exposes the tilt optimization engine over HTTP. Searches
// run as asynchronous jobs that callers poll and may cancel.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/heliofit/heliofit/internal/config"
	"github.com/heliofit/heliofit/internal/logging"
	"github.com/heliofit/heliofit/internal/optimization"
	"github.com/heliofit/heliofit/internal/solar"
)

// Logger defines the logging interface used by the server.
// This allows us to be flexible with our logging implementation.
type Logger interface {
	Debug(msg string, fields ...map[string]interface{})
	Info(msg string, fields ...map[string]interface{})
	Warn(msg string, fields ...map[string]interface{})
	Error(msg string, fields ...map[string]interface{})
	Fatal(msg string, fields ...map[string]interface{})
	WithFields(fields map[string]interface{}) *logging.Logger
}

var (
	jobsStarted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heliofit_jobs_started_total",
		Help: "Optimization jobs accepted, by kind and search method.",
	}, []string{"kind", "method"})

	jobsFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "heliofit_jobs_finished_total",
		Help: "Optimization jobs reaching a terminal state, by kind and status.",
	}, []string{"kind", "status"})
)

// Job statuses.
const (
	StatusPending   = "pending"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Job tracks one asynchronous search. Access is guarded by the server's
// jobs mutex.
type Job struct {
	ID          string     `json:"id"`
	Kind        string     `json:"kind"` // "optimize", "compare", "sensitivity"
	Status      string     `json:"status"`
	StartTime   time.Time  `json:"start_time"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	LastUpdated time.Time  `json:"last_updated"`

	Result      *optimization.Result           `json:"result,omitempty"`
	Comparison  *optimization.ComparisonResult `json:"comparison,omitempty"`
	Sensitivity []optimization.EvaluationRecord `json:"sensitivity,omitempty"`
	Error       string                         `json:"error,omitempty"`

	cancel context.CancelFunc
}

// Server implements the HTTP API of the optimization service.
type Server struct {
	cfg    *config.Config
	logger Logger

	jobs   map[string]*Job
	jobsMu sync.RWMutex
}

// NewServer creates a new server instance with the given config and logger.
func NewServer(cfg *config.Config, logger Logger) *Server {
	return &Server{
		cfg:    cfg,
		logger: logger,
		jobs:   make(map[string]*Job),
	}
}

func (s *Server) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/optimize", s.handleOptimize)
		r.Post("/compare", s.handleCompare)
		r.Post("/sensitivity", s.handleSensitivity)
		r.Get("/jobs/{id}", s.handleJobStatus)
		r.Delete("/jobs/{id}", s.handleJobCancel)
	})
}

// panelParams describes the panel under optimization.
type panelParams struct {
	LatitudeDeg float64 `json:"latitude_deg"`
	PanelAreaM2 float64 `json:"panel_area_m2"`
	Efficiency  float64 `json:"efficiency"`
}

// objectiveParams selects which energy figure is maximized.
type objectiveParams struct {
	// Mode is "annual" (default) or "daily".
	Mode      string `json:"mode"`
	DayOfYear int    `json:"day_of_year"`
}

type optimizeRequest struct {
	Panel     panelParams     `json:"panel"`
	Objective objectiveParams `json:"objective"`
	Method    string          `json:"method"`

	MinAngleDeg float64 `json:"min_angle_deg"`
	MaxAngleDeg float64 `json:"max_angle_deg"`

	StepDeg           float64 `json:"step_deg"`
	ToleranceDeg      float64 `json:"tolerance_deg"`
	InitialAngleDeg   float64 `json:"initial_angle_deg"`
	LearningRate      float64 `json:"learning_rate"`
	GradientTolerance float64 `json:"gradient_tolerance"`
	MaxIterations     int     `json:"max_iterations"`
}

type compareRequest struct {
	Panel     panelParams                 `json:"panel"`
	Objective objectiveParams             `json:"objective"`
	Bounds    optimization.Bounds         `json:"bounds"`
	Options   optimization.CompareOptions `json:"options"`
}

type sensitivityRequest struct {
	Panel      panelParams     `json:"panel"`
	Objective  objectiveParams `json:"objective"`
	OptimumDeg float64         `json:"optimum_deg"`
	WindowDeg  float64         `json:"window_deg"`
	Samples    int             `json:"samples"`
}

// buildObjective constructs the energy objective a request describes.
func buildObjective(panel panelParams, obj objectiveParams) (optimization.Objective, error) {
	m, err := solar.NewModel(solar.PanelConfig{
		LatitudeDeg: panel.LatitudeDeg,
		PanelAreaM2: panel.PanelAreaM2,
		Efficiency:  panel.Efficiency,
	})
	if err != nil {
		return nil, err
	}
	switch obj.Mode {
	case "", "annual":
		return optimization.AnnualObjective(m), nil
	case "daily":
		return optimization.DailyObjective(m, obj.DayOfYear), nil
	default:
		return nil, fmt.Errorf("unknown objective mode %q", obj.Mode)
	}
}

// buildSearcher maps a request onto a search strategy, filling unset
// parameters from the server's configured defaults.
func (s *Server) buildSearcher(req optimizeRequest) (optimization.Searcher, error) {
	opt := s.cfg.Optimizer
	switch req.Method {
	case "brute_force":
		step := req.StepDeg
		if step == 0 {
			step = opt.BruteForceStepDeg
		}
		return optimization.BruteForce{StepDeg: step}, nil
	case "ternary_search":
		tol := req.ToleranceDeg
		if tol == 0 {
			tol = opt.ToleranceDeg
		}
		return optimization.Ternary{ToleranceDeg: tol}, nil
	case "golden_section":
		tol := req.ToleranceDeg
		if tol == 0 {
			tol = opt.ToleranceDeg
		}
		return optimization.GoldenSection{ToleranceDeg: tol}, nil
	case "gradient_ascent":
		g := optimization.GradientAscent{
			InitialAngleDeg:   req.InitialAngleDeg,
			LearningRate:      req.LearningRate,
			GradientTolerance: req.GradientTolerance,
			MaxIterations:     req.MaxIterations,
		}
		if g.LearningRate == 0 {
			g.LearningRate = opt.LearningRate
		}
		if g.GradientTolerance == 0 {
			g.GradientTolerance = opt.GradientTolerance
		}
		if g.MaxIterations == 0 {
			g.MaxIterations = opt.MaxIterations
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown method %q", req.Method)
	}
}

func (s *Server) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req optimizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	f, err := buildObjective(req.Panel, req.Objective)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	searcher, err := s.buildSearcher(req)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	bounds := optimization.Bounds{MinDeg: req.MinAngleDeg, MaxDeg: req.MaxAngleDeg}
	if bounds.MaxDeg == 0 {
		bounds.MaxDeg = optimization.DomainMaxDeg
	}
	if err := bounds.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	job := s.startJob("optimize", searcher.Name(), func(ctx context.Context, job *Job) error {
		res, err := searcher.Search(cancellable(ctx, f), bounds)
		if res != nil {
			job.Result = res
		}
		return err
	})
	s.respondAccepted(w, job)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	f, err := buildObjective(req.Panel, req.Objective)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	bounds := req.Bounds
	if bounds.MaxDeg == 0 {
		bounds.MaxDeg = optimization.DomainMaxDeg
	}
	if err := bounds.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}

	job := s.startJob("compare", "all", func(ctx context.Context, job *Job) error {
		cmp, err := optimization.CompareMethods(cancellable(ctx, f), bounds, req.Options)
		if cmp != nil {
			job.Comparison = cmp
		}
		return err
	})
	s.respondAccepted(w, job)
}

func (s *Server) handleSensitivity(w http.ResponseWriter, r *http.Request) {
	var req sensitivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		return
	}

	f, err := buildObjective(req.Panel, req.Objective)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err)
		return
	}
	window := req.WindowDeg
	if window == 0 {
		window = s.cfg.Optimizer.SensitivityWindowDeg
	}
	samples := req.Samples
	if samples == 0 {
		samples = s.cfg.Optimizer.SensitivitySamples
	}

	job := s.startJob("sensitivity", "grid", func(ctx context.Context, job *Job) error {
		records, err := optimization.SensitivityAnalysis(cancellable(ctx, f), req.OptimumDeg, window, samples)
		if records != nil {
			job.Sensitivity = records
		}
		return err
	})
	s.respondAccepted(w, job)
}

func (s *Server) handleJobStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.jobsMu.RLock()
	job, ok := s.jobs[id]
	s.jobsMu.RUnlock()
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("job %s not found", id))
		return
	}

	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	s.respondJSON(w, http.StatusOK, job)
}

func (s *Server) handleJobCancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		s.respondError(w, http.StatusNotFound, fmt.Errorf("job %s not found", id))
		return
	}
	switch job.Status {
	case StatusCompleted, StatusFailed, StatusCancelled:
		s.respondError(w, http.StatusConflict, fmt.Errorf("cannot cancel job with status %s", job.Status))
		return
	}

	job.cancel()
	job.Status = StatusCancelled
	now := time.Now()
	job.EndTime = &now
	job.LastUpdated = now
	jobsFinished.WithLabelValues(job.Kind, StatusCancelled).Inc()

	s.logger.Info("Job cancelled", map[string]interface{}{"job_id": id})
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "cancellation requested"})
}

// startJob registers a pending job and runs fn on a goroutine. fn writes its
// output onto the job under the jobs mutex via the terminal-state update.
func (s *Server) startJob(kind, method string, fn func(ctx context.Context, job *Job) error) *Job {
	ctx, cancel := context.WithCancel(context.Background())
	now := time.Now()
	job := &Job{
		ID:          fmt.Sprintf("job_%d", now.UnixNano()),
		Kind:        kind,
		Status:      StatusPending,
		StartTime:   now,
		LastUpdated: now,
		cancel:      cancel,
	}

	s.jobsMu.Lock()
	s.jobs[job.ID] = job
	s.jobsMu.Unlock()

	jobsStarted.WithLabelValues(kind, method).Inc()
	s.logger.Info("Job started", map[string]interface{}{
		"job_id": job.ID,
		"kind":   kind,
		"method": method,
	})

	go s.runJob(ctx, job, fn)
	return job
}

func (s *Server) runJob(ctx context.Context, job *Job, fn func(ctx context.Context, job *Job) error) {
	s.jobsMu.Lock()
	if job.Status == StatusCancelled {
		s.jobsMu.Unlock()
		return
	}
	job.Status = StatusRunning
	job.LastUpdated = time.Now()
	s.jobsMu.Unlock()

	// The search itself runs without the lock. Output fields are written to
	// a scratch job so the shared one is only touched under the lock below.
	scratch := &Job{}
	err := fn(ctx, scratch)

	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()

	if job.Status == StatusCancelled {
		// Cancelled while running. The cancel handler already finalized it.
		return
	}

	job.Result = scratch.Result
	job.Comparison = scratch.Comparison
	job.Sensitivity = scratch.Sensitivity

	switch {
	case err == nil:
		job.Status = StatusCompleted
	case errors.Is(err, context.Canceled):
		job.Status = StatusCancelled
	default:
		// Partial results survive non-convergence.
		var nce *optimization.NonConvergenceError
		if errors.As(err, &nce) && scratch.Result != nil {
			job.Status = StatusCompleted
			job.Error = err.Error()
		} else {
			job.Status = StatusFailed
			job.Error = err.Error()
			s.logger.Error("Job failed", map[string]interface{}{
				"job_id": job.ID,
				"error":  err.Error(),
			})
		}
	}

	now := time.Now()
	job.EndTime = &now
	job.LastUpdated = now
	jobsFinished.WithLabelValues(job.Kind, job.Status).Inc()
}

// cancellable aborts an objective as soon as the job context is cancelled.
func cancellable(ctx context.Context, f optimization.Objective) optimization.Objective {
	return func(angleDeg float64) (float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		return f(angleDeg)
	}
}

// Close cancels every job that has not reached a terminal state.
func (s *Server) Close() error {
	s.jobsMu.Lock()
	defer s.jobsMu.Unlock()
	for _, job := range s.jobs {
		if job.cancel != nil {
			job.cancel()
		}
	}
	return nil
}

func (s *Server) respondAccepted(w http.ResponseWriter, job *Job) {
	s.jobsMu.RLock()
	defer s.jobsMu.RUnlock()
	s.respondJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.ID,
		"status": job.Status,
	})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("Response encoding failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, err error) {
	s.logger.Error("Request error", map[string]interface{}{
		"status":  status,
		"message": err.Error(),
	})
	s.respondJSON(w, status, map[string]string{"error": err.Error()})
}
