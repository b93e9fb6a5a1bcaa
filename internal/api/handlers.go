// Package api exposes the HTTP handlers for the workout tracker.
package api

import (
	"encoding/json"
	"errors"
	"log"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"example.com/workouts/internal/domain"
	"example.com/workouts/internal/observability"
	"example.com/workouts/internal/web"
)

// maxBodyBytes caps form and JSON submissions.
const maxBodyBytes = 1 << 20

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service  *domain.Service
	renderer *web.Renderer
	logger   *log.Logger
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service, renderer *web.Renderer) *Handler {
	return &Handler{
		service:  service,
		renderer: renderer,
		logger:   log.New(log.Writer(), "[api] ", log.LstdFlags),
	}
}

// Routes builds the router serving every page plus health checks.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	h.RegisterRoutes(r)
	return r
}

// RegisterRoutes wires endpoints to r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/healthz", healthz)
	r.Route("/workouts", func(r chi.Router) {
		r.Get("/", h.listWorkouts)
		r.Get("/create", h.createForm)
		r.Post("/create", h.createWorkout)
		r.Get("/view/{id}", h.viewWorkout)
		r.Get("/edit/{id}", h.editForm)
		r.Post("/edit/{id}", h.updateWorkout)
	})
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type workoutsPage struct {
	Workouts []domain.Workout
}

type workoutPage struct {
	Workout domain.Workout
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, web.PageHome, nil)
}

func (h *Handler) listWorkouts(w http.ResponseWriter, r *http.Request) {
	workouts, err := h.service.ListWorkouts(r.Context())
	if err != nil {
		h.serverError(w, "fetching workouts", err)
		return
	}
	h.render(w, http.StatusOK, web.PageWorkouts, workoutsPage{Workouts: workouts})
}

func (h *Handler) createForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, web.PageCreateWorkout, nil)
}

func (h *Handler) createWorkout(w http.ResponseWriter, r *http.Request) {
	input, ok := h.validate(w, r)
	if !ok {
		return
	}

	if _, err := h.service.CreateWorkout(r.Context(), input); err != nil {
		h.serverError(w, "saving workout", err)
		return
	}
	http.Redirect(w, r, "/workouts", http.StatusFound)
}

func (h *Handler) viewWorkout(w http.ResponseWriter, r *http.Request) {
	workout, err := h.service.GetWorkout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, "fetching workout details", err)
		return
	}
	h.render(w, http.StatusOK, web.PageViewWorkout, workoutPage{Workout: *workout})
}

func (h *Handler) editForm(w http.ResponseWriter, r *http.Request) {
	workout, err := h.service.GetWorkout(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.lookupError(w, "fetching workout details", err)
		return
	}
	h.render(w, http.StatusOK, web.PageEditWorkout, workoutPage{Workout: *workout})
}

func (h *Handler) updateWorkout(w http.ResponseWriter, r *http.Request) {
	input, ok := h.validate(w, r)
	if !ok {
		return
	}

	if _, err := h.service.UpdateWorkout(r.Context(), chi.URLParam(r, "id"), input); err != nil {
		h.lookupError(w, "updating workout", err)
		return
	}
	http.Redirect(w, r, "/workouts", http.StatusFound)
}

// validate reads the submission and writes a 400 response when any field is rejected.
func (h *Handler) validate(w http.ResponseWriter, r *http.Request) (domain.WorkoutInput, bool) {
	raw := readSubmission(w, r)
	input, violations := domain.Validate(raw)
	if len(violations) > 0 {
		for _, v := range violations {
			observability.RecordViolation(v.Field, string(v.Kind))
		}
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: toViolationViews(violations)})
		return domain.WorkoutInput{}, false
	}
	return input, true
}

// lookupError maps missing or malformed ids to 404 and everything else to 500.
func (h *Handler) lookupError(w http.ResponseWriter, action string, err error) {
	if errors.Is(err, domain.ErrWorkoutNotFound) || errors.Is(err, domain.ErrInvalidID) {
		writeText(w, http.StatusNotFound, "Workout not found")
		return
	}
	h.serverError(w, action, err)
}

func (h *Handler) serverError(w http.ResponseWriter, action string, err error) {
	h.logger.Printf("error %s: %v", action, err)
	writeText(w, http.StatusInternalServerError, "Internal Server Error")
}

func (h *Handler) render(w http.ResponseWriter, status int, page string, data any) {
	if err := h.renderer.Render(w, status, page, data); err != nil {
		h.serverError(w, "rendering "+page, err)
	}
}

// readSubmission accepts urlencoded forms and JSON bodies. JSON values may be
// strings or numbers; anything unreadable becomes an empty submission.
func readSubmission(w http.ResponseWriter, r *http.Request) domain.RawWorkout {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/json" {
		var body map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			return domain.RawWorkout{}
		}
		return domain.RawWorkout{
			ExerciseName:     jsonString(body[domain.FieldExerciseName]),
			ExerciseDate:     jsonString(body[domain.FieldExerciseDate]),
			ExerciseDuration: jsonString(body[domain.FieldExerciseDuration]),
		}
	}

	if err := r.ParseForm(); err != nil {
		return domain.RawWorkout{}
	}
	return domain.RawWorkout{
		ExerciseName:     r.PostForm.Get(domain.FieldExerciseName),
		ExerciseDate:     r.PostForm.Get(domain.FieldExerciseDate),
		ExerciseDuration: r.PostForm.Get(domain.FieldExerciseDuration),
	}
}

func jsonString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return strconv.FormatBool(value)
	default:
		return ""
	}
}

// ViolationView mirrors the field error shape clients of the original service expect.
type ViolationView struct {
	Type     string `json:"type"`
	Location string `json:"location"`
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	Msg      string `json:"msg"`
	Value    string `json:"value"`
}

// ValidationErrorResponse is the 400 body for rejected submissions.
type ValidationErrorResponse struct {
	Errors []ViolationView `json:"errors"`
}

func toViolationViews(violations domain.Violations) []ViolationView {
	views := make([]ViolationView, 0, len(violations))
	for _, v := range violations {
		views = append(views, ViolationView{
			Type:     "field",
			Location: "body",
			Path:     v.Field,
			Kind:     string(v.Kind),
			Msg:      v.Message,
			Value:    v.Value,
		})
	}
	return views
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
