package web

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/rook-computer/watchface/internal/events"
	"github.com/rook-computer/watchface/internal/face"
	"github.com/rook-computer/watchface/internal/state"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const maxJSONBody = 64 << 10

type apiError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

type visibilityResponse struct {
	Visible    bool  `json:"visible"`
	Sleeping   bool  `json:"sleeping"`
	IntervalMS int64 `json:"intervalMs"`
}

type sampleRequest struct {
	BPM     *int       `json:"bpm"`
	TakenAt *time.Time `json:"takenAt,omitempty"`
}

// FrameRenderer renders one frame from a snapshot as PNG.
type FrameRenderer interface {
	RenderPNG(w io.Writer, snap state.State) error
}

// EventPublisher delivers lifecycle events to the running app.
type EventPublisher interface {
	Publish(ev events.Event) bool
}

// SampleRecorder stores raw heart-rate history samples.
type SampleRecorder interface {
	Record(ctx context.Context, takenAt time.Time, bpm int) error
}

// APIV1Deps are the collaborators behind the preview API. Nil entries turn
// the matching endpoints into 501s.
type APIV1Deps struct {
	Store      *state.Store
	Snapshot   func() state.State
	Frames     FrameRenderer
	Events     EventPublisher
	Visibility *face.Visibility
	History    SampleRecorder
}

func apiV1Router(deps APIV1Deps) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/snapshot", func(w http.ResponseWriter, r *http.Request) { handleSnapshot(w, r, deps) })
	mux.HandleFunc("/frame.png", func(w http.ResponseWriter, r *http.Request) { handleFrame(w, r, deps) })
	mux.HandleFunc("/sensors", func(w http.ResponseWriter, r *http.Request) { handleSensors(w, r, deps) })
	mux.HandleFunc("/heart-rate/samples", func(w http.ResponseWriter, r *http.Request) { handleSample(w, r, deps) })
	mux.HandleFunc("/lifecycle/", func(w http.ResponseWriter, r *http.Request) { handleLifecycle(w, r, deps) })
	mux.HandleFunc("/visibility", func(w http.ResponseWriter, r *http.Request) { handleVisibility(w, r, deps) })
	return mux
}

func handleSnapshot(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Snapshot == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "snapshot not configured")
		return
	}
	writeJSON(w, http.StatusOK, deps.Snapshot())
}

func handleFrame(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Snapshot == nil || deps.Frames == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "frame rendering not configured")
		return
	}
	// Render into a buffer so a failure can still produce a JSON error.
	var buf bytes.Buffer
	if err := deps.Frames.RenderPNG(&buf, deps.Snapshot()); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "render_failed", err.Error())
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func handleSensors(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if deps.Store == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "sensor store not configured")
		return
	}
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, deps.Store.Sensors())
	case http.MethodPost, http.MethodPatch:
		var update state.SensorUpdate
		if err := decodeJSON(r, &update); err != nil {
			writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
			return
		}
		deps.Store.Apply(update)
		writeJSON(w, http.StatusOK, deps.Store.Sensors())
	default:
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	}
}

func handleSample(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.History == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "heart-rate history not configured")
		return
	}
	var req sampleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if req.BPM == nil {
		writeAPIError(w, http.StatusBadRequest, "missing_bpm", "bpm is required")
		return
	}
	takenAt := time.Now()
	if req.TakenAt != nil {
		takenAt = *req.TakenAt
	}
	if err := deps.History.Record(r.Context(), takenAt, *req.BPM); err != nil {
		writeAPIError(w, http.StatusInternalServerError, "record_failed", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, okResponse{OK: true})
}

func handleLifecycle(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodPost {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Events == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "lifecycle events not configured")
		return
	}
	name := strings.Trim(strings.TrimPrefix(r.URL.Path, "/lifecycle/"), "/")
	ev, err := events.Parse(name)
	if err != nil {
		writeAPIError(w, http.StatusNotFound, "unknown_event", err.Error())
		return
	}
	if !deps.Events.Publish(ev) {
		writeAPIError(w, http.StatusServiceUnavailable, "event_dropped", "event queue full or closed")
		return
	}
	writeJSON(w, http.StatusAccepted, okResponse{OK: true})
}

func handleVisibility(w http.ResponseWriter, r *http.Request, deps APIV1Deps) {
	if r.Method != http.MethodGet {
		writeAPIError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
		return
	}
	if deps.Visibility == nil {
		writeAPIError(w, http.StatusNotImplemented, "not_implemented", "visibility not configured")
		return
	}
	writeJSON(w, http.StatusOK, visibilityResponse{
		Visible:    deps.Visibility.ShouldDraw(),
		Sleeping:   deps.Visibility.Sleeping(),
		IntervalMS: deps.Visibility.Interval().Milliseconds(),
	})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAPIError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, apiError{Error: code, Message: message})
}
