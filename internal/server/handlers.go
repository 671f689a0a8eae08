package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/semmlerino/spritesplit/internal/detect"
	"github.com/semmlerino/spritesplit/internal/sheet"
)

// maxUploadBytes caps the request body to keep a single upload from
// exhausting memory.
const maxUploadBytes = 64 << 20

// errorBody is the JSON error envelope.
type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

// gridResponse wraps a grid-mode detection result with sheet metadata.
type gridResponse struct {
	SheetWidth  int                `json:"sheet_width"`
	SheetHeight int                `json:"sheet_height"`
	Best        detect.Candidate   `json:"best"`
	Candidates  []detect.Candidate `json:"candidates"`
}

// spritesResponse wraps an irregular-mode detection result.
type spritesResponse struct {
	SheetWidth  int              `json:"sheet_width"`
	SheetHeight int              `json:"sheet_height"`
	Sprites     []detect.Cluster `json:"sprites"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleDetectGrid runs grid-mode detection on an uploaded sheet.
//
// The sheet is supplied either as a multipart form file named "sheet" or
// as the raw request body. Detection options default to the server
// configuration and can be overridden per request with query parameters:
// min_frames, max_frames, strip_aspect_threshold, alpha_threshold, and
// color_tolerance.
func (s *Server) handleDetectGrid(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.loadSheet(w, r)
	if !ok {
		return
	}

	cfg := s.cfg.GridConfig()
	if err := overrideGrid(&cfg, r); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	res, err := detect.DetectGrid(sh, cfg)
	if err != nil {
		s.writeError(w, r, detectStatus(err), err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, gridResponse{
		SheetWidth:  sh.Width(),
		SheetHeight: sh.Height(),
		Best:        res.Best,
		Candidates:  res.Candidates,
	})
}

// handleDetectSprites runs irregular-mode detection on an uploaded sheet.
//
// Query parameter overrides: noise_area_threshold, merge_proximity_px,
// alpha_threshold, and color_tolerance.
func (s *Server) handleDetectSprites(w http.ResponseWriter, r *http.Request) {
	sh, ok := s.loadSheet(w, r)
	if !ok {
		return
	}

	cfg := s.cfg.IrregularConfig()
	if err := overrideIrregular(&cfg, r); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	clusters, err := detect.DetectIrregular(sh, cfg)
	if err != nil {
		s.writeError(w, r, detectStatus(err), err)
		return
	}

	s.writeJSON(w, r, http.StatusOK, spritesResponse{
		SheetWidth:  sh.Width(),
		SheetHeight: sh.Height(),
		Sprites:     clusters,
	})
}

// loadSheet decodes the uploaded image and wraps it in a Sheet. On failure
// it writes the error response and returns ok=false.
func (s *Server) loadSheet(w http.ResponseWriter, r *http.Request) (*sheet.Sheet, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	body := r.Body
	if err := r.ParseMultipartForm(maxUploadBytes); err == nil {
		f, _, ferr := r.FormFile("sheet")
		if ferr != nil {
			s.writeError(w, r, http.StatusBadRequest,
				fmt.Errorf("multipart request is missing the \"sheet\" file: %w", ferr))
			return nil, false
		}
		defer f.Close()
		body = f
	}

	img, _, err := image.Decode(body)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest,
			fmt.Errorf("%w: failed to decode sheet: %v", sheet.ErrInvalidImage, err))
		return nil, false
	}

	opts := s.cfg.SheetOptions()
	if err := overrideSheet(&opts, r); err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}

	sh, err := sheet.New(img, opts)
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return nil, false
	}
	return sh, true
}

func overrideGrid(cfg *detect.GridConfig, r *http.Request) error {
	if err := intParam(r, "min_frames", &cfg.MinFrames); err != nil {
		return err
	}
	if err := intParam(r, "max_frames", &cfg.MaxFrames); err != nil {
		return err
	}
	return floatParam(r, "strip_aspect_threshold", &cfg.StripAspectThreshold)
}

func overrideIrregular(cfg *detect.IrregularConfig, r *http.Request) error {
	if err := intParam(r, "noise_area_threshold", &cfg.NoiseAreaThreshold); err != nil {
		return err
	}
	return intParam(r, "merge_proximity_px", &cfg.MergeProximityPx)
}

func overrideSheet(opts *sheet.Options, r *http.Request) error {
	alpha := int(opts.AlphaThreshold)
	if err := intParam(r, "alpha_threshold", &alpha); err != nil {
		return err
	}
	if alpha < 0 || alpha > 255 {
		return fmt.Errorf("alpha_threshold must be in [0, 255], got %d", alpha)
	}
	opts.AlphaThreshold = uint8(alpha)
	return floatParam(r, "color_tolerance", &opts.ColorTolerance)
}

func intParam(r *http.Request, name string, dst *int) error {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", name, raw)
	}
	*dst = v
	return nil
}

func floatParam(r *http.Request, name string, dst *float64) error {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %q", name, raw)
	}
	*dst = v
	return nil
}

// detectStatus maps detection errors onto HTTP statuses: bad inputs are
// 400, sheets the detector legitimately cannot segment are 422.
func detectStatus(err error) int {
	switch {
	case errors.Is(err, detect.ErrInvalidConfig), errors.Is(err, sheet.ErrInvalidImage):
		return http.StatusBadRequest
	case errors.Is(err, detect.ErrNoCandidates), errors.Is(err, detect.ErrNoForeground):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "id", requestIDFrom(r.Context()), "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.writeJSON(w, r, status, errorBody{
		Error:     err.Error(),
		RequestID: requestIDFrom(r.Context()),
	})
}
