package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ha1tch/qplot/internal/render"
	"github.com/ha1tch/qplot/pkg/canvas"
	"github.com/ha1tch/qplot/pkg/chart"
	"github.com/ha1tch/qplot/pkg/simulation"
)

const (
	renderIDHeader = "X-Render-ID"
	maxBodyBytes   = 16 << 20
	maxDimension   = 8192
)

const (
	formatPNG = render.FormatPNG
	formatSVG = render.FormatSVG
)

var errBadQuery = errors.New("invalid query parameter")

// writeJSON writes data as a JSON response
func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// writeText writes a plain text response
func (s *Server) writeText(w http.ResponseWriter, status int, text string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, text)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleRender decodes a simulation message and answers with the chart of
// its state vector. A simulationError message is answered with its error
// text as-is.
func (s *Server) handleRender(f render.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderID := uuid.NewString()
		log := s.log.With().Str("render_id", renderID).Str("format", string(f)).Logger()
		w.Header().Set(renderIDHeader, renderID)

		opts, err := s.renderOptions(r)
		if err != nil {
			s.writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		opts.Log = log

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			s.writeText(w, http.StatusRequestEntityTooLarge, err.Error())
			return
		}
		msg, err := simulation.DecodeMessage(r.Header.Get("Content-Type"), body)
		if err != nil {
			s.writeText(w, http.StatusBadRequest, err.Error())
			return
		}

		var out bytes.Buffer
		err = simulation.Deliver(msg,
			func(res simulation.Result) error {
				return render.To(&out, f, res.Statevector, opts)
			},
			func(text string) {
				log.Debug().Str("error", text).Msg("Simulation error forwarded")
				s.writeText(w, http.StatusUnprocessableEntity, text)
			})
		if err != nil {
			log.Warn().Err(err).Msg("Render rejected")
			s.writeText(w, http.StatusBadRequest, err.Error())
			return
		}
		if msg.Type != simulation.TypeComplete {
			return
		}

		w.Header().Set("Content-Type", f.ContentType())
		w.WriteHeader(http.StatusOK)
		if _, err := out.WriteTo(w); err != nil {
			log.Error().Err(err).Msg("Failed to write render")
		}
	}
}

// renderOptions reads width, height and padding overrides from the query.
func (s *Server) renderOptions(r *http.Request) (render.Options, error) {
	opts := render.DefaultOptions()
	opts.Width, opts.Height = s.cfg.Width, s.cfg.Height

	q := r.URL.Query()
	for _, dim := range []struct {
		name string
		dst  *int
	}{{"width", &opts.Width}, {"height", &opts.Height}} {
		v := q.Get(dim.name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > maxDimension {
			return opts, fmt.Errorf("%s=%q: %w", dim.name, v, errBadQuery)
		}
		*dim.dst = n
	}
	if area := int64(opts.Width) * int64(opts.Height); area > canvas.MaxRasterPixels {
		return opts, fmt.Errorf("%dx%d exceeds %d pixels: %w",
			opts.Width, opts.Height, canvas.MaxRasterPixels, errBadQuery)
	}

	for _, side := range []struct {
		name string
		opt  func(float64) chart.PaddingOption
	}{{"top", chart.Top}, {"right", chart.Right}, {"bottom", chart.Bottom}, {"left", chart.Left}} {
		v := q.Get(side.name)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
			return opts, fmt.Errorf("%s=%q: %w", side.name, v, errBadQuery)
		}
		opts.Padding = append(opts.Padding, side.opt(n))
	}
	return opts, nil
}
