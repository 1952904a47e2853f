package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/sprout/pkg/buildinfo"
	"github.com/matzehuels/sprout/pkg/compose"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/render/svg"
	"github.com/matzehuels/sprout/pkg/sheet"
	"github.com/matzehuels/sprout/pkg/specimen"
)

// Pot endpoint bounds, in viewport units.
const (
	potMinWidth, potMaxWidth   = 20.0, 280.0
	potMinHeight, potMaxHeight = 10.0, 80.0
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, plant.Stages())
}

func (s *Server) handlePlant(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Genome:   q.Get("genome"),
		Seed:     q.Get("seed"),
		PotStyle: q.Get("pot"),
	}
	if v := q.Get("stage"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInvalidStage, err, "invalid stage %q", v))
			return
		}
		opts.Stage = n
	}
	if err := applyRenderQuery(&opts, r); err != nil {
		s.writeError(w, err)
		return
	}
	s.renderPlant(w, r, opts)
}

// applyRenderQuery reads the format path parameter and the filters, scale
// and refresh query parameters.
func applyRenderQuery(opts *pipeline.Options, r *http.Request) error {
	opts.Formats = []string{chi.URLParam(r, "format")}
	q := r.URL.Query()
	if v := q.Get("filters"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid filters %q", v)
		}
		opts.NoFilters = !on
	}
	if v := q.Get("scale"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f > 8 {
			return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, 8], got %q", v)
		}
		opts.Scale = f
	}
	opts.Refresh = q.Get("refresh") == "1"
	return nil
}

func (s *Server) renderPlant(w http.ResponseWriter, r *http.Request, opts pipeline.Options) {
	opts = s.defaults(opts)
	opts.Logger = s.logger
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	format := opts.Formats[0]
	if res.CacheHit {
		w.Header().Set("X-Cache", "HIT")
	} else {
		w.Header().Set("X-Cache", "MISS")
	}
	writeArtifact(w, format, res.Artifacts[format])
}

func (s *Server) handlePot(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	style, err := pot.ParseStyle(q.Get("style"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	width, err := floatParam(q.Get("width"), 120, potMinWidth, potMaxWidth, "width")
	if err != nil {
		s.writeError(w, err)
		return
	}
	height, err := floatParam(q.Get("height"), 60, potMinHeight, potMaxHeight, "height")
	if err != nil {
		s.writeError(w, err)
		return
	}
	seed := q.Get("seed")
	if seed == "" {
		seed = "pot-" + style.String()
	}
	if err := errors.ValidateSeed(seed); err != nil {
		s.writeError(w, err)
		return
	}

	sc := compose.Pot(random.FromString(seed), pot.Options{
		At:     geom.Pt(compose.Viewport/2, 220),
		Width:  width,
		Height: height,
		Style:  style,
	}, compose.Viewport)
	var opts []svg.Option
	if q.Get("filters") == "false" {
		opts = append(opts, svg.WithoutFilters())
	}
	writeArtifact(w, pipeline.FormatSVG, svg.Render(sc, opts...))
}

func floatParam(v string, def, lo, hi float64, name string) (float64, error) {
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f < lo || f > hi {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be between %g and %g, got %q", name, lo, hi, v)
	}
	return f, nil
}

func (s *Server) handleSheetList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sheet.Names())
}

func (s *Server) handleSheet(w http.ResponseWriter, r *http.Request) {
	name, format := chi.URLParam(r, "name"), chi.URLParam(r, "format")
	if err := errors.ValidateFormat(format, pipeline.Formats()); err != nil {
		s.writeError(w, err)
		return
	}
	sh, err := sheet.Build(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	ro := pipeline.RenderOptions{Title: sh.Title, NoFilters: r.URL.Query().Get("filters") == "false"}
	out, hit, err := s.runner.RenderSheet(r.Context(), name, sh.Scene(), []string{format}, ro, false)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if hit {
		w.Header().Set("X-Cache", "HIT")
	}
	writeArtifact(w, format, out[format])
}

// specimenRequest is the POST /v1/specimens body.
type specimenRequest struct {
	Name     string `json:"name"`
	Genome   string `json:"genome"`
	Stage    int    `json:"stage"`
	Seed     string `json:"seed"`
	PotStyle string `json:"pot_style"`
	Notes    string `json:"notes"`
}

func (s *Server) handleCreateSpecimen(w http.ResponseWriter, r *http.Request) {
	var req specimenRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if req.Stage == 0 {
		req.Stage = pipeline.DefaultStage
	}
	if req.Genome == "" {
		req.Genome = pipeline.DefaultGenome
	}
	sp, err := specimen.New(req.Name, req.Genome, req.Stage, req.Seed, req.PotStyle)
	if err != nil {
		s.writeError(w, err)
		return
	}
	sp.Notes = req.Notes
	if err := s.store.Save(r.Context(), sp); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/specimens/"+sp.ID)
	writeJSON(w, http.StatusCreated, sp)
}

func (s *Server) handleListSpecimens(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if list == nil {
		list = []*specimen.Specimen{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetSpecimen(w http.ResponseWriter, r *http.Request) {
	sp, err := specimen.Lookup(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (s *Server) handleSpecimenPlant(w http.ResponseWriter, r *http.Request) {
	sp, err := specimen.Lookup(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts := sp.Options()
	if err := applyRenderQuery(&opts, r); err != nil {
		s.writeError(w, err)
		return
	}
	s.renderPlant(w, r, opts)
}

func (s *Server) handleDeleteSpecimen(w http.ResponseWriter, r *http.Request) {
	sp, err := specimen.Lookup(r.Context(), s.store, chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), sp.ID); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeArtifact(w http.ResponseWriter, format string, data []byte) {
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "public, max-age=86400")
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorBody is the JSON error response.
type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

// statusFor maps error codes to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	msg := errors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
		msg = fmt.Sprintf("internal error (%s)", code)
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}
