package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/sprout/pkg/cache"
	"github.com/matzehuels/sprout/pkg/errors"
)

func TestValidateAndSetDefaults(t *testing.T) {
	var o Options
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if o.Genome != "2,3,2,1" {
		t.Errorf("Genome = %q", o.Genome)
	}
	if o.Stage != 4 {
		t.Errorf("Stage = %d", o.Stage)
	}
	if o.Seed != "growth-4" {
		t.Errorf("Seed = %q", o.Seed)
	}
	if o.PotStyle != "tapered" {
		t.Errorf("PotStyle = %q", o.PotStyle)
	}
	if !slices.Equal(o.Formats, []string{"svg"}) {
		t.Errorf("Formats = %v", o.Formats)
	}
	if o.Scale != DefaultScale {
		t.Errorf("Scale = %v", o.Scale)
	}
	if o.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}
	if o.PlantGenome().Stems() != 2 || o.Input().Time() != 4 {
		t.Errorf("parsed values = %v, %d", o.PlantGenome(), o.Input().Time())
	}
}

func TestValidateAndSetDefaultsSeedPrefix(t *testing.T) {
	o := Options{Stage: 2, SeedPrefix: "fern"}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Seed != "fern-2" {
		t.Errorf("Seed = %q, want fern-2", o.Seed)
	}
}

func TestValidateAndSetDefaultsNormalizes(t *testing.T) {
	o := Options{Genome: "[1, 2, 3]", PotStyle: "BOWL", Formats: []string{"SVG", " json", "svg"}}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Genome != "1,2,3,0" {
		t.Errorf("Genome = %q", o.Genome)
	}
	if o.PotStyle != "bowl" {
		t.Errorf("PotStyle = %q", o.PotStyle)
	}
	if !slices.Equal(o.Formats, []string{"svg", "json"}) {
		t.Errorf("Formats = %v", o.Formats)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"zero stems", Options{Genome: "0,1,1,0"}, errors.ErrCodeInvalidGenome},
		{"garbage genome", Options{Genome: "a,b,c"}, errors.ErrCodeInvalidGenome},
		{"stage too high", Options{Stage: 5}, errors.ErrCodeInvalidStage},
		{"negative stage", Options{Stage: -1}, errors.ErrCodeInvalidStage},
		{"pot style", Options{PotStyle: "vase"}, errors.ErrCodeInvalidStyle},
		{"format", Options{Formats: []string{"gif"}}, errors.ErrCodeInvalidFormat},
		{"seed", Options{Seed: "bad\nseed"}, errors.ErrCodeInvalidSeed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := tt.opts
			err := o.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %s, want %s (%v)", got, tt.code, err)
			}
		})
	}
}

func TestValidateAndSetDefaultsIdempotent(t *testing.T) {
	o := Options{Genome: "3,2,1", Stage: 3}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	first := o.Seed
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if o.Seed != first {
		t.Errorf("second call changed seed: %q -> %q", first, o.Seed)
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	o := Options{Scale: 3}
	if err := o.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if k := o.ArtifactKeyOpts(FormatSVG); k.Scale != 0 || !k.Filters {
		t.Errorf("svg key opts = %+v", k)
	}
	if k := o.ArtifactKeyOpts(FormatPNG); k.Scale != 3 {
		t.Errorf("png key scale = %v, want 3", k.Scale)
	}
}

func TestExecute(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	r := NewRunner(mem, nil, nil)

	opts := Options{Genome: "2,3,2,1", Stage: 4, Formats: []string{"svg", "json", "dot"}}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheHit {
		t.Error("first run should miss the cache")
	}
	if res.Stats.Primitives == 0 {
		t.Error("Stats.Primitives should be > 0")
	}
	if !bytes.HasPrefix(res.Artifacts["svg"], []byte("<svg")) {
		t.Errorf("svg artifact: %.40q", res.Artifacts["svg"])
	}
	var doc struct {
		Seed   string `json:"seed"`
		Genome string `json:"genome"`
		Stage  int    `json:"stage"`
	}
	if err := json.Unmarshal(res.Artifacts["json"], &doc); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if doc.Seed != "growth-4" || doc.Genome != "2,3,2,1" || doc.Stage != 4 {
		t.Errorf("json metadata = %+v", doc)
	}
	if !strings.HasPrefix(string(res.Artifacts["dot"]), "digraph") {
		t.Errorf("dot artifact: %.40q", res.Artifacts["dot"])
	}
	if mem.Len() != 3 {
		t.Errorf("cache entries = %d, want 3", mem.Len())
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheHit {
		t.Error("second run should hit the cache")
	}
	if !bytes.Equal(again.Artifacts["svg"], res.Artifacts["svg"]) {
		t.Error("cached svg differs from rendered svg")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheHit {
		t.Error("Refresh should bypass cache reads")
	}
}

func TestExecuteDeterministic(t *testing.T) {
	ctx := context.Background()
	run := func(seed string) []byte {
		res, err := NewRunner(nil, nil, nil).Execute(ctx, Options{Genome: "3,2,3,0", Stage: 3, Seed: seed, PotStyle: "square"})
		if err != nil {
			t.Fatal(err)
		}
		return res.Artifacts["svg"]
	}
	a, b := run("same"), run("same")
	if !bytes.Equal(a, b) {
		t.Error("same options should render identical SVG")
	}
	if bytes.Equal(a, run("other")) {
		t.Error("different seeds should render different SVG")
	}
}

func TestExecuteNoFilters(t *testing.T) {
	ctx := context.Background()
	r := NewRunner(cache.NewMemoryCache(), nil, nil)

	with, err := r.Execute(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}
	without, err := r.Execute(ctx, Options{NoFilters: true})
	if err != nil {
		t.Fatal(err)
	}
	if without.CacheHit {
		t.Error("NoFilters must not share a cache entry with the filtered render")
	}
	if !bytes.Contains(with.Artifacts["svg"], []byte("roughPaper")) {
		t.Error("default render should reference the roughPaper filter")
	}
	if bytes.Contains(without.Artifacts["svg"], []byte("roughPaper")) {
		t.Error("NoFilters render should not reference filters")
	}
}

func TestExecuteInvalid(t *testing.T) {
	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{Stage: 9})
	if !errors.Is(err, errors.ErrCodeInvalidStage) {
		t.Errorf("err = %v, want INVALID_STAGE", err)
	}
}

func TestRenderSheet(t *testing.T) {
	ctx := context.Background()
	mem := cache.NewMemoryCache()
	r := NewRunner(mem, nil, nil)

	res, err := r.Execute(ctx, Options{})
	if err != nil {
		t.Fatal(err)
	}
	ro := RenderOptions{Title: "growth"}
	out, hit, err := r.RenderSheet(ctx, "growth", res.Scene, nil, ro, false)
	if err != nil {
		t.Fatal(err)
	}
	if hit || len(out["svg"]) == 0 {
		t.Fatalf("first sheet render: hit=%v, %d bytes", hit, len(out["svg"]))
	}
	_, hit, err = r.RenderSheet(ctx, "growth", res.Scene, nil, ro, false)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second sheet render should hit the cache")
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	res, err := NewRunner(nil, nil, nil).Execute(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	_, err = Render(context.Background(), res.Scene, "gif", RenderOptions{})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestContentType(t *testing.T) {
	for _, f := range Formats() {
		if ContentType(f) == "application/octet-stream" {
			t.Errorf("ContentType(%q) has no specific type", f)
		}
	}
}
