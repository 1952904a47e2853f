package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/sprout/pkg/cache"
	"github.com/matzehuels/sprout/pkg/config"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
	"github.com/matzehuels/sprout/pkg/specimen"
)

// testEnv points config, cache and specimen storage at a temp dir and
// returns the dir and a config file path.
func testEnv(t *testing.T) (dir, cfgPath string) {
	t.Helper()
	dir = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "xdg-cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg-config"))

	cfgPath = filepath.Join(dir, "config.toml")
	text := fmt.Sprintf(`
[cache]
dir = %q

[specimens]
dir = %q

[presets.fern]
genome = [3, 4, 3, 1]
stage = 3
seed = "fern"
pot_style = "bowl"
`, filepath.Join(dir, "cache"), filepath.Join(dir, "specimens"))
	if err := os.WriteFile(cfgPath, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir, cfgPath
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.ExecuteContext(context.Background())
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestCacheDir(t *testing.T) {
	t.Run("xdg", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "/tmp/custom-cache")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		if want := filepath.Join("/tmp/custom-cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})

	t.Run("home", func(t *testing.T) {
		t.Setenv("XDG_CACHE_HOME", "")
		dir, err := cacheDir()
		if err != nil {
			t.Fatalf("cacheDir() error: %v", err)
		}
		home, _ := os.UserHomeDir()
		if want := filepath.Join(home, ".cache", appName); dir != want {
			t.Errorf("cacheDir() = %q, want %q", dir, want)
		}
	})
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"svg", []string{"svg"}},
		{"svg,png", []string{"svg", "png"}},
		{" svg , json ,", []string{"svg", "json"}},
	}
	for _, tt := range tests {
		if got := parseFormats(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, name, want string
	}{
		{"", "plant", "plant"},
		{"out/fern.svg", "plant", "out/fern"},
		{"out/fern", "plant", "out/fern"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.name); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.name, got, tt.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		2048:    "2.0 KiB",
		3 << 20: "3.0 MiB",
	}
	for n, want := range tests {
		if got := formatBytes(n); got != want {
			t.Errorf("formatBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestRenderFlagsOptions(t *testing.T) {
	cfg, err := config.Parse(`
[render]
pot_style = "square"

[presets.fern]
genome = [3, 4, 3, 1]
stage = 3
seed = "fern"
pot_style = "bowl"
`)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("defaults", func(t *testing.T) {
		var f renderFlags
		opts, err := f.options(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if opts.Genome != pipeline.DefaultGenome || opts.Stage != 4 || opts.Seed != "growth-4" {
			t.Errorf("options = %+v", opts)
		}
		if opts.PotStyle != "square" {
			t.Errorf("PotStyle = %q, want config default square", opts.PotStyle)
		}
		if !slices.Equal(opts.Formats, []string{"svg"}) {
			t.Errorf("Formats = %v", opts.Formats)
		}
	})

	t.Run("preset", func(t *testing.T) {
		f := renderFlags{preset: "fern"}
		opts, err := f.options(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if opts.Genome != "3,4,3,1" || opts.Stage != 3 || opts.Seed != "fern" || opts.PotStyle != "bowl" {
			t.Errorf("options = %+v", opts)
		}
	})

	t.Run("flags override preset", func(t *testing.T) {
		f := renderFlags{preset: "fern", stage: 2, pot: "round", formats: "svg,json"}
		opts, err := f.options(cfg)
		if err != nil {
			t.Fatal(err)
		}
		if opts.Stage != 2 || opts.PotStyle != "round" || opts.Genome != "3,4,3,1" {
			t.Errorf("options = %+v", opts)
		}
		if !slices.Equal(opts.Formats, []string{"svg", "json"}) {
			t.Errorf("Formats = %v", opts.Formats)
		}
	})

	t.Run("unknown preset", func(t *testing.T) {
		f := renderFlags{preset: "cactus"}
		if _, err := f.options(cfg); !errors.Is(err, errors.ErrCodeNotFound) {
			t.Errorf("err = %v, want NOT_FOUND", err)
		}
	})

	t.Run("invalid genome", func(t *testing.T) {
		f := renderFlags{genome: "9,9,9,9"}
		if _, err := f.options(cfg); !errors.Is(err, errors.ErrCodeInvalidGenome) {
			t.Errorf("err = %v, want INVALID_GENOME", err)
		}
	})
}

func TestPotStyles(t *testing.T) {
	all, err := potStyles("all")
	if err != nil || len(all) != 5 {
		t.Fatalf("potStyles(all) = %v, %v", all, err)
	}
	one, err := potStyles("Bowl")
	if err != nil || len(one) != 1 || one[0] != pot.Bowl {
		t.Errorf("potStyles(Bowl) = %v, %v", one, err)
	}
	if _, err := potStyles("vase"); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("potStyles(vase) err = %v", err)
	}
}

func TestRenderCommand(t *testing.T) {
	dir, cfgPath := testEnv(t)

	t.Run("single format", func(t *testing.T) {
		out := filepath.Join(dir, "fern.svg")
		if err := execute(t, "--config", cfgPath, "render", "-g", "3,4,3,1", "-s", "3", "--pot", "bowl", "-o", out); err != nil {
			t.Fatalf("render: %v", err)
		}
		if svg := readFile(t, out); !strings.Contains(svg, "<svg") {
			t.Errorf("output is not SVG: %.80s", svg)
		}
	})

	t.Run("multiple formats", func(t *testing.T) {
		base := filepath.Join(dir, "multi")
		if err := execute(t, "--config", cfgPath, "render", "-f", "svg,json,dot", "-o", base, "--no-cache"); err != nil {
			t.Fatalf("render: %v", err)
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(readFile(t, base+".json")), &doc); err != nil {
			t.Errorf("json output: %v", err)
		}
		if dot := readFile(t, base+".dot"); !strings.HasPrefix(dot, "digraph") {
			t.Errorf("dot output = %.40s", dot)
		}
		readFile(t, base+".svg")
	})

	t.Run("deterministic", func(t *testing.T) {
		a, b := filepath.Join(dir, "a.svg"), filepath.Join(dir, "b.svg")
		for _, out := range []string{a, b} {
			if err := execute(t, "--config", cfgPath, "render", "--preset", "fern", "--no-cache", "-o", out); err != nil {
				t.Fatal(err)
			}
		}
		if readFile(t, a) != readFile(t, b) {
			t.Error("same preset rendered different SVGs")
		}
	})

	t.Run("invalid stage", func(t *testing.T) {
		err := execute(t, "--config", cfgPath, "render", "-s", "7", "-o", filepath.Join(dir, "bad.svg"))
		if !errors.Is(err, errors.ErrCodeInvalidStage) {
			t.Errorf("err = %v, want INVALID_STAGE", err)
		}
	})
}

func TestRenderCommandCaches(t *testing.T) {
	dir, cfgPath := testEnv(t)
	out := filepath.Join(dir, "plant.svg")
	for i := 0; i < 2; i++ {
		if err := execute(t, "--config", cfgPath, "render", "-o", out); err != nil {
			t.Fatal(err)
		}
	}

	fc, err := cache.NewFileCache(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	if n, _, err := fc.Stats(); err != nil || n != 1 {
		t.Errorf("cache entries = %d, %v; want 1", n, err)
	}

	if err := execute(t, "--config", cfgPath, "cache", "info"); err != nil {
		t.Errorf("cache info: %v", err)
	}
	if err := execute(t, "--config", cfgPath, "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if n, _, _ := fc.Stats(); n != 0 {
		t.Errorf("cache entries after clear = %d", n)
	}
}

func TestPotCommand(t *testing.T) {
	dir, cfgPath := testEnv(t)

	base := filepath.Join(dir, "pot")
	if err := execute(t, "--config", cfgPath, "pot", "--style", "all", "-o", base); err != nil {
		t.Fatalf("pot: %v", err)
	}
	for _, name := range pot.StyleNames() {
		if svg := readFile(t, base+"-"+name+".svg"); !strings.Contains(svg, "<svg") {
			t.Errorf("%s pot is not SVG", name)
		}
	}

	if err := execute(t, "--config", cfgPath, "pot", "--width=-5", "-o", filepath.Join(dir, "x.svg")); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative width err = %v", err)
	}
}

func TestGalleryCommand(t *testing.T) {
	dir, cfgPath := testEnv(t)
	out := filepath.Join(dir, "sheets")
	if err := execute(t, "--config", cfgPath, "gallery", "growth", "-d", out, "--no-cache"); err != nil {
		t.Fatalf("gallery: %v", err)
	}
	if svg := readFile(t, filepath.Join(out, "sheet-growth.svg")); !strings.Contains(svg, "<svg") {
		t.Error("growth sheet is not SVG")
	}

	if err := execute(t, "--config", cfgPath, "gallery", "nope", "-d", out); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("unknown sheet err = %v", err)
	}
}

func TestSpecimenCommands(t *testing.T) {
	dir, cfgPath := testEnv(t)
	run := func(args ...string) error {
		return execute(t, append([]string{"--config", cfgPath, "specimen"}, args...)...)
	}

	if err := run("save", "window-fern", "--preset", "fern", "--notes", "kitchen"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := run("save", "window-fern", "-g", "1,1,1,0"); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("duplicate save err = %v, want INVALID_NAME", err)
	}

	st, err := specimen.NewFileStore(filepath.Join(dir, "specimens"))
	if err != nil {
		t.Fatal(err)
	}
	sp, err := st.GetByName(context.Background(), "window-fern")
	if err != nil {
		t.Fatalf("stored specimen: %v", err)
	}
	if sp.Genome != "3,4,3,1" || sp.Stage != 3 || sp.Seed != "fern" || sp.PotStyle != "bowl" || sp.Notes != "kitchen" {
		t.Errorf("stored specimen = %+v", sp)
	}

	if err := run("list"); err != nil {
		t.Errorf("list: %v", err)
	}
	if err := run("show", sp.ID); err != nil {
		t.Errorf("show by id: %v", err)
	}

	out := filepath.Join(dir, "window-fern.svg")
	if err := run("render", "window-fern", "-o", out, "--no-cache"); err != nil {
		t.Fatalf("render: %v", err)
	}
	direct := filepath.Join(dir, "direct.svg")
	if err := execute(t, "--config", cfgPath, "render", "-g", "3,4,3,1", "-s", "3", "--seed", "fern", "--pot", "bowl", "--no-cache", "-o", direct); err != nil {
		t.Fatal(err)
	}
	if readFile(t, out) != readFile(t, direct) {
		t.Error("specimen render differs from rendering its inputs directly")
	}

	if err := run("delete", "window-fern"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := run("show", "window-fern"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("show after delete err = %v, want NOT_FOUND", err)
	}
}

func TestSpecimenSaveSeedDefaultsToName(t *testing.T) {
	dir, cfgPath := testEnv(t)
	if err := execute(t, "--config", cfgPath, "specimen", "save", "monstera", "-g", "2,2,1,0"); err != nil {
		t.Fatal(err)
	}
	st, _ := specimen.NewFileStore(filepath.Join(dir, "specimens"))
	sp, err := st.GetByName(context.Background(), "monstera")
	if err != nil {
		t.Fatal(err)
	}
	if sp.Seed != "monstera" {
		t.Errorf("Seed = %q, want the name", sp.Seed)
	}
}

func TestStagesTable(t *testing.T) {
	out := stagesTable(plant.Stages())
	for _, s := range plant.Stages() {
		if !strings.Contains(out, s.Name) {
			t.Errorf("table missing %q", s.Name)
		}
	}
}

func TestTreeCommand(t *testing.T) {
	dir, cfgPath := testEnv(t)
	out := filepath.Join(dir, "tree.dot")
	if err := execute(t, "--config", cfgPath, "tree", "-f", "dot", "-o", out); err != nil {
		t.Fatalf("tree: %v", err)
	}
	if dot := readFile(t, out); !strings.Contains(dot, "pot") {
		t.Errorf("tree DOT has no pot node")
	}
	if err := execute(t, "--config", cfgPath, "tree", "-f", "json"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("tree json err = %v, want INVALID_FORMAT", err)
	}
}

func TestSceneTree(t *testing.T) {
	opts := pipeline.Options{Genome: "2,3,2,1", Stage: 4}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	sc := pipeline.NewRunner(nil, nil, nil).Generate(context.Background(), opts)
	out := sceneTree(sc)
	for _, want := range []string{"scene 300x300", "pot", "stem", "flowers"} {
		if !strings.Contains(out, want) {
			t.Errorf("tree missing %q:\n%s", want, out)
		}
	}
}

func press(m PickerModel, keys ...tea.KeyType) PickerModel {
	for _, k := range keys {
		next, _ := m.Update(tea.KeyMsg{Type: k})
		m = next.(PickerModel)
	}
	return m
}

func TestPickerModel(t *testing.T) {
	start := NewPickerModel(plant.MustGenome(2, 3, 2, 1), 4, pot.Tapered)
	if start.Values[pickPot] != 2 {
		t.Fatalf("tapered index = %d", start.Values[pickPot])
	}

	t.Run("adjust and select", func(t *testing.T) {
		m := press(start, tea.KeyRight, tea.KeyDown, tea.KeyLeft, tea.KeyEnter)
		if m.Selected == nil {
			t.Fatal("no selection")
		}
		if got := m.Selected.Genome.Values(); got != [4]int{3, 2, 2, 1} {
			t.Errorf("genome = %v", got)
		}
		if m.Selected.Stage != 4 || m.Selected.PotStyle != pot.Tapered {
			t.Errorf("selection = %+v", m.Selected)
		}
	})

	t.Run("wraps", func(t *testing.T) {
		m := press(start, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyDown, tea.KeyRight)
		if m.Values[pickStage] != plant.MinStage {
			t.Errorf("stage after wrap = %d", m.Values[pickStage])
		}
		m = press(m, tea.KeyDown, tea.KeyLeft, tea.KeyLeft, tea.KeyLeft)
		if m.Values[pickPot] != len(pot.Styles())-1 {
			t.Errorf("pot after wrap = %d", m.Values[pickPot])
		}
	})

	t.Run("cursor bounds", func(t *testing.T) {
		m := press(start, tea.KeyUp)
		if m.Cursor != 0 {
			t.Errorf("cursor = %d", m.Cursor)
		}
		for i := 0; i < 10; i++ {
			m = press(m, tea.KeyDown)
		}
		if m.Cursor != pickRows-1 {
			t.Errorf("cursor = %d", m.Cursor)
		}
	})

	t.Run("quit", func(t *testing.T) {
		next, cmd := start.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if cmd == nil || next.(PickerModel).Selected != nil {
			t.Error("esc should quit without a selection")
		}
	})

	t.Run("view", func(t *testing.T) {
		v := start.View()
		for _, want := range []string{"Stems", "Flowering", "tapered", "genome 2,3,2,1"} {
			if !strings.Contains(v, want) {
				t.Errorf("view missing %q", want)
			}
		}
	})
}
