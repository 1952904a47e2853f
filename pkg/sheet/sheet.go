package sheet

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/sprout/pkg/compose"
	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/geom"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

// Sheet names.
const (
	Pots   = "pots"
	Plants = "plants"
	Growth = "growth"
	Combos = "combos"
)

// Gap is the spacing between cells and around the sheet edge.
const Gap = 20

// Names lists the available sheets.
func Names() []string { return []string{Pots, Plants, Growth, Combos} }

// Cell is one tile of a sheet.
type Cell struct {
	Label   string      `json:"label"`
	Caption string      `json:"caption,omitempty"`
	Seed    string      `json:"seed"`
	Scene   scene.Scene `json:"-"`
}

// Sheet is a titled grid of cells.
type Sheet struct {
	Name     string  `json:"name"`
	Title    string  `json:"title"`
	Columns  int     `json:"columns"`
	CellSize float64 `json:"cell_size"`
	Cells    []Cell  `json:"cells"`
}

type cellSpec struct {
	label, caption, seed string
	draw                 func(src random.Rand) scene.Scene
}

// Build generates the named sheet.
func Build(ctx context.Context, name string) (Sheet, error) {
	switch name {
	case Pots:
		return build(ctx, Pots, "Pot styles across all growth stages", 4, 280, potSpecs())
	case Plants:
		return build(ctx, Plants, "Plant configurations (growth stage 3)", 4, compose.Viewport, plantSpecs())
	case Growth:
		return build(ctx, Growth, "Growth stages (2 stems, 3 leaves)", 4, compose.Viewport, growthSpecs())
	case Combos:
		return build(ctx, Combos, "Pot and plant combinations", len(pot.Styles()), compose.Viewport, comboSpecs())
	}
	return Sheet{}, errors.New(errors.ErrCodeNotFound, "unknown sheet %q (want one of: pots, plants, growth, combos)", name)
}

func build(ctx context.Context, name, title string, cols int, size float64, specs []cellSpec) (Sheet, error) {
	cells := make([]Cell, len(specs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, spec := range specs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			cells[i] = Cell{
				Label:   spec.label,
				Caption: spec.caption,
				Seed:    spec.seed,
				Scene:   spec.draw(random.FromString(spec.seed)),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Sheet{}, err
	}
	return Sheet{Name: name, Title: title, Columns: cols, CellSize: size, Cells: cells}, nil
}

// Scene tiles the cells row by row into one scene. Each cell becomes a
// group with role [scene.RoleCell].
func (s Sheet) Scene() scene.Scene {
	cols := max(s.Columns, 1)
	rows := (len(s.Cells) + cols - 1) / cols
	step := s.CellSize + Gap
	out := scene.Scene{
		Width:  float64(cols)*step + Gap,
		Height: float64(rows)*step + Gap,
		Layers: make([]scene.Primitive, 0, len(s.Cells)),
	}
	for i, c := range s.Cells {
		off := geom.Pt(Gap+float64(i%cols)*step, Gap+float64(i/cols)*step)
		cell := scene.Group(scene.RoleCell, c.Scene.Layers...).Translate(off)
		out.Layers = append(out.Layers, cell)
	}
	return out
}

func potSpecs() []cellSpec {
	var specs []cellSpec
	for _, style := range pot.Styles() {
		for _, st := range plant.Stages() {
			specs = append(specs, cellSpec{
				label:   fmt.Sprintf("%s, stage %d: %s", style, st.ID, st.Name),
				caption: st.Description,
				seed:    fmt.Sprintf("showcase-pot-%s-%d", style, st.ID),
				draw: func(src random.Rand) scene.Scene {
					return compose.Pot(src, pot.Options{At: geom.Pt(140, 210), Width: 100, Height: 50, Style: style}, 280)
				},
			})
		}
	}
	return specs
}

func plantSpecs() []cellSpec {
	var specs []cellSpec
	for stems := plant.MinStems; stems <= plant.MaxStems; stems++ {
		for leaves := plant.MinLeaves; leaves <= plant.MaxLeaves; leaves++ {
			g := plant.MustGenome(stems, leaves, 2, int(plant.FlagFlowers))
			specs = append(specs, cellSpec{
				label: fmt.Sprintf("%d stem(s), %d leaf/leaves per stem", stems, leaves),
				seed:  fmt.Sprintf("plant-%d-%d-3", stems, leaves),
				draw: func(src random.Rand) scene.Scene {
					return compose.Compose(src, g, plant.MustInput(3), plant.Options{})
				},
			})
		}
	}
	return specs
}

func growthSpecs() []cellSpec {
	g := plant.MustGenome(2, 3, 2, int(plant.FlagFlowers))
	var specs []cellSpec
	for _, st := range plant.Stages() {
		in := plant.MustInput(st.ID)
		specs = append(specs, cellSpec{
			label:   fmt.Sprintf("Stage %d: %s", st.ID, st.Name),
			caption: st.Description,
			seed:    fmt.Sprintf("growth-%d", st.ID),
			draw: func(src random.Rand) scene.Scene {
				return compose.Compose(src, g, in, plant.Options{})
			},
		})
	}
	return specs
}

func comboSpecs() []cellSpec {
	var specs []cellSpec
	for _, style := range pot.Styles() {
		specs = append(specs, cellSpec{
			label: fmt.Sprintf("%s pot with 3-stem plant", style),
			seed:  fmt.Sprintf("combo-pot-%s", style),
			draw: func(src random.Rand) scene.Scene {
				s := compose.Pot(src, pot.Options{At: geom.Pt(150, 220), Width: 120, Height: 60, Style: style}, compose.Viewport)
				for i := range 3 {
					stemSrc := random.FromString(fmt.Sprintf("combo-stem-%s-%d", style, i))
					s.Layers = append(s.Layers, comboStem(stemSrc, i))
				}
				return s
			},
		})
	}
	return specs
}
