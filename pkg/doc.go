// Package pkg provides the libraries behind sprout, a procedural generator
// of hand-drawn potted plants.
//
// # Overview
//
// A plant is described by a four-value genome (stems, leaves per stem,
// petioles, flags), a growth stage from 1 (seedling) to 4 (flowering), a
// pot style and a seed. Every stroke is derived from a seeded random
// source, so the same inputs always produce the same drawing.
//
// # Architecture
//
// The typical data flow:
//
//	seed string
//	     ↓
//	[random] (linear congruential source)
//	     ↓
//	[geom] (wobble, jagged polylines, quadratic curves)
//	     ↓
//	[pot] + [plant] (layered primitives)
//	     ↓
//	[compose] (300x300 scene)
//	     ↓
//	[render] (SVG, JSON, PNG, PDF, DOT)
//
// # Quick Start
//
//	g := plant.MustGenome(2, 3, 2, 1)
//	s := compose.FromSeed("growth-4", g, plant.MustInput(4), plant.Options{PotStyle: pot.Bowl})
//	doc := svg.Render(s)
//
// Or through the pipeline, which validates inputs and caches artifacts:
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Genome: "2,3,2,1", Stage: 4})
//	svgBytes := res.Artifacts[pipeline.FormatSVG]
//
// # Packages
//
// Engine: [random], [geom], [scene], [pot], [plant], [compose]. These never
// log and never fail once their inputs are validated.
//
// Backends: [render] and its svg, jsonsink and treeviz subpackages.
//
// Services: [pipeline] (validate, generate, render, cache), [cache] (file,
// memory, redis), [sheet] (showcase contact sheets), [specimen] (named
// plants in files or MongoDB), [config] (TOML), [observability] (hooks),
// [errors] (coded errors), [buildinfo].
//
// [random]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/random
// [geom]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/geom
// [scene]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/scene
// [pot]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/pot
// [plant]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/plant
// [compose]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/compose
// [render]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/cache
// [sheet]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/sheet
// [specimen]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/specimen
// [config]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/config
// [observability]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sprout/pkg/buildinfo
package pkg
