package svg_test

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/sprout/pkg/compose"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/render/svg"
)

func ExampleRender() {
	s := compose.FromSeed("growth-1", plant.MustGenome(2, 3, 2, 1), plant.MustInput(1), plant.Options{})
	doc := svg.Render(s, svg.WithTitle("Seedling"))

	fmt.Println(bytes.HasPrefix(doc, []byte("<svg")))
	fmt.Println(bytes.Contains(doc, []byte(`<filter id="roughPaper">`)))
	// Output:
	// true
	// true
}
