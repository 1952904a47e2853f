package plant_test

import (
	"fmt"

	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/random"
	"github.com/matzehuels/sprout/pkg/scene"
)

func ExampleParseGenome() {
	g, err := plant.ParseGenome("2,3,2,1")
	if err != nil {
		panic(err)
	}
	fmt.Println(g.Stems(), g.LeavesPerStem(), g.Petioles(), g.HasFlag(plant.FlagFlowers))
	// Output: 2 3 2 true
}

func ExampleGenerate() {
	g := plant.MustGenome(2, 3, 2, 1)
	in := plant.MustInput(4)

	p := plant.Generate(random.FromString("growth-4"), g, in, plant.Options{})
	for _, s := range p.Stems {
		leaves := scene.ChildrenWithRole(s.Drawing, scene.RoleLeaf)
		fmt.Printf("stem %d: %s, %d leaves\n", s.Index, s.Type, len(leaves))
	}
	fmt.Println("flowers:", len(p.Flowers))
	// Output:
	// stem 0: bushy, 3 leaves
	// stem 1: trailing, 3 leaves
	// flowers: 2
}

func ExampleStages() {
	for _, s := range plant.Stages() {
		fmt.Println(s.ID, s.Name)
	}
	// Output:
	// 1 Seedling
	// 2 Young Plant
	// 3 Mature Plant
	// 4 Flowering
}
