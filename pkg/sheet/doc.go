// Package sheet builds showcase contact sheets: grids of generated scenes
// that show the range of the generator at a glance.
//
// Four sheets exist:
//
//   - pots: every pot style at every growth stage, seeded
//     "showcase-pot-<style>-<stage>"
//   - plants: 1-4 stems × 1-4 leaves per stem at stage 3, seeded
//     "plant-<stems>-<leaves>-3"
//   - growth: genome 2,3,2,1 through the four growth stages, seeded
//     "growth-<stage>"
//   - combos: each pot style holding a simple three-stem sketch, seeded
//     "combo-pot-<style>" and "combo-stem-<style>-<i>"
//
// Cells are generated in parallel. Every cell owns a source seeded from its
// own string, so the result does not depend on scheduling.
package sheet
