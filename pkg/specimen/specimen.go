// Package specimen stores named plants: a genome, growth stage, seed and pot
// style saved under a human-readable name so the same drawing can be
// reproduced later.
//
// Three backends implement [Store]:
//   - [MemoryStore]: in-memory storage for servers without a database and tests
//   - [FileStore]: JSON files under ~/.config/sprout/specimens for the CLI
//   - [MongoStore]: a MongoDB collection for shared servers
//
// # Usage
//
//	sp, err := specimen.New("fern", "3,4,3,1", 3, "", "bowl")
//	if err != nil {
//	    return err
//	}
//	if err := store.Save(ctx, sp); err != nil {
//	    return err
//	}
//	res, err := runner.Execute(ctx, sp.Options("svg"))
package specimen

import (
	"context"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/sprout/pkg/errors"
	"github.com/matzehuels/sprout/pkg/pipeline"
	"github.com/matzehuels/sprout/pkg/plant"
	"github.com/matzehuels/sprout/pkg/pot"
)

// Specimen is a saved plant.
type Specimen struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`
	Genome    string    `json:"genome" bson:"genome"`
	Stage     int       `json:"stage" bson:"stage"`
	Seed      string    `json:"seed" bson:"seed"`
	PotStyle  string    `json:"pot_style" bson:"pot_style"`
	Notes     string    `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for specimen storage backends. Lookups of a
// missing specimen fail with a NOT_FOUND error; saving a name that is
// already taken fails with INVALID_NAME.
type Store interface {
	// Get retrieves a specimen by ID.
	Get(ctx context.Context, id string) (*Specimen, error)

	// GetByName retrieves a specimen by name.
	GetByName(ctx context.Context, name string) (*Specimen, error)

	// Save stores a new specimen.
	Save(ctx context.Context, s *Specimen) error

	// List returns all specimens, oldest first.
	List(ctx context.Context) ([]*Specimen, error)

	// Delete removes a specimen by ID.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close() error
}

// New validates the inputs and returns a specimen with a fresh ID. An empty
// seed defaults to the name; an empty pot style to tapered.
func New(name, genome string, stage int, seed, potStyle string) (*Specimen, error) {
	s := &Specimen{
		ID:        uuid.NewString(),
		Name:      name,
		Genome:    genome,
		Stage:     stage,
		Seed:      seed,
		PotStyle:  potStyle,
		CreatedAt: time.Now().UTC(),
	}
	if s.Seed == "" {
		s.Seed = name
	}
	if err := s.Normalize(); err != nil {
		return nil, err
	}
	return s, nil
}

// Normalize validates every field and rewrites the genome and pot style in
// canonical form.
func (s *Specimen) Normalize() error {
	if err := errors.ValidateSpecimenName(s.Name); err != nil {
		return err
	}
	g, err := plant.ParseGenome(s.Genome)
	if err != nil {
		return err
	}
	if _, err := plant.NewInput(s.Stage); err != nil {
		return err
	}
	style, err := pot.ParseStyle(s.PotStyle)
	if err != nil {
		return err
	}
	if err := errors.ValidateSeed(s.Seed); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	} else if _, err := uuid.Parse(s.ID); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid specimen id %q", s.ID)
	}
	s.Genome = g.String()
	s.PotStyle = style.String()
	return nil
}

// Options returns pipeline options that reproduce the specimen.
func (s *Specimen) Options(formats ...string) pipeline.Options {
	return pipeline.Options{
		Genome:   s.Genome,
		Stage:    s.Stage,
		Seed:     s.Seed,
		PotStyle: s.PotStyle,
		Formats:  formats,
	}
}

// Lookup finds a specimen by ID, falling back to its name.
func Lookup(ctx context.Context, st Store, ref string) (*Specimen, error) {
	if _, err := uuid.Parse(ref); err == nil {
		s, err := st.Get(ctx, ref)
		if err == nil || !errors.Is(err, errors.ErrCodeNotFound) {
			return s, err
		}
	}
	return st.GetByName(ctx, ref)
}

func notFound(ref string) error {
	return errors.New(errors.ErrCodeNotFound, "specimen %q not found", ref)
}

func nameTaken(name string) error {
	return errors.New(errors.ErrCodeInvalidName, "specimen name %q is already taken", name)
}

// sortSpecimens orders oldest first, then by name.
func sortSpecimens(list []*Specimen) {
	slices.SortFunc(list, func(a, b *Specimen) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
}
