// Package cache stores rendered artifacts so repeated requests for the same
// plant skip generation and conversion.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under a directory, for the CLI
//   - [RedisCache]: shared cache for the HTTP server
//   - [MemoryCache]: in-process map, for tests and single-process servers
//   - [NullCache]: never stores anything
//
// All backends implement [Cache] and honour per-entry TTLs. Backends that
// can enumerate their entries also implement [Clearer].
//
// # Keys
//
// A [Keyer] turns render parameters into keys. [DefaultKeyer] hashes the
// parameters with SHA-256 so keys are fixed-length and safe as file names;
// [ScopedKeyer] adds a namespace prefix.
//
//	k := cache.NewDefaultKeyer()
//	key := k.ArtifactKey(cache.ArtifactKeyOpts{Genome: "2,3,2,1", Stage: 4, Seed: "growth-4", Format: "svg"})
//	data, hit, err := c.Get(ctx, key)
package cache
