package cli

import (
	"fmt"
	"io"
	"os"
)

// artifactWriteParams describes rendered artifacts to write to disk.
type artifactWriteParams struct {
	artifacts  map[string][]byte
	formats    []string
	name       string // default base name when output is empty
	output     string
	cacheHit   bool
	primitives int
}

// writeArtifacts writes one file per format. A single format goes to output
// as given; several formats share output as a base path with the format as
// extension.
func writeArtifacts(p artifactWriteParams) error {
	base := basePath(p.output, p.name)
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return fmt.Errorf("no %s artifact produced", format)
		}
		path := base + "." + format
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := writeFile(path, data); err != nil {
			return err
		}
		if path == "-" {
			return nil
		}
		printFile(path)
	}
	printStats(p.primitives, p.cacheHit)
	return nil
}

// writeFile writes data to path, or to stdout when path is "-".
func writeFile(path string, data []byte) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	defer out.Close()
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
