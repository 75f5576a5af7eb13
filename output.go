package srf

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/srf/sidecar"
)

// checkTargets returns ErrExists for the first path that is already
// present. With force set it never fails.
func checkTargets(force bool, paths ...string) error {
	if force {
		return nil
	}
	for _, p := range paths {
		_, err := os.Stat(p)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrExists, p)
		}
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// writeFile writes an output through a temporary file in the same
// directory, renaming it into place only once write has returned. A failed
// write leaves nothing behind.
func writeFile(name string, write func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+"-*")
	if err != nil {
		return err
	}

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), name); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}

func (c *Converter) writePNG(name string, m image.Image) error {
	c.logger.Printf("writing %s", name)
	return writeFile(name, func(w io.Writer) error {
		return png.Encode(w, m)
	})
}

func (c *Converter) writeInfo(name string, rec *sidecar.Record) error {
	b, err := rec.MarshalText()
	if err != nil {
		return err
	}

	c.logger.Printf("writing %s", name)
	return writeFile(name, func(w io.Writer) error {
		_, err := w.Write(b)
		return err
	})
}
