// Package resources bundles the templates and license texts that generated
// modules are built from. Resources are looked up by identifier only; callers
// never supply a path into the bundle.
package resources

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrNotFound is returned when an identifier has no bundled resource. It
// indicates a packaging defect.
var ErrNotFound = errors.New("bundled resource not found")

//go:embed templates/*.template
var templateFS embed.FS

//go:embed licenses
var licenseFS embed.FS

// Template returns the raw bytes of the named template.
func Template(name string) ([]byte, error) {
	return read(templateFS, path.Join("templates", name+".template"), "template", name)
}

// License returns the bundled text for the named license.
func License(name string) ([]byte, error) {
	return read(licenseFS, path.Join("licenses", name), "license", name)
}

func read(fsys embed.FS, p, kind, name string) ([]byte, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.HasPrefix(name, ".") {
		return nil, fmt.Errorf("%w: %s %q", ErrNotFound, kind, name)
	}
	data, err := fsys.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q: %w", ErrNotFound, kind, name, err)
	}
	return data, nil
}
