package manifest

import (
	"encoding/xml"
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/fpbx-tools/modgen/internal/params"
	"github.com/fpbx-tools/modgen/internal/platform"
)

// ErrSerializationFailed is returned when a manifest holds content that
// cannot be represented in XML.
var ErrSerializationFailed = errors.New("manifest serialization failed")

const (
	DefaultPublisher = "Generated Module"
	DefaultSupported = "13.0"
)

// Manifest is the module.xml descriptor. Field order is the element order.
type Manifest struct {
	XMLName     xml.Name  `xml:"module" json:"-"`
	RawName     string    `xml:"rawname" json:"rawname"`
	Name        string    `xml:"name" json:"name"`
	Version     string    `xml:"version" json:"version"`
	Publisher   string    `xml:"publisher" json:"publisher"`
	License     string    `xml:"license" json:"license"`
	Changelog   string    `xml:"changelog" json:"changelog"`
	Category    string    `xml:"category" json:"category"`
	Description string    `xml:"description" json:"description"`
	MenuItems   MenuItems `xml:"menuitems" json:"menuitems"`
	Supported   string    `xml:"supported" json:"supported"`
}

// Options carries the manifest values that are not asked of the operator.
type Options struct {
	Publisher string
	Supported string
}

// Build maps a ParameterSet onto a Manifest. The changelog and menu entry are
// derived from the parameters.
func Build(p *params.ParameterSet, opts Options) *Manifest {
	if opts.Publisher == "" {
		opts.Publisher = DefaultPublisher
	}
	if opts.Supported == "" {
		opts.Supported = DefaultSupported
	}

	return &Manifest{
		RawName:     p.RawName(),
		Name:        p.DisplayName(),
		Version:     p.Version(),
		Publisher:   opts.Publisher,
		License:     string(p.License()),
		Changelog:   Changelog(p.Version()),
		Category:    string(p.Category()),
		Description: p.Description(),
		MenuItems:   MenuItems{{Key: p.RawName(), Label: p.DisplayName()}},
		Supported:   opts.Supported,
	}
}

// Changelog returns the initial changelog line for version.
func Changelog(version string) string {
	return "*" + version + "* Initial release"
}

// Serialize encodes m as indented XML followed by a newline.
func (m *Manifest) Serialize() ([]byte, error) {
	if err := m.checkMarkup(); err != nil {
		return nil, err
	}

	out, err := xml.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return append(out, '\n'), nil
}

// WriteFile serializes m and writes it to path, replacing existing content.
func WriteFile(path string, m *Manifest) error {
	data, err := m.Serialize()
	if err != nil {
		return err
	}
	return platform.WriteFile(path, data)
}

// checkMarkup rejects text the XML encoder would otherwise silently replace,
// and menu keys that are not legal element names.
func (m *Manifest) checkMarkup() error {
	fields := []struct {
		name, value string
	}{
		{"rawname", m.RawName},
		{"name", m.Name},
		{"version", m.Version},
		{"publisher", m.Publisher},
		{"license", m.License},
		{"changelog", m.Changelog},
		{"category", m.Category},
		{"description", m.Description},
		{"supported", m.Supported},
	}
	for _, f := range fields {
		if err := checkText(f.name, f.value); err != nil {
			return err
		}
	}

	for _, item := range m.MenuItems {
		if !isXMLName(item.Key) {
			return fmt.Errorf("%w: menu item %q is not a valid element name", ErrSerializationFailed, item.Key)
		}
		if err := checkText("menuitems/"+item.Key, item.Label); err != nil {
			return err
		}
	}
	return nil
}

func checkText(field, s string) error {
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %s is not valid UTF-8", ErrSerializationFailed, field)
	}
	for _, r := range s {
		if !isXMLChar(r) {
			return fmt.Errorf("%w: %s contains character %U not allowed in XML", ErrSerializationFailed, field, r)
		}
	}
	return nil
}

// isXMLChar reports whether r is in the XML 1.0 Char production.
func isXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// isXMLName reports whether s can be used as an unprefixed element name.
func isXMLName(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case unicode.IsLetter(r) || r == '_':
		case i > 0 && (unicode.IsDigit(r) || r == '-' || r == '.'):
		default:
			return false
		}
	}
	return true
}
