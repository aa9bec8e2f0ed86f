package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fpbx-tools/modgen/internal/platform"
	"github.com/fpbx-tools/modgen/internal/resources"
)

// TemplateID names a bundled template.
type TemplateID string

const (
	ClassTemplate TemplateID = "class"
	PageTemplate  TemplateID = "page"
)

// Placeholder tokens recognized in the source templates.
const (
	RawNameToken   = "##RAWNAME##"
	ClassNameToken = "##CLASSNAME##"
)

// Substitutions maps placeholder tokens to their replacement text.
type Substitutions map[string]string

// NewSubstitutions returns the placeholder map for a module.
func NewSubstitutions(rawName, displayName string) Substitutions {
	return Substitutions{
		RawNameToken:   rawName,
		ClassNameToken: displayName,
	}
}

// Render loads the template id and substitutes every registered token.
func Render(id TemplateID, subs Substitutions) ([]byte, error) {
	tmpl, err := resources.Template(string(id))
	if err != nil {
		return nil, err
	}
	return Substitute(tmpl, subs), nil
}

// RenderTo renders id and writes the result to dest, replacing any existing
// content.
func RenderTo(id TemplateID, subs Substitutions, dest string) error {
	out, err := Render(id, subs)
	if err != nil {
		return err
	}
	if err := platform.WriteFile(dest, out); err != nil {
		return fmt.Errorf("rendering %s template: %w", id, err)
	}
	return nil
}

// Substitute replaces every occurrence of each token in content. Tokens are
// matched in a single left-to-right pass, so a replacement value is never
// rescanned for further tokens.
func Substitute(content []byte, subs Substitutions) []byte {
	if len(subs) == 0 {
		return content
	}

	// Sorted so equal maps build identical replacers.
	keys := make([]string, 0, len(subs))
	for k := range subs {
		if k != "" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, subs[k])
	}
	return []byte(strings.NewReplacer(pairs...).Replace(string(content)))
}
