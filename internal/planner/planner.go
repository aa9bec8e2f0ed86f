// Package planner computes the directories and files that make up a generated
// module. Planning is pure: nothing touches the filesystem.
package planner

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/fpbx-tools/modgen/internal/params"
)

// Kind describes how a planned entry gets its content.
type Kind int

const (
	Directory Kind = iota
	// Templated files are rendered from a bundled template.
	Templated
	// Empty files are left at zero length.
	Empty
	// Generated files are written by code (manifest, static view).
	Generated
	// Copied files are a byte copy of a bundled resource.
	Copied
)

func (k Kind) String() string {
	switch k {
	case Directory:
		return "directory"
	case Templated:
		return "templated-file"
	case Empty:
		return "empty-file"
	case Generated:
		return "generated-file"
	case Copied:
		return "copied-file"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Role identifies what a planned entry is for.
type Role string

const (
	RoleViewsDir   Role = "views-dir"
	RoleCSSDir     Role = "css-dir"
	RoleJSDir      Role = "js-dir"
	RoleClass      Role = "class"
	RoleInstall    Role = "install"
	RoleUninstall  Role = "uninstall"
	RoleManifest   Role = "manifest"
	RolePage       Role = "page"
	RoleStylesheet Role = "stylesheet"
	RoleScript     Role = "script"
	RoleView       Role = "view"
	RoleLicense    Role = "license"
)

// Entry is one planned directory or file. Path is slash-separated and
// relative to the plan's base directory.
type Entry struct {
	Role Role
	Path string
	Kind Kind
}

// Plan is the ordered set of entries for one module.
type Plan struct {
	BaseDir string
	Entries []Entry
}

// New plans the layout of the module described by p under baseDir.
func New(p *params.ParameterSet, baseDir string) (*Plan, error) {
	raw := p.RawName()
	if err := params.ValidateRawName(raw); err != nil {
		return nil, err
	}
	display := p.DisplayName()

	return &Plan{
		BaseDir: baseDir,
		Entries: []Entry{
			{RoleViewsDir, "views", Directory},
			{RoleCSSDir, "assets/css", Directory},
			{RoleJSDir, "assets/js", Directory},
			{RoleClass, display + ".class.php", Templated},
			{RoleInstall, "install.php", Empty},
			{RoleUninstall, "uninstall.php", Empty},
			{RoleManifest, "module.xml", Generated},
			{RolePage, "page." + raw + ".php", Templated},
			{RoleStylesheet, "assets/css/" + raw + ".css", Empty},
			{RoleScript, "assets/js/" + raw + ".js", Empty},
			{RoleView, "views/main.php", Generated},
			{RoleLicense, "LICENSE", Copied},
		},
	}, nil
}

// Abs returns the filesystem path of e.
func (p *Plan) Abs(e Entry) string {
	return filepath.Join(p.BaseDir, filepath.FromSlash(e.Path))
}

// Lookup returns the entry with the given role.
func (p *Plan) Lookup(role Role) (Entry, bool) {
	for _, e := range p.Entries {
		if e.Role == role {
			return e, true
		}
	}
	return Entry{}, false
}

// Directories returns the directory entries in creation order.
func (p *Plan) Directories() []Entry {
	var dirs []Entry
	for _, e := range p.Entries {
		if e.Kind == Directory {
			dirs = append(dirs, e)
		}
	}
	return dirs
}

// Files returns the file entries in plan order.
func (p *Plan) Files() []Entry {
	var files []Entry
	for _, e := range p.Entries {
		if e.Kind != Directory {
			files = append(files, e)
		}
	}
	return files
}

// Check verifies that every file's parent directory is the base directory or
// a directory planned before it, and that no path appears twice.
func (p *Plan) Check() error {
	seen := make(map[string]bool, len(p.Entries))
	dirs := map[string]bool{".": true}
	for _, e := range p.Entries {
		if seen[e.Path] {
			return fmt.Errorf("duplicate planned path %q", e.Path)
		}
		seen[e.Path] = true

		if e.Kind == Directory {
			dirs[e.Path] = true
			continue
		}
		if parent := path.Dir(e.Path); !dirs[parent] {
			return fmt.Errorf("file %q planned before its directory %q", e.Path, parent)
		}
	}
	return nil
}
