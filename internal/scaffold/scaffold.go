package scaffold

import (
	"fmt"

	"github.com/fpbx-tools/modgen/internal/logging"
	"github.com/fpbx-tools/modgen/internal/manifest"
	"github.com/fpbx-tools/modgen/internal/params"
	"github.com/fpbx-tools/modgen/internal/planner"
	"github.com/fpbx-tools/modgen/internal/platform"
	"github.com/fpbx-tools/modgen/internal/render"
	"github.com/fpbx-tools/modgen/internal/resources"
	"github.com/sirupsen/logrus"
)

// Options controls values that are not part of the operator's answers.
type Options struct {
	Publisher string
	Supported string
	Logger    logrus.FieldLogger
}

// Result holds the outcome of a generation run.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// ViewContent returns the literal written to views/main.php.
func ViewContent(displayName string) string {
	return "IT WORKS!!!! Generated for " + displayName
}

// Run generates the module described by p into baseDir. Steps run in a fixed
// order and the first failure aborts the run; files already written are left
// in place. Running again over the same directory rewrites every file.
func Run(p *params.ParameterSet, baseDir string, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logging.Discard()
	}
	log = log.WithField("module", p.RawName())

	plan, err := planner.New(p, baseDir)
	if err != nil {
		return nil, err
	}
	if err := plan.Check(); err != nil {
		return nil, fmt.Errorf("planning %s: %w", baseDir, err)
	}
	dst, err := resolveTargets(plan)
	if err != nil {
		return nil, err
	}

	result := &Result{OutputDir: baseDir}
	if w := p.VersionWarning(); w != "" {
		result.Warnings = append(result.Warnings, w)
	}

	log.Info("Generating Directories for your module")
	if err := makeDirectories(plan); err != nil {
		return nil, err
	}

	log.Info("Generating File structure for your module")
	if err := touchFiles(plan); err != nil {
		return nil, err
	}

	log.Info("Generating module.xml")
	m := manifest.Build(p, manifest.Options{
		Publisher: opts.Publisher,
		Supported: opts.Supported,
	})
	if err := manifest.WriteFile(dst.manifest, m); err != nil {
		return nil, err
	}
	result.Warnings = append(result.Warnings, validateManifest(m)...)

	log.Info("Generating BMO class")
	subs := render.NewSubstitutions(p.RawName(), p.DisplayName())
	if err := render.RenderTo(render.ClassTemplate, subs, dst.class); err != nil {
		return nil, err
	}

	log.Info("Generating module page and view")
	if err := render.RenderTo(render.PageTemplate, subs, dst.page); err != nil {
		return nil, err
	}
	if err := platform.WriteFile(dst.view, []byte(ViewContent(p.DisplayName()))); err != nil {
		return nil, err
	}

	log.WithField("license", p.License()).Info("Copying license")
	if err := copyLicense(p.License(), dst.license); err != nil {
		return nil, err
	}

	for _, f := range plan.Files() {
		result.Files = append(result.Files, f.Path)
	}
	log.WithField("path", baseDir).Debug("module generated")
	return result, nil
}

func makeDirectories(plan *planner.Plan) error {
	for _, d := range plan.Directories() {
		if err := platform.MkdirAll(plan.Abs(d)); err != nil {
			return err
		}
	}
	return nil
}

// touchFiles creates every content file as an empty file so later writes
// target files that already exist and are writable.
func touchFiles(plan *planner.Plan) error {
	for _, f := range plan.Files() {
		if f.Kind == planner.Copied {
			continue
		}
		if err := platform.Touch(plan.Abs(f)); err != nil {
			return err
		}
	}
	return nil
}

func copyLicense(l params.License, dest string) error {
	text, err := resources.License(string(l))
	if err != nil {
		return err
	}
	if err := platform.WriteFile(dest, text); err != nil {
		return fmt.Errorf("copying license: %w", err)
	}
	return nil
}

// validateManifest reports schema issues as warnings.
func validateManifest(m *manifest.Manifest) []string {
	res, err := manifest.Validate(m)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate manifest: %v", err)}
	}
	var warnings []string
	for _, issue := range res.Issues {
		warnings = append(warnings, issue.String())
	}
	return warnings
}

// abs resolves the filesystem path planned for role.
func abs(plan *planner.Plan, role planner.Role) (string, error) {
	e, ok := plan.Lookup(role)
	if !ok {
		return "", fmt.Errorf("plan for %s has no %s entry", plan.BaseDir, role)
	}
	return plan.Abs(e), nil
}

// targets holds the resolved paths of the files written after the touch step.
type targets struct {
	manifest, class, page, view, license string
}

func resolveTargets(plan *planner.Plan) (targets, error) {
	var t targets
	for _, r := range []struct {
		role planner.Role
		dst  *string
	}{
		{planner.RoleManifest, &t.manifest},
		{planner.RoleClass, &t.class},
		{planner.RolePage, &t.page},
		{planner.RoleView, &t.view},
		{planner.RoleLicense, &t.license},
	} {
		path, err := abs(plan, r.role)
		if err != nil {
			return t, err
		}
		*r.dst = path
	}
	return t, nil
}
