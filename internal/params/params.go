package params

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
)

var (
	// ErrInvalidName is returned when a raw module name is empty, contains
	// whitespace, is not lowercase or cannot be used as a file or element name.
	ErrInvalidName = errors.New("invalid module name")

	// ErrInvalidAnswer is returned when a license or category answer is not
	// one of the supported values.
	ErrInvalidAnswer = errors.New("invalid answer")
)

// License identifies the bundled license text copied into a module.
type License string

const (
	LicenseGPLv2  License = "GPLv2"
	LicenseGPLv3  License = "GPLv3"
	LicenseAGPLv3 License = "AGPLv3"
	LicenseMIT    License = "MIT"
)

// Licenses lists the supported licenses in menu order.
var Licenses = []License{LicenseGPLv2, LicenseGPLv3, LicenseAGPLv3, LicenseMIT}

// Category is the FreePBX menu category a module is listed under.
type Category string

const (
	CategoryAdmin        Category = "Admin"
	CategoryApplications Category = "Applications"
	CategoryConnectivity Category = "Connectivity"
	CategoryReports      Category = "Reports"
	CategorySettings     Category = "Settings"
)

// Categories lists the supported categories in menu order.
var Categories = []Category{
	CategoryAdmin,
	CategoryApplications,
	CategoryConnectivity,
	CategoryReports,
	CategorySettings,
}

// Answers is the raw operator input before validation.
type Answers struct {
	Name        string `yaml:"name" validate:"required,rawname"`
	Version     string `yaml:"version"`
	Description string `yaml:"description"`
	License     string `yaml:"license" validate:"required,oneof=GPLv2 GPLv3 AGPLv3 MIT"`
	Category    string `yaml:"category" validate:"required,oneof=Admin Applications Connectivity Reports Settings"`
}

// ParameterSet is the validated, immutable record of a run's answers.
type ParameterSet struct {
	rawName     string
	version     string
	description string
	license     License
	category    Category
}

// namePattern keeps a raw name usable both as a single path segment and as
// the manifest's menu item element name.
var namePattern = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("rawname", func(fl validator.FieldLevel) bool {
		return ValidateRawName(fl.Field().String()) == nil
	})
	return v
}

// New validates answers and returns the corresponding ParameterSet. The name
// is checked as given: callers normalize operator input with Normalize first.
func New(a Answers) (*ParameterSet, error) {
	if err := validate.Struct(a); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return nil, fmt.Errorf("validating answers: %w", err)
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "Name":
				return nil, nameError(a.Name)
			case "License":
				return nil, fmt.Errorf("%w: license %q must be one of %s", ErrInvalidAnswer, a.License, joinLicenses())
			case "Category":
				return nil, fmt.Errorf("%w: category %q must be one of %s", ErrInvalidAnswer, a.Category, joinCategories())
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnswer, err)
	}

	return &ParameterSet{
		rawName:     a.Name,
		version:     a.Version,
		description: a.Description,
		license:     License(a.License),
		category:    Category(a.Category),
	}, nil
}

// Normalize trims surrounding whitespace and lowercases a module name.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ValidateRawName reports whether name is a usable raw identifier.
func ValidateRawName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: name is empty", ErrInvalidName)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: %q contains whitespace", ErrInvalidName, name)
	}
	if strings.ToLower(name) != name {
		return fmt.Errorf("%w: %q is not lowercase", ErrInvalidName, name)
	}
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q must match pattern [a-z_][a-z0-9_-]*", ErrInvalidName, name)
	}
	return nil
}

func nameError(name string) error {
	if err := ValidateRawName(name); err != nil {
		return err
	}
	return fmt.Errorf("%w: %q", ErrInvalidName, name)
}

// Capitalize upper-cases the first byte of s when it is an ASCII letter and
// leaves everything else untouched.
func Capitalize(s string) string {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// RawName returns the lowercase identifier of the module.
func (p *ParameterSet) RawName() string { return p.rawName }

// DisplayName returns the capitalized form of the raw name.
func (p *ParameterSet) DisplayName() string { return Capitalize(p.rawName) }

// Version returns the module version as entered.
func (p *ParameterSet) Version() string { return p.version }

// Description returns the module description.
func (p *ParameterSet) Description() string { return p.description }

// License returns the chosen license.
func (p *ParameterSet) License() License { return p.license }

// Category returns the chosen menu category.
func (p *ParameterSet) Category() Category { return p.category }

// VersionWarning returns a message when the version is not a semantic
// version. Such versions are still accepted.
func (p *ParameterSet) VersionWarning() string {
	if _, err := semver.NewVersion(strings.TrimPrefix(p.version, "v")); err != nil {
		return fmt.Sprintf("version %q is not a semantic version", p.version)
	}
	return ""
}

// ParseLicense maps a license name to a License.
func ParseLicense(s string) (License, error) {
	for _, l := range Licenses {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("%w: license %q must be one of %s", ErrInvalidAnswer, s, joinLicenses())
}

// ParseCategory maps a category name to a Category.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: category %q must be one of %s", ErrInvalidAnswer, s, joinCategories())
}

func joinLicenses() string {
	names := make([]string, len(Licenses))
	for i, l := range Licenses {
		names[i] = string(l)
	}
	return strings.Join(names, ", ")
}

func joinCategories() string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
