package models

import (
	"fmt"
	"strings"
)

const DefaultVersionRange = "latest"

// PackageSpec is a registry package plus the range to install, "name@range".
type PackageSpec struct {
	Name         string `json:"name" yaml:"name"`
	VersionRange string `json:"version_range" yaml:"version_range"`
}

func NewPackageSpec(name, versionRange string) PackageSpec {
	if versionRange == "" {
		versionRange = DefaultVersionRange
	}
	return PackageSpec{Name: name, VersionRange: versionRange}
}

// ParsePackageSpec splits "name@range". The leading @ of a scoped name is
// never treated as the separator. A missing range means DefaultVersionRange.
func ParsePackageSpec(s string) PackageSpec {
	idx := strings.LastIndex(s, "@")
	if idx <= 0 {
		return NewPackageSpec(s, "")
	}
	return NewPackageSpec(s[:idx], s[idx+1:])
}

func (p PackageSpec) String() string {
	return fmt.Sprintf("%s@%s", p.Name, p.VersionRange)
}

// PackageSet is an insertion-ordered set of packages keyed by name. Adding a
// name twice keeps its first position and takes the newer range.
type PackageSet struct {
	order []string
	specs map[string]PackageSpec
}

func NewPackageSet() *PackageSet {
	return &PackageSet{specs: make(map[string]PackageSpec)}
}

func (s *PackageSet) Add(spec PackageSpec) {
	if _, exists := s.specs[spec.Name]; !exists {
		s.order = append(s.order, spec.Name)
	}
	s.specs[spec.Name] = spec
}

func (s *PackageSet) AddName(name, versionRange string) {
	s.Add(NewPackageSpec(name, versionRange))
}

func (s *PackageSet) Has(name string) bool {
	_, ok := s.specs[name]
	return ok
}

func (s *PackageSet) Remove(name string) {
	if _, ok := s.specs[name]; !ok {
		return
	}
	delete(s.specs, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *PackageSet) Len() int {
	return len(s.order)
}

func (s *PackageSet) Specs() []PackageSpec {
	out := make([]PackageSpec, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.specs[name])
	}
	return out
}

// DependencyLists partitions packages by install flag. A name never appears
// in both lists.
type DependencyLists struct {
	Runtime     []PackageSpec `json:"runtime" yaml:"runtime"`
	Development []PackageSpec `json:"development" yaml:"development"`
	// Unresolved holds lint packages whose peers could not be looked up.
	Unresolved  []string      `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
}

func SpecStrings(specs []PackageSpec) []string {
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.String())
	}
	return out
}

func SpecNames(specs []PackageSpec) []string {
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.Name)
	}
	return out
}
