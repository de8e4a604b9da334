// Package version parses build versions and checks them against the
// constraints a config file may declare.
package version

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-version"
)

// Version wraps hashicorp/go-version for semantic versioning
type Version struct {
	version *version.Version
}

// Parse parses a semantic version string (e.g., "v1.2.3", "1.2.3-beta", "v1.2.3+build123")
func Parse(v string) (*Version, error) {
	v = strings.TrimPrefix(v, "v")

	if v == "dev" || v == "" {
		v = "0.0.0-dev"
	}

	parsed, err := version.NewVersion(v)
	if err != nil {
		return nil, fmt.Errorf("invalid version format: %s", v)
	}

	return &Version{version: parsed}, nil
}

// String returns the string representation of the version
func (v *Version) String() string {
	return v.version.String()
}

// IsDev reports whether v is an unreleased development build
func (v *Version) IsDev() bool {
	return v.version.Prerelease() == "dev" && v.version.Core().Equal(version.Must(version.NewVersion("0.0.0")))
}

// Prerelease returns the pre-release version (e.g., "beta.1" from "1.2.3-beta.1")
func (v *Version) Prerelease() string {
	return v.version.Prerelease()
}

// ValidConstraint reports whether s is a well-formed constraint such as
// ">= 0.2, < 1.0".
func ValidConstraint(s string) bool {
	_, err := version.NewConstraint(s)
	return err == nil
}

// Satisfies checks v against constraint. Development builds satisfy every
// constraint.
func (v *Version) Satisfies(constraint string) (bool, error) {
	if constraint == "" || v.IsDev() {
		return true, nil
	}
	c, err := version.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}
	return c.Check(v.version), nil
}
