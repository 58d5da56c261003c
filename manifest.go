package exampleaddon

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Manifest describes an addon's metadata and the surfaces it contributes.
// The host reads it when mounting the addon.
type Manifest struct {
	Name        string `json:"name" yaml:"name"`
	Version     string `json:"version" yaml:"version"`
	Author      string `json:"author" yaml:"author"`
	Description string `json:"description" yaml:"description"`

	// AddonType is "server" or "pipeline". Server addons can be swapped
	// without publishing a new bundle.
	AddonType string `json:"addonType" yaml:"addonType"`

	// FrontendScopes declares where the host web app mounts the addon's
	// frontend, with renderer arguments per scope.
	FrontendScopes map[string]map[string]string `json:"frontendScopes,omitempty" yaml:"frontendScopes,omitempty"`

	// Services lists sidecar containers the host should run for the addon.
	Services map[string]SidecarService `json:"services,omitempty" yaml:"services,omitempty"`
}

// SidecarService declares a container image the host runs alongside the
// addon.
type SidecarService struct {
	Image string `json:"image" yaml:"image"`
}

// Validate checks that a manifest has all required fields and valid semver.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("manifest: name is required")
	}
	if !isValidAddonName(m.Name) {
		return fmt.Errorf("manifest: name %q must be lowercase alphanumeric with hyphens", m.Name)
	}
	if m.Version == "" {
		return fmt.Errorf("manifest: version is required")
	}
	if _, err := ParseSemver(m.Version); err != nil {
		return fmt.Errorf("manifest: invalid version %q: %w", m.Version, err)
	}
	if m.Author == "" {
		return fmt.Errorf("manifest: author is required")
	}
	if m.Description == "" {
		return fmt.Errorf("manifest: description is required")
	}
	switch m.AddonType {
	case "server", "pipeline":
	default:
		return fmt.Errorf("manifest: addon type %q must be server or pipeline", m.AddonType)
	}
	for name, svc := range m.Services {
		if svc.Image == "" {
			return fmt.Errorf("manifest: service %q needs an image", name)
		}
	}
	return nil
}

var addonNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$`)

func isValidAddonName(name string) bool {
	if len(name) < 2 {
		return len(name) == 1 && name[0] >= 'a' && name[0] <= 'z'
	}
	return addonNameRe.MatchString(name)
}

// Semver represents a parsed semantic version.
type Semver struct {
	Major int
	Minor int
	Patch int
}

func (s Semver) String() string {
	return fmt.Sprintf("%d.%d.%d", s.Major, s.Minor, s.Patch)
}

// ParseSemver parses a "major.minor.patch" version string.
func ParseSemver(v string) (Semver, error) {
	parts := strings.SplitN(strings.TrimPrefix(v, "v"), ".", 3)
	if len(parts) != 3 {
		return Semver{}, fmt.Errorf("expected major.minor.patch, got %q", v)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return Semver{}, fmt.Errorf("invalid version component %q", p)
		}
		nums[i] = n
	}
	return Semver{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}
