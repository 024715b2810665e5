package registry

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/fmzchao/studio-sub005/internal/types"
)

// Manifest is the YAML document listing the component specs a registry is
// bootstrapped from.
//
// Example:
//
//	components:
//	  - id: trigger.manual
//	    label: Manual Trigger
//	    entrypoint: true
//	    outputs:
//	      - id: payload
//	        type: json
//	  - id: http.request
//	    label: HTTP Request
//	    inputs:
//	      - id: url
//	        required: true
//	        type: text
//	    outputs:
//	      - id: response
//	        type: contract:http_response
type Manifest struct {
	Components []*ComponentSpec `yaml:"components"`
}

// LoadManifestFile reads and parses a component manifest from disk.
func LoadManifestFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.WrapError(types.MANIFEST_LOAD_FAILED,
			fmt.Sprintf("failed to read manifest %s", path), err)
	}
	return ParseManifest(data)
}

// ParseManifest parses a component manifest document and validates every spec.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, types.WrapError(types.MANIFEST_PARSE_FAILED, "failed to parse manifest YAML", err)
	}

	if len(m.Components) == 0 {
		return nil, types.NewError(types.MANIFEST_VALIDATION_FAILED,
			"manifest must declare at least one component")
	}

	for _, spec := range m.Components {
		if spec == nil {
			return nil, types.NewError(types.MANIFEST_VALIDATION_FAILED,
				"manifest contains an empty component entry")
		}
		if err := spec.Validate(); err != nil {
			return nil, types.WrapError(types.MANIFEST_VALIDATION_FAILED,
				"manifest component validation failed", err)
		}
	}

	return &m, nil
}

// LoadFromManifest registers every component in the manifest file into the
// registry. Registration stops at the first failure.
func (r *StaticRegistry) LoadFromManifest(path string) error {
	m, err := LoadManifestFile(path)
	if err != nil {
		return err
	}

	for _, spec := range m.Components {
		if err := r.Register(spec); err != nil {
			return err
		}
	}
	return nil
}
