package eligibility

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// File is the deploy-time service-area document.
//
//	version: 2025-06
//	zip_codes:
//	  - "22030"
//	  - "22031"
type File struct {
	Version  string   `yaml:"version"`
	ZipCodes []string `yaml:"zip_codes"`
}

// LoadFile reads a service-area YAML document. Every entry must be a 5-digit
// code; the first bad entries are reported rather than silently skipped.
func LoadFile(path string) (*Set, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service area file: %w", err)
	}
	return Parse(raw)
}

// Parse decodes a service-area YAML document.
func Parse(raw []byte) (*Set, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("decode service area file: %w", err)
	}

	codes := make([]PostalCode, 0, len(f.ZipCodes))
	var bad []string
	for _, z := range f.ZipCodes {
		code, err := ParsePostalCode(z)
		if err != nil {
			bad = append(bad, z)
			continue
		}
		codes = append(codes, code)
	}
	if len(bad) > 0 {
		if len(bad) > 5 {
			bad = append(bad[:5], "...")
		}
		return nil, fmt.Errorf("service area file has invalid zip codes: %s", strings.Join(bad, ", "))
	}

	set := NewSet(codes...)
	set.version = f.Version
	return set, nil
}
