// Package config loads the small type universe a kernel.Kernel solves
// over from a YAML document, the same way the teacher project's
// pkg/driver loaded manifests and lockfiles: gopkg.in/yaml.v3 with
// KnownFields enabled so a typo in a config file fails loudly instead of
// silently doing nothing.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"constraintlab/pkg/kernel"
	"constraintlab/pkg/typeterm"
)

// TypeDef is one nominal type's entry in the YAML document.
type TypeDef struct {
	Supertypes []string          `yaml:"supertypes"`
	ConformsTo []string          `yaml:"conformsTo"`
	Members    map[string]string `yaml:"members"`
}

// Config is the root of a type-universe configuration file.
type Config struct {
	Types               map[string]TypeDef  `yaml:"types"`
	LiteralDefaults     map[string]string   `yaml:"literalDefaults"`
	LiteralAlternatives map[string][]string `yaml:"literalAlternatives"`
}

// Load reads and parses a type-universe document from path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Decode parses a type-universe document from r.
func Decode(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Config
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return &doc, nil
}

// Build constructs a kernel.Kernel, Conformances table, and Members
// table from the document's Types section, resolving every named type
// to a kernel.Class term.
func (d *Config) Build() (*kernel.Kernel, kernel.Conformances, kernel.Members) {
	k := kernel.NewKernel()
	conformances := kernel.Conformances{}
	members := kernel.Members{}

	for name, def := range d.Types {
		k.DirectSupers[name] = append([]string(nil), def.Supertypes...)
		conformances[name] = append([]string(nil), def.ConformsTo...)
		if len(def.Members) > 0 {
			fields := make(map[string]typeterm.Term, len(def.Members))
			for memberName, typeName := range def.Members {
				fields[memberName] = kernel.Class{Name: typeName}
			}
			members[name] = fields
		}
	}

	for protocol, typeName := range d.LiteralDefaults {
		k.LiteralDefaults[protocol] = kernel.Class{Name: typeName}
	}
	for protocol, typeNames := range d.LiteralAlternatives {
		alts := make([]typeterm.Term, len(typeNames))
		for i, n := range typeNames {
			alts[i] = kernel.Class{Name: n}
		}
		k.LiteralAlternatives[protocol] = alts
	}

	return k, conformances, members
}
