// Package seeddata holds the demo data set and the registry of seed modules.
package seeddata

import (
	"embed"
	"fmt"
	"io/fs"
	"path"

	"gopkg.in/yaml.v3"

	"github.com/masbusiness/business-os/internal/schema"
)

//go:embed data/*.yaml
var dataFS embed.FS

// ModuleOrder is the registry order. Clearing walks it backwards.
var ModuleOrder = []string{
	"core",
	"users",
	"hr",
	"crm",
	"projects",
	"finance",
	"learning",
	"communications",
}

type moduleFile struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Collections []collectionFile `yaml:"collections"`
}

type collectionFile struct {
	Name         string      `yaml:"name"`
	Dependencies []string    `yaml:"dependencies"`
	Records      []yaml.Node `yaml:"records"`
}

// Load builds the registry from the embedded data set.
func Load() (*Registry, error) {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		return nil, err
	}
	return LoadFS(sub, ModuleOrder)
}

// LoadFS reads <name>.yaml from fsys for each module in order, validates every
// record against its collection schema and builds the registry.
func LoadFS(fsys fs.FS, order []string) (*Registry, error) {
	modules := make([]SeedModule, 0, len(order))
	for _, name := range order {
		m, err := loadModule(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("load module %s: %w", name, err)
		}
		modules = append(modules, m)
	}
	return NewRegistry(modules)
}

func loadModule(fsys fs.FS, name string) (SeedModule, error) {
	raw, err := fs.ReadFile(fsys, path.Clean(name+".yaml"))
	if err != nil {
		return SeedModule{}, err
	}

	var file moduleFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return SeedModule{}, fmt.Errorf("parse: %w", err)
	}
	if file.Name != name {
		return SeedModule{}, fmt.Errorf("file declares module %q", file.Name)
	}

	module := SeedModule{
		Name:        file.Name,
		Description: file.Description,
		Collections: make([]SeedCollection, 0, len(file.Collections)),
	}
	for _, cf := range file.Collections {
		c := SeedCollection{
			Name:         cf.Name,
			Dependencies: cf.Dependencies,
			Records:      make([]Record, 0, len(cf.Records)),
		}
		for i := range cf.Records {
			shape, err := schema.Decode(cf.Name, i, &cf.Records[i])
			if err != nil {
				return SeedModule{}, err
			}
			fields, err := schema.Fields(shape)
			if err != nil {
				return SeedModule{}, err
			}
			c.Records = append(c.Records, Record(fields))
		}
		module.Collections = append(module.Collections, c)
	}
	return module, nil
}
