package tool

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"gopkg.in/yaml.v3"
)

// Policy is the optional YAML file controlling which tools are callable.
// Tools absent from the file keep their built-in enabled state.
type Policy struct {
	Tools map[string]PolicyEntry `yaml:"tools"`
}

type PolicyEntry struct {
	Enabled bool `yaml:"enabled"`
}

// LoadPolicy reads a tool policy file. A missing file is not an error; it
// simply means no overrides.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Policy{}, nil
		}
		return nil, goerr.Wrap(err, "failed to read tool policy", goerr.V("path", path))
	}

	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, goerr.Wrap(err, "failed to parse tool policy", goerr.V("path", path))
	}
	return &p, nil
}

// Set records an override for a tool
func (p *Policy) Set(name string, enabled bool) {
	if p.Tools == nil {
		p.Tools = map[string]PolicyEntry{}
	}
	p.Tools[name] = PolicyEntry{Enabled: enabled}
}

// Save writes the policy file
func (p *Policy) Save(path string) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal tool policy")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return goerr.Wrap(err, "failed to write tool policy", goerr.V("path", path))
	}
	return nil
}

// Apply applies the policy overrides to the registry. Unknown tool names in
// the policy are ignored.
func (r *Registry) Apply(p *Policy) {
	if p == nil {
		return
	}
	for name, entry := range p.Tools {
		if _, ok := r.Get(name); !ok {
			continue
		}
		if entry.Enabled {
			_ = r.Enable(name)
		} else {
			_ = r.Disable(name)
		}
	}
}
