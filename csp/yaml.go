package csp

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPolicy is returned for policy documents that are not a mapping
// of directive names to sources.
var ErrInvalidPolicy = errors.New("invalid csp policy")

// UnmarshalYAML decodes a mapping of directive name to sources. Mapping
// order is kept. A source list may be a sequence, a space separated string,
// or empty for value-less directives such as upgrade-insecure-requests.
func (p *Policy) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: expected mapping", ErrInvalidPolicy, node.Line)
	}
	out := make(Policy, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		name := strings.TrimSpace(key.Value)
		if key.Kind != yaml.ScalarNode || name == "" {
			return fmt.Errorf("%w: line %d: directive name must be a string", ErrInvalidPolicy, key.Line)
		}
		sources, err := decodeSources(val)
		if err != nil {
			return err
		}
		out = out.Set(name, sources...)
	}
	*p = out
	return nil
}

// MarshalYAML encodes the policy as an ordered mapping.
func (p Policy) MarshalYAML() (any, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	for _, d := range p {
		seq := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
		for _, s := range d.Sources {
			seq.Content = append(seq.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: s})
		}
		m.Content = append(m.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: d.Name}, seq)
	}
	return m, nil
}

func decodeSources(n *yaml.Node) ([]string, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return strings.Fields(n.Value), nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(n.Content))
		for _, c := range n.Content {
			if c.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w: line %d: source must be a string", ErrInvalidPolicy, c.Line)
			}
			out = append(out, c.Value)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: line %d: unsupported source list", ErrInvalidPolicy, n.Line)
	}
}

// Parse decodes a YAML policy document.
func Parse(data []byte) (Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: no directives", ErrInvalidPolicy)
	}
	return p, nil
}

// Load reads and parses a YAML policy file.
func Load(path string) (Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read csp policy: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse csp policy %s: %w", path, err)
	}
	return p, nil
}
