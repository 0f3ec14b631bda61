package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/polish/internal/cleaner"
)

// SaveOptions updates the options section of the config file so runtime
// toggles survive restarts. Comments and formatting in other sections are
// preserved by editing the yaml.Node tree instead of re-marshaling the
// whole document.
func SaveOptions(configPath string, opts cleaner.Options) error {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading config: %w", err)
	}

	var doc yaml.Node
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("parsing config: %w", err)
		}
	}

	optionsNode, err := buildOptionsNode(opts)
	if err != nil {
		return fmt.Errorf("building options node: %w", err)
	}

	if doc.Kind == 0 {
		// Empty or new file
		doc = yaml.Node{
			Kind: yaml.DocumentNode,
			Content: []*yaml.Node{
				{
					Kind: yaml.MappingNode,
					Content: []*yaml.Node{
						{Kind: yaml.ScalarNode, Value: "options"},
						optionsNode,
					},
				},
			},
		}
	} else if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root := doc.Content[0]
		if root.Kind == yaml.MappingNode {
			found := false
			for i := 0; i < len(root.Content)-1; i += 2 {
				if root.Content[i].Value == "options" {
					root.Content[i+1] = optionsNode
					found = true
					break
				}
			}
			if !found {
				root.Content = append(root.Content,
					&yaml.Node{Kind: yaml.ScalarNode, Value: "options"},
					optionsNode,
				)
			}
		}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(&doc); err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	_ = encoder.Close()

	if err := os.WriteFile(configPath, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// buildOptionsNode renders the options as an explicit mapping node so key
// order is stable across saves.
func buildOptionsNode(opts cleaner.Options) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	entries := []struct {
		key   string
		value bool
	}{
		{"smart_quotes", opts.SmartQuotes},
		{"dashes", opts.Dashes},
		{"whitespace", opts.Whitespace},
		{"strip_markdown", opts.StripMarkdown},
		{"fix_grammar", opts.FixGrammar},
	}
	for _, e := range entries {
		var valueNode yaml.Node
		if err := valueNode.Encode(e.value); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.key, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: e.key},
			&valueNode,
		)
	}
	return node, nil
}
