package bootstrap

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the top-level structure of the bootstrap YAML file.
type File struct {
	Brokers   []BrokerEntry   `yaml:"brokers"`
	Endpoints []EndpointEntry `yaml:"endpoints"`
	Rules     []RuleEntry     `yaml:"rules"`
}

// BrokerEntry describes a broker to register.
type BrokerEntry struct {
	Name      string `yaml:"name"`
	AccessURL string `yaml:"accessUrl,omitempty"`
	Title     string `yaml:"title,omitempty"`
	Status    string `yaml:"status,omitempty"`
}

// EndpointEntry describes an app endpoint to register.
type EndpointEntry struct {
	Name      string `yaml:"name"`
	AccessURL string `yaml:"accessUrl,omitempty"`
	MediaType string `yaml:"mediaType,omitempty"`
	Port      *int   `yaml:"port,omitempty"`
	Protocol  string `yaml:"protocol,omitempty"`
	Language  string `yaml:"language,omitempty"`
}

// RuleEntry describes a contract rule to register.
type RuleEntry struct {
	Name     string    `yaml:"name"`
	RemoteID string    `yaml:"remoteId,omitempty"`
	Title    string    `yaml:"title,omitempty"`
	Remark   string    `yaml:"remark,omitempty"`
	Value    RuleValue `yaml:"value,omitempty"`
}

// RuleValue is the JSON body of a rule. In YAML it is either a string holding
// JSON or a mapping, which is re-encoded as JSON.
type RuleValue string

func (v *RuleValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		if node.Tag == "!!null" {
			*v = ""
			return nil
		}
		*v = RuleValue(node.Value)
		return nil
	}

	var doc map[string]any
	if err := node.Decode(&doc); err != nil {
		return fmt.Errorf("line %d: rule value must be a string or a mapping: %w", node.Line, err)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("line %d: rule value: %w", node.Line, err)
	}
	*v = RuleValue(data)
	return nil
}
