package policy

import (
	"encoding/json"
	"net/url"
)

const (
	// CoreNamespace is the IRI prefix of the IDS information model.
	CoreNamespace = "https://w3id.org/idsa/core/"

	typePermission         = "ids:Permission"
	typePermissionExpanded = CoreNamespace + "Permission"
)

// TypedLiteral is a JSON-LD value object such as an ids:description entry.
type TypedLiteral struct {
	Value    string `json:"@value"`
	Type     string `json:"@type,omitempty"`
	Language string `json:"@language,omitempty"`
}

// Permission is the IDS wire representation of a contract rule.
// Action is nil when the rule declares no action.
type Permission struct {
	ID          *url.URL
	Action      []Action
	Description []TypedLiteral
	Title       []TypedLiteral
	Constraint  []json.RawMessage
}

type reference struct {
	ID string `json:"@id"`
}

type permissionJSON struct {
	Context     map[string]string `json:"@context,omitempty"`
	Type        string            `json:"@type"`
	ID          string            `json:"@id,omitempty"`
	Action      []reference       `json:"ids:action,omitempty"`
	Description []TypedLiteral    `json:"ids:description,omitempty"`
	Title       []TypedLiteral    `json:"ids:title,omitempty"`
	Constraint  []json.RawMessage `json:"ids:constraint,omitempty"`
}

// MarshalJSON renders the permission as JSON-LD.
func (p *Permission) MarshalJSON() ([]byte, error) {
	out := permissionJSON{
		Context: map[string]string{
			"ids":  CoreNamespace,
			"idsc": CodeNamespace,
		},
		Type:        typePermission,
		Description: p.Description,
		Title:       p.Title,
		Constraint:  p.Constraint,
	}
	if p.ID != nil {
		out.ID = p.ID.String()
	}
	for _, a := range p.Action {
		out.Action = append(out.Action, reference{ID: a.CompactIRI()})
	}
	return json.Marshal(out)
}
