// Package policy turns contract rules into IDS permission wire objects.
package policy

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// DefaultBaseURI is the namespace under which permission ids are minted.
const DefaultBaseURI = "https://w3id.org/idsa/autogen/permission"

// Builder converts contract rules into permissions.
type Builder struct {
	base   *url.URL
	schema *jsonschema.Schema
}

// NewBuilder returns a builder minting ids under baseURI, which must be absolute.
func NewBuilder(baseURI string) (*Builder, error) {
	base, err := url.Parse(baseURI)
	if err != nil || !base.IsAbs() {
		return nil, fmt.Errorf("permission base uri %q must be absolute: %w", baseURI, domain.ErrInvalidConfiguration)
	}

	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}

	return &Builder{base: base, schema: schema}, nil
}

type permissionDoc struct {
	Type        string            `json:"@type"`
	ID          string            `json:"@id"`
	Action      []reference       `json:"ids:action"`
	Description []TypedLiteral    `json:"ids:description"`
	Title       []TypedLiteral    `json:"ids:title"`
	Constraint  []json.RawMessage `json:"ids:constraint"`
}

// Build parses rule.Value as an IDS permission. The resulting id is always
// <base>/<rule id>, whether or not the body declared one.
func (b *Builder) Build(rule *domain.ContractRule) (*Permission, error) {
	if rule == nil {
		return nil, fmt.Errorf("contract rule: %w", domain.ErrNullArgument)
	}

	body := []byte(rule.Value)

	var raw interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("rule %s body is not json: %v: %w", rule.ID, err, domain.ErrInvalidArgument)
	}
	if err := b.schema.Validate(raw); err != nil {
		return nil, fmt.Errorf("rule %s body is not a permission: %v: %w", rule.ID, err, domain.ErrInvalidArgument)
	}

	var doc permissionDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("rule %s: %v: %w", rule.ID, err, domain.ErrInvalidArgument)
	}

	if doc.Type != typePermission && doc.Type != typePermissionExpanded {
		return nil, fmt.Errorf("rule %s has type %q, want %s: %w", rule.ID, doc.Type, typePermission, domain.ErrInvalidArgument)
	}

	perm := &Permission{
		ID:          b.base.JoinPath(rule.ID.String()),
		Description: doc.Description,
		Title:       doc.Title,
		Constraint:  doc.Constraint,
	}

	if doc.Action != nil {
		perm.Action = make([]Action, 0, len(doc.Action))
		for _, ref := range doc.Action {
			a, err := ParseAction(ref.ID)
			if err != nil {
				return nil, fmt.Errorf("rule %s: %w", rule.ID, err)
			}
			perm.Action = append(perm.Action, a)
		}
	}

	return perm, nil
}
