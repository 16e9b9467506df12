package factory

import (
	"fmt"
	"net/url"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// DefaultRemoteID marks a rule that was created locally.
const DefaultRemoteID = "genesis"

// ContractRuleFactory creates and updates contract rules.
type ContractRuleFactory struct {
	fields []field[domain.ContractRule, domain.ContractRuleDesc]
}

var _ Factory[domain.ContractRule, domain.ContractRuleDesc] = (*ContractRuleFactory)(nil)

func NewContractRuleFactory() *ContractRuleFactory {
	return &ContractRuleFactory{fields: []field[domain.ContractRule, domain.ContractRuleDesc]{
		uriField("remoteId",
			func(r *domain.ContractRule) **url.URL { return &r.RemoteID },
			func(d *domain.ContractRuleDesc) *url.URL { return d.RemoteID }),
		stringField("title",
			func(r *domain.ContractRule) *string { return &r.Title },
			func(d *domain.ContractRuleDesc) string { return d.Title }),
		stringField("remark",
			func(r *domain.ContractRule) *string { return &r.Remark },
			func(d *domain.ContractRuleDesc) string { return d.Remark }),
		stringField("value",
			func(r *domain.ContractRule) *string { return &r.Value },
			func(d *domain.ContractRuleDesc) string { return d.Value }),
	}}
}

// Create returns a contract rule with default values overridden by desc.
func (f *ContractRuleFactory) Create(desc *domain.ContractRuleDesc) (*domain.ContractRule, error) {
	if desc == nil {
		return nil, fmt.Errorf("contract rule description: %w", domain.ErrNullArgument)
	}

	rule := &domain.ContractRule{
		RemoteID: mustParseURI(DefaultRemoteID),
	}

	if _, err := f.Update(rule, desc); err != nil {
		return nil, err
	}
	return rule, nil
}

// Update applies desc to rule.
func (f *ContractRuleFactory) Update(rule *domain.ContractRule, desc *domain.ContractRuleDesc) (bool, error) {
	changed, err := f.UpdateFields(rule, desc)
	return len(changed) > 0, err
}

// UpdateFields applies desc to rule and names the fields that changed.
func (f *ContractRuleFactory) UpdateFields(rule *domain.ContractRule, desc *domain.ContractRuleDesc) ([]string, error) {
	if rule == nil {
		return nil, fmt.Errorf("contract rule: %w", domain.ErrNullArgument)
	}
	if desc == nil {
		return nil, fmt.Errorf("contract rule description: %w", domain.ErrNullArgument)
	}
	return applyAll(rule, desc, f.fields), nil
}
