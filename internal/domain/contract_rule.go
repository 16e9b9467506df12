package domain

import "net/url"

// ContractRule is a usage-policy clause. Value holds the policy body,
// expected to be an IDS permission in JSON-LD.
type ContractRule struct {
	Entity

	// RemoteID is the id of the rule at the providing connector,
	// or "genesis" for rules created locally.
	RemoteID *url.URL `json:"-"`
	Title    string   `json:"title"`
	Remark   string   `json:"remark"`
	Value    string   `json:"value"`
}

// ContractRuleDesc is the desired state of a contract rule.
type ContractRuleDesc struct {
	RemoteID *url.URL
	Title    string
	Remark   string
	Value    string
}
