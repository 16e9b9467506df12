package bootstrap

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// Namespace seeds the deterministic ids of bootstrap entities.
var Namespace = uuid.MustParse("8d3c7a9e-5b0f-4f57-9a51-2f6f0c1e7b44")

// Entry pairs a description with the stable id it is registered under.
type Entry[D any] struct {
	ID   uuid.UUID
	Name string
	Desc *D
}

// Set is the mapped content of a bootstrap file.
type Set struct {
	Brokers   []Entry[domain.BrokerDesc]
	Endpoints []Entry[domain.AppEndpointDesc]
	Rules     []Entry[domain.ContractRuleDesc]

	// Skipped holds, per kind, the ids of named entries that failed to map.
	// They are still listed in the file and must not be pruned.
	Skipped map[string][]uuid.UUID
}

// Len returns the number of entries of every kind.
func (s *Set) Len() int {
	return len(s.Brokers) + len(s.Endpoints) + len(s.Rules)
}

// EntityID returns the id an entry named name of kind gets, e.g. ("broker", "main").
func EntityID(kind, name string) uuid.UUID {
	return uuid.NewSHA1(Namespace, []byte(kind+"/"+name))
}

// Map converts a bootstrap file into descriptions. Invalid entries are
// skipped; their errors are joined into the returned error, which accompanies
// a usable Set.
func Map(f *File) (*Set, error) {
	set := &Set{Skipped: make(map[string][]uuid.UUID)}
	var errs []error

	skip := func(kind, name string, err error) {
		errs = append(errs, fmt.Errorf("%s %q: %w", kind, name, err))
		set.Skipped[kind] = append(set.Skipped[kind], EntityID(kind, name))
	}

	names := make(map[string]bool)
	claim := func(kind, name string) error {
		name = strings.TrimSpace(name)
		if name == "" {
			return fmt.Errorf("%s without name: %w", kind, domain.ErrInvalidArgument)
		}
		key := kind + "/" + name
		if names[key] {
			return fmt.Errorf("duplicate %s %q: %w", kind, name, domain.ErrInvalidArgument)
		}
		names[key] = true
		return nil
	}

	for _, b := range f.Brokers {
		if err := claim("broker", b.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		desc, err := mapBroker(b)
		if err != nil {
			skip("broker", b.Name, err)
			continue
		}
		set.Brokers = append(set.Brokers, Entry[domain.BrokerDesc]{ID: EntityID("broker", b.Name), Name: b.Name, Desc: desc})
	}

	for _, e := range f.Endpoints {
		if err := claim("endpoint", e.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		desc, err := mapEndpoint(e)
		if err != nil {
			skip("endpoint", e.Name, err)
			continue
		}
		set.Endpoints = append(set.Endpoints, Entry[domain.AppEndpointDesc]{ID: EntityID("endpoint", e.Name), Name: e.Name, Desc: desc})
	}

	for _, r := range f.Rules {
		if err := claim("rule", r.Name); err != nil {
			errs = append(errs, err)
			continue
		}
		desc, err := mapRule(r)
		if err != nil {
			skip("rule", r.Name, err)
			continue
		}
		set.Rules = append(set.Rules, Entry[domain.ContractRuleDesc]{ID: EntityID("rule", r.Name), Name: r.Name, Desc: desc})
	}

	return set, errors.Join(errs...)
}

func mapBroker(b BrokerEntry) (*domain.BrokerDesc, error) {
	u, err := parseURI(b.AccessURL, true)
	if err != nil {
		return nil, err
	}
	status := domain.RegisterStatus(strings.ToUpper(b.Status))
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown status %q: %w", b.Status, domain.ErrInvalidArgument)
	}
	return &domain.BrokerDesc{AccessURL: u, Title: b.Title, Status: status}, nil
}

func mapEndpoint(e EndpointEntry) (*domain.AppEndpointDesc, error) {
	u, err := parseURI(e.AccessURL, true)
	if err != nil {
		return nil, err
	}
	if e.Port != nil && (*e.Port < 0 || *e.Port > 65535) {
		return nil, fmt.Errorf("port %d out of range: %w", *e.Port, domain.ErrInvalidArgument)
	}
	return &domain.AppEndpointDesc{
		AccessURL: u,
		MediaType: e.MediaType,
		Port:      e.Port,
		Protocol:  e.Protocol,
		Language:  e.Language,
	}, nil
}

func mapRule(r RuleEntry) (*domain.ContractRuleDesc, error) {
	// remote ids are opaque references and may be relative, like the default "genesis"
	u, err := parseURI(r.RemoteID, false)
	if err != nil {
		return nil, err
	}
	return &domain.ContractRuleDesc{
		RemoteID: u,
		Title:    r.Title,
		Remark:   r.Remark,
		Value:    string(r.Value),
	}, nil
}

// parseURI returns nil for an empty string, which leaves the field unset.
func parseURI(raw string, absolute bool) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid uri %q: %w", raw, domain.ErrInvalidArgument)
	}
	if absolute && !u.IsAbs() {
		return nil, fmt.Errorf("uri %q is not absolute: %w", raw, domain.ErrInvalidArgument)
	}
	return u, nil
}
