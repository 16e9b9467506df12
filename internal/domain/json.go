package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// URIs are kept as *url.URL in memory and travel as plain strings in JSON.

func uriString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

func parseURI(s string) (*url.URL, error) {
	if s == "" {
		return nil, nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("invalid uri %q: %w", s, err)
	}
	return u, nil
}

func (b Broker) MarshalJSON() ([]byte, error) {
	type alias Broker
	return json.Marshal(struct {
		alias
		AccessURL string `json:"accessUrl"`
	}{alias(b), uriString(b.AccessURL)})
}

func (b *Broker) UnmarshalJSON(data []byte) error {
	type alias Broker
	aux := struct {
		*alias
		AccessURL string `json:"accessUrl"`
	}{alias: (*alias)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u, err := parseURI(aux.AccessURL)
	if err != nil {
		return err
	}
	b.AccessURL = u
	return nil
}

func (e AppEndpoint) MarshalJSON() ([]byte, error) {
	type alias AppEndpoint
	return json.Marshal(struct {
		alias
		AccessURL string `json:"accessUrl"`
	}{alias(e), uriString(e.AccessURL)})
}

func (e *AppEndpoint) UnmarshalJSON(data []byte) error {
	type alias AppEndpoint
	aux := struct {
		*alias
		AccessURL string `json:"accessUrl"`
	}{alias: (*alias)(e)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u, err := parseURI(aux.AccessURL)
	if err != nil {
		return err
	}
	e.AccessURL = u
	return nil
}

func (r ContractRule) MarshalJSON() ([]byte, error) {
	type alias ContractRule
	return json.Marshal(struct {
		alias
		RemoteID string `json:"remoteId"`
	}{alias(r), uriString(r.RemoteID)})
}

func (r *ContractRule) UnmarshalJSON(data []byte) error {
	type alias ContractRule
	aux := struct {
		*alias
		RemoteID string `json:"remoteId"`
	}{alias: (*alias)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	u, err := parseURI(aux.RemoteID)
	if err != nil {
		return err
	}
	r.RemoteID = u
	return nil
}
