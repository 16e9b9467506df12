package handlers

import (
	"fmt"
	"net/url"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

// Empty fields leave the current value untouched on update.

type BrokerRequest struct {
	AccessURL string `json:"accessUrl" validate:"omitempty,url,max=2048"`
	Title     string `json:"title" validate:"omitempty,max=256"`
	Status    string `json:"status" validate:"omitempty,oneof=REGISTERED UNREGISTERED"`
}

func (r *BrokerRequest) Desc() (*domain.BrokerDesc, error) {
	u, err := optionalURI(r.AccessURL)
	if err != nil {
		return nil, err
	}
	return &domain.BrokerDesc{
		AccessURL: u,
		Title:     r.Title,
		Status:    domain.RegisterStatus(r.Status),
	}, nil
}

type EndpointRequest struct {
	AccessURL string `json:"accessUrl" validate:"omitempty,url,max=2048"`
	MediaType string `json:"mediaType" validate:"omitempty,max=128"`
	Port      *int   `json:"port" validate:"omitempty,min=1,max=65535"`
	Protocol  string `json:"protocol" validate:"omitempty,max=64"`
	Language  string `json:"language" validate:"omitempty,max=16"`
}

func (r *EndpointRequest) Desc() (*domain.AppEndpointDesc, error) {
	u, err := optionalURI(r.AccessURL)
	if err != nil {
		return nil, err
	}
	return &domain.AppEndpointDesc{
		AccessURL: u,
		MediaType: r.MediaType,
		Port:      r.Port,
		Protocol:  r.Protocol,
		Language:  r.Language,
	}, nil
}

type RuleRequest struct {
	RemoteID string `json:"remoteId" validate:"omitempty,max=2048"`
	Title    string `json:"title" validate:"omitempty,max=256"`
	Remark   string `json:"remark" validate:"omitempty,max=4096"`
	Value    string `json:"value" validate:"omitempty,json"`
}

func (r *RuleRequest) Desc() (*domain.ContractRuleDesc, error) {
	u, err := optionalURI(r.RemoteID)
	if err != nil {
		return nil, err
	}
	return &domain.ContractRuleDesc{
		RemoteID: u,
		Title:    r.Title,
		Remark:   r.Remark,
		Value:    r.Value,
	}, nil
}

type NotificationRequest struct {
	ID string `json:"id" validate:"required,uri,max=2048"`
}

func optionalURI(raw string) (*url.URL, error) {
	if raw == "" {
		return nil, nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid uri %q: %w", raw, domain.ErrInvalidArgument)
	}
	return u, nil
}
