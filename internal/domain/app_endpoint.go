package domain

import "net/url"

// AppEndpoint is a network endpoint exposed by a data app.
type AppEndpoint struct {
	Entity

	AccessURL *url.URL `json:"-"`
	MediaType string   `json:"mediaType"`
	Port      int      `json:"port"`
	Protocol  string   `json:"protocol"`
	Language  string   `json:"language"`
}

// AppEndpointDesc is the desired state of an app endpoint.
// Port is a pointer so that "not specified" can be told apart from 0.
type AppEndpointDesc struct {
	AccessURL *url.URL
	MediaType string
	Port      *int
	Protocol  string
	Language  string
}
