package factory

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateString(t *testing.T) {
	tests := []struct {
		name        string
		current     string
		candidate   string
		want        string
		wantChanged bool
	}{
		{"empty candidate keeps current", "json", "", "json", false},
		{"same candidate", "json", "json", "json", false},
		{"different candidate", "json", "xml", "xml", true},
		{"fills empty current", "", "xml", "xml", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := UpdateString(tt.current, tt.candidate)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestUpdateURI(t *testing.T) {
	a, _ := url.Parse("https://a.example.org")
	a2, _ := url.Parse("https://a.example.org")
	b, _ := url.Parse("https://b.example.org")

	got, changed := UpdateURI(a, nil)
	assert.False(t, changed)
	assert.Same(t, a, got)

	got, changed = UpdateURI(a, a2)
	assert.False(t, changed)
	assert.Same(t, a, got)

	got, changed = UpdateURI(a, b)
	assert.True(t, changed)
	assert.Equal(t, b.String(), got.String())
	assert.NotSame(t, b, got, "candidate must be copied")

	got, changed = UpdateURI(nil, b)
	assert.True(t, changed)
	assert.Equal(t, b.String(), got.String())
}

func TestUpdateOptional(t *testing.T) {
	port := 8080
	same := 443

	got, changed := UpdateOptional(443, nil)
	assert.False(t, changed)
	assert.Equal(t, 443, got)

	got, changed = UpdateOptional(443, &same)
	assert.False(t, changed)
	assert.Equal(t, 443, got)

	got, changed = UpdateOptional(443, &port)
	assert.True(t, changed)
	assert.Equal(t, 8080, got)
}

func TestUpdateComparable(t *testing.T) {
	type status string

	got, changed := UpdateComparable(status("A"), status(""))
	assert.False(t, changed)
	assert.Equal(t, status("A"), got)

	got, changed = UpdateComparable(status("A"), status("A"))
	assert.False(t, changed)

	got, changed = UpdateComparable(status("A"), status("B"))
	assert.True(t, changed)
	assert.Equal(t, status("B"), got)
}
