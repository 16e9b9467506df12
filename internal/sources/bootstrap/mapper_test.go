package bootstrap

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/connector/internal/domain"
)

func TestMap(t *testing.T) {
	port := 8080
	f := &File{
		Brokers: []BrokerEntry{
			{Name: "main", AccessURL: "https://broker.example.org", Status: "registered"},
		},
		Endpoints: []EndpointEntry{
			{Name: "ocr", AccessURL: "https://apps.example.org/ocr", Port: &port, Language: "DE"},
		},
		Rules: []RuleEntry{
			{Name: "use", RemoteID: "https://remote.example.org/rules/1", Value: `{"@type":"ids:Permission"}`},
		},
	}

	set, err := Map(f)
	if err != nil {
		t.Fatalf("Map() error = %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}

	b := set.Brokers[0]
	if b.ID != EntityID("broker", "main") {
		t.Errorf("broker id = %v", b.ID)
	}
	if b.Desc.Status != domain.StatusRegistered {
		t.Errorf("status = %s, want %s", b.Desc.Status, domain.StatusRegistered)
	}
	if b.Desc.AccessURL.String() != "https://broker.example.org" {
		t.Errorf("accessUrl = %s", b.Desc.AccessURL)
	}
	if b.Desc.Title != "" {
		t.Errorf("unset title should stay empty, got %q", b.Desc.Title)
	}

	e := set.Endpoints[0]
	if e.Desc.Port == nil || *e.Desc.Port != 8080 || e.Desc.Language != "DE" {
		t.Errorf("unexpected endpoint desc: %+v", e.Desc)
	}

	r := set.Rules[0]
	if r.Desc.RemoteID.String() != "https://remote.example.org/rules/1" {
		t.Errorf("remoteId = %s", r.Desc.RemoteID)
	}
}

func TestMapSkipsInvalidEntries(t *testing.T) {
	badPort := 70000
	f := &File{
		Brokers: []BrokerEntry{
			{Name: "ok"},
			{Name: ""},
			{Name: "ok"},
			{Name: "relative", AccessURL: "/broker"},
			{Name: "status", Status: "PENDING"},
		},
		Endpoints: []EndpointEntry{
			{Name: "port", Port: &badPort},
		},
		Rules: []RuleEntry{
			{Name: "genesis-like", RemoteID: "genesis"},
		},
	}

	set, err := Map(f)
	if err == nil {
		t.Fatal("Map() should report invalid entries")
	}
	if !errors.Is(err, domain.ErrInvalidArgument) {
		t.Errorf("error should wrap ErrInvalidArgument: %v", err)
	}
	if len(set.Brokers) != 1 || set.Brokers[0].Name != "ok" {
		t.Errorf("unexpected brokers: %+v", set.Brokers)
	}
	if len(set.Endpoints) != 0 {
		t.Errorf("unexpected endpoints: %+v", set.Endpoints)
	}
	if len(set.Rules) != 1 {
		t.Errorf("relative remote ids should be accepted: %+v", set.Rules)
	}

	wantBrokers := []uuid.UUID{EntityID("broker", "relative"), EntityID("broker", "status")}
	if !slices.Equal(set.Skipped["broker"], wantBrokers) {
		t.Errorf("skipped brokers = %v, want %v", set.Skipped["broker"], wantBrokers)
	}
	if got := set.Skipped["endpoint"]; len(got) != 1 || got[0] != EntityID("endpoint", "port") {
		t.Errorf("skipped endpoints = %v", got)
	}
	if len(set.Skipped["rule"]) != 0 {
		t.Errorf("skipped rules = %v", set.Skipped["rule"])
	}
}

func TestEntityIDIsStable(t *testing.T) {
	if EntityID("broker", "a") != EntityID("broker", "a") {
		t.Error("EntityID() should be deterministic")
	}
	if EntityID("broker", "a") == EntityID("rule", "a") {
		t.Error("kinds should not share ids")
	}
}
