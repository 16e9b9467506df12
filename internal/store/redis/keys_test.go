package redis

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestEntityKey(t *testing.T) {
	id := uuid.MustParse("6f1c2b1e-3a4d-4f5e-8a9b-0c1d2e3f4a5b")

	if got := EntityKey(KindBroker, id); got != "connector:broker:6f1c2b1e-3a4d-4f5e-8a9b-0c1d2e3f4a5b" {
		t.Errorf("EntityKey() = %s", got)
	}
}

func TestAllKey(t *testing.T) {
	if got := AllKey(KindEndpoint); got != "connector:endpoint:all" {
		t.Errorf("AllKey() = %s", got)
	}
}

func TestDeliveryKey(t *testing.T) {
	a := DeliveryKey("https://connector.example.org/resources/1")
	b := DeliveryKey("https://connector.example.org/resources/2")

	if !strings.HasPrefix(a, KeyPrefixDelivery) {
		t.Errorf("DeliveryKey() = %s, want prefix %s", a, KeyPrefixDelivery)
	}
	if len(a) != len(KeyPrefixDelivery)+40 {
		t.Errorf("DeliveryKey() = %s, want a sha1 hex suffix", a)
	}
	if a == b {
		t.Error("different resources must not share a key")
	}
	if a != DeliveryKey("https://connector.example.org/resources/1") {
		t.Error("DeliveryKey() is not stable")
	}
}
