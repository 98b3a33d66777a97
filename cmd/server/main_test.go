package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Skufu/protocolrx/internal/knowledge"
)

func TestLoadKnowledgeBaseDefault(t *testing.T) {
	kb, err := loadKnowledgeBase("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kb.Protocols) != 4 {
		t.Fatalf("expected default catalog, got %d protocols", len(kb.Protocols))
	}
}

func TestLoadKnowledgeBaseOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kb.yaml")
	doc := `
products:
  calm: {name: Calm Drops, description: calm, mechanism: gaba, benefits: []}
protocols:
  - name: Calm Protocol
    core: calm
    catalyst: calm
    targetGoals: [sleep]
    confidence: high
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	kb, err := loadKnowledgeBase(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(kb.Protocols) != 1 || kb.Protocols[0].Name != "Calm Protocol" {
		t.Fatalf("override not applied: %+v", kb.Protocols)
	}
}

func TestLoadKnowledgeBaseMissingOverride(t *testing.T) {
	_, err := loadKnowledgeBase(filepath.Join(t.TempDir(), "missing.yaml"))
	if !knowledge.IsKind(err, knowledge.KindNotFound) {
		t.Fatalf("expected not_found error, got %v", err)
	}
}
