package air

import (
	"testing"
)

func TestNewProofOptions(t *testing.T) {
	tests := []struct {
		name      string
		blowup    int
		queries   int
		grinding  int
		extension FieldExtension
		hash      HashChoice
		wantErr   bool
	}{
		{"valid defaults", 8, 28, 16, ExtensionNone, HashBlake2b256, false},
		{"minimum blowup", 2, 1, 0, ExtensionNone, HashSha3_256, false},
		{"maximum blowup", 128, 128, 32, ExtensionCubic, HashSha2_256, false},
		{"blowup too small", 1, 28, 16, ExtensionNone, HashBlake2b256, true},
		{"blowup too large", 256, 28, 16, ExtensionNone, HashBlake2b256, true},
		{"blowup not power of 2", 12, 28, 16, ExtensionNone, HashBlake2b256, true},
		{"zero queries", 8, 0, 16, ExtensionNone, HashBlake2b256, true},
		{"too many queries", 8, 200, 16, ExtensionNone, HashBlake2b256, true},
		{"negative grinding", 8, 28, -1, ExtensionNone, HashBlake2b256, true},
		{"too much grinding", 8, 28, 64, ExtensionNone, HashBlake2b256, true},
		{"invalid extension", 8, 28, 16, FieldExtension(5), HashBlake2b256, true},
		{"invalid hash", 8, 28, 16, ExtensionNone, HashChoice(99), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options, err := NewProofOptions(tt.blowup, tt.queries, tt.grinding, tt.extension, tt.hash)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}

			if options.BlowupFactor() != tt.blowup {
				t.Errorf("BlowupFactor = %d, expected %d", options.BlowupFactor(), tt.blowup)
			}
			if options.NumQueries() != tt.queries {
				t.Errorf("NumQueries = %d, expected %d", options.NumQueries(), tt.queries)
			}
			if options.GrindingBits() != tt.grinding {
				t.Errorf("GrindingBits = %d, expected %d", options.GrindingBits(), tt.grinding)
			}
			if options.FieldExtension() != tt.extension {
				t.Errorf("FieldExtension = %d, expected %d", options.FieldExtension(), tt.extension)
			}
			if options.Hash() != tt.hash {
				t.Errorf("Hash = %v, expected %v", options.Hash(), tt.hash)
			}
		})
	}
}

func TestDefaultProofOptions(t *testing.T) {
	options := DefaultProofOptions()

	// Defaults must round-trip through validation unchanged
	validated, err := NewProofOptions(options.BlowupFactor(), options.NumQueries(),
		options.GrindingBits(), options.FieldExtension(), options.Hash())
	if err != nil {
		t.Fatalf("Default options failed validation: %v", err)
	}
	if validated != options {
		t.Errorf("Validated defaults %+v differ from DefaultProofOptions %+v", validated, options)
	}

	if options.SecurityLevel() < 100 {
		t.Errorf("Default security level = %d, expected at least 100", options.SecurityLevel())
	}
}

func TestSecurityLevel(t *testing.T) {
	tests := []struct {
		name     string
		blowup   int
		queries  int
		grinding int
		expected int
	}{
		{"defaults", 8, 28, 16, 28*3 + 16},
		{"no grinding", 16, 30, 0, 30 * 4},
		{"minimal", 2, 1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options, err := NewProofOptions(tt.blowup, tt.queries, tt.grinding, ExtensionNone, HashBlake2b256)
			if err != nil {
				t.Fatalf("Failed to create options: %v", err)
			}
			if options.SecurityLevel() != tt.expected {
				t.Errorf("SecurityLevel = %d, expected %d", options.SecurityLevel(), tt.expected)
			}
		})
	}
}

func TestProofOptionsModifiers(t *testing.T) {
	base := DefaultProofOptions()

	t.Run("WithBlowupFactor", func(t *testing.T) {
		modified, err := base.WithBlowupFactor(16)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if modified.BlowupFactor() != 16 {
			t.Errorf("BlowupFactor = %d, expected 16", modified.BlowupFactor())
		}
		if base.BlowupFactor() != 8 {
			t.Error("Modifier mutated the original options")
		}
	})

	t.Run("WithNumQueries", func(t *testing.T) {
		modified, err := base.WithNumQueries(40)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if modified.NumQueries() != 40 {
			t.Errorf("NumQueries = %d, expected 40", modified.NumQueries())
		}
	})

	t.Run("WithHash", func(t *testing.T) {
		modified, err := base.WithHash(HashSha3_256)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if modified.Hash() != HashSha3_256 {
			t.Errorf("Hash = %v, expected sha3-256", modified.Hash())
		}
		if base.Hash() != HashBlake2b256 {
			t.Error("Modifier mutated the original options")
		}
	})

	t.Run("WithInvalidValue", func(t *testing.T) {
		if _, err := base.WithGrindingBits(100); err == nil {
			t.Error("Expected error for grinding bits above the maximum")
		}
	})
}

func TestHashChoice(t *testing.T) {
	choices := []HashChoice{HashBlake2b256, HashSha3_256, HashSha2_256}

	for _, choice := range choices {
		t.Run(choice.String(), func(t *testing.T) {
			h, err := choice.New()
			if err != nil {
				t.Fatalf("Failed to create hash: %v", err)
			}
			if h.Size() != 32 {
				t.Errorf("Digest size = %d, expected 32", h.Size())
			}
		})
	}

	if HashChoice(99).String() != "unknown" {
		t.Errorf("Unexpected name for invalid hash choice: %s", HashChoice(99).String())
	}
}
