package model

import (
	"strings"
	"testing"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ============================================================================
// PlayerClass Tests
// ============================================================================

func TestPlayerClass_Role(t *testing.T) {
	t.Parallel()

	tests := map[PlayerClass]Role{
		ClassWarrior: RoleMelee,
		ClassCleric:  RoleSupport,
		ClassMage:    RoleRanged,
		ClassArcher:  RoleRanged,
		"BARD":       "",
	}
	for class, want := range tests {
		if got := class.Role(); got != want {
			t.Errorf("%s.Role() = %q, want %q", class, got, want)
		}
	}
}

func TestPlayerClass_IsValid(t *testing.T) {
	t.Parallel()

	for _, class := range AllClasses {
		if !class.IsValid() {
			t.Errorf("%s should be valid", class)
		}
		if class.Role() == "" {
			t.Errorf("%s should map to a role", class)
		}
	}
	for _, class := range []PlayerClass{"", "warrior", "BARD"} {
		if class.IsValid() {
			t.Errorf("%q should be invalid", class)
		}
	}
}

// ============================================================================
// Guild Tests
// ============================================================================

func TestGuild_Load(t *testing.T) {
	t.Parallel()

	g := &Guild{Members: []Player{{Experience: 20}, {Experience: 35}, {Experience: 0}}}
	if got := g.Load(); got != 55 {
		t.Errorf("expected load 55, got %d", got)
	}
	if got := (&Guild{}).Load(); got != 0 {
		t.Errorf("expected empty guild load 0, got %d", got)
	}
}

func TestCreateGuildRequest_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "Ironclad", false},
		{"empty", "", true},
		{"whitespace", "   ", true},
		{"too long", strings.Repeat("a", MaxGuildNameLength+1), true},
		{"at limit", strings.Repeat("a", MaxGuildNameLength), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := (&CreateGuildRequest{Name: tt.input}).Validate()
			if got := len(errs) > 0; got != tt.wantErr {
				t.Errorf("Validate() errors = %v, wantErr %v", errs, tt.wantErr)
			}
		})
	}
}

// ============================================================================
// Player Request Tests
// ============================================================================

func TestCreatePlayerRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreatePlayerRequest{Name: "Aria", Class: ClassMage, Experience: intPtr(0)}
	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreatePlayerRequest_Validate_ReportsEveryField(t *testing.T) {
	t.Parallel()

	errs := (&CreatePlayerRequest{}).Validate()
	for _, field := range []string{"name", "class", "experience"} {
		if !hasField(errs, field) {
			t.Errorf("expected error on %s, got %v", field, errs)
		}
	}
}

func TestCreatePlayerRequest_Validate_ExperienceBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		xp      int
		wantErr bool
	}{
		{-1, true},
		{MinExperience, false},
		{MaxExperience, false},
		{MaxExperience + 1, true},
	}
	for _, tt := range tests {
		req := &CreatePlayerRequest{Name: "Bram", Class: ClassWarrior, Experience: intPtr(tt.xp)}
		if got := hasField(req.Validate(), "experience"); got != tt.wantErr {
			t.Errorf("experience %d: error = %v, want %v", tt.xp, got, tt.wantErr)
		}
	}
}

func TestCreatePlayerRequest_Validate_UnknownClass(t *testing.T) {
	t.Parallel()

	req := &CreatePlayerRequest{Name: "Zed", Class: "BARD", Experience: intPtr(10)}
	if !hasField(req.Validate(), "class") {
		t.Error("expected class error")
	}
}

func TestUpdatePlayerRequest_Validate_OnlyPresentFields(t *testing.T) {
	t.Parallel()

	if errs := (&UpdatePlayerRequest{}).Validate(); len(errs) > 0 {
		t.Errorf("empty update should be valid, got %v", errs)
	}

	bad := PlayerClass("BARD")
	errs := (&UpdatePlayerRequest{Name: strPtr(" "), Class: &bad, Experience: intPtr(101)}).Validate()
	for _, field := range []string{"name", "class", "experience"} {
		if !hasField(errs, field) {
			t.Errorf("expected error on %s, got %v", field, errs)
		}
	}
}

// ============================================================================
// PlayerFilter Tests
// ============================================================================

func TestPlayerFilter_Matches(t *testing.T) {
	t.Parallel()

	p := &Player{Name: "Ariadne", Class: ClassMage, Experience: 50}

	tests := []struct {
		name   string
		filter PlayerFilter
		want   bool
	}{
		{"empty filter", PlayerFilter{}, true},
		{"name substring any case", PlayerFilter{Name: "ARIA"}, true},
		{"name mismatch", PlayerFilter{Name: "bram"}, false},
		{"class", PlayerFilter{Class: ClassMage}, true},
		{"other class", PlayerFilter{Class: ClassCleric}, false},
		{"inclusive range", PlayerFilter{MinExperience: intPtr(50), MaxExperience: intPtr(50)}, true},
		{"below min", PlayerFilter{MinExperience: intPtr(51)}, false},
		{"above max", PlayerFilter{MaxExperience: intPtr(49)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(p); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssignment_Clears(t *testing.T) {
	t.Parallel()

	if !(Assignment{PlayerID: "player:a"}).Clears() {
		t.Error("assignment without guild should clear")
	}
	if (Assignment{PlayerID: "player:a", GuildID: "guild:b"}).Clears() {
		t.Error("assignment with guild should not clear")
	}
}
