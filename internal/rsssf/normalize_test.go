package rsssf

import "testing"

func TestNormalizeTeamName(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"RUSHDEN & DIAMONDS", "Rushden & Diamonds"},
		{"Burton*", "Burton"},
		{"AFC BOURNEMOUTH", "AFC Bournemouth"},
		{"Leigh RMI", "Leigh RMI"},
		{"QUEEN'S PARK RANGERS", "Queen's Park Rangers"},
		{"NEWCASTLE UNITED", "Newcastle United"},
		{"Birmingham City", "Birmingham City"},
		{"Wimbledon FC", "Wimbledon FC"},
		{"St. Albans City", "St Albans City"},
		{"Port Vale 1)", "Port Vale"},
		{"  Notts   County  ", "Notts County"},
		{"Accrington", "Accrington"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := NormalizeTeamName(tt.raw); got != tt.want {
				t.Errorf("NormalizeTeamName(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeTeamName_Idempotent(t *testing.T) {
	names := []string{
		"Rushden & Diamonds",
		"AFC Bournemouth",
		"Queen's Park Rangers",
		"Leigh RMI",
		"West Bromwich Albion",
		"Brighton & Hove Albion",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			once := NormalizeTeamName(name)
			twice := NormalizeTeamName(once)
			if once != twice {
				t.Errorf("NormalizeTeamName not idempotent: %q -> %q -> %q", name, once, twice)
			}
		})
	}
}

func TestNormalizeTeamName_NoNameCharacters(t *testing.T) {
	if got := NormalizeTeamName("***"); got != "" {
		t.Errorf("NormalizeTeamName(%q) = %q, want empty", "***", got)
	}
}

func TestIsAllCaps(t *testing.T) {
	tests := []struct {
		team string
		want bool
	}{
		{"NEWCASTLE UNITED", true},
		{"QUEEN'S PARK RANGERS", true},
		{"Huddersfield Town", false},
		{"Burton*", false},
	}

	for _, tt := range tests {
		t.Run(tt.team, func(t *testing.T) {
			if got := isAllCaps(tt.team); got != tt.want {
				t.Errorf("isAllCaps(%q) = %v, want %v", tt.team, got, tt.want)
			}
		})
	}
}
