package git

import "testing"

func TestGenerateBranchName(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		vars    BranchVars
		want    string
	}{
		{
			name:    "default pattern",
			pattern: "{user}/{number}-{title}",
			vars:    BranchVars{User: "alice", Number: 42, Title: "Fix the bug"},
			want:    "alice/42-fix-the-bug",
		},
		{
			name:    "repo placeholder",
			pattern: "{repo}/{number}",
			vars:    BranchVars{Repo: "Widgets", Number: 7},
			want:    "widgets/7",
		},
		{
			name:    "punctuation collapsed",
			pattern: "{user}/{number}-{title}",
			vars:    BranchVars{User: "bob", Number: 3, Title: "Add --force flag (really!)"},
			want:    "bob/3-add-force-flag-really",
		},
		{
			name:    "long title truncated",
			pattern: "{number}-{title}",
			vars:    BranchVars{Number: 9, Title: "this is an extremely long issue title that goes on and on and should be cut"},
			want:    "9-this-is-an-extremely-long-issue-title-that-goes-on",
		},
		{
			name:    "empty title leaves no trailing separator",
			pattern: "{user}/{number}-{title}",
			vars:    BranchVars{User: "alice", Number: 5},
			want:    "alice/5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateBranchName(tt.pattern, tt.vars)
			if got != tt.want {
				t.Errorf("GenerateBranchName = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExtractIssueNumberFromBranch(t *testing.T) {
	tests := []struct {
		branch string
		want   int
		found  bool
	}{
		{"alice/42-fix-bug", 42, true},
		{"alice/42_fix_bug", 42, true},
		{"42-fix-bug", 42, true},
		{"fix/issue-42", 42, true},
		{"issue-7", 7, true},
		{"fix-99-thing", 99, true},
		// Ambiguous trailing-number pattern, kept for compatibility.
		{"release/2024", 2024, true},
		{"main", 0, false},
		{"feature/no-number", 0, false},
		{"develop", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			got, found := ExtractIssueNumberFromBranch(tt.branch)
			if got != tt.want || found != tt.found {
				t.Errorf("ExtractIssueNumberFromBranch(%q) = %d, %v; want %d, %v",
					tt.branch, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestBranchMatchesIssue(t *testing.T) {
	tests := []struct {
		branch string
		number int
		want   bool
	}{
		{"user/123-y", 123, true},
		{"user/123_y", 123, true},
		{"123-y", 123, true},
		{"fix/issue-123", 123, true},
		{"user/456-x", 123, false},
		{"user/1234-x", 123, false},
		{"main", 123, false},
	}

	for _, tt := range tests {
		t.Run(tt.branch, func(t *testing.T) {
			if got := BranchMatchesIssue(tt.branch, tt.number); got != tt.want {
				t.Errorf("BranchMatchesIssue(%q, %d) = %v, want %v", tt.branch, tt.number, got, tt.want)
			}
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Fix the bug", "fix-the-bug"},
		{"UPPER case", "upper-case"},
		{"trailing---", "trailing"},
		{"", ""},
		{"émoji ünicode", "moji-nicode"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
