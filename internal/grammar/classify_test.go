package grammar

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Sentence
	}{
		{
			name: "unit mapping",
			line: "glob is I",
			want: Sentence{Kind: UnitMapping, Line: "glob is I", Unit: "glob", Letter: "I"},
		},
		{
			name: "unit mapping with surrounding whitespace",
			line: "  tegj   is L \t",
			want: Sentence{Kind: UnitMapping, Line: "tegj   is L", Unit: "tegj", Letter: "L"},
		},
		{
			name: "credit sample",
			line: "glob glob Silver is 34 Credits",
			want: Sentence{
				Kind:    CreditSample,
				Line:    "glob glob Silver is 34 Credits",
				Units:   []string{"glob", "glob"},
				Good:    "Silver",
				Credits: "34",
			},
		},
		{
			name: "credit sample with single unit",
			line: "prok Gold is 0 Credits",
			want: Sentence{
				Kind:    CreditSample,
				Line:    "prok Gold is 0 Credits",
				Units:   []string{"prok"},
				Good:    "Gold",
				Credits: "0",
			},
		},
		{
			name: "unit value question",
			line: "how much is pish tegj glob glob ?",
			want: Sentence{
				Kind:  UnitValueQuestion,
				Line:  "how much is pish tegj glob glob ?",
				Units: []string{"pish", "tegj", "glob", "glob"},
			},
		},
		{
			name: "unit value question with attached question mark",
			line: "how much is pish tegj?",
			want: Sentence{
				Kind:  UnitValueQuestion,
				Line:  "how much is pish tegj?",
				Units: []string{"pish", "tegj"},
			},
		},
		{
			name: "total credits question",
			line: "how many Credits is glob prok Silver ?",
			want: Sentence{
				Kind:  TotalCreditsQuestion,
				Line:  "how many Credits is glob prok Silver ?",
				Units: []string{"glob", "prok"},
				Good:  "Silver",
			},
		},
		{
			name: "woodchuck",
			line: "how much wood could a woodchuck chuck if a woodchuck could chuck wood ?",
			want: Sentence{
				Kind: Unrecognized,
				Line: "how much wood could a woodchuck chuck if a woodchuck could chuck wood ?",
			},
		},
		{
			name: "lowercase letter is not a mapping",
			line: "glob is i",
			want: Sentence{Kind: Unrecognized, Line: "glob is i"},
		},
		{
			name: "multi letter is not a mapping",
			line: "glob is IV",
			want: Sentence{Kind: Unrecognized, Line: "glob is IV"},
		},
		{
			name: "credit sample without units",
			line: "Silver is 34 Credits",
			want: Sentence{Kind: Unrecognized, Line: "Silver is 34 Credits"},
		},
		{
			name: "credit sample with negative credits",
			line: "glob Silver is -34 Credits",
			want: Sentence{Kind: Unrecognized, Line: "glob Silver is -34 Credits"},
		},
		{
			name: "question without units",
			line: "how much is ?",
			want: Sentence{Kind: Unrecognized, Line: "how much is ?"},
		},
		{
			name: "total question without good",
			line: "how many Credits is glob ?",
			want: Sentence{Kind: Unrecognized, Line: "how many Credits is glob ?"},
		},
		{
			name: "question without question mark",
			line: "how much is glob",
			want: Sentence{Kind: Unrecognized, Line: "how much is glob"},
		},
		{
			name: "empty",
			line: "",
			want: Sentence{Kind: Unrecognized, Line: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.line)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestClassify_MappingWinsOverLaterForms(t *testing.T) {
	// "how is I" is three tokens with "is" in the middle, so it is a mapping
	// for the unit word "how" even though it starts like a question.
	got := Classify("how is I")
	if got.Kind != UnitMapping {
		t.Errorf("Kind = %v, want %v", got.Kind, UnitMapping)
	}
	if got.Unit != "how" {
		t.Errorf("Unit = %q, want %q", got.Unit, "how")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{Unrecognized, "unrecognized"},
		{UnitMapping, "unit_mapping"},
		{CreditSample, "credit_sample"},
		{UnitValueQuestion, "unit_value_question"},
		{TotalCreditsQuestion, "total_credits_question"},
		{Kind(99), "unrecognized"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
