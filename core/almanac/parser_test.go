package almanac

import (
	"errors"
	"os"
	"strings"
	"testing"

	apperrors "github.com/FocuswithJustin/almanac/core/errors"
	"github.com/FocuswithJustin/almanac/core/interval"
)

func parseString(s string, mode Mode) (*Almanac, error) {
	return Parse(strings.Split(s, "\n"), mode)
}

func readExample(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/example.txt")
	if err != nil {
		t.Fatalf("failed to read example: %v", err)
	}
	return string(data)
}

func TestParseExampleIdentifiers(t *testing.T) {
	a, err := parseString(readExample(t), ModeIdentifiers)
	if err != nil {
		t.Fatalf("parseString() error = %v", err)
	}

	if a.Mode() != ModeIdentifiers {
		t.Errorf("Mode() = %v, want ids", a.Mode())
	}
	wantSeeds := []int64{79, 14, 55, 13}
	seeds := a.Seeds()
	if len(seeds) != len(wantSeeds) {
		t.Fatalf("Seeds() = %v, want %v", seeds, wantSeeds)
	}
	for i := range wantSeeds {
		if seeds[i] != wantSeeds[i] {
			t.Errorf("Seeds()[%d] = %d, want %d", i, seeds[i], wantSeeds[i])
		}
	}
	if len(a.Ranges()) != 0 {
		t.Errorf("Ranges() = %v, want none in ids mode", a.Ranges())
	}

	wantStages := []string{
		"seed-to-soil",
		"soil-to-fertilizer",
		"fertilizer-to-water",
		"water-to-light",
		"light-to-temperature",
		"temperature-to-humidity",
		"humidity-to-location",
	}
	names := a.StageNames()
	if strings.Join(names, ",") != strings.Join(wantStages, ",") {
		t.Errorf("StageNames() = %v, want %v", names, wantStages)
	}

	wantRules := []int{2, 3, 4, 2, 3, 2, 2}
	for i, table := range a.Tables() {
		if table.Len() != wantRules[i] {
			t.Errorf("table %s has %d rules, want %d", table.Name(), table.Len(), wantRules[i])
		}
	}
}

func TestParseExampleRanges(t *testing.T) {
	a, err := parseString(readExample(t), ModeRanges)
	if err != nil {
		t.Fatalf("parseString() error = %v", err)
	}
	want := []interval.Interval{span(79, 14), span(55, 13)}
	got := a.Ranges()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Ranges() = %v, want %v", got, want)
	}
	if len(a.Tables()) != 7 {
		t.Errorf("Tables() has %d stages, want 7", len(a.Tables()))
	}
}

func TestParseVariants(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		mode       Mode
		wantStages int
		wantSeeds  int
		wantRanges int
	}{
		{
			name:      "unlabelled record",
			input:     "1 2 3\n\na map:\n0 1 1\n",
			mode:      ModeIdentifiers,
			wantSeeds: 3, wantStages: 1,
		},
		{
			name:       "unlabelled pairs",
			input:      "10 5 20 5\n\na map:\n0 1 1",
			mode:       ModeRanges,
			wantRanges: 2, wantStages: 1,
		},
		{
			name:      "no stages",
			input:     "seeds: 4 5\n",
			mode:      ModeIdentifiers,
			wantSeeds: 2,
		},
		{
			name:      "empty stage",
			input:     "seeds: 4\n\nx-to-y map:\n\ny-to-z map:\n1 2 3\n",
			mode:      ModeIdentifiers,
			wantSeeds: 1, wantStages: 2,
		},
		{
			name:      "crlf line endings",
			input:     "seeds: 4 5\r\n\r\nx-to-y map:\r\n1 2 3\r\n",
			mode:      ModeIdentifiers,
			wantSeeds: 2, wantStages: 1,
		},
		{
			name:      "extra blank lines",
			input:     "seeds: 4\n\n\n\nx-to-y map:\n1 2 3\n\n\n",
			mode:      ModeIdentifiers,
			wantSeeds: 1, wantStages: 1,
		},
		{
			name:      "tabs between integers",
			input:     "seeds:\t4\t5\n\nx-to-y map:\n1\t2   3\n",
			mode:      ModeIdentifiers,
			wantSeeds: 2, wantStages: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseString(tt.input, tt.mode)
			if err != nil {
				t.Fatalf("parseString() error = %v", err)
			}
			if got := len(a.Tables()); got != tt.wantStages {
				t.Errorf("stages = %d, want %d", got, tt.wantStages)
			}
			if got := len(a.Seeds()); got != tt.wantSeeds {
				t.Errorf("seeds = %d, want %d", got, tt.wantSeeds)
			}
			if got := len(a.Ranges()); got != tt.wantRanges {
				t.Errorf("ranges = %d, want %d", got, tt.wantRanges)
			}
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		mode       Mode
		wantFormat bool // FormatError, otherwise ValidationError
		wantLine   int
		wantText   string
	}{
		{
			name:       "empty input",
			input:      "",
			wantFormat: true,
			wantLine:   1,
		},
		{
			name:       "blank first line",
			input:      "\nx-to-y map:\n1 2 3\n",
			wantFormat: true,
			wantLine:   1,
		},
		{
			name:       "label without values",
			input:      "seeds:\n\nx-to-y map:\n1 2 3\n",
			wantFormat: true,
			wantLine:   1,
			wantText:   "seeds:",
		},
		{
			name:       "non-integer seed",
			input:      "seeds: 1 two 3\n",
			wantFormat: true,
			wantLine:   1,
			wantText:   "seeds: 1 two 3",
		},
		{
			name:       "header without suffix",
			input:      "seeds: 1\n\nseed-to-soil\n1 2 3\n",
			wantFormat: true,
			wantLine:   3,
			wantText:   "seed-to-soil",
		},
		{
			name:       "header without a name",
			input:      "seeds: 1\n\n map:\n5 1 1\n",
			wantFormat: true,
			wantLine:   3,
			wantText:   " map:",
		},
		{
			name:       "rule before header",
			input:      "seeds: 1\n\n1 2 3\n",
			wantFormat: true,
			wantLine:   3,
			wantText:   "1 2 3",
		},
		{
			name:       "two integers",
			input:      "seeds: 1\n\na map:\n50 98\n",
			wantFormat: true,
			wantLine:   4,
			wantText:   "50 98",
		},
		{
			name:       "four integers",
			input:      "seeds: 1\n\na map:\n1 2 3\n50 98 2 7\n",
			wantFormat: true,
			wantLine:   5,
			wantText:   "50 98 2 7",
		},
		{
			name:       "negative integer",
			input:      "seeds: 1\n\na map:\n-1 2 3\n",
			wantFormat: true,
			wantLine:   4,
		},
		{
			name:       "integer overflow",
			input:      "seeds: 1\n\na map:\n1 2 99999999999999999999\n",
			wantFormat: true,
			wantLine:   4,
		},
		{
			name:  "zero-length rule",
			input: "seeds: 1\n\na map:\n1 2 0\n",
		},
		{
			name:  "odd range record",
			input: "seeds: 79 14 55\n",
			mode:  ModeRanges,
		},
		{
			name:  "zero-length seed range",
			input: "seeds: 79 0\n",
			mode:  ModeRanges,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := parseString(tt.input, tt.mode)
			if err == nil {
				t.Fatalf("parseString() = %v, want error", a)
			}
			if a != nil {
				t.Errorf("parseString() returned a partial almanac alongside %v", err)
			}

			var fe *apperrors.FormatError
			isFormat := errors.As(err, &fe)
			if isFormat != tt.wantFormat {
				t.Fatalf("error %v: FormatError = %v, want %v", err, isFormat, tt.wantFormat)
			}
			if !tt.wantFormat {
				if !errors.Is(err, apperrors.ErrInvalidInput) {
					t.Errorf("error %v should unwrap to ErrInvalidInput", err)
				}
				return
			}
			if fe.Line != tt.wantLine {
				t.Errorf("FormatError.Line = %d, want %d", fe.Line, tt.wantLine)
			}
			if tt.wantText != "" && fe.Text != tt.wantText {
				t.Errorf("FormatError.Text = %q, want %q", fe.Text, tt.wantText)
			}
			if fe.Expected == "" {
				t.Error("FormatError.Expected should describe the expected shape")
			}
			if !errors.Is(err, apperrors.ErrInvalidFormat) {
				t.Errorf("error %v should unwrap to ErrInvalidFormat", err)
			}
		})
	}
}

func TestParseHeaderDirectlyAfterRecord(t *testing.T) {
	a, err := parseString("seeds: 1\na map:\n5 1 1\n", ModeIdentifiers)
	if err != nil {
		t.Fatalf("parseString() error = %v", err)
	}
	names := a.StageNames()
	if len(names) != 1 || names[0] != "a" {
		t.Errorf("StageNames() = %v, want [a]", names)
	}
	if got := a.Tables()[0].Lookup(1); got != 5 {
		t.Errorf("Lookup(1) = %d, want 5", got)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeIdentifiers, ModeRanges} {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMode("bogus"); err == nil {
		t.Error("ParseMode(bogus) should fail")
	}
	if got := Mode(9).String(); got != "Mode(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseUnsupportedMode(t *testing.T) {
	if _, err := parseString("seeds: 1\n", Mode(7)); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Errorf("parseString() with unknown mode error = %v, want validation error", err)
	}
}
