package almanac

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/FocuswithJustin/almanac/core/errors"
	"github.com/FocuswithJustin/almanac/core/interval"
)

const headerSuffix = " map:"

// Expected line shapes, quoted in FormatError diagnostics.
const (
	shapeRecord = `"[label:] <int> <int> ..."`
	shapeHeader = `"<name> map:"`
	shapeRule   = `"<dest> <src> <len>" (exactly three non-negative integers)`
)

// recordLine is the first line of the input, e.g. "seeds: 79 14 55 13".
type recordLine struct {
	Label  string  `( @Ident ":" )?`
	Values []int64 `@Int*`
}

// ruleLine is one mapping rule inside a stage block.
type ruleLine struct {
	Dest   int64 `@Int`
	Source int64 `@Int`
	Length int64 `@Int`
}

// almanacLexer tokenizes a single almanac line.
var almanacLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `\d+`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z0-9_-]*`},
	{Name: "Punct", Pattern: `:`},
	{Name: "Whitespace", Pattern: `[ \t]+`},
})

var (
	recordParser = participle.MustBuild[recordLine](
		participle.Lexer(almanacLexer),
		participle.Elide("Whitespace"),
	)
	ruleParser = participle.MustBuild[ruleLine](
		participle.Lexer(almanacLexer),
		participle.Elide("Whitespace"),
	)
)

// Parse builds an Almanac from the lines of an input file. The first line is
// the initial record, read according to mode; it is followed by stage blocks,
// each a "<name> map:" header and "dest src len" rule lines, separated by
// blank lines. Stage order is kept as declared.
func Parse(lines []string, mode Mode) (*Almanac, error) {
	if len(lines) == 0 || strings.TrimSpace(trimCR(lines[0])) == "" {
		text := ""
		if len(lines) > 0 {
			text = trimCR(lines[0])
		}
		return nil, errors.NewFormat(1, text, "an initial record "+shapeRecord, nil)
	}

	values, err := parseRecord(trimCR(lines[0]))
	if err != nil {
		return nil, err
	}

	tables, err := parseStages(lines[1:])
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeIdentifiers:
		return NewIdentifiers(values, tables), nil
	case ModeRanges:
		ranges, err := pairRanges(values)
		if err != nil {
			return nil, errors.Wrapf(err, "line 1")
		}
		return NewRanges(ranges, tables), nil
	default:
		return nil, errors.NewValidationValue("mode", mode.String(), "unsupported")
	}
}

func parseRecord(text string) ([]int64, error) {
	rec, err := recordParser.ParseString("", text)
	if err != nil {
		return nil, errors.NewFormat(1, text, shapeRecord, err)
	}
	if len(rec.Values) == 0 {
		return nil, errors.NewFormat(1, text, "at least one integer in the initial record", nil)
	}
	return rec.Values, nil
}

// pairRanges reads values as consecutive (start, length) pairs.
func pairRanges(values []int64) ([]interval.Interval, error) {
	if len(values)%2 != 0 {
		return nil, errors.NewValidation("seed ranges", "expected (start, length) pairs, got an odd number of integers")
	}
	ranges := make([]interval.Interval, 0, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		iv, err := interval.New(values[i], values[i+1])
		if err != nil {
			return nil, errors.Wrapf(err, "seed range %d", i/2+1)
		}
		ranges = append(ranges, iv)
	}
	return ranges, nil
}

func parseStages(lines []string) ([]*Table, error) {
	var (
		tables []*Table
		name   string
		rules  []Rule
		open   bool
	)
	closeBlock := func() {
		if open {
			tables = append(tables, NewTable(name, rules))
			name, rules, open = "", nil, false
		}
	}

	for i, raw := range lines {
		lineNo := i + 2
		text := trimCR(raw)

		if strings.TrimSpace(text) == "" {
			closeBlock()
			continue
		}

		if !open {
			if !strings.HasSuffix(text, headerSuffix) {
				return nil, errors.NewFormat(lineNo, text, shapeHeader, nil)
			}
			name = strings.TrimSpace(strings.TrimSuffix(text, headerSuffix))
			if name == "" {
				return nil, errors.NewFormat(lineNo, text, shapeHeader, nil)
			}
			open = true
			continue
		}

		line, err := ruleParser.ParseString("", text)
		if err != nil {
			return nil, errors.NewFormat(lineNo, text, shapeRule, err)
		}
		rule, err := NewRule(line.Dest, line.Source, line.Length)
		if err != nil {
			return nil, errors.Wrapf(err, "line %d %q", lineNo, text)
		}
		rules = append(rules, rule)
	}
	closeBlock()

	return tables, nil
}

func trimCR(s string) string {
	return strings.TrimSuffix(s, "\r")
}
