// Package schema parses and normalizes the two line formats of a race data
// directory: roster lines from abbreviations.txt and timing lines from the
// start/end logs.
package schema

import (
	"f1q1report/pkg/model"
	"f1q1report/pkg/raceerrors"
	"regexp"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	IDLength       = 3
	fieldSeparator = "_"

	// TimestampLayout is the canonical form, e.g. 2018-05-24_12:02:58.917.
	TimestampLayout = "2006-01-02_15:04:05.000"
	parseLayout     = "2006-01-02_15:04:05"
)

// up to microseconds, like the timing system writes them
var timestampPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}:\d{2}:\d{2}\.\d{1,6}$`)

// ParseAbbreviation parses "ID_First Last_CAR MODEL".
func ParseAbbreviation(line string) (model.Driver, error) {
	entry := trimLine(line)
	parts := strings.Split(entry, fieldSeparator)
	if len(parts) != 3 {
		return model.Driver{}, raceerrors.InvalidFormatData("incorrect data format: %q", entry)
	}

	id, err := NormalizeIdentifier(parts[0])
	if err != nil {
		return model.Driver{}, err
	}
	name, err := NormalizeName(parts[1])
	if err != nil {
		return model.Driver{}, err
	}

	return model.Driver{
		ID:       id,
		Name:     name,
		CarModel: upper(parts[2]),
	}, nil
}

// ParseLogEntry parses "IDDYYYY-MM-DD_HH:MM:SS.mmm": the first three
// characters are the identifier, the rest is the timestamp.
func ParseLogEntry(line string) (model.TimestampEntry, error) {
	entry := []rune(trimLine(line))
	cut := IDLength
	if len(entry) < cut {
		cut = len(entry)
	}
	id := string(entry[:cut])
	ts := string(entry[cut:])

	if id == "" || !isAlpha(id) || ts == "" {
		return model.TimestampEntry{}, raceerrors.InvalidFormatData("incorrect data format: %q", string(entry))
	}

	timestamp, err := ParseTimestamp(ts)
	if err != nil {
		return model.TimestampEntry{}, err
	}

	return model.TimestampEntry{
		ID:        upper(id),
		Timestamp: timestamp,
	}, nil
}

func ParseTimestamp(value string) (time.Time, error) {
	if !timestampPattern.MatchString(value) {
		return time.Time{}, raceerrors.InvalidFormatData(
			"the timestamp format %q is incorrect, expected format: YYYY-MM-DD_HH:MM:SS.sss", value)
	}
	t, err := time.Parse(parseLayout, value)
	if err != nil {
		return time.Time{}, raceerrors.WrapInvalidFormatData(err,
			"the timestamp format %q is incorrect, expected format: YYYY-MM-DD_HH:MM:SS.sss", value)
	}
	return t, nil
}

// NormalizeIdentifier returns the upper-cased 3-letter code.
func NormalizeIdentifier(value string) (string, error) {
	id := strings.TrimSpace(value)
	if len([]rune(id)) != IDLength || !isAlpha(id) {
		return "", raceerrors.InvalidIdentifierFormat(value)
	}
	return upper(id), nil
}

// NormalizeName capitalizes "first last": first letter of each token upper
// case, the rest lower case, joined by a single space.
func NormalizeName(value string) (string, error) {
	tokens := strings.Fields(value)
	if len(tokens) != 2 {
		return "", raceerrors.InvalidNameFormat(value)
	}
	for i, token := range tokens {
		tokens[i] = capitalize(token)
	}
	return strings.Join(tokens, " "), nil
}

// ResolveQuery tries the query as an identifier first, then as a full name.
func ResolveQuery(raw string) model.DriverQuery {
	q := model.DriverQuery{Raw: raw}
	if id, err := NormalizeIdentifier(raw); err == nil {
		q.ID = id
		return q
	}
	if name, err := NormalizeName(raw); err == nil {
		q.Name = name
	}
	return q
}

func capitalize(token string) string {
	runes := []rune(cases.Lower(language.Und).String(token))
	if len(runes) == 0 {
		return ""
	}
	return cases.Upper(language.Und).String(string(runes[0])) + string(runes[1:])
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

func trimLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}
