package schema

import (
	"errors"
	"f1q1report/pkg/model"
	"f1q1report/pkg/raceerrors"
	"testing"
	"time"
)

func TestParseAbbreviation(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    model.Driver
		wantErr error
	}{
		{
			name: "well formed",
			line: "PGS_Pierre Gasly_SCUDERIA TORO ROSSO HONDA\n",
			want: model.Driver{ID: "PGS", Name: "Pierre Gasly", CarModel: "SCUDERIA TORO ROSSO HONDA"},
		},
		{
			name: "case is normalized",
			line: "kmh_kEVIN magnussen_haas ferrari",
			want: model.Driver{ID: "KMH", Name: "Kevin Magnussen", CarModel: "HAAS FERRARI"},
		},
		{
			name: "extra spaces in name",
			line: "FAM_ Fernando   Alonso _MCLAREN RENAULT\r\n",
			want: model.Driver{ID: "FAM", Name: "Fernando Alonso", CarModel: "MCLAREN RENAULT"},
		},
		{
			name:    "missing separators",
			line:    "DRRDaniel RicciardoRED BULL RACING TAG HEUER",
			wantErr: raceerrors.ErrInvalidFormatData,
		},
		{
			name:    "two fields",
			line:    "Valtteri Bottas_MERCEDES",
			wantErr: raceerrors.ErrInvalidFormatData,
		},
		{
			name:    "identifier too long",
			line:    "VBMX_Valtteri Bottas_MERCEDES",
			wantErr: raceerrors.ErrInvalidIdentifierFormat,
		},
		{
			name:    "identifier with digits",
			line:    "VB1_Valtteri Bottas_MERCEDES",
			wantErr: raceerrors.ErrInvalidIdentifierFormat,
		},
		{
			name:    "single token name",
			line:    "VBM_Bottas_MERCEDES",
			wantErr: raceerrors.ErrInvalidNameFormat,
		},
		{
			name:    "three token name",
			line:    "VBM_Valtteri V Bottas_MERCEDES",
			wantErr: raceerrors.ErrInvalidNameFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAbbreviation(tt.line)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestFieldErrorsAreFormatErrors(t *testing.T) {
	_, err := ParseAbbreviation("VB1_Valtteri Bottas_MERCEDES")
	if !errors.Is(err, raceerrors.ErrInvalidFormatData) {
		t.Fatalf("identifier error should match InvalidFormatData, got %v", err)
	}
	_, err = ParseAbbreviation("VBM_Bottas_MERCEDES")
	if !errors.Is(err, raceerrors.ErrInvalidFormatData) {
		t.Fatalf("name error should match InvalidFormatData, got %v", err)
	}
	if errors.Is(err, raceerrors.ErrInvalidIdentifierFormat) {
		t.Fatal("name error should not match InvalidIdentifierFormat")
	}
}

func TestNormalizedIdentifierAndName(t *testing.T) {
	lines := []string{
		"abc_jOHN sMITH_car",
		"XyZ_ANNA lee_car",
		"qqq_a b_car",
	}
	for _, line := range lines {
		d, err := ParseAbbreviation(line)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", line, err)
		}
		if len(d.ID) != 3 {
			t.Fatalf("%q: identifier %q is not 3 letters", line, d.ID)
		}
		for _, r := range d.ID {
			if r < 'A' || r > 'Z' {
				t.Fatalf("%q: identifier %q is not upper case", line, d.ID)
			}
		}
		first, last, _ := cut(d.Name)
		if !capitalized(first) || !capitalized(last) {
			t.Fatalf("%q: name %q is not capitalized", line, d.Name)
		}
	}
}

func cut(name string) (string, string, bool) {
	for i, r := range name {
		if r == ' ' {
			return name[:i], name[i+1:], true
		}
	}
	return name, "", false
}

func capitalized(s string) bool {
	for i, r := range s {
		if i == 0 && (r < 'A' || r > 'Z') {
			return false
		}
		if i > 0 && r >= 'A' && r <= 'Z' {
			return false
		}
	}
	return s != ""
}

func TestParseLogEntry(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		wantID  string
		wantTS  time.Time
		wantErr bool
	}{
		{
			name:   "well formed",
			line:   "FAM2018-05-24_12:13:04.512\n",
			wantID: "FAM",
			wantTS: time.Date(2018, 5, 24, 12, 13, 4, 512*int(time.Millisecond), time.UTC),
		},
		{
			name:   "lower case identifier",
			line:   "kmh2018-05-24_12:02:51.003",
			wantID: "KMH",
			wantTS: time.Date(2018, 5, 24, 12, 2, 51, 3*int(time.Millisecond), time.UTC),
		},
		{
			name:   "microseconds",
			line:   "PGS2018-05-24_12:07:23.645123",
			wantID: "PGS",
			wantTS: time.Date(2018, 5, 24, 12, 7, 23, 645123*int(time.Microsecond), time.UTC),
		},
		{name: "no identifier", line: "2018-05-24_12:02:58.917", wantErr: true},
		{name: "empty line", line: "", wantErr: true},
		{name: "identifier only", line: "VBM", wantErr: true},
		{name: "no milliseconds", line: "VBM2018-05-24_12:02:58", wantErr: true},
		{name: "wrong separator", line: "VBM2018-05-24 12:02:58.917", wantErr: true},
		{name: "invalid month", line: "VBM2018-13-24_12:02:58.917", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLogEntry(tt.line)
			if tt.wantErr {
				if !errors.Is(err, raceerrors.ErrInvalidFormatData) {
					t.Fatalf("expected InvalidFormatData, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ID != tt.wantID {
				t.Fatalf("expected id %q, got %q", tt.wantID, got.ID)
			}
			if !got.Timestamp.Equal(tt.wantTS) {
				t.Fatalf("expected %s, got %s", tt.wantTS, got.Timestamp)
			}
		})
	}
}

func TestParseTimestampCanonicalForm(t *testing.T) {
	ts, err := ParseTimestamp("2018-05-24_12:02:58.917")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := ts.Format(TimestampLayout); got != "2018-05-24_12:02:58.917" {
		t.Fatalf("unexpected canonical form %q", got)
	}
}

func TestResolveQuery(t *testing.T) {
	tests := []struct {
		raw      string
		wantID   string
		wantName string
	}{
		{raw: "pgs", wantID: "PGS"},
		{raw: " KMH ", wantID: "KMH"},
		{raw: "pierre gasly", wantName: "Pierre Gasly"},
		{raw: "Pierre Gasly", wantName: "Pierre Gasly"},
		{raw: "P1"},
		{raw: "Pierre"},
		{raw: ""},
		{raw: "a b c"},
	}

	for _, tt := range tests {
		q := ResolveQuery(tt.raw)
		if q.ID != tt.wantID || q.Name != tt.wantName {
			t.Fatalf("%q: expected (%q, %q), got (%q, %q)", tt.raw, tt.wantID, tt.wantName, q.ID, q.Name)
		}
		if q.IsZero() != (tt.wantID == "" && tt.wantName == "") {
			t.Fatalf("%q: IsZero mismatch", tt.raw)
		}
	}
}
