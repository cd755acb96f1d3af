package raceerrors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind classifies an analysis error.
type Kind int

const (
	KindUnknown Kind = iota
	KindMissedFile
	KindInvalidFormatData
	KindInvalidIdentifierFormat
	KindInvalidNameFormat
	KindInvalidRaceTime
	KindDisplayReport
	KindDriverNotFound
	KindInvalidOrder
)

func (k Kind) String() string {
	switch k {
	case KindMissedFile:
		return "MissedFile"
	case KindInvalidFormatData:
		return "InvalidFormatData"
	case KindInvalidIdentifierFormat:
		return "InvalidIdentifierFormat"
	case KindInvalidNameFormat:
		return "InvalidNameFormat"
	case KindInvalidRaceTime:
		return "InvalidRaceTime"
	case KindDisplayReport:
		return "DisplayReport"
	case KindDriverNotFound:
		return "DriverNotFound"
	case KindInvalidOrder:
		return "InvalidOrder"
	default:
		return "Unknown"
	}
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrMissedFile              = &Error{Kind: KindMissedFile}
	ErrInvalidFormatData       = &Error{Kind: KindInvalidFormatData}
	ErrInvalidIdentifierFormat = &Error{Kind: KindInvalidIdentifierFormat}
	ErrInvalidNameFormat       = &Error{Kind: KindInvalidNameFormat}
	ErrInvalidRaceTime         = &Error{Kind: KindInvalidRaceTime}
	ErrDisplayReport           = &Error{Kind: KindDisplayReport}
	ErrDriverNotFound          = &Error{Kind: KindDriverNotFound}
	ErrInvalidOrder            = &Error{Kind: KindInvalidOrder}
)

// Error is the single error type raised by the analysis pipeline.
type Error struct {
	Kind    Kind
	Message string
	Path    string // input file, when known
	ID      string // driver identifier, when known
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches by kind. Identifier and name errors are specialisations of
// InvalidFormatData and match it as well.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if e.Kind == t.Kind {
		return true
	}
	return t.Kind == KindInvalidFormatData && e.Kind.isFormat()
}

func (k Kind) isFormat() bool {
	return k == KindInvalidFormatData || k == KindInvalidIdentifierFormat || k == KindInvalidNameFormat
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func MissedFile(path string, cause error) *Error {
	return &Error{
		Kind:    KindMissedFile,
		Message: fmt.Sprintf("the file path %q is not found or cannot be opened", path),
		Path:    path,
		Cause:   errors.WithStack(cause),
	}
}

func InvalidFormatData(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidFormatData, Message: fmt.Sprintf(format, args...)}
}

func WrapInvalidFormatData(cause error, format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidFormatData,
		Message: fmt.Sprintf(format, args...),
		Cause:   errors.Wrap(cause, "parse"),
	}
}

func InvalidIdentifierFormat(value string) *Error {
	return &Error{
		Kind:    KindInvalidIdentifierFormat,
		Message: fmt.Sprintf("incorrect identifier format: %q, expected 3-letter code", value),
	}
}

func InvalidNameFormat(value string) *Error {
	return &Error{
		Kind:    KindInvalidNameFormat,
		Message: fmt.Sprintf("incorrect name format: %q, expected first name and last name", value),
	}
}

func InvalidRaceTime(id string) *Error {
	return &Error{
		Kind:    KindInvalidRaceTime,
		Message: fmt.Sprintf("race time error for driver %q: start time is greater than end time", id),
		ID:      id,
	}
}

func DisplayReport(message string) *Error {
	return &Error{Kind: KindDisplayReport, Message: message}
}

func DriverNotFound(query string) *Error {
	return &Error{
		Kind:    KindDriverNotFound,
		Message: fmt.Sprintf("no data found for driver %q", query),
	}
}

func InvalidOrder(order string) *Error {
	return &Error{
		Kind:    KindInvalidOrder,
		Message: fmt.Sprintf("invalid sort order: %q, must be 'asc' or 'desc'", order),
	}
}

// WithPath returns a copy of e annotated with the input file it came from.
func WithPath(err error, path string) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	c := *e
	c.Path = path
	c.Message = fmt.Sprintf("%s (file %s)", e.Message, path)
	return &c
}
