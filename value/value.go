// Package value holds the typed scalars carried by parsed OFX records and
// renders them as CSV cell text.
package value

import (
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DateFormat is the layout used for every timestamp written to CSV.
const DateFormat = "2006/01/02 15:04:05"

// Value is one attribute value of a record. The set of implementations is
// closed: Text, Int, Real, Bool, Decimal, Timestamp, Absent and Unknown.
type Value interface {
	isValue()
}

type Text string

type Int int64

type Real float64

type Bool bool

// Decimal is a fixed-point amount. Its scale is kept when rendered.
type Decimal struct {
	decimal.Decimal
}

type Timestamp time.Time

// Absent marks an attribute the source declared without a value.
type Absent struct{}

// Unknown wraps a value the parser produced but that has no dedicated kind.
// Type names the source type, Repr is its generic rendering.
type Unknown struct {
	Type string
	Repr string
}

func (Text) isValue()      {}
func (Int) isValue()       {}
func (Real) isValue()      {}
func (Bool) isValue()      {}
func (Decimal) isValue()   {}
func (Timestamp) isValue() {}
func (Absent) isValue()    {}
func (Unknown) isValue()   {}

// NewDecimal wraps d as a Value.
func NewDecimal(d decimal.Decimal) Decimal {
	return Decimal{Decimal: d}
}

// UnknownOf captures an arbitrary Go value as Unknown.
func UnknownOf(v any) Unknown {
	return Unknown{Type: fmt.Sprintf("%T", v), Repr: fmt.Sprintf("%v", v)}
}

// Stringify renders v as CSV cell text. Unknown values (and a nil Value) are
// rendered best-effort and reported on log; Stringify never fails.
func Stringify(v Value, log zerolog.Logger) string {
	switch x := v.(type) {
	case Text:
		return string(x)
	case Int:
		return strconv.FormatInt(int64(x), 10)
	case Real:
		return strconv.FormatFloat(float64(x), 'f', -1, 64)
	case Bool:
		return strconv.FormatBool(bool(x))
	case Decimal:
		return formatDecimal(x.Decimal)
	case Timestamp:
		return time.Time(x).Format(DateFormat)
	case Absent:
		return ""
	case Unknown:
		log.Warn().Str("type", x.Type).Msg("not sure how to convert")
		return x.Repr
	default:
		log.Warn().Str("type", fmt.Sprintf("%T", v)).Msg("not sure how to convert")
		return fmt.Sprintf("%v", v)
	}
}

func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}
