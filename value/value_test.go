package value

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestStringify(t *testing.T) {
	tests := []struct {
		name string
		in   Value
		want string
	}{
		{"text", Text("Vanguard Total"), "Vanguard Total"},
		{"empty text", Text(""), ""},
		{"int", Int(42), "42"},
		{"negative int", Int(-7), "-7"},
		{"real", Real(1.25), "1.25"},
		{"real whole", Real(3), "3"},
		{"bool true", Bool(true), "true"},
		{"bool false", Bool(false), "false"},
		{"decimal keeps scale", NewDecimal(decimal.RequireFromString("1500.00")), "1500.00"},
		{"decimal negative", NewDecimal(decimal.RequireFromString("-20.960")), "-20.960"},
		{"decimal integer", NewDecimal(decimal.NewFromInt(12)), "12"},
		{"timestamp", Timestamp(time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)), "2023/05/01 00:00:00"},
		{"timestamp afternoon", Timestamp(time.Date(2024, 12, 9, 15, 4, 5, 0, time.UTC)), "2024/12/09 15:04:05"},
		{"absent", Absent{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := zerolog.New(&buf)

			assert.Equal(t, tt.want, Stringify(tt.in, log))
			assert.Empty(t, buf.String(), "known kinds must not emit diagnostics")
		})
	}
}

func TestStringifyTimestampAfterUTCConversion(t *testing.T) {
	loc := time.FixedZone("EST", -5*3600)
	ts := Timestamp(time.Date(2024, 1, 31, 23, 30, 0, 0, loc).UTC())

	assert.Equal(t, "2024/02/01 04:30:00", Stringify(ts, zerolog.Nop()))
}

func TestStringifyUnknownWarns(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	got := Stringify(UnknownOf([]int{1, 2}), log)

	assert.Equal(t, "[1 2]", got)
	assert.Contains(t, buf.String(), "not sure how to convert")
	assert.Contains(t, buf.String(), `"type":"[]int"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestStringifyNilValueWarns(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	got := Stringify(nil, log)

	assert.Equal(t, "<nil>", got)
	assert.Contains(t, buf.String(), "not sure how to convert")
}
