package record

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/ofx2csv/value"
)

func txn(day int, amount string, payee string) Record {
	return Record{
		{Name: "date", Value: value.Timestamp(time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC))},
		{Name: "amount", Value: value.NewDecimal(decimal.RequireFromString(amount))},
		{Name: "payee", Value: value.Text(payee)},
	}
}

func TestUnionFirstSeenOrder(t *testing.T) {
	records := []Record{
		{{Name: "b"}, {Name: "a"}},
		{{Name: "c"}, {Name: "a"}},
		{{Name: "d"}},
	}

	u := UnionOf(records)

	assert.Equal(t, []string{"b", "a", "c", "d"}, u.Names())
	assert.Equal(t, 4, u.Len())
	assert.True(t, u.Has("c"))
	assert.False(t, u.Has("z"))
}

func TestUnionEqual(t *testing.T) {
	u := UnionOf([]Record{{{Name: "x"}, {Name: "y"}}})

	assert.True(t, u.Equal([]string{"y", "x"}))
	assert.False(t, u.Equal([]string{"x"}))
	assert.False(t, u.Equal([]string{"x", "y", "z"}))
}

func TestFlattenEmpty(t *testing.T) {
	_, err := Flatten(nil, zerolog.Nop())
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestFlattenFillsMissingAttributes(t *testing.T) {
	withMemo := append(txn(4, "-5.00", "Cafe"), Field{Name: "memo", Value: value.Text("coffee")})
	records := []Record{
		txn(1, "10.00", "Employer"),
		txn(2, "-20.96", "Grocer"),
		txn(3, "-115.26", "Utility"),
		withMemo,
	}

	rows, err := Flatten(records, zerolog.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 4)

	want := []string{"date", "amount", "payee", "memo"}
	for i, row := range rows {
		assert.Equal(t, want, row.Keys(), "row %d", i)
	}
	for _, row := range rows[:3] {
		memo, ok := row.Get("memo")
		assert.True(t, ok)
		assert.Equal(t, "", memo)
	}

	memo, _ := rows[3].Get("memo")
	assert.Equal(t, "coffee", memo)
	amount, _ := rows[1].Get("amount")
	assert.Equal(t, "-20.96", amount)
	date, _ := rows[0].Get("date")
	assert.Equal(t, "2024/03/01 00:00:00", date)
}

func TestFlattenKeepsEveryNonEmptyValue(t *testing.T) {
	records := []Record{
		{{Name: "id", Value: value.Text("T1")}, {Name: "units", Value: value.Int(3)}},
		{{Name: "flag", Value: value.Bool(true)}, {Name: "price", Value: value.Real(9.5)}},
	}

	rows, err := Flatten(records, zerolog.Nop())
	require.NoError(t, err)

	for i, rec := range records {
		for _, f := range rec {
			got, ok := rows[i].Get(f.Name)
			assert.True(t, ok)
			assert.NotEmpty(t, got, "%s on row %d", f.Name, i)
		}
	}
}

func TestFlattenAbsentAndUnknown(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	rows, err := Flatten([]Record{
		{{Name: "memo", Value: value.Absent{}}, {Name: "details", Value: value.Unknown{Type: "ofxgo.Split", Repr: "{split}"}}},
	}, log)
	require.NoError(t, err)

	memo, _ := rows[0].Get("memo")
	details, _ := rows[0].Get("details")
	assert.Equal(t, "", memo)
	assert.Equal(t, "{split}", details)
	assert.Contains(t, buf.String(), "ofxgo.Split")
}

func TestRowSet(t *testing.T) {
	r := NewRow([]string{"a", "b"}, []string{"1"})
	r.Set("c", "3")
	r.Set("a", "9")

	assert.Equal(t, []string{"a", "b", "c"}, r.Keys())
	a, _ := r.Get("a")
	b, ok := r.Get("b")
	assert.Equal(t, "9", a)
	assert.True(t, ok)
	assert.Equal(t, "", b)
}
