package form

import (
	"testing"

	"github.com/alexanderramin/freightdesk/internal/calc"
	"github.com/alexanderramin/freightdesk/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *Schema {
	notSea := func(v Values) bool { return v.String("mode") != "SEA" }
	return &Schema{
		Name: "test",
		Fields: []Field{
			{Name: "id", Kind: KindHidden, Default: "0"},
			{Name: "number", Label: "Job Number", Kind: KindText, Required: true, NonBlank: true},
			{Name: "date", Label: "Job Date", Kind: KindDate, Required: true},
			{Name: "mode", Label: "Mode", Kind: KindSelect, Default: "SEA", Options: []domain.Option{
				{Value: "SEA", Label: "Sea"}, {Value: "AIR", Label: "Air"},
			}},
			{Name: "vessel", Label: "Vessel", Kind: KindSelect, Lookup: "vessels",
				VisibleWhen: func(v Values) bool { return !notSea(v) }},
			{Name: "gross", Label: "Gross", Kind: KindNumber, Min: MinOf(0), Default: "0"},
			{Name: "tare", Label: "Tare", Kind: KindNumber, Min: MinOf(0), Default: "0"},
			{Name: "net", Label: "Net", Kind: KindNumber, Derived: true},
			{Name: "qty", Label: "Quantity", Kind: KindInteger, Min: MinOf(1), Default: "1"},
		},
		Watchers: []Watcher{
			Derive("net", []string{"gross", "tare"}, func(v Values) map[string]string {
				return map[string]string{"net": calc.NetWeight(v.Decimal("gross"), v.Decimal("tare")).String()}
			}),
			ClearWhen("mode", notSea, "vessel"),
		},
	}
}

func TestNewState_MergesDefaultsAndExisting(t *testing.T) {
	s := NewState(testSchema(), Values{"number": "JOB-1", "date": "2024-05-01T00:00:00", "gross": "1500", "tare": "300", "extra": "kept"})

	assert.Equal(t, "0", s.Get("id"))
	assert.Equal(t, "JOB-1", s.Get("number"))
	assert.Equal(t, "2024-05-01", s.Get("date"))
	assert.Equal(t, "SEA", s.Get("mode"))
	assert.Equal(t, "1200", s.Get("net"), "watchers run at init")
	assert.Equal(t, "kept", s.Get("extra"))
}

func TestState_SetRecomputesDerivedOnEveryChange(t *testing.T) {
	s := NewState(testSchema(), nil)

	require.NoError(t, s.Set("gross", "1000"))
	assert.Equal(t, "1000", s.Get("net"))
	require.NoError(t, s.Set("tare", "1200"))
	assert.Equal(t, "0", s.Get("net"))
	require.NoError(t, s.Set("gross", "1500"))
	require.NoError(t, s.Set("tare", "300"))
	assert.Equal(t, "1200", s.Get("net"))
}

func TestState_SetRejectsDerivedAndUnknown(t *testing.T) {
	s := NewState(testSchema(), nil)

	assert.ErrorIs(t, s.Set("net", "5"), ErrReadOnly)
	assert.ErrorIs(t, s.Set("nope", "5"), ErrUnknownField)
}

func TestState_ClearWhenHidesDependents(t *testing.T) {
	s := NewState(testSchema(), nil)
	require.NoError(t, s.Set("vessel", "7"))

	require.NoError(t, s.Set("mode", "AIR"))
	assert.Equal(t, "", s.Get("vessel"))
	assert.False(t, s.Visible("vessel"))

	require.NoError(t, s.Set("mode", "SEA"))
	assert.True(t, s.Visible("vessel"))
}

func TestSchema_RestoreWhenPutsDefaultBack(t *testing.T) {
	schema := testSchema()
	for i, f := range schema.Fields {
		if f.Name == "vessel" {
			schema.Fields[i].Default = "1"
		}
	}
	schema.Watchers = append(schema.Watchers, schema.RestoreWhen("mode", func(v Values) bool { return v.String("mode") == "SEA" }, "vessel"))
	s := NewState(schema, nil)
	require.NoError(t, s.Set("vessel", "7"))

	require.NoError(t, s.Set("mode", "AIR"))
	assert.Equal(t, "", s.Get("vessel"))

	require.NoError(t, s.Set("mode", "SEA"))
	assert.Equal(t, "1", s.Get("vessel"))

	require.NoError(t, s.Set("vessel", "7"))
	require.NoError(t, s.Set("mode", "SEA"))
	assert.Equal(t, "7", s.Get("vessel"), "a chosen value is left alone")
}

func TestState_Validate(t *testing.T) {
	s := NewState(testSchema(), nil)

	err := s.Validate()
	require.Error(t, err)
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"number", "date"}, fe.Fields())
	assert.Equal(t, "Job Number is required", fe.Message("number"))

	require.NoError(t, s.Set("number", "   "))
	assert.Equal(t, "Job Number is required", s.Validate("number").(FieldErrors).Message("number"))

	require.NoError(t, s.Set("number", "JOB-1"))
	require.NoError(t, s.Set("date", "2024-13-40"))
	assert.False(t, s.Valid("date"))
	require.NoError(t, s.Set("date", "2024-05-01"))
	assert.True(t, s.Valid())
}

func TestState_ValidateSubsetAndBounds(t *testing.T) {
	s := NewState(testSchema(), nil)

	assert.True(t, s.Valid("gross", "tare"), "subset skips failing required fields")

	require.NoError(t, s.Set("gross", "-1"))
	assert.Equal(t, "Gross must be at least 0", s.Validate("gross").(FieldErrors).Message("gross"))
	require.NoError(t, s.Set("gross", "abc"))
	assert.Equal(t, "Gross must be a number", s.Validate("gross").(FieldErrors).Message("gross"))

	require.NoError(t, s.Set("qty", "0"))
	assert.False(t, s.Valid("qty"))
	require.NoError(t, s.Set("qty", "2.5"))
	assert.Equal(t, "Quantity must be a whole number", s.Validate("qty").(FieldErrors).Message("qty"))

	require.NoError(t, s.Set("mode", "RAIL"))
	assert.False(t, s.Valid("mode"))
}

func TestState_ValidateSkipsHiddenFields(t *testing.T) {
	sc := testSchema()
	for i := range sc.Fields {
		if sc.Fields[i].Name == "vessel" {
			sc.Fields[i].Required = true
		}
	}
	s := NewState(sc, nil)
	assert.False(t, s.Valid("vessel"))

	require.NoError(t, s.Set("vessel", "0"))
	assert.False(t, s.Valid("vessel"), "lookup id 0 counts as empty")

	require.NoError(t, s.Set("mode", "AIR"))
	assert.True(t, s.Valid("vessel"))
}

func TestState_ValuesIsCopy(t *testing.T) {
	s := NewState(testSchema(), nil)
	v := s.Values()
	v["number"] = "changed"
	assert.Equal(t, "", s.Get("number"))
}

func TestState_Reset(t *testing.T) {
	s := NewState(testSchema(), Values{"number": "JOB-1", "gross": "10"})
	s.Reset()
	assert.Equal(t, "", s.Get("number"))
	assert.Equal(t, "0", s.Get("gross"))
	assert.Equal(t, "0", s.Get("net"))
}

func TestValues_Accessors(t *testing.T) {
	v := Values{"n": " 12 ", "f": "3.0", "bad": "x", "b": "true", "d": "2024-01-02T10:00:00Z", "e": "", "w": "  "}

	assert.Equal(t, 12, v.Int("n"))
	assert.Equal(t, 3, v.Int("f"))
	assert.Equal(t, 0, v.Int("bad"))
	assert.True(t, v.Decimal("bad").IsZero())
	assert.Equal(t, 3.0, v.Float("f"))
	assert.True(t, v.Bool("b"))
	assert.False(t, v.Bool("bad"))
	require.NotNil(t, v.DatePtr("d"))
	assert.Equal(t, "2024-01-02", *v.DatePtr("d"))
	assert.Nil(t, v.DatePtr("e"))
	assert.Nil(t, v.DatePtr("w"), "whitespace is no date")
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2024-05-01", NormalizeDate("2024-05-01T00:00:00"))
	assert.Equal(t, "2024-05-01", NormalizeDate("2024-05-01T00:00:00.123"))
	assert.Equal(t, "2024-05-01", NormalizeDate("2024-05-01"))
	assert.Equal(t, "not a date", NormalizeDate("not a date"))
	assert.Equal(t, "", NormalizeDate("  "))
}
