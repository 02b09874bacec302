package normalize

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rajneeshshukla1608/yaxis-immigration/internal/remote"
)

func TestPrice_NumericString(t *testing.T) {
	got := Price(json.RawMessage(`"12.50"`))
	assert.True(t, got.Equal(decimal.NewFromFloat(12.5)), "got %s", got)
}

func TestPrice_Number(t *testing.T) {
	got := Price(json.RawMessage(`99.99`))
	assert.True(t, got.Equal(decimal.NewFromFloat(99.99)), "got %s", got)
}

func TestPrice_Garbage(t *testing.T) {
	assert.True(t, Price(json.RawMessage(`"abc"`)).IsZero())
	assert.True(t, Price(json.RawMessage(`{}`)).IsZero())
}

func TestPrice_NullAndAbsent(t *testing.T) {
	assert.True(t, Price(json.RawMessage(`null`)).IsZero())
	assert.True(t, Price(nil).IsZero())
}

func TestPrice_NegativePassesThrough(t *testing.T) {
	// upstream permissiveness: negatives are not rejected here
	got := Price(json.RawMessage(`-5`))
	assert.True(t, got.Equal(decimal.NewFromInt(-5)), "got %s", got)
}

func TestQuantity_Absent(t *testing.T) {
	assert.Equal(t, 1, Quantity(nil))
	assert.Equal(t, 1, Quantity(json.RawMessage(`null`)))
}

func TestQuantity_NumberAndString(t *testing.T) {
	assert.Equal(t, 3, Quantity(json.RawMessage(`3`)))
	assert.Equal(t, 3, Quantity(json.RawMessage(`"3"`)))
}

func TestQuantity_FractionTruncates(t *testing.T) {
	assert.Equal(t, 2, Quantity(json.RawMessage(`2.7`)))
}

func TestQuantity_Garbage(t *testing.T) {
	assert.Equal(t, 1, Quantity(json.RawMessage(`"abc"`)))
}

func TestQuantity_NonFiniteFallsBack(t *testing.T) {
	// ParseFloat accepts these; the conversion to int must not
	assert.Equal(t, 1, Quantity(json.RawMessage(`"Infinity"`)))
	assert.Equal(t, 1, Quantity(json.RawMessage(`"-Infinity"`)))
	assert.Equal(t, 1, Quantity(json.RawMessage(`"NaN"`)))
}

func TestQuantity_OutOfRangeFallsBack(t *testing.T) {
	assert.Equal(t, 1, Quantity(json.RawMessage(`"1e300"`)))
	assert.Equal(t, 1, Quantity(json.RawMessage(`1e300`)))
	assert.Equal(t, 1, Quantity(json.RawMessage(`"-1e300"`)))
}

func TestQuantity_ClampsDisplayMinimum(t *testing.T) {
	assert.Equal(t, 1, Quantity(json.RawMessage(`0`)))
	assert.Equal(t, 1, Quantity(json.RawMessage(`-4`)))
}

func TestItems_DropsMissingProductReference(t *testing.T) {
	raw := []remote.RawLineItem{
		{ID: "li1", Product: nil, Price: json.RawMessage(`10`), Quantity: json.RawMessage(`1`)},
		{
			ID:       "li2",
			Product:  &remote.RawProduct{ID: "p2", Name: "PR Consultation", Price: json.RawMessage(`"150"`), IsActive: true},
			Price:    json.RawMessage(`"150"`),
			Quantity: json.RawMessage(`"2"`),
		},
	}

	items := Items(raw)
	require.Len(t, items, 1)
	assert.Equal(t, "li2", items[0].ID)
	assert.Equal(t, "p2", items[0].Product.ID)
	assert.Equal(t, 2, items[0].Quantity)
	assert.True(t, items[0].UnitPrice.Equal(decimal.NewFromInt(150)))
}

func TestItems_PreservesOrder(t *testing.T) {
	raw := []remote.RawLineItem{
		{ID: "a", Product: &remote.RawProduct{ID: "p1"}, Price: json.RawMessage(`1`), Quantity: json.RawMessage(`1`)},
		{ID: "b", Product: &remote.RawProduct{ID: "p2"}, Price: json.RawMessage(`2`), Quantity: json.RawMessage(`1`)},
		{ID: "c", Product: &remote.RawProduct{ID: "p3"}, Price: json.RawMessage(`3`), Quantity: json.RawMessage(`1`)},
	}

	items := Items(raw)
	require.Len(t, items, 3)
	assert.Equal(t, "a", items[0].ID)
	assert.Equal(t, "b", items[1].ID)
	assert.Equal(t, "c", items[2].ID)
}
