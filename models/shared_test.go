package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageQuery_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   PageQuery
		want PageQuery
	}{
		{"zero value gets defaults", PageQuery{}, PageQuery{Page: 1, Limit: DefaultPageLimit}},
		{"negative page", PageQuery{Page: -3, Limit: 10}, PageQuery{Page: 1, Limit: 10}},
		{"limit is capped", PageQuery{Page: 2, Limit: 1000}, PageQuery{Page: 2, Limit: MaxPageLimit}},
		{"valid input is kept", PageQuery{Page: 4, Limit: 25}, PageQuery{Page: 4, Limit: 25}},
		{"huge page is capped", PageQuery{Page: 1 << 62, Limit: 100}, PageQuery{Page: MaxPage, Limit: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

func TestPageQuery_Skip(t *testing.T) {
	assert.Equal(t, int64(0), PageQuery{}.Skip())
	assert.Equal(t, int64(50), PageQuery{Page: 3, Limit: 25}.Skip())

	skip := PageQuery{Page: 1 << 62, Limit: 100}.Skip()
	assert.Positive(t, skip)
	assert.LessOrEqual(t, skip, int64(math.MaxInt32))
}

func TestNewPage(t *testing.T) {
	p := NewPage[string](nil, 41, PageQuery{Page: 2, Limit: 20})
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)
	assert.Equal(t, Pagination{Page: 2, Limit: 20, Total: 41, TotalPages: 3}, p.Pagination)
}

func TestAppointment_Categories(t *testing.T) {
	a := Appointment{Services: []AppointmentService{
		{Category: "Hair"}, {Category: "Nails"}, {Category: "Hair"}, {Category: ""},
	}}
	assert.Equal(t, []string{"Hair", "Nails"}, a.Categories())
}

func TestMoney(t *testing.T) {
	assert.Equal(t, Money(30), ToMoney(0.3))
	assert.Equal(t, Money(10000), ToMoney(99.999))
	assert.Equal(t, Money(20), ToMoney(0.3)-ToMoney(0.1))

	b, err := json.Marshal(struct {
		Balance Money `json:"balance"`
	}{Money(4050)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"balance":40.5}`, string(b))

	var in struct {
		Amount Money `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"amount":12.345}`), &in))
	assert.Equal(t, Money(1235), in.Amount)
	assert.Error(t, json.Unmarshal([]byte(`{"amount":"ten"}`), &in))
}

func TestRoundMoney(t *testing.T) {
	assert.Equal(t, 10.13, RoundMoney(10.125000001))
	assert.Equal(t, 3.0, RoundMoney(2.999))
}
