package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID string `json:"id"`
}

func TestDecodeList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []item
	}{
		{name: "bare array", raw: `[{"id":"a"},{"id":"b"}]`, want: []item{{ID: "a"}, {ID: "b"}}},
		{name: "envelope", raw: `{"paquetes":[{"id":"a"}],"total":1,"pagina":1,"por_pagina":10}`, want: []item{{ID: "a"}}},
		{name: "envelope without key", raw: `{"total":0}`, want: []item{}},
		{name: "empty body", raw: ``, want: []item{}},
		{name: "null", raw: `null`, want: []item{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeList[item]([]byte(tt.raw), "paquetes")
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeListOrOne(t *testing.T) {
	got, err := DecodeListOrOne[item]([]byte(`{"id":"ABC123"}`), "transportes")
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "ABC123"}}, got)

	got, err = DecodeListOrOne[item]([]byte(`{"transportes":[{"id":"x"}]}`), "transportes")
	require.NoError(t, err)
	assert.Equal(t, []item{{ID: "x"}}, got)
}
