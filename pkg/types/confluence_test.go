// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    PageID
		wantErr bool
	}{
		{"string", `{"id": "65537"}`, "65537", false},
		{"number", `{"id": 1}`, "1", false},
		{"large number", `{"id": 4294967296123}`, "4294967296123", false},
		{"null", `{"id": null}`, "", false},
		{"bool", `{"id": true}`, "", true},
		{"object", `{"id": {"v": 1}}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Page
			err := json.Unmarshal([]byte(tt.in), &p)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.ID)
		})
	}
}
