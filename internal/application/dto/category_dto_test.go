package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrEshunOfficial/category-api/internal/application/dto"
)

func TestUpdateCategoryRequest_ExcelFileTresEstados(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantClear bool
		wantFile  string
	}{
		{"ausente", `{"categoryId":"a","name":"Fruit"}`, false, ""},
		{"null", `{"categoryId":"a","excel_file":null}`, true, ""},
		{"con valor", `{"categoryId":"a","excel_file":{"name":"items.xlsx"}}`, false, "items.xlsx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in dto.UpdateCategoryRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &in))
			assert.Equal(t, "a", in.CategoryID)
			assert.Equal(t, tt.wantClear, in.ClearExcelFile)
			if tt.wantFile == "" {
				assert.Nil(t, in.ExcelFile)
				return
			}
			require.NotNil(t, in.ExcelFile)
			assert.Equal(t, tt.wantFile, in.ExcelFile.Name)
		})
	}
}

func TestUpdateCategoryRequest_MarshalSoloEnviaLoPresente(t *testing.T) {
	name := "Fruit"
	raw, err := json.Marshal(dto.UpdateCategoryRequest{CategoryID: "a", Name: &name})
	require.NoError(t, err)
	assert.JSONEq(t, `{"categoryId":"a","name":"Fruit"}`, string(raw))

	raw, err = json.Marshal(dto.UpdateCategoryRequest{CategoryID: "a", ClearExcelFile: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"categoryId":"a","excel_file":null}`, string(raw))
}
