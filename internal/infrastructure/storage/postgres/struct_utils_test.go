package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JHRsoftware/jp-stores-sub001/internal/core/entity"
	"github.com/JHRsoftware/jp-stores-sub001/internal/core/id"
)

type mockCatalog struct {
	entity.Catalog
	Barcode string `db:"barcode" json:"barcode"`
	Skipped string `db:"-" json:"skipped"`
}

func TestExtractDBColumns_Embedded(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expectedCols := []string{
		"id", "created_at", "updated_at", "code", "name", "deletion_mark", "barcode",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_Embedded(t *testing.T) {
	cat := mockCatalog{
		Catalog: entity.Catalog{
			Base: entity.Base{ID: id.New()},
			Code: "B100",
			Name: "USB cable",
		},
		Barcode: "B100",
		Skipped: "never persisted",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, "B100", m["code"])
	assert.Equal(t, "USB cable", m["name"])
	assert.Equal(t, "B100", m["barcode"])
	assert.NotContains(t, m, "-")
}
