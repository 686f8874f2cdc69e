package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEffectivePrice(t *testing.T) {
	t.Run("Sale price below list price wins", func(t *testing.T) {
		p := Product{Price: 10, SalePrice: 8}
		assert.Equal(t, 8.0, p.EffectivePrice())
	})

	t.Run("Unset sale price falls back to list", func(t *testing.T) {
		p := Product{Price: 10}
		assert.Equal(t, 10.0, p.EffectivePrice())
	})

	t.Run("Sale price at list price is ignored", func(t *testing.T) {
		p := Product{Price: 10, SalePrice: 10}
		assert.Equal(t, 10.0, p.EffectivePrice())
	})

	t.Run("Sale price above list price is ignored", func(t *testing.T) {
		p := Product{Price: 10, SalePrice: 12}
		assert.Equal(t, 10.0, p.EffectivePrice())
	})
}

func TestVisible(t *testing.T) {
	assert.True(t, Product{}.Visible())
	assert.False(t, Product{Hidden: true}.Visible())
}

func TestUpdateProduct_HasAnyField(t *testing.T) {
	assert.False(t, UpdateProduct{}.HasAnyField())

	name := "Sencha"
	assert.True(t, UpdateProduct{Name: &name}.HasAnyField())

	hidden := true
	assert.True(t, UpdateProduct{Hidden: &hidden}.HasAnyField())

	assert.True(t, UpdateProduct{Images: []string{"a.jpg"}}.HasAnyField())
}
