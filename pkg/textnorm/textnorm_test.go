package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/textnorm"
)

func TestFold_QuitaAcentosYMayusculas(t *testing.T) {
	assert.Equal(t, "deposito central", textnorm.Fold("  Depósito   Central "))
	assert.Equal(t, "sala de manutencao", textnorm.Fold("Sala de Manutenção"))
	assert.Equal(t, "codigo", textnorm.Fold("CÓDIGO"))
	assert.Equal(t, "", textnorm.Fold("   "))
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Papel A4 Sulfite", "sulfite"))
	assert.True(t, textnorm.Contains("Cabo de Extensão", "extensao"))
	assert.False(t, textnorm.Contains("Caneta azul", "lápis"))
}
