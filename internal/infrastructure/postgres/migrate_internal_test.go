package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifmt-cba-laboratorio-de-software/sistema-gestao-almoxarifado-grupo2/pkg/config"
)

func TestMigrationVersions_Ordenadas(t *testing.T) {
	versions, err := migrationVersions()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_init.sql", "002_seed_locations.sql"}, versions)
}

func TestSeedIncluyeUbicacionCentral(t *testing.T) {
	body, err := migrationFiles.ReadFile("migrations/002_seed_locations.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), config.DefaultCentralLocationID)
	assert.Contains(t, string(body), "Depósito Central")
}
