package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-conteo/internal/domain/entity"
	"github.com/jhoicas/inventario-conteo/internal/infrastructure/memory"
)

func TestProductRepo_GetByCodeRecortaEspacios(t *testing.T) {
	repo := memory.NewProductRepository([]*entity.Product{
		{Code: " 001 ", Description: "Açúcar", Category: entity.CategoryInsumo, KnownLots: []string{"L1"}},
	})

	p, err := repo.GetByCode("001")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "001", p.Code)
	assert.Equal(t, []string{"L1"}, p.KnownLots)

	p, err = repo.GetByCode(" 001")
	require.NoError(t, err)
	assert.NotNil(t, p)
}

func TestProductRepo_CodigoInexistente(t *testing.T) {
	repo := memory.NewProductRepository(nil)
	p, err := repo.GetByCode("999")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestProductRepo_CopiasNoAlteranCadastro(t *testing.T) {
	repo := memory.NewProductRepository([]*entity.Product{{Code: "001", KnownLots: []string{"L1"}}})

	p, _ := repo.GetByCode("001")
	p.KnownLots[0] = "alterado"
	p.Description = "alterado"

	again, _ := repo.GetByCode("001")
	assert.Equal(t, "L1", again.KnownLots[0])
	assert.Empty(t, again.Description)
}

func TestProductRepo_ListConservaOrden(t *testing.T) {
	repo := memory.NewProductRepository([]*entity.Product{
		{Code: "B"}, {Code: "A"}, {Code: "B", Description: "nuevo"}, {Code: ""}, nil,
	})
	list, err := repo.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "B", list[0].Code)
	assert.Equal(t, "nuevo", list[0].Description)
	assert.Equal(t, "A", list[1].Code)
	assert.Equal(t, 2, repo.Len())
}

func TestOperatorRepo_FindByUsername(t *testing.T) {
	repo := memory.NewOperatorRepository([]entity.Operator{{Username: "Ana", Role: entity.RoleSupervisor, PasswordHash: "h"}})

	op, err := repo.FindByUsername("ana")
	require.NoError(t, err)
	require.NotNil(t, op)
	assert.Equal(t, entity.RoleSupervisor, op.Role)

	op, err = repo.FindByUsername("joao")
	require.NoError(t, err)
	assert.Nil(t, op)
}
