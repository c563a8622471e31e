package knapsack_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"npopt/internal/ga"
	"npopt/internal/problems/knapsack"
)

func toyInstance(t *testing.T) *knapsack.Instance {
	t.Helper()
	inst, err := knapsack.NewInstance(5, []int{3, 4, 5}, []int{2, 3, 4})
	require.NoError(t, err)
	return inst
}

func TestParse(t *testing.T) {
	lines := []string{"10", "60 100 120", "1 2 3"}
	inst, err := knapsack.Parse(lines)
	require.NoError(t, err)
	require.Equal(t, 10, inst.Capacity)
	require.Equal(t, []int{60, 100, 120}, inst.Values)
	require.Equal(t, []int{1, 2, 3}, inst.Weights)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"too few lines", []string{"10", "1 2 3"}},
		{"bad capacity", []string{"x", "1 2", "1 2"}},
		{"bad values", []string{"10", "1 y", "1 2"}},
		{"length mismatch", []string{"10", "1 2 3", "1 2"}},
		{"zero capacity", []string{"0", "1 2", "1 2"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := knapsack.Parse(tc.lines)
			require.Error(t, err)
		})
	}
}

func TestFitnessPenalisesOverweight(t *testing.T) {
	enc, err := knapsack.NewEncoding(toyInstance(t))
	require.NoError(t, err)

	// Вместимость 5: предметы 0 и 1 помещаются (вес 5, ценность 7).
	require.Equal(t, 7.0, enc.Fitness([]int{1, 1, 0}))
	require.Equal(t, 5.0, enc.Fitness([]int{0, 0, 1}))
	require.Equal(t, 0.0, enc.Fitness([]int{0, 0, 0}))
	// Перевес обнуляет приспособленность.
	require.Equal(t, 0.0, enc.Fitness([]int{1, 1, 1}))

	require.Equal(t, 5, enc.Weight([]int{1, 1, 0}))
	require.Equal(t, 9, enc.Weight([]int{1, 1, 1}))
}

func TestOperatorsProduceValidGenomes(t *testing.T) {
	inst, err := knapsack.NewInstance(50,
		[]int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		[]int{1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6})
	require.NoError(t, err)
	enc, err := knapsack.NewEncoding(inst)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10000; i++ {
		a := enc.Random(rng)
		b := enc.Random(rng)
		require.NoError(t, enc.ValidateCandidate(a))

		c1, c2 := enc.Crossover(a, b, rng)
		require.NoError(t, enc.ValidateCandidate(c1))
		require.NoError(t, enc.ValidateCandidate(c2))

		m := enc.Mutate(c1, 0.1, rng)
		require.NoError(t, enc.ValidateCandidate(m))
	}
}

func TestMutateRateExtremes(t *testing.T) {
	enc, err := knapsack.NewEncoding(toyInstance(t))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(2))

	g := []int{1, 0, 1}
	require.Equal(t, g, enc.Mutate(g, 0.0, rng))
	require.Equal(t, []int{0, 1, 0}, enc.Mutate(g, 1.0, rng))
	// Исходный геном не изменяется.
	require.Equal(t, []int{1, 0, 1}, g)
}

func TestSingleItemInstance(t *testing.T) {
	inst, err := knapsack.NewInstance(10, []int{7}, []int{3})
	require.NoError(t, err)
	enc, err := knapsack.NewEncoding(inst)
	require.NoError(t, err)

	// Точки разреза у генома из одного бита нет:
	// кроссовер возвращает копии родителей.
	rng := rand.New(rand.NewSource(1))
	c1, c2 := enc.Crossover([]int{1}, []int{0}, rng)
	require.Equal(t, []int{1}, c1)
	require.Equal(t, []int{0}, c2)

	cfg := ga.Config{
		Population:     10,
		Generations:    50,
		TournamentSize: 2,
		CrossoverRate:  1.0,
		MutationRate:   0.05,
	}
	res, err := knapsack.Solve(context.Background(), inst, cfg, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Equal(t, 7.0, res.BestValue)
	require.Equal(t, []int{1}, res.Best)
}

func TestSolveFindsToyOptimum(t *testing.T) {
	inst := toyInstance(t)
	cfg := ga.Config{
		Population:     40,
		Generations:    100,
		TournamentSize: 3,
		CrossoverRate:  1.0,
		MutationRate:   0.05,
	}

	res, err := knapsack.Solve(context.Background(), inst, cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	// Оптимум: предметы 0 и 1 (вес 5, ценность 7).
	require.Equal(t, 7.0, res.BestValue)
	require.Equal(t, []int{1, 1, 0}, res.Best)
}

func TestFormat(t *testing.T) {
	got := knapsack.Format([]int{1, 0, 1, 1}, 295)
	require.Equal(t, "Itens selecionados: 0, 2, 3\nValor total: 295\n", got)
}
