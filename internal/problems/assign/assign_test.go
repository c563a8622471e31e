package assign_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"npopt/internal/problems/assign"
	"npopt/internal/sa"
)

// Два программиста, три модуля. Дешёвые назначения у программиста 0,
// но его часы ограничены, поэтому часть модулей уходит программисту 1.
func toyInstance(t *testing.T) *assign.Instance {
	t.Helper()
	inst, err := assign.NewInstance(2, 3,
		[][]int{
			{1, 1, 1},
			{5, 5, 5},
		},
		[][]int{
			{4, 4, 4},
			{4, 4, 4},
		},
		[]int{8, 8},
	)
	require.NoError(t, err)
	return inst
}

func TestParse(t *testing.T) {
	lines := []string{
		"2",
		"3",
		"1 2 3",
		"4 5 6",
		"7 8 9",
		"1 2 3",
		"10 20",
	}
	inst, err := assign.Parse(lines)
	require.NoError(t, err)
	require.Equal(t, 2, inst.Workers)
	require.Equal(t, 3, inst.Tasks)
	require.Equal(t, [][]int{{1, 2, 3}, {4, 5, 6}}, inst.Cost)
	require.Equal(t, [][]int{{7, 8, 9}, {1, 2, 3}}, inst.Load)
	require.Equal(t, []int{10, 20}, inst.Capacity)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"too short", []string{"2"}},
		{"bad worker count", []string{"x", "3", "1 2 3", "1 2 3", "1 2 3", "1 2 3", "1 1"}},
		{"missing capacity line", []string{"2", "3", "1 2 3", "4 5 6", "7 8 9", "1 2 3"}},
		{"ragged cost row", []string{"2", "3", "1 2", "4 5 6", "7 8 9", "1 2 3", "10 20"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := assign.Parse(tc.lines)
			require.Error(t, err)
		})
	}
}

func TestGreedyInitialRespectsCapacity(t *testing.T) {
	prob, err := assign.NewProblem(toyInstance(t))
	require.NoError(t, err)

	got := prob.Initial(rand.New(rand.NewSource(1)))
	require.NoError(t, prob.ValidateCandidate(got))

	// Программисту 0 хватает часов только на два модуля (2*4 <= 8),
	// третий уходит программисту 1.
	require.Equal(t, []int{0, 0, 1}, got)

	cost, feasible := prob.Evaluate(got)
	require.True(t, feasible)
	require.Equal(t, 7, cost)
}

func TestCostPenalisesOverload(t *testing.T) {
	prob, err := assign.NewProblem(toyInstance(t))
	require.NoError(t, err)

	// Все модули у программиста 0: нагрузка 12 при 8 часах,
	// превышение 4 часа.
	cost, feasible := prob.Evaluate([]int{0, 0, 0})
	require.False(t, feasible)
	require.Equal(t, 3, cost)
	require.Equal(t, 3.0+1000.0*4.0, prob.Cost([]int{0, 0, 0}))

	// Допустимое решение: штрафа нет.
	require.Equal(t, 7.0, prob.Cost([]int{0, 0, 1}))
}

func TestNeighborChangesSingleAssignment(t *testing.T) {
	prob, err := assign.NewProblem(toyInstance(t))
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(2))

	curr := []int{0, 0, 1}
	for i := 0; i < 10000; i++ {
		next := prob.Neighbor(curr, rng)
		require.NoError(t, prob.ValidateCandidate(next))

		diff := 0
		for t := range next {
			if next[t] != curr[t] {
				diff++
			}
		}
		require.LessOrEqual(t, diff, 1)
	}
	// Исходный вектор не изменяется.
	require.Equal(t, []int{0, 0, 1}, curr)
}

func TestSolveNotWorseThanGreedy(t *testing.T) {
	inst := toyInstance(t)
	prob, err := assign.NewProblem(inst)
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	greedy := prob.Cost(prob.Initial(rng))

	cfg := sa.Config{
		Iterations:  2000,
		InitialTemp: 500.0,
		FinalTemp:   0.1,
		Alpha:       0.99,
	}
	res, err := assign.Solve(context.Background(), inst, cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	require.LessOrEqual(t, res.BestValue, greedy)
}

func TestFormat(t *testing.T) {
	got := assign.Format([]int{0, 2, 0}, 14, 3)
	want := "Designação de módulos por programador:\n" +
		"Programador 0: módulos 0, 2\n" +
		"Programador 1: nenhum módulo\n" +
		"Programador 2: módulos 1\n" +
		"\nCusto total: 14\n"
	require.Equal(t, want, got)
}
