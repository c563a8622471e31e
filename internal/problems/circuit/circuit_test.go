package circuit_test

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"npopt/internal/problems/circuit"
	"npopt/internal/sa"
)

// Четыре компонента в углах единичного квадрата, четыре соединения,
// минимум одно соединение на компонент.
func squareInstance(t *testing.T) *circuit.Instance {
	t.Helper()
	inst, err := circuit.NewInstance(4, 4, 1,
		[]float64{0, 0, 1, 1},
		[]float64{0, 1, 1, 0},
	)
	require.NoError(t, err)
	return inst
}

func TestNewEdgeNormalizesOrder(t *testing.T) {
	require.Equal(t, circuit.Edge{A: 1, B: 3}, circuit.NewEdge(3, 1))
	require.Equal(t, circuit.Edge{A: 1, B: 3}, circuit.NewEdge(1, 3))
}

func TestParseAcceptsCommaDecimals(t *testing.T) {
	lines := []string{
		"3",
		"2",
		"1",
		"0,5 1,5 2,5",
		"0 1 2",
	}
	inst, err := circuit.Parse(lines)
	require.NoError(t, err)
	require.Equal(t, 3, inst.Components)
	require.Equal(t, 2, inst.Connections)
	require.Equal(t, []int{1, 1, 1}, inst.MinDegree)
	require.Equal(t, []int{2, 2, 2}, inst.MaxDegree)
	require.Equal(t, []float64{0.5, 1.5, 2.5}, inst.X)
	require.Equal(t, []float64{0, 1, 2}, inst.Y)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"too few lines", []string{"3", "2", "1", "0 1 2"}},
		{"bad components", []string{"x", "2", "1", "0 1 2", "0 1 2"}},
		{"coordinate mismatch", []string{"3", "2", "1", "0 1", "0 1 2"}},
		{"single component", []string{"1", "1", "0", "0", "0"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := circuit.Parse(tc.lines)
			require.Error(t, err)
		})
	}
}

func TestDistance(t *testing.T) {
	inst := squareInstance(t)
	require.Equal(t, 1.0, inst.Distance(0, 1))
	require.InDelta(t, math.Sqrt2, inst.Distance(0, 2), 1e-12)
	require.Equal(t, 0.0, inst.Distance(3, 3))
}

func TestEvaluate(t *testing.T) {
	prob, err := circuit.NewProblem(squareInstance(t))
	require.NoError(t, err)

	// Периметр квадрата: все степени равны 2, длина 4.
	perimeter := []circuit.Edge{
		circuit.NewEdge(0, 1),
		circuit.NewEdge(1, 2),
		circuit.NewEdge(2, 3),
		circuit.NewEdge(3, 0),
	}
	cost, feasible := prob.Evaluate(perimeter)
	require.True(t, feasible)
	require.InDelta(t, 4.0, cost, 1e-12)

	// Компоненты 2 и 3 без соединений: нарушение минимальной степени.
	lone := []circuit.Edge{circuit.NewEdge(0, 1)}
	_, feasible = prob.Evaluate(lone)
	require.False(t, feasible)

	// Штраф: две недостающие степени по 100 каждая.
	require.InDelta(t, 1.0+200.0, prob.Cost(lone), 1e-12)
}

func TestInitialRespectsDegreeAndUniqueness(t *testing.T) {
	prob, err := circuit.NewProblem(squareInstance(t))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		edges := prob.Initial(rng)
		require.NoError(t, prob.ValidateCandidate(edges))
		require.LessOrEqual(t, len(edges), 4)
	}
}

func TestNeighborKeepsEdgesUnique(t *testing.T) {
	prob, err := circuit.NewProblem(squareInstance(t))
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(2))
	curr := prob.Initial(rng)
	for i := 0; i < 10000; i++ {
		next := prob.Neighbor(curr, rng)
		require.NoError(t, prob.ValidateCandidate(next))
		curr = next
	}
}

func TestSolveReachesFeasibleSolution(t *testing.T) {
	cfg := sa.Config{
		Iterations:  3000,
		InitialTemp: 300.0,
		FinalTemp:   0.1,
		Alpha:       0.98,
	}

	res, err := circuit.Solve(context.Background(), squareInstance(t), cfg, rand.New(rand.NewSource(42)))
	require.NoError(t, err)

	// Допустимое решение существует (периметр), поэтому итоговая
	// стоимость должна быть ниже одного штрафного балла.
	require.Less(t, res.BestValue, 100.0)
}

func TestFormat(t *testing.T) {
	edges := []circuit.Edge{circuit.NewEdge(0, 1), circuit.NewEdge(2, 3)}
	got := circuit.Format(edges, 3.14159)
	want := "Conexões estabelecidas:\n" +
		"  Conexão 1: componente 0 <-> componente 1\n" +
		"  Conexão 2: componente 2 <-> componente 3\n" +
		"\nCusto total (soma das distâncias): 3.14\n"
	require.Equal(t, want, got)
}
