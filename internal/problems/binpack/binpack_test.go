package binpack_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"npopt/internal/problems/binpack"
)

// collectItems возвращает отсортированные индексы всех упакованных предметов.
func collectItems(bins [][]int) []int {
	var items []int
	for _, bin := range bins {
		items = append(items, bin...)
	}
	sort.Ints(items)
	return items
}

func TestParse(t *testing.T) {
	inst, err := binpack.Parse([]string{"10", "4", "5 5 3 7"})
	require.NoError(t, err)
	require.Equal(t, 10, inst.Capacity)
	require.Equal(t, []int{5, 5, 3, 7}, inst.Sizes)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
	}{
		{"too few lines", []string{"10", "2"}},
		{"count mismatch", []string{"10", "3", "5 5"}},
		{"oversized item", []string{"10", "2", "5 11"}},
		{"zero size item", []string{"10", "2", "5 0"}},
		{"bad capacity", []string{"x", "2", "5 5"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := binpack.Parse(tc.lines)
			require.Error(t, err)
		})
	}
}

func TestFirstFitDecreasingPacksEveryItemOnce(t *testing.T) {
	inst, err := binpack.NewInstance(10, []int{2, 5, 4, 7, 1, 3, 8})
	require.NoError(t, err)

	bins := binpack.FirstFitDecreasing(inst)

	require.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, collectItems(bins))
	for _, bin := range bins {
		require.LessOrEqual(t, binpack.BinLoad(inst, bin), inst.Capacity)
	}
}

func TestFirstFitDecreasingKnownPacking(t *testing.T) {
	// Размеры 7, 5, 5, 3: FFD даёт [7,3] и [5,5] — два контейнера.
	inst, err := binpack.NewInstance(10, []int{5, 5, 3, 7})
	require.NoError(t, err)

	bins := binpack.FirstFitDecreasing(inst)
	require.Len(t, bins, 2)
	require.Equal(t, 10, binpack.BinLoad(inst, bins[0]))
	require.Equal(t, 10, binpack.BinLoad(inst, bins[1]))
}

func TestConsolidateMergesHalfEmptyBins(t *testing.T) {
	inst, err := binpack.NewInstance(10, []int{3, 3, 2})
	require.NoError(t, err)

	bins := [][]int{{0}, {1}, {2}}
	got := binpack.Consolidate(inst, bins, 100)

	require.Len(t, got, 1)
	require.Equal(t, []int{0, 1, 2}, collectItems(got))
	// Исходное разбиение не изменяется.
	require.Equal(t, [][]int{{0}, {1}, {2}}, bins)
}

func TestConsolidateRespectsCapacity(t *testing.T) {
	inst, err := binpack.NewInstance(10, []int{6, 6, 6})
	require.NoError(t, err)

	bins := [][]int{{0}, {1}, {2}}
	got := binpack.Consolidate(inst, bins, 100)
	require.Len(t, got, 3)
}

func TestSolve(t *testing.T) {
	inst, err := binpack.NewInstance(10, []int{5, 5, 3, 7, 2, 8})
	require.NoError(t, err)

	bins, err := binpack.Solve(inst)
	require.NoError(t, err)

	require.Equal(t, []int{0, 1, 2, 3, 4, 5}, collectItems(bins))
	for _, bin := range bins {
		require.LessOrEqual(t, binpack.BinLoad(inst, bin), inst.Capacity)
	}
	// Сумма размеров 30 при вместимости 10: меньше трёх контейнеров не бывает.
	require.Len(t, bins, 3)
}

func TestFormat(t *testing.T) {
	inst, err := binpack.NewInstance(10, []int{5, 5, 3})
	require.NoError(t, err)

	got := binpack.Format(inst, [][]int{{0, 1}, {2}})
	want := "Número de recipientes utilizados: 2\n\n" +
		"Recipiente 1: itens [0, 1]\n" +
		"  Capacidade usada: 10/10\n" +
		"Recipiente 2: itens [2]\n" +
		"  Capacidade usada: 3/10\n"
	require.Equal(t, want, got)
}
