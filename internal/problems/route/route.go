// Пакет route — задача коммивояжёра (TSP) над матрицей расстояний,
// решаемая имитацией отжига с окрестностью 2-opt.
package route

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"npopt/internal/opt"
	"npopt/internal/permutation"
	"npopt/internal/runio"
	"npopt/internal/sa"
)

const (
	Number = 2
	Name   = "tsp"
)

type Instance struct {
	N    int
	Dist [][]int
}

func NewInstance(n int, dist [][]int) (*Instance, error) {
	inst := &Instance{N: n, Dist: dist}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.N < 2 {
		return fmt.Errorf("vertex count must be >= 2 (got %d)", inst.N)
	}
	if len(inst.Dist) != inst.N {
		return fmt.Errorf("distance matrix must have %d rows (got %d)", inst.N, len(inst.Dist))
	}
	for i, row := range inst.Dist {
		if len(row) != inst.N {
			return fmt.Errorf("distance matrix row %d must have %d columns (got %d)", i, inst.N, len(row))
		}
	}
	return nil
}

// Parse разбирает входной файл TSP:
// строка 1 — число вершин, далее матрица смежности построчно.
func Parse(lines []string) (*Instance, error) {
	if len(lines) < 1 {
		return nil, errors.New("пустой входной файл")
	}
	n, err := runio.Int(lines[0])
	if err != nil {
		return nil, err
	}
	if len(lines) < n+1 {
		return nil, fmt.Errorf("ожидалось %d строк матрицы (получено %d)", n, len(lines)-1)
	}
	dist := make([][]int, 0, n)
	for i := 1; i <= n; i++ {
		row, err := runio.Ints(lines[i])
		if err != nil {
			return nil, fmt.Errorf("строка матрицы %d: %w", i, err)
		}
		dist = append(dist, row)
	}
	return NewInstance(n, dist)
}

// Problem — представление маршрута как перестановки вершин.
type Problem struct {
	inst *Instance
}

func NewProblem(inst *Instance) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Problem{inst: inst}, nil
}

func (p *Problem) Initial(rng *rand.Rand) []int {
	return permutation.Random(p.inst.N, rng)
}

// Cost — длина циклического маршрута (с возвратом в исходную вершину).
func (p *Problem) Cost(route []int) float64 {
	total := 0
	for i := range route {
		from := route[i]
		to := route[(i+1)%len(route)]
		total += p.inst.Dist[from][to]
	}
	return float64(total)
}

// Neighbor — оператор 2-opt: обращение случайного отрезка маршрута.
func (p *Problem) Neighbor(route []int, rng *rand.Rand) []int {
	n := len(route)
	i := rng.Intn(n)
	j := rng.Intn(n - 1)
	if j >= i {
		j++
	}
	return permutation.ReverseSegment(route, i, j)
}

func (p *Problem) ValidateCandidate(route []int) error {
	return permutation.Validate(route, p.inst.N)
}

// DefaultConfig — калибровка имитации отжига для TSP.
func DefaultConfig() sa.Config {
	return sa.Config{
		Iterations:  10_000,
		InitialTemp: 1000.0,
		FinalTemp:   0.01,
		Alpha:       0.995,
	}
}

// Solve запускает имитацию отжига над экземпляром задачи.
func Solve(ctx context.Context, inst *Instance, cfg sa.Config, rng *rand.Rand) (opt.Result[[]int], error) {
	prob, err := NewProblem(inst)
	if err != nil {
		return opt.Result[[]int]{}, err
	}
	solver, err := sa.New[[]int](cfg, rng)
	if err != nil {
		return opt.Result[[]int]{}, err
	}
	return solver.Solve(ctx, prob)
}

// Format формирует содержимое выходного файла:
// маршрут с возвратом в исходную вершину и его стоимость.
func Format(route []int, cost int) string {
	full := append(lo.Map(route, func(v int, _ int) string {
		return strconv.Itoa(v)
	}), strconv.Itoa(route[0]))

	var b strings.Builder
	fmt.Fprintf(&b, "Rota: %s\n", strings.Join(full, " -> "))
	fmt.Fprintf(&b, "Custo total: %d\n", cost)
	return b.String()
}
