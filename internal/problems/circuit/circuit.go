// Пакет circuit — оптимизация соединений компонентов схемы:
// выбрать заданное число соединений минимальной суммарной длины,
// соблюдая ограничения на число соединений каждого компонента.
// Решается имитацией отжига; нарушение ограничений штрафуется.
package circuit

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/samber/lo"

	"npopt/internal/opt"
	"npopt/internal/runio"
	"npopt/internal/sa"
)

const (
	Number = 5
	Name   = "circuito"
)

// Штраф за единицу нарушения ограничения степени компонента.
const degreePenalty = 100.0

// Edge — неориентированное соединение двух компонентов, A < B.
type Edge struct {
	A, B int
}

// NewEdge нормализует пару компонентов (меньший индекс первым).
func NewEdge(a, b int) Edge {
	if a > b {
		a, b = b, a
	}
	return Edge{A: a, B: b}
}

type Instance struct {
	Components  int
	Connections int
	MinDegree   []int
	MaxDegree   []int
	X, Y        []float64
}

func NewInstance(components, connections, minDegree int, x, y []float64) (*Instance, error) {
	inst := &Instance{
		Components:  components,
		Connections: connections,
		MinDegree:   make([]int, components),
		MaxDegree:   make([]int, components),
		X:           x,
		Y:           y,
	}
	for i := 0; i < components; i++ {
		inst.MinDegree[i] = minDegree
		// Компонент может соединяться со всеми, кроме себя
		inst.MaxDegree[i] = components - 1
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Components < 2 {
		return fmt.Errorf("components must be >= 2 (got %d)", inst.Components)
	}
	if inst.Connections <= 0 {
		return fmt.Errorf("connections must be > 0 (got %d)", inst.Connections)
	}
	if len(inst.X) != inst.Components || len(inst.Y) != inst.Components {
		return fmt.Errorf("coordinate lengths must be %d (got %d/%d)", inst.Components, len(inst.X), len(inst.Y))
	}
	if len(inst.MinDegree) != inst.Components || len(inst.MaxDegree) != inst.Components {
		return fmt.Errorf("degree bound lengths must be %d (got %d/%d)", inst.Components, len(inst.MinDegree), len(inst.MaxDegree))
	}
	return nil
}

// Distance — евклидово расстояние между компонентами a и b.
func (inst *Instance) Distance(a, b int) float64 {
	dx := inst.X[b] - inst.X[a]
	dy := inst.Y[b] - inst.Y[a]
	return math.Sqrt(dx*dx + dy*dy)
}

// Parse разбирает входной файл схемы: число компонентов, число
// соединений, минимальная степень, координаты X и Y
// (вещественные с запятой в роли десятичного разделителя).
func Parse(lines []string) (*Instance, error) {
	if len(lines) < 5 {
		return nil, fmt.Errorf("ожидалось минимум 5 строк входа (получено %d)", len(lines))
	}
	components, err := runio.Int(lines[0])
	if err != nil {
		return nil, err
	}
	connections, err := runio.Int(lines[1])
	if err != nil {
		return nil, err
	}
	minDegree, err := runio.Int(lines[2])
	if err != nil {
		return nil, err
	}
	x, err := runio.Floats(lines[3])
	if err != nil {
		return nil, err
	}
	y, err := runio.Floats(lines[4])
	if err != nil {
		return nil, err
	}
	return NewInstance(components, connections, minDegree, x, y)
}

// Problem — представление решения как списка соединений.
type Problem struct {
	inst *Instance
}

func NewProblem(inst *Instance) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Problem{inst: inst}, nil
}

func contains(edges []Edge, e Edge) bool {
	for _, cur := range edges {
		if cur == e {
			return true
		}
	}
	return false
}

// Initial строит случайный список соединений, не превышая максимальные
// степени. Число попыток ограничено, поэтому список может оказаться
// короче требуемого — оценщик это оштрафует.
func (p *Problem) Initial(rng *rand.Rand) []Edge {
	edges := make([]Edge, 0, p.inst.Connections)
	degree := make([]int, p.inst.Components)

	maxAttempts := p.inst.Connections * 10
	for attempt := 0; attempt < maxAttempts && len(edges) < p.inst.Connections; attempt++ {
		a := rng.Intn(p.inst.Components)
		b := rng.Intn(p.inst.Components)
		if a == b {
			continue
		}
		e := NewEdge(a, b)
		if contains(edges, e) {
			continue
		}
		if degree[e.A] >= p.inst.MaxDegree[e.A] || degree[e.B] >= p.inst.MaxDegree[e.B] {
			continue
		}
		edges = append(edges, e)
		degree[e.A]++
		degree[e.B]++
	}
	return edges
}

// Cost — штрафованная стоимость: суммарная длина соединений плюс
// degreePenalty за каждую единицу нарушения ограничений степени.
func (p *Problem) Cost(edges []Edge) float64 {
	cost, feasible := p.Evaluate(edges)
	if feasible {
		return cost
	}

	degree := make([]int, p.inst.Components)
	for _, e := range edges {
		degree[e.A]++
		degree[e.B]++
	}
	penalty := 0.0
	for i := 0; i < p.inst.Components; i++ {
		if degree[i] < p.inst.MinDegree[i] {
			penalty += degreePenalty * float64(p.inst.MinDegree[i]-degree[i])
		} else if degree[i] > p.inst.MaxDegree[i] {
			penalty += degreePenalty * float64(degree[i]-p.inst.MaxDegree[i])
		}
	}
	return cost + penalty
}

// Evaluate возвращает суммарную длину соединений и признак того,
// что степени всех компонентов лежат в заданных границах.
func (p *Problem) Evaluate(edges []Edge) (float64, bool) {
	cost := lo.SumBy(edges, func(e Edge) float64 {
		return p.inst.Distance(e.A, e.B)
	})

	degree := make([]int, p.inst.Components)
	for _, e := range edges {
		degree[e.A]++
		degree[e.B]++
	}
	for i := 0; i < p.inst.Components; i++ {
		if degree[i] < p.inst.MinDegree[i] || degree[i] > p.inst.MaxDegree[i] {
			return cost, false
		}
	}
	return cost, true
}

// Neighbor удаляет случайное соединение и добавляет новое,
// отсутствующее в списке (ограниченное число попыток).
func (p *Problem) Neighbor(edges []Edge, rng *rand.Rand) []Edge {
	if len(edges) == 0 {
		return p.Initial(rng)
	}

	out := make([]Edge, len(edges))
	copy(out, edges)

	drop := rng.Intn(len(out))
	out = append(out[:drop], out[drop+1:]...)

	for attempt := 0; attempt < 100; attempt++ {
		a := rng.Intn(p.inst.Components)
		b := rng.Intn(p.inst.Components)
		if a == b {
			continue
		}
		e := NewEdge(a, b)
		if contains(out, e) {
			continue
		}
		out = append(out, e)
		break
	}
	return out
}

func (p *Problem) ValidateCandidate(edges []Edge) error {
	seen := make(map[Edge]bool, len(edges))
	for i, e := range edges {
		if e.A < 0 || e.B >= p.inst.Components || e.A >= e.B {
			return fmt.Errorf("edge %d (%d,%d) is not a normalized pair in [0,%d)", i, e.A, e.B, p.inst.Components)
		}
		if seen[e] {
			return fmt.Errorf("duplicate edge (%d,%d)", e.A, e.B)
		}
		seen[e] = true
	}
	return nil
}

// DefaultConfig — калибровка имитации отжига для схемы соединений.
func DefaultConfig() sa.Config {
	return sa.Config{
		Iterations:  5_000,
		InitialTemp: 300.0,
		FinalTemp:   0.1,
		Alpha:       0.98,
	}
}

// Solve запускает имитацию отжига над экземпляром задачи.
func Solve(ctx context.Context, inst *Instance, cfg sa.Config, rng *rand.Rand) (opt.Result[[]Edge], error) {
	prob, err := NewProblem(inst)
	if err != nil {
		return opt.Result[[]Edge]{}, err
	}
	solver, err := sa.New[[]Edge](cfg, rng)
	if err != nil {
		return opt.Result[[]Edge]{}, err
	}
	return solver.Solve(ctx, prob)
}

// Format формирует содержимое выходного файла:
// список соединений и суммарная длина.
func Format(edges []Edge, cost float64) string {
	var b strings.Builder
	b.WriteString("Conexões estabelecidas:\n")
	for i, e := range edges {
		fmt.Fprintf(&b, "  Conexão %d: componente %d <-> componente %d\n", i+1, e.A, e.B)
	}
	fmt.Fprintf(&b, "\nCusto total (soma das distâncias): %.2f\n", cost)
	return b.String()
}
