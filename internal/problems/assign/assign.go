// Пакет assign — задача обобщённого назначения (GAP): распределение
// модулей между программистами с ограничением по часовой нагрузке.
// Решается имитацией отжига; нарушение ограничений штрафуется.
package assign

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"npopt/internal/opt"
	"npopt/internal/runio"
	"npopt/internal/sa"
)

const (
	Number = 3
	Name   = "pdg"
)

// Штраф за единицу превышения часовой нагрузки программиста.
const overloadPenalty = 1000.0

type Instance struct {
	Workers int
	Tasks   int
	// Cost[w][t] — стоимость назначения модуля t программисту w.
	Cost [][]int
	// Load[w][t] — часовая нагрузка модуля t у программиста w.
	Load [][]int
	// Capacity[w] — доступные часы программиста w.
	Capacity []int
}

func NewInstance(workers, tasks int, cost, load [][]int, capacity []int) (*Instance, error) {
	inst := &Instance{Workers: workers, Tasks: tasks, Cost: cost, Load: load, Capacity: capacity}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Workers <= 0 {
		return fmt.Errorf("workers must be > 0 (got %d)", inst.Workers)
	}
	if inst.Tasks <= 0 {
		return fmt.Errorf("tasks must be > 0 (got %d)", inst.Tasks)
	}
	if len(inst.Cost) != inst.Workers || len(inst.Load) != inst.Workers {
		return fmt.Errorf("cost/load matrices must have %d rows (got %d/%d)", inst.Workers, len(inst.Cost), len(inst.Load))
	}
	for w := 0; w < inst.Workers; w++ {
		if len(inst.Cost[w]) != inst.Tasks {
			return fmt.Errorf("cost row %d must have %d columns (got %d)", w, inst.Tasks, len(inst.Cost[w]))
		}
		if len(inst.Load[w]) != inst.Tasks {
			return fmt.Errorf("load row %d must have %d columns (got %d)", w, inst.Tasks, len(inst.Load[w]))
		}
	}
	if len(inst.Capacity) != inst.Workers {
		return fmt.Errorf("capacity length must be %d (got %d)", inst.Workers, len(inst.Capacity))
	}
	return nil
}

// Parse разбирает входной файл GAP: число программистов, число модулей,
// матрица стоимостей, матрица нагрузок, вектор доступных часов.
func Parse(lines []string) (*Instance, error) {
	if len(lines) < 2 {
		return nil, errors.New("слишком короткий входной файл")
	}
	workers, err := runio.Int(lines[0])
	if err != nil {
		return nil, err
	}
	tasks, err := runio.Int(lines[1])
	if err != nil {
		return nil, err
	}
	if len(lines) < 2+2*workers+1 {
		return nil, fmt.Errorf("ожидалось %d строк входа (получено %d)", 2+2*workers+1, len(lines))
	}

	idx := 2
	readMatrix := func() ([][]int, error) {
		m := make([][]int, 0, workers)
		for w := 0; w < workers; w++ {
			row, err := runio.Ints(lines[idx])
			if err != nil {
				return nil, fmt.Errorf("строка %d: %w", idx+1, err)
			}
			m = append(m, row)
			idx++
		}
		return m, nil
	}

	cost, err := readMatrix()
	if err != nil {
		return nil, err
	}
	load, err := readMatrix()
	if err != nil {
		return nil, err
	}
	capacity, err := runio.Ints(lines[idx])
	if err != nil {
		return nil, err
	}

	return NewInstance(workers, tasks, cost, load, capacity)
}

// Problem — представление решения как вектора назначений:
// assignment[t] = программист, которому отдан модуль t.
type Problem struct {
	inst *Instance
}

func NewProblem(inst *Instance) (*Problem, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Problem{inst: inst}, nil
}

// Initial — жадное начальное решение: каждый модуль отдаётся самому
// дешёвому программисту, у которого остались часы. Если часов нет ни у
// кого, модуль назначается случайно и будет оштрафован оценщиком.
func (p *Problem) Initial(rng *rand.Rand) []int {
	assignment := make([]int, p.inst.Tasks)
	used := make([]int, p.inst.Workers)

	for t := 0; t < p.inst.Tasks; t++ {
		best := -1
		bestCost := 0
		for w := 0; w < p.inst.Workers; w++ {
			if used[w]+p.inst.Load[w][t] > p.inst.Capacity[w] {
				continue
			}
			if best == -1 || p.inst.Cost[w][t] < bestCost {
				best = w
				bestCost = p.inst.Cost[w][t]
			}
		}
		if best == -1 {
			best = rng.Intn(p.inst.Workers)
		}
		assignment[t] = best
		used[best] += p.inst.Load[best][t]
	}
	return assignment
}

// Cost — штрафованная стоимость: к сумме стоимостей назначений
// добавляется overloadPenalty за каждый час превышения нагрузки.
func (p *Problem) Cost(assignment []int) float64 {
	cost, feasible := p.Evaluate(assignment)
	if feasible {
		return float64(cost)
	}

	used := make([]int, p.inst.Workers)
	for t, w := range assignment {
		used[w] += p.inst.Load[w][t]
	}
	excess := 0
	for w := 0; w < p.inst.Workers; w++ {
		if used[w] > p.inst.Capacity[w] {
			excess += used[w] - p.inst.Capacity[w]
		}
	}
	return float64(cost) + overloadPenalty*float64(excess)
}

// Evaluate возвращает чистую стоимость назначения и признак того,
// что ограничения по часам соблюдены.
func (p *Problem) Evaluate(assignment []int) (int, bool) {
	cost := 0
	used := make([]int, p.inst.Workers)
	for t, w := range assignment {
		cost += p.inst.Cost[w][t]
		used[w] += p.inst.Load[w][t]
	}
	for w := 0; w < p.inst.Workers; w++ {
		if used[w] > p.inst.Capacity[w] {
			return cost, false
		}
	}
	return cost, true
}

// Neighbor переназначает один случайный модуль другому программисту.
func (p *Problem) Neighbor(assignment []int, rng *rand.Rand) []int {
	out := make([]int, len(assignment))
	copy(out, assignment)

	t := rng.Intn(p.inst.Tasks)
	out[t] = rng.Intn(p.inst.Workers)
	return out
}

func (p *Problem) ValidateCandidate(assignment []int) error {
	if len(assignment) != p.inst.Tasks {
		return fmt.Errorf("assignment length must be %d (got %d)", p.inst.Tasks, len(assignment))
	}
	for t, w := range assignment {
		if w < 0 || w >= p.inst.Workers {
			return fmt.Errorf("assignment[%d]=%d out of range [0,%d)", t, w, p.inst.Workers)
		}
	}
	return nil
}

// DefaultConfig — калибровка имитации отжига для GAP.
func DefaultConfig() sa.Config {
	return sa.Config{
		Iterations:  5_000,
		InitialTemp: 500.0,
		FinalTemp:   0.1,
		Alpha:       0.99,
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
// модули, сгруппированные по программистам, и чистая стоимость.
func Format(assignment []int, cost, workers int) string {
	perWorker := make([][]int, workers)
	for t, w := range assignment {
		perWorker[w] = append(perWorker[w], t)
	}

	var b strings.Builder
	b.WriteString("Designação de módulos por programador:\n")
	for w := 0; w < workers; w++ {
		if len(perWorker[w]) == 0 {
			fmt.Fprintf(&b, "Programador %d: nenhum módulo\n", w)
			continue
		}
		tasks := lo.Map(perWorker[w], func(t int, _ int) string {
			return strconv.Itoa(t)
		})
		fmt.Fprintf(&b, "Programador %d: módulos %s\n", w, strings.Join(tasks, ", "))
	}
	fmt.Fprintf(&b, "\nCusto total: %d\n", cost)
	return b.String()
}
