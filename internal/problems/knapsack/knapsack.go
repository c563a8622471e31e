// Пакет knapsack — задача о бинарном рюкзаке (0/1 knapsack),
// решаемая генетическим алгоритмом над битовым геномом.
package knapsack

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"npopt/internal/ga"
	"npopt/internal/opt"
	"npopt/internal/runio"
)

const (
	Number = 1
	Name   = "mochila"
)

type Instance struct {
	Capacity int
	Values   []int
	Weights  []int
}

func NewInstance(capacity int, values, weights []int) (*Instance, error) {
	inst := &Instance{Capacity: capacity, Values: values, Weights: weights}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.Capacity <= 0 {
		return fmt.Errorf("capacity must be > 0 (got %d)", inst.Capacity)
	}
	if len(inst.Values) == 0 {
		return errors.New("instance has no items")
	}
	if len(inst.Values) != len(inst.Weights) {
		return fmt.Errorf("values/weights length mismatch (%d vs %d)", len(inst.Values), len(inst.Weights))
	}
	for i, w := range inst.Weights {
		if w < 0 {
			return fmt.Errorf("weights[%d] must be >= 0 (got %d)", i, w)
		}
	}
	return nil
}

func (inst *Instance) Items() int { return len(inst.Values) }

// Parse разбирает входной файл задачи о рюкзаке:
// строка 1 — вместимость, строка 2 — ценности, строка 3 — веса.
func Parse(lines []string) (*Instance, error) {
	if len(lines) < 3 {
		return nil, fmt.Errorf("ожидалось минимум 3 строки входа (получено %d)", len(lines))
	}
	capacity, err := runio.Int(lines[0])
	if err != nil {
		return nil, err
	}
	values, err := runio.Ints(lines[1])
	if err != nil {
		return nil, err
	}
	weights, err := runio.Ints(lines[2])
	if err != nil {
		return nil, err
	}
	return NewInstance(capacity, values, weights)
}

// Encoding — битовая кодировка: genome[i] == 1, если предмет i выбран.
type Encoding struct {
	inst *Instance
}

func NewEncoding(inst *Instance) (*Encoding, error) {
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return &Encoding{inst: inst}, nil
}

func (e *Encoding) Random(rng *rand.Rand) []int {
	g := make([]int, e.inst.Items())
	for i := range g {
		g[i] = rng.Intn(2)
	}
	return g
}

// Fitness — суммарная ценность выбранных предметов.
// Превышение вместимости обнуляет приспособленность (штраф).
func (e *Encoding) Fitness(g []int) float64 {
	value, weight := 0, 0
	for i, bit := range g {
		if bit == 1 {
			value += e.inst.Values[i]
			weight += e.inst.Weights[i]
		}
	}
	if weight > e.inst.Capacity {
		return 0
	}
	return float64(value)
}

// Weight возвращает суммарный вес выбранных предметов.
func (e *Encoding) Weight(g []int) int {
	weight := 0
	for i, bit := range g {
		if bit == 1 {
			weight += e.inst.Weights[i]
		}
	}
	return weight
}

// Crossover — одноточечный кроссовер: точка разреза в [1, n-1].
// Для генома из одного бита точки разреза не существует,
// потомки — копии родителей.
func (e *Encoding) Crossover(a, b []int, rng *rand.Rand) ([]int, []int) {
	n := len(a)
	if n < 2 {
		c1 := append([]int(nil), a...)
		c2 := append([]int(nil), b...)
		return c1, c2
	}
	cut := 1 + rng.Intn(n-1)

	c1 := make([]int, n)
	c2 := make([]int, n)
	copy(c1[:cut], a[:cut])
	copy(c1[cut:], b[cut:])
	copy(c2[:cut], b[:cut])
	copy(c2[cut:], a[cut:])
	return c1, c2
}

// Mutate — побитовая мутация: каждый бит инвертируется с вероятностью rate.
func (e *Encoding) Mutate(g []int, rate float64, rng *rand.Rand) []int {
	out := make([]int, len(g))
	copy(out, g)
	for i := range out {
		if rng.Float64() < rate {
			out[i] = 1 - out[i]
		}
	}
	return out
}

func (e *Encoding) ValidateCandidate(g []int) error {
	if len(g) != e.inst.Items() {
		return fmt.Errorf("genome length must be %d (got %d)", e.inst.Items(), len(g))
	}
	for i, bit := range g {
		if bit != 0 && bit != 1 {
			return fmt.Errorf("genome[%d]=%d is not a bit", i, bit)
		}
	}
	return nil
}

// DefaultConfig — калибровка генетического алгоритма для задачи о рюкзаке.
func DefaultConfig() ga.Config {
	return ga.Config{
		Population:     100,
		Generations:    500,
		TournamentSize: 5,
		CrossoverRate:  1.0,
		MutationRate:   0.01,
	}
}

// Solve запускает генетический алгоритм над экземпляром задачи.
func Solve(ctx context.Context, inst *Instance, cfg ga.Config, rng *rand.Rand) (opt.Result[[]int], error) {
	enc, err := NewEncoding(inst)
	if err != nil {
		return opt.Result[[]int]{}, err
	}
	solver, err := ga.New[[]int](cfg, rng)
	if err != nil {
		return opt.Result[[]int]{}, err
	}
	return solver.Solve(ctx, enc)
}

// Format формирует содержимое выходного файла.
func Format(g []int, fitness int) string {
	selected := lo.FilterMap(g, func(bit int, i int) (string, bool) {
		return strconv.Itoa(i), bit == 1
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Itens selecionados: %s\n", strings.Join(selected, ", "))
	fmt.Fprintf(&b, "Valor total: %d\n", fitness)
	return b.String()
}
