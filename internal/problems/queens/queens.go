// Пакет queens — задача n ферзей, решаемая имитацией отжига.
// Представление: rows[col] — строка ферзя в столбце col;
// целевая функция — число атакующих друг друга пар.
package queens

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"npopt/internal/opt"
	"npopt/internal/runio"
	"npopt/internal/sa"
)

const (
	Number = 6
	Name   = "rainhas"
)

type Instance struct {
	N int
	// Sizes присутствует во входном формате, но на поиск не влияет.
	Sizes []int
}

func NewInstance(n int, sizes []int) (*Instance, error) {
	inst := &Instance{N: n, Sizes: sizes}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

func (inst *Instance) Validate() error {
	if inst == nil {
		return errors.New("instance is nil")
	}
	if inst.N <= 0 {
		return fmt.Errorf("board size must be > 0 (got %d)", inst.N)
	}
	return nil
}

// Parse разбирает входной файл: размер доски и строка размеров.
func Parse(lines []string) (*Instance, error) {
	if len(lines) < 1 {
		return nil, errors.New("пустой входной файл")
	}
	n, err := runio.Int(lines[0])
	if err != nil {
		return nil, err
	}
	var sizes []int
	if len(lines) > 1 && lines[1] != "" {
		sizes, err = runio.Ints(lines[1])
		if err != nil {
			return nil, err
		}
	}
	return NewInstance(n, sizes)
}

// Conflicts возвращает число пар ферзей, атакующих друг друга
// (общая строка или общая диагональ; столбцы различны по построению).
func Conflicts(rows []int) int {
	conflicts := 0
	for i := 0; i < len(rows); i++ {
		for j := i + 1; j < len(rows); j++ {
			if rows[i] == rows[j] {
				conflicts++
			} else if abs(rows[i]-rows[j]) == j-i {
				conflicts++
			}
		}
	}
	return conflicts
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Problem — представление доски вектором строк по столбцам.
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
	rows := make([]int, p.inst.N)
	for i := range rows {
		rows[i] = rng.Intn(p.inst.N)
	}
	return rows
}

func (p *Problem) Cost(rows []int) float64 {
	return float64(Conflicts(rows))
}

// Neighbor перемещает ферзя случайного столбца на случайную строку.
func (p *Problem) Neighbor(rows []int, rng *rand.Rand) []int {
	out := make([]int, len(rows))
	copy(out, rows)
	out[rng.Intn(p.inst.N)] = rng.Intn(p.inst.N)
	return out
}

func (p *Problem) ValidateCandidate(rows []int) error {
	if len(rows) != p.inst.N {
		return fmt.Errorf("rows length must be %d (got %d)", p.inst.N, len(rows))
	}
	for i, r := range rows {
		if r < 0 || r >= p.inst.N {
			return fmt.Errorf("rows[%d]=%d out of range [0,%d)", i, r, p.inst.N)
		}
	}
	return nil
}

// DefaultConfig — калибровка имитации отжига для n ферзей
// с ранним выходом при нуле конфликтов.
func DefaultConfig() sa.Config {
	return sa.Config{
		Iterations:   10_000,
		InitialTemp:  100.0,
		FinalTemp:    0.01,
		Alpha:        0.995,
		StopAtTarget: true,
		TargetCost:   0,
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
// координаты ферзей и текстовая доска.
func Format(rows []int, n int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Solução para %d-Rainhas:\n\n", n)

	b.WriteString("Posições (coluna, linha):\n")
	for col, row := range rows {
		fmt.Fprintf(&b, "  Rainha %d: (%d, %d)\n", col, col, row)
	}

	fmt.Fprintf(&b, "\nTabuleiro %dx%d:\n", n, n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			if rows[col] == row {
				b.WriteString("♛ ")
			} else {
				b.WriteString(". ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
