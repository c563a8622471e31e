package ga

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"npopt/internal/opt"
)

// Encoding — контракт кодировки особи для генетического алгоритма.
// Геном G — непрозрачное для движка значение. Все операторы обязаны
// возвращать новые значения и не изменять аргументы: движок свободно
// разделяет ссылки между родителями, потомками и элитой.
type Encoding[G any] interface {
	// Random возвращает одну случайную допустимую особь.
	Random(rng *rand.Rand) G
	// Fitness возвращает приспособленность (больше — лучше).
	// Штрафы за нарушение ограничений включаются здесь же.
	Fitness(g G) float64
	// Crossover — одноточечный (или иной согласованный с кодировкой)
	// кроссовер двух родителей, возвращает двух потомков.
	Crossover(a, b G, rng *rand.Rand) (G, G)
	// Mutate возмущает каждую позицию генома независимо
	// с вероятностью rate и возвращает новую особь.
	Mutate(g G, rate float64, rng *rand.Rand) G
}

// CandidateValidator — необязательное расширение Encoding:
// структурная проверка потомка. Движок вызывает её только при
// включённом Config.ValidateCandidates.
type CandidateValidator[G any] interface {
	ValidateCandidate(g G) error
}

// Solver — реализация генетического алгоритма.
type Solver[G any] struct {
	Cfg Config
	Rng *rand.Rand
}

// New возвращает новый GA-солвер с валидацией конфигурации, с использованием инициализированного генератора случайных чисел.
// Используется в фабриках.
func New[G any](cfg Config, rng *rand.Rand) (*Solver[G], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	return &Solver[G]{Cfg: cfg, Rng: rng}, nil
}

// Solve — реализация эвристики.
// Возвращаемая особь — элита: лучшая особь, встреченная за весь запуск.
// За счёт элитизма её приспособленность не убывает от поколения к поколению.
func (s *Solver[G]) Solve(ctx context.Context, enc Encoding[G]) (opt.Result[G], error) {
	start := time.Now()

	if err := s.Cfg.Validate(); err != nil {
		return opt.Result[G]{}, err
	}
	if s.Rng == nil {
		return opt.Result[G]{}, fmt.Errorf("генератор случайных чисел не инициализирован (nil)")
	}
	if enc == nil {
		return opt.Result[G]{}, fmt.Errorf("кодировка не задана (nil)")
	}

	validator, _ := enc.(CandidateValidator[G])

	popSize := s.Cfg.Population
	reportEvery := s.Cfg.ReportEvery
	if reportEvery <= 0 {
		reportEvery = 1
	}

	// Инициализация начальной популяции
	pop := make([]G, popSize)
	fits := make([]float64, popSize)
	for i := 0; i < popSize; i++ {
		pop[i] = enc.Random(s.Rng)
		fits[i] = enc.Fitness(pop[i])
	}
	evals := popSize

	// Элита: лучшая особь за весь запуск.
	// При равенстве остаётся первая встреченная.
	elite := pop[0]
	eliteFit := fits[0]
	for i := 1; i < popSize; i++ {
		if fits[i] > eliteFit {
			elite = pop[i]
			eliteFit = fits[i]
		}
	}

	history := []opt.HistoryPoint{{Step: 0, Best: eliteFit}}

	next := make([]G, popSize)
	nextFits := make([]float64, popSize)

	gen := 0
	for ; gen < s.Cfg.Generations; gen++ {
		// Для поддержки отмены через context
		if err := ctx.Err(); err != nil {
			res := result(elite, eliteFit, evals, gen, history, start)
			res.Meta["stopped"] = "context"
			return res, err
		}

		// Турнирный отбор: popSize родителей с возвращением
		parents := make([]int, popSize)
		for i := range parents {
			parents[i] = tournamentSelect(fits, s.Cfg.TournamentSize, s.Rng)
		}

		// Кроссовер последовательных пар и мутация потомков.
		// При нечётном размере популяции последний родитель
		// проходит только через мутацию.
		for i := 0; i < popSize; i += 2 {
			p1 := pop[parents[i]]
			c1 := p1
			var c2 G
			hasSecond := i+1 < popSize
			if hasSecond {
				p2 := pop[parents[i+1]]
				c2 = p2
				if s.Rng.Float64() < s.Cfg.CrossoverRate {
					c1, c2 = enc.Crossover(p1, p2, s.Rng)
				}
			}

			next[i] = enc.Mutate(c1, s.Cfg.MutationRate, s.Rng)
			if hasSecond {
				next[i+1] = enc.Mutate(c2, s.Cfg.MutationRate, s.Rng)
			}
		}

		if s.Cfg.ValidateCandidates && validator != nil {
			for i := range next {
				if err := validator.ValidateCandidate(next[i]); err != nil {
					return opt.Result[G]{}, fmt.Errorf("оператор вернул недопустимую особь: %w", err)
				}
			}
		}

		// Оценка нового поколения
		bestIdx, worstIdx := 0, 0
		for i := range next {
			nextFits[i] = enc.Fitness(next[i])
			evals++
			if nextFits[i] > nextFits[bestIdx] {
				bestIdx = i
			}
			if nextFits[i] < nextFits[worstIdx] {
				worstIdx = i
			}
		}

		// Элитизм: если элита строго лучше всего нового поколения,
		// она вытесняет худшую особь — лучшее решение не теряется.
		if eliteFit > nextFits[bestIdx] {
			next[worstIdx] = elite
			nextFits[worstIdx] = eliteFit
		} else if nextFits[bestIdx] > eliteFit {
			elite = next[bestIdx]
			eliteFit = nextFits[bestIdx]
		}

		// Смена поколений
		pop, next = next, pop
		fits, nextFits = nextFits, fits

		if (gen+1)%reportEvery == 0 {
			history = append(history, opt.HistoryPoint{Step: gen + 1, Best: eliteFit})
		}
	}

	res := result(elite, eliteFit, evals, gen, history, start)
	res.Meta["population"] = popSize
	res.Meta["generations"] = s.Cfg.Generations
	res.Meta["tournament"] = s.Cfg.TournamentSize
	return res, nil
}

// tournamentSelect реализует турнирный отбор.
// Возвращается индекс особи с наилучшей приспособленностью среди
// k случайно выбранных (с возвращением); при равенстве — первая встреченная.
func tournamentSelect(fits []float64, k int, rng *rand.Rand) int {
	best := rng.Intn(len(fits))
	bestFit := fits[best]
	for i := 1; i < k; i++ {
		cand := rng.Intn(len(fits))
		if fits[cand] > bestFit {
			best = cand
			bestFit = fits[cand]
		}
	}
	return best
}

func result[G any](best G, bestFit float64, evals, gens int, history []opt.HistoryPoint, start time.Time) opt.Result[G] {
	return opt.Result[G]{
		Best:        best,
		BestValue:   bestFit,
		Evaluations: evals,
		Steps:       gens,
		Duration:    time.Since(start),
		History:     history,
		Meta:        map[string]any{},
	}
}
