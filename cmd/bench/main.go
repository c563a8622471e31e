// Команда bench — серия запусков решателя над одним экземпляром задачи
// с разными сидами; агрегированная статистика значений и времени
// сохраняется в CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"npopt/internal/bench"
	"npopt/internal/ga"
	"npopt/internal/params"
	"npopt/internal/problems/assign"
	"npopt/internal/problems/circuit"
	"npopt/internal/problems/knapsack"
	"npopt/internal/problems/queens"
	"npopt/internal/problems/route"
	"npopt/internal/runio"
	"npopt/internal/sa"
)

// engineOverrides — переопределение калибровки движков из флагов.
// Значения-сигналы (см. описания флагов) оставляют калибровку задачи.
type engineOverrides struct {
	saIter  int
	saT0    float64
	saTmin  float64
	saAlpha float64

	gaPop  int
	gaGen  int
	gaTour int
	gaCx   float64
	gaMut  float64
}

func (o engineOverrides) applySA(cfg sa.Config) (sa.Config, error) {
	if o.saIter >= 0 {
		cfg.Iterations = o.saIter
	}
	if o.saT0 > 0 {
		cfg.InitialTemp = o.saT0
	}
	if o.saTmin >= 0 {
		cfg.FinalTemp = o.saTmin
	}
	if o.saAlpha > 0 {
		cfg.Alpha = o.saAlpha
	}
	return cfg, cfg.Validate()
}

func (o engineOverrides) applyGA(cfg ga.Config) (ga.Config, error) {
	if o.gaPop > 0 {
		cfg.Population = o.gaPop
	}
	if o.gaGen >= 0 {
		cfg.Generations = o.gaGen
	}
	if o.gaTour > 0 {
		cfg.TournamentSize = o.gaTour
	}
	if o.gaCx >= 0 {
		cfg.CrossoverRate = o.gaCx
	}
	if o.gaMut >= 0 {
		cfg.MutationRate = o.gaMut
	}
	return cfg, cfg.Validate()
}

func main() {
	var (
		out      = flag.String("out", "artifacts/results.csv", "путь к выходному CSV-файлу")
		problems = flag.String("problems", "mochila", "список задач: mochila, tsp, pdg, circuito, rainhas (через запятую)")
		input    = flag.String("input", "", "путь к входному файлу экземпляра")
		paramsP  = flag.String("params", "", "путь к YAML-файлу калибровки (необязательно)")
		runs     = flag.Int("runs", 30, "количество запусков каждого решателя (с разными сидами)")
		baseSeed = flag.Int64("seed", 1000, "базовый сид для запусков решателей")
		perRunTO = flag.Duration("per_run_timeout", 0, "таймаут одного запуска; 0 — без ограничения")

		// --- Имитация отжига ---
		saIter  = flag.Int("sa_iter", -1, "бюджет итераций (<0 — калибровка задачи)")
		saT0    = flag.Float64("sa_t0", 0, "начальная температура (<=0 — калибровка задачи)")
		saTmin  = flag.Float64("sa_tmin", -1, "конечная температура (<0 — калибровка задачи; 0 — без нижнего порога)")
		saAlpha = flag.Float64("sa_alpha", 0, "коэффициент охлаждения (<=0 — калибровка задачи)")

		// --- Генетический алгоритм ---
		gaPop  = flag.Int("ga_pop", 0, "размер популяции (<=0 — калибровка задачи)")
		gaGen  = flag.Int("ga_gen", -1, "количество поколений (<0 — калибровка задачи)")
		gaTour = flag.Int("ga_tour", 0, "размер турнира (<=0 — калибровка задачи)")
		gaCx   = flag.Float64("ga_cx", -1, "вероятность кроссовера (<0 — калибровка задачи)")
		gaMut  = flag.Float64("ga_mut", -1, "вероятность мутации (<0 — калибровка задачи)")
	)
	flag.Parse()

	overrides := engineOverrides{
		saIter:  *saIter,
		saT0:    *saT0,
		saTmin:  *saTmin,
		saAlpha: *saAlpha,

		gaPop:  *gaPop,
		gaGen:  *gaGen,
		gaTour: *gaTour,
		gaCx:   *gaCx,
		gaMut:  *gaMut,
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Конфликт: не задан входной файл экземпляра (-input)")
		os.Exit(2)
	}

	lines, err := runio.ReadLines(*input)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(1)
	}
	instance := runio.InstanceID(*input)

	pf, err := params.Load(*paramsP)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка:", err)
		os.Exit(2)
	}

	runner := bench.Runner{
		Runs:          *runs,
		BaseSeed:      *baseSeed,
		PerRunTimeout: *perRunTO,
	}

	ctx := context.Background()
	var records []bench.Record
	for _, name := range splitCSV(*problems) {
		algo, err := buildAlgorithm(name, lines, pf, overrides)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Конфликт:", err)
			os.Exit(2)
		}

		fmt.Printf("Запущен решатель %s; экземпляр %s (общее кол-во запусков=%d)...\n", algo.Name, instance, runner.Runs)

		rec, err := runner.RunCase(ctx, instance, algo)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Ошибка:", err)
			os.Exit(1)
		}
		records = append(records, rec)

		fmt.Printf("  Значение целевой функции: лучшее=%.2f среднее=%.2f стандартное отклонение=%.2f | Время: среднее=%.2fms стандартное отклонение=%.2fms\n",
			rec.ValueBest, rec.ValueMean, rec.ValueStd,
			rec.TimeMeanMs, rec.TimeStdMs,
		)
	}

	if err := bench.WriteCSV(*out, records); err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка при записи в CSV:", err)
		os.Exit(1)
	}
	fmt.Println("Saved:", *out)
}

// buildAlgorithm строит замыкание одного запуска решателя над уже
// разобранным экземпляром. Калибровка задачи накладывается из YAML,
// затем из флагов движков. Упаковка (peu) детерминированна и серийным
// запускам не подлежит, поэтому здесь отсутствует.
func buildAlgorithm(name string, lines []string, pf *params.File, ov engineOverrides) (bench.Algorithm, error) {
	switch name {
	case "mochila":
		inst, err := knapsack.Parse(lines)
		if err != nil {
			return bench.Algorithm{}, err
		}
		cfg, err := pf.GA(knapsack.Name, knapsack.DefaultConfig())
		if err != nil {
			return bench.Algorithm{}, err
		}
		if cfg, err = ov.applyGA(cfg); err != nil {
			return bench.Algorithm{}, fmt.Errorf("конфликт в конфигурации генетического алгоритма: %w", err)
		}
		return bench.Algorithm{
			Name:     "GA/mochila",
			Maximize: true,
			Run: func(ctx context.Context, seed int64) (float64, error) {
				res, err := knapsack.Solve(ctx, inst, cfg, rand.New(rand.NewSource(seed)))
				return res.BestValue, err
			},
		}, nil

	case "tsp":
		inst, err := route.Parse(lines)
		if err != nil {
			return bench.Algorithm{}, err
		}
		cfg, err := pf.SA(route.Name, route.DefaultConfig())
		if err != nil {
			return bench.Algorithm{}, err
		}
		if cfg, err = ov.applySA(cfg); err != nil {
			return bench.Algorithm{}, fmt.Errorf("конфликт в конфигурации алгоритма имитации отжига: %w", err)
		}
		return bench.Algorithm{
			Name: "SA/tsp",
			Run: func(ctx context.Context, seed int64) (float64, error) {
				res, err := route.Solve(ctx, inst, cfg, rand.New(rand.NewSource(seed)))
				return res.BestValue, err
			},
		}, nil

	case "pdg":
		inst, err := assign.Parse(lines)
		if err != nil {
			return bench.Algorithm{}, err
		}
		cfg, err := pf.SA(assign.Name, assign.DefaultConfig())
		if err != nil {
			return bench.Algorithm{}, err
		}
		if cfg, err = ov.applySA(cfg); err != nil {
			return bench.Algorithm{}, fmt.Errorf("конфликт в конфигурации алгоритма имитации отжига: %w", err)
		}
		return bench.Algorithm{
			Name: "SA/pdg",
			Run: func(ctx context.Context, seed int64) (float64, error) {
				res, err := assign.Solve(ctx, inst, cfg, rand.New(rand.NewSource(seed)))
				return res.BestValue, err
			},
		}, nil

	case "circuito":
		inst, err := circuit.Parse(lines)
		if err != nil {
			return bench.Algorithm{}, err
		}
		cfg, err := pf.SA(circuit.Name, circuit.DefaultConfig())
		if err != nil {
			return bench.Algorithm{}, err
		}
		if cfg, err = ov.applySA(cfg); err != nil {
			return bench.Algorithm{}, fmt.Errorf("конфликт в конфигурации алгоритма имитации отжига: %w", err)
		}
		return bench.Algorithm{
			Name: "SA/circuito",
			Run: func(ctx context.Context, seed int64) (float64, error) {
				res, err := circuit.Solve(ctx, inst, cfg, rand.New(rand.NewSource(seed)))
				return res.BestValue, err
			},
		}, nil

	case "rainhas":
		inst, err := queens.Parse(lines)
		if err != nil {
			return bench.Algorithm{}, err
		}
		cfg, err := pf.SA(queens.Name, queens.DefaultConfig())
		if err != nil {
			return bench.Algorithm{}, err
		}
		if cfg, err = ov.applySA(cfg); err != nil {
			return bench.Algorithm{}, fmt.Errorf("конфликт в конфигурации алгоритма имитации отжига: %w", err)
		}
		return bench.Algorithm{
			Name: "SA/rainhas",
			Run: func(ctx context.Context, seed int64) (float64, error) {
				res, err := queens.Solve(ctx, inst, cfg, rand.New(rand.NewSource(seed)))
				return res.BestValue, err
			},
		}, nil
	}

	return bench.Algorithm{}, fmt.Errorf("решатель не предоставлен в программе %q; доступные: mochila, tsp, pdg, circuito, rainhas", name)
}

func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
