// Команда solve — основной драйвер: выбирает задачу, обходит каталог
// входных файлов, запускает откалиброванный решатель для каждого
// экземпляра и записывает файлы результата по соглашению
// {номер}_{имя}{идентификатор}_{значение}_saida.txt.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"

	"npopt/internal/params"
	"npopt/internal/problems/assign"
	"npopt/internal/problems/binpack"
	"npopt/internal/problems/circuit"
	"npopt/internal/problems/knapsack"
	"npopt/internal/problems/queens"
	"npopt/internal/problems/route"
	"npopt/internal/runio"
)

// processFunc решает один экземпляр и возвращает имя выходного файла,
// его содержимое и поля для журнала.
type processFunc func(ctx context.Context, lines []string, id string, pf *params.File, rng *rand.Rand) (string, string, []zap.Field, error)

func main() {
	var (
		problem    = flag.String("problem", "", "задача: mochila|tsp|pdg|peu|circuito|rainhas (или номер 1-6)")
		inputDir   = flag.String("input", "entradas", "каталог входных файлов")
		outDir     = flag.String("out", "saidas", "каталог выходных файлов")
		paramsPath = flag.String("params", "", "путь к YAML-файлу калибровки (необязательно)")
		baseSeed   = flag.Int64("seed", 1000, "базовый сид генератора случайных чисел")
	)
	flag.Parse()

	logCfg := zap.NewDevelopmentConfig()
	logCfg.DisableStacktrace = true
	logger, err := logCfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Ошибка инициализации журнала:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	process, ok := processors()[*problem]
	if !ok {
		logger.Error("неизвестная задача",
			zap.String("problem", *problem),
			zap.Strings("available", []string{"mochila", "tsp", "pdg", "peu", "circuito", "rainhas"}),
		)
		os.Exit(2)
	}

	pf, err := params.Load(*paramsPath)
	if err != nil {
		logger.Error("ошибка загрузки калибровки", zap.Error(err))
		os.Exit(2)
	}

	files, err := runio.ListInputs(*inputDir, ".txt")
	if err != nil {
		logger.Error("ошибка чтения каталога входных файлов", zap.Error(err))
		os.Exit(1)
	}
	if len(files) == 0 {
		logger.Warn("входные файлы не найдены", zap.String("dir", *inputDir))
		return
	}
	logger.Info("найдены входные файлы", zap.Int("count", len(files)))

	ctx := context.Background()
	for i, file := range files {
		id := runio.InstanceID(file)
		lines, err := runio.ReadLines(file)
		if err != nil {
			logger.Error("ошибка чтения входного файла", zap.String("file", file), zap.Error(err))
			os.Exit(1)
		}

		rng := rand.New(rand.NewSource(*baseSeed + int64(i)))
		outName, content, fields, err := process(ctx, lines, id, pf, rng)
		if err != nil {
			logger.Error("ошибка решения экземпляра", zap.String("file", file), zap.Error(err))
			os.Exit(1)
		}

		path, err := runio.WriteOutput(*outDir, outName, content)
		if err != nil {
			logger.Error("ошибка записи результата", zap.Error(err))
			os.Exit(1)
		}

		fields = append(fields, zap.String("instance", id), zap.String("output", path))
		logger.Info("экземпляр решён", fields...)
	}
}

func processors() map[string]processFunc {
	m := map[string]processFunc{
		"mochila":  processKnapsack,
		"tsp":      processRoute,
		"pdg":      processAssign,
		"peu":      processBinpack,
		"circuito": processCircuit,
		"rainhas":  processQueens,
	}
	// Номера задач как синонимы имён
	m["1"] = m["mochila"]
	m["2"] = m["tsp"]
	m["3"] = m["pdg"]
	m["4"] = m["peu"]
	m["5"] = m["circuito"]
	m["6"] = m["rainhas"]
	return m
}

func processKnapsack(ctx context.Context, lines []string, id string, pf *params.File, rng *rand.Rand) (string, string, []zap.Field, error) {
	inst, err := knapsack.Parse(lines)
	if err != nil {
		return "", "", nil, err
	}
	cfg, err := pf.GA(knapsack.Name, knapsack.DefaultConfig())
	if err != nil {
		return "", "", nil, err
	}
	res, err := knapsack.Solve(ctx, inst, cfg, rng)
	if err != nil {
		return "", "", nil, err
	}

	enc, err := knapsack.NewEncoding(inst)
	if err != nil {
		return "", "", nil, err
	}
	value := int(res.BestValue)
	fields := []zap.Field{
		zap.Int("value", value),
		zap.Int("weight", enc.Weight(res.Best)),
		zap.Int("capacity", inst.Capacity),
		zap.Int("evaluations", res.Evaluations),
		zap.Duration("duration", res.Duration),
	}
	return runio.OutputName(knapsack.Number, knapsack.Name, id, value), knapsack.Format(res.Best, value), fields, nil
}

func processRoute(ctx context.Context, lines []string, id string, pf *params.File, rng *rand.Rand) (string, string, []zap.Field, error) {
	inst, err := route.Parse(lines)
	if err != nil {
		return "", "", nil, err
	}
	cfg, err := pf.SA(route.Name, route.DefaultConfig())
	if err != nil {
		return "", "", nil, err
	}
	res, err := route.Solve(ctx, inst, cfg, rng)
	if err != nil {
		return "", "", nil, err
	}

	cost := int(res.BestValue)
	fields := []zap.Field{
		zap.Int("cost", cost),
		zap.Int("vertices", inst.N),
		zap.Int("evaluations", res.Evaluations),
		zap.Duration("duration", res.Duration),
	}
	return runio.OutputName(route.Number, route.Name, id, cost), route.Format(res.Best, cost), fields, nil
}

func processAssign(ctx context.Context, lines []string, id string, pf *params.File, rng *rand.Rand) (string, string, []zap.Field, error) {
	inst, err := assign.Parse(lines)
	if err != nil {
		return "", "", nil, err
	}
	cfg, err := pf.SA(assign.Name, assign.DefaultConfig())
	if err != nil {
		return "", "", nil, err
	}
	res, err := assign.Solve(ctx, inst, cfg, rng)
	if err != nil {
		return "", "", nil, err
	}

	prob, err := assign.NewProblem(inst)
	if err != nil {
		return "", "", nil, err
	}
	// В имени файла и в отчёте — чистая стоимость, без штрафа
	cost, feasible := prob.Evaluate(res.Best)
	fields := []zap.Field{
		zap.Int("cost", cost),
		zap.Bool("feasible", feasible),
		zap.Int("evaluations", res.Evaluations),
		zap.Duration("duration", res.Duration),
	}
	return runio.OutputName(assign.Number, assign.Name, id, cost), assign.Format(res.Best, cost, inst.Workers), fields, nil
}

func processBinpack(_ context.Context, lines []string, id string, _ *params.File, _ *rand.Rand) (string, string, []zap.Field, error) {
	inst, err := binpack.Parse(lines)
	if err != nil {
		return "", "", nil, err
	}
	bins, err := binpack.Solve(inst)
	if err != nil {
		return "", "", nil, err
	}

	fields := []zap.Field{
		zap.Int("bins", len(bins)),
		zap.Int("items", len(inst.Sizes)),
	}
	return runio.OutputName(binpack.Number, binpack.Name, id, len(bins)), binpack.Format(inst, bins), fields, nil
}

func processCircuit(ctx context.Context, lines []string, id string, pf *params.File, rng *rand.Rand) (string, string, []zap.Field, error) {
	inst, err := circuit.Parse(lines)
	if err != nil {
		return "", "", nil, err
	}
	cfg, err := pf.SA(circuit.Name, circuit.DefaultConfig())
	if err != nil {
		return "", "", nil, err
	}
	res, err := circuit.Solve(ctx, inst, cfg, rng)
	if err != nil {
		return "", "", nil, err
	}

	prob, err := circuit.NewProblem(inst)
	if err != nil {
		return "", "", nil, err
	}
	cost, feasible := prob.Evaluate(res.Best)
	fields := []zap.Field{
		zap.Float64("cost", cost),
		zap.Bool("feasible", feasible),
		zap.Int("connections", len(res.Best)),
		zap.Duration("duration", res.Duration),
	}
	return runio.OutputName(circuit.Number, circuit.Name, id, int(cost)), circuit.Format(res.Best, cost), fields, nil
}

func processQueens(ctx context.Context, lines []string, id string, pf *params.File, rng *rand.Rand) (string, string, []zap.Field, error) {
	inst, err := queens.Parse(lines)
	if err != nil {
		return "", "", nil, err
	}
	cfg, err := pf.SA(queens.Name, queens.DefaultConfig())
	if err != nil {
		return "", "", nil, err
	}
	res, err := queens.Solve(ctx, inst, cfg, rng)
	if err != nil {
		return "", "", nil, err
	}

	conflicts := int(res.BestValue)
	fields := []zap.Field{
		zap.Int("conflicts", conflicts),
		zap.Int("n", inst.N),
		zap.Int("iterations", res.Steps),
		zap.Duration("duration", res.Duration),
	}
	return runio.OutputName(queens.Number, queens.Name, id, conflicts), queens.Format(res.Best, inst.N), fields, nil
}
