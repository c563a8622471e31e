package ga

import "fmt"

type Config struct {
	Population int `mapstructure:"population"`
	// Generations >= 0; при 0 возвращается лучшая особь
	// начальной популяции, операторы не вызываются.
	Generations    int     `mapstructure:"generations"`
	TournamentSize int     `mapstructure:"tournament_size"`
	CrossoverRate  float64 `mapstructure:"crossover_rate"`
	MutationRate   float64 `mapstructure:"mutation_rate"`

	// ReportEvery — шаг записи истории в поколениях (0 => каждое).
	ReportEvery int `mapstructure:"report_every"`

	// ValidateCandidates включает проверку каждого потомка через
	// CandidateValidator. Используется в тестах операторов.
	ValidateCandidates bool `mapstructure:"validate_candidates"`
}

func DefaultConfig() Config {
	return Config{
		Population:     100,
		Generations:    500,
		TournamentSize: 5,
		CrossoverRate:  0.90,
		MutationRate:   0.01,
	}
}

func (c Config) Validate() error {
	if c.Population < 2 {
		return fmt.Errorf(
			"размер популяции должен быть >= 2 (получено %d)",
			c.Population,
		)
	}
	if c.Generations < 0 {
		return fmt.Errorf(
			"количество поколений должно быть >= 0 (получено %d)",
			c.Generations,
		)
	}
	if c.TournamentSize <= 0 {
		return fmt.Errorf(
			"размер турнира должен быть > 0 (получено %d)",
			c.TournamentSize,
		)
	}
	if c.TournamentSize > c.Population {
		return fmt.Errorf(
			"размер турнира не должен превышать размер популяции (получено %d > %d)",
			c.TournamentSize,
			c.Population,
		)
	}
	if c.CrossoverRate < 0 || c.CrossoverRate > 1 {
		return fmt.Errorf(
			"вероятность кроссовера должна быть в диапазоне [0,1] (получено %f)",
			c.CrossoverRate,
		)
	}
	if c.MutationRate < 0 || c.MutationRate > 1 {
		return fmt.Errorf(
			"вероятность мутации должна быть в диапазоне [0,1] (получено %f)",
			c.MutationRate,
		)
	}
	if c.ReportEvery < 0 {
		return fmt.Errorf(
			"ReportEvery должно быть >= 0 (получено %d)",
			c.ReportEvery,
		)
	}
	return nil
}
