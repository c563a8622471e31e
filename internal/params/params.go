// Пакет params — файл калибровки параметров решателей.
// YAML-файл содержит по секции на задачу; значения накладываются
// поверх встроенной калибровки соответствующего пакета задачи.
package params

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"

	"npopt/internal/ga"
	"npopt/internal/sa"
)

// File — разобранный файл калибровки.
type File struct {
	Problems map[string]map[string]any `yaml:"problems"`
}

// Load читает YAML-файл калибровки. Отсутствующий путь — не ошибка:
// возвращается пустой файл и действует встроенная калибровка.
func Load(path string) (*File, error) {
	if path == "" {
		return &File{}, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &File{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла калибровки %s: %w", path, err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла калибровки %s: %w", path, err)
	}
	return &f, nil
}

func decode(raw map[string]any, dst any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dst,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// SA накладывает секцию задачи problem на базовую конфигурацию отжига.
func (f *File) SA(problem string, base sa.Config) (sa.Config, error) {
	raw, ok := f.Problems[problem]
	if !ok {
		return base, nil
	}
	cfg := base
	if err := decode(raw, &cfg); err != nil {
		return sa.Config{}, fmt.Errorf("секция %q: %w", problem, err)
	}
	if err := cfg.Validate(); err != nil {
		return sa.Config{}, fmt.Errorf("секция %q: %w", problem, err)
	}
	return cfg, nil
}

// GA накладывает секцию задачи problem на базовую конфигурацию
// генетического алгоритма.
func (f *File) GA(problem string, base ga.Config) (ga.Config, error) {
	raw, ok := f.Problems[problem]
	if !ok {
		return base, nil
	}
	cfg := base
	if err := decode(raw, &cfg); err != nil {
		return ga.Config{}, fmt.Errorf("секция %q: %w", problem, err)
	}
	if err := cfg.Validate(); err != nil {
		return ga.Config{}, fmt.Errorf("секция %q: %w", problem, err)
	}
	return cfg, nil
}
