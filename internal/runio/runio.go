// Пакет runio — чтение входных файлов задач и запись файлов результата.
// Имена выходных файлов следуют соглашению проекта:
// {номер}_{имя}{идентификатор}_{значение}_saida.txt
package runio

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Префиксы имён входных файлов; остаток имени — идентификатор экземпляра.
var instancePrefixes = []string{
	"Mochila",
	"Entrada ",
	"Entrada",
	"PDG",
	"PEU",
	"Circuito",
	"Rainhas",
}

// ReadLines читает текстовый файл и возвращает строки без краевых пробелов.
func ReadLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines, nil
}

// Ints разбирает строку целых, разделённых табуляцией или пробелами.
func Ints(line string) ([]int, error) {
	fields := strings.Fields(line)
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга целого %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Floats разбирает строку вещественных чисел.
// Запятая принимается как десятичный разделитель (формат входных файлов).
func Floats(line string) ([]float64, error) {
	fields := strings.Fields(line)
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(strings.ReplaceAll(f, ",", "."), 64)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга числа %q: %w", f, err)
		}
		out = append(out, v)
	}
	return out, nil
}

// Int разбирает одну строку как целое.
func Int(line string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("ошибка парсинга целого %q: %w", line, err)
	}
	return v, nil
}

// InstanceID извлекает идентификатор экземпляра из имени входного файла.
// Пример: "Mochila10.txt" -> "10".
func InstanceID(path string) string {
	name := filepath.Base(path)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	for _, prefix := range instancePrefixes {
		if strings.HasPrefix(name, prefix) {
			return strings.TrimSpace(name[len(prefix):])
		}
	}
	return name
}

// OutputName формирует имя выходного файла по соглашению проекта.
func OutputName(number int, name, instanceID string, value int) string {
	return fmt.Sprintf("%d_%s%s_%d_saida.txt", number, name, instanceID, value)
}

// WriteOutput записывает содержимое результата, создавая каталог при
// необходимости. Возвращает полный путь записанного файла.
func WriteOutput(dir, fileName, content string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ошибка создания каталога %s: %w", dir, err)
	}
	path := filepath.Join(dir, fileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("ошибка записи файла %s: %w", path, err)
	}
	return path, nil
}

// ListInputs возвращает отсортированные пути входных файлов каталога.
func ListInputs(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения каталога %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ext) {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
