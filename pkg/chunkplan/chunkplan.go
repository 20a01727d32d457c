// Package chunkplan детерминированно разбивает файл на части фиксированного
// размера. Повторный расчёт с теми же аргументами всегда даёт тот же план.
package chunkplan

import "fmt"

// DefaultChunkSize — номинальный размер части. Выбран так, чтобы укладываться
// в ограничения бэкенда на размер part'а и в лимит тела HTTP-запроса.
const DefaultChunkSize int64 = 4 << 20

// Chunk описывает одну часть: порядковый номер с единицы и полуинтервал
// байтов [Start, End).
type Chunk struct {
	Number int32
	Start  int64
	End    int64
}

// Size возвращает длину части в байтах.
func (c Chunk) Size() int64 {
	return c.End - c.Start
}

// Plan возвращает упорядоченный список частей для файла размера size.
// Все части ровно chunkSize, кроме последней, которая может быть короче.
// Пустой файл даёт ровно одну пустую часть — так завершение загрузки
// проходит по общему пути.
func Plan(size, chunkSize int64) ([]Chunk, error) {
	if size < 0 {
		return nil, fmt.Errorf("file size must be non-negative, got %d", size)
	}
	if chunkSize <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", chunkSize)
	}

	if size == 0 {
		return []Chunk{{Number: 1, Start: 0, End: 0}}, nil
	}

	total := Count(size, chunkSize)
	chunks := make([]Chunk, 0, total)
	for i := int64(0); i < total; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if end > size {
			end = size
		}
		chunks = append(chunks, Chunk{
			Number: int32(i + 1),
			Start:  start,
			End:    end,
		})
	}

	return chunks, nil
}

// Count считает число частей: ceil(size/chunkSize), минимум одна.
func Count(size, chunkSize int64) int64 {
	if size <= 0 || chunkSize <= 0 {
		return 1
	}
	return (size + chunkSize - 1) / chunkSize
}
