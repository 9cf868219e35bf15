// Package docblock renders structured documentation-comment blocks from
// nested table descriptions into a single /** ... */ comment string, aligning
// columns, word-wrapping the last column and applying indentation.
//
// Назначение: чистый табличный layout-движок для doc-комментариев.
// Не делает: IO, парсинга исходников или конкурентного состояния.
// Зависимости: go-runewidth, x/text/unicode/norm.
package docblock
