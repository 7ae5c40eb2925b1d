// Package fuzztests houses Go fuzz harnesses for the format string engine.
// They guard against panics, hangs and broken token invariants on arbitrary
// inputs.
//
// Назначение: прогонять произвольные строки через лексер, разбор имён полей и
// рендерер.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/lexer, internal/fieldpath, internal/render,
// internal/testkit, internal/diag.
package fuzztests
