package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
)

var inlineSeeds = []string{
	"",
	"plain text",
	"{{}}",
	"a{0}b",
	"{}{}",
	"{0}{}",
	"{}{0}",
	"{name!r:>10}",
	"{0[key][2]}",
	"{foo.bar}",
	"{0[}",
	"{0!",
	"{",
	"}",
	"{0:{1}}",
	"{[0]}",
	"{0[a]b}",
	"{99999999999999999999}",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add(s)
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.tmpl файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error { //nolint:errcheck
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tmpl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(string(src)))
		return nil
	})
}

func clampSeed(src string) string {
	if len(src) <= maxSeedBytes {
		return src
	}
	return src[:maxSeedBytes]
}
