package fuzztests

import (
	"path/filepath"
	"testing"

	"lev/internal/testkit"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

var builtinSeeds = []string{
	"",
	"fn main() -> i32:\n    return 0\n",
	"fn main() -> i32:\n    let mut x = 1\n    x += 2\n    return x\n",
	"fn f(a: i32, b: bool) -> i32:\n    if b:\n        return a\n    else if not b:\n        return -a\n    else:\n        return 0\n",
	"let s = \"unterminated\n",
	"let x = 1.2.3\n",
	"fn main() -> i32:\n\treturn 1\n",
	"fn main() -> i32:\n        return 1\n    return 2\n",
	"fn main() -> i32:\n    return ((((1))))\n",
	"fn main() -> i32: # comment\n    return 1 # trailing\n",
	"fn f() -> i32:\n    while true:\n        break\n",
	"x = = =\n",
	"fn main() -> u8:\n    return 255 + 1\n",
	"fn main() -> i8:\n    return -128 / -1\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addGoldenSeeds(f)
}

// addGoldenSeeds добавляет программы из markdown-кейсов.
func addGoldenSeeds(f *testing.F) {
	files, err := filepath.Glob(filepath.Join("..", "..", "testdata", "*.md"))
	if err != nil {
		return
	}
	for _, file := range files {
		cases, err := testkit.LoadFile(file)
		if err != nil {
			continue
		}
		for _, tc := range cases {
			f.Add(clamp([]byte(tc.Program), maxSeedBytes))
		}
	}
}

func clamp(src []byte, limit int) []byte {
	if len(src) <= limit {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:limit]...)
}
