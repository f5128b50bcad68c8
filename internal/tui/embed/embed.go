package embed

import (
	"embed"
	"sync"
)

//go:embed usagetheme.json USAGE.md
var files embed.FS

// EmbeddedFiles holds the help assets baked into the binary, the glamour
// theme and the usage markdown it renders.
type EmbeddedFiles struct {
	UsageTheme []byte
	UsageFile  []byte
}

// EmbeddedFilesInstance panics on a missing asset, a bad embed must fail at
// startup rather than render an empty help view.
var EmbeddedFilesInstance = sync.OnceValue(func() *EmbeddedFiles {
	mustRead := func(name string) []byte {
		b, err := files.ReadFile(name)
		if err != nil {
			panic(err)
		}
		return b
	}
	return &EmbeddedFiles{
		UsageTheme: mustRead("usagetheme.json"),
		UsageFile:  mustRead("USAGE.md"),
	}
})
