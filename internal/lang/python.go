package lang

import (
	"github.com/smacker/go-tree-sitter/python"
)

// Python is the only language pystyle checks.
const Python = "python"

func init() {
	Languages[Python] = &Language{
		Name:       Python,
		Extensions: []string{".py"},
		lang:       python.GetLanguage(),
	}
}
