package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Highlight feature flags.
const (
	HighlightNumbers = 1 << iota
	HighlightStrings
)

// Pattern is a line-anchored regex painted once at row start.
type Pattern struct {
	Regex string `toml:"regex"`
	Class string `toml:"class"`
}

type Language struct {
	Name          string    `toml:"name"`
	FileTypes     []string  `toml:"file-types"`
	Keywords      []string  `toml:"keywords"`
	LineComment   string    `toml:"line-comment"`
	BlockComment  [2]string `toml:"block-comment"`
	Flags         int       `toml:"-"`
	FlagNames     []string  `toml:"flags"`
	Patterns      []Pattern `toml:"patterns"`
}

type Languages struct {
	Languages []Language `toml:"language"`
}

// Match finds the language whose file-types match the path.
// Entries starting with a dot match the extension exactly; others match
// when the base name contains them.
func (l Languages) Match(path string) *Language {
	base := strings.ToLower(filepath.Base(path))
	ext := strings.ToLower(filepath.Ext(base))
	for i := range l.Languages {
		lang := &l.Languages[i]
		for _, ft := range lang.FileTypes {
			ft = strings.ToLower(ft)
			if strings.HasPrefix(ft, ".") {
				if ft == ext {
					return lang
				}
			} else if strings.Contains(base, ft) {
				return lang
			}
		}
	}
	return nil
}

// DefaultLanguages covers C and Go out of the box. A trailing '|' on a
// keyword selects the type class.
func DefaultLanguages() Languages {
	return Languages{Languages: []Language{
		{
			Name:      "c",
			FileTypes: []string{".c", ".h", ".cpp"},
			Keywords: []string{
				"switch", "if", "while", "for", "break", "continue", "return",
				"else", "struct", "union", "typedef", "static", "enum", "class",
				"case", "sizeof", "const", "volatile",
				"int|", "long|", "double|", "float|", "char|", "unsigned|",
				"signed|", "void|", "bool|", "size_t|",
			},
			LineComment:  "//",
			BlockComment: [2]string{"/*", "*/"},
			Flags:        HighlightNumbers | HighlightStrings,
			Patterns: []Pattern{
				{Regex: `^\s*#\s*\w+`, Class: "keyword1"},
			},
		},
		{
			Name:      "go",
			FileTypes: []string{".go"},
			Keywords: []string{
				"package", "import", "func", "return", "if", "else", "for",
				"range", "switch", "case", "default", "break", "continue",
				"type", "var", "const", "defer", "go", "select", "chan",
				"struct|", "interface|", "map|", "string|", "int|", "int64|",
				"uint8|", "byte|", "rune|", "bool|", "error|", "float64|",
			},
			LineComment:  "//",
			BlockComment: [2]string{"/*", "*/"},
			Flags:        HighlightNumbers | HighlightStrings,
		},
	}}
}

// LoadLanguages merges languages.toml over the built-in registry.
// A language with a name already registered replaces the default.
func LoadLanguages() (Languages, error) {
	langs := DefaultLanguages()
	path, err := LanguagesPath()
	if err != nil {
		return langs, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return langs, nil
		}
		return langs, err
	}
	var loaded Languages
	if _, err := toml.Decode(string(data), &loaded); err != nil {
		return langs, err
	}
	for i := range loaded.Languages {
		lang := loaded.Languages[i]
		lang.Flags = flagsFromNames(lang.FlagNames)
		replaced := false
		for j := range langs.Languages {
			if langs.Languages[j].Name == lang.Name {
				langs.Languages[j] = lang
				replaced = true
				break
			}
		}
		if !replaced {
			langs.Languages = append(langs.Languages, lang)
		}
	}
	return langs, nil
}

func flagsFromNames(names []string) int {
	flags := 0
	for _, n := range names {
		switch strings.ToLower(n) {
		case "numbers":
			flags |= HighlightNumbers
		case "strings":
			flags |= HighlightStrings
		}
	}
	return flags
}

func LanguagesPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "languages.toml"), nil
}
