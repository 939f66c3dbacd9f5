// Package theme holds the 24-bit color palettes used by the renderer.
// Themes are TOML files in the config directory; built-in palettes are
// always registered so the editor works with no files installed.
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/castlight/quill/internal/config"
)

// RGB is a 24-bit terminal color.
type RGB struct {
	R, G, B uint8
}

// Palette slots addressed by the renderer.
type Slot int

const (
	UIBackground Slot = iota
	UIForeground
	StatusBackground
	StatusForeground
	MessageForeground
	LineNumber
	LineNumberActive
	SelectionBackground
	MenuBackground
	MenuForeground
	MenuSelectedBackground
	SyntaxNormal
	SyntaxComment
	SyntaxKeyword1
	SyntaxKeyword2
	SyntaxString
	SyntaxNumber
	SyntaxMatch
	slotCount
)

var slotNames = map[string]Slot{
	"ui-background":            UIBackground,
	"ui-foreground":            UIForeground,
	"status-background":        StatusBackground,
	"status-foreground":        StatusForeground,
	"message-foreground":       MessageForeground,
	"line-number":              LineNumber,
	"line-number-active":       LineNumberActive,
	"selection-background":     SelectionBackground,
	"menu-background":          MenuBackground,
	"menu-foreground":          MenuForeground,
	"menu-selected-background": MenuSelectedBackground,
	"syntax-normal":            SyntaxNormal,
	"syntax-comment":           SyntaxComment,
	"syntax-keyword1":          SyntaxKeyword1,
	"syntax-keyword2":          SyntaxKeyword2,
	"syntax-string":            SyntaxString,
	"syntax-number":            SyntaxNumber,
	"syntax-match":             SyntaxMatch,
}

// Theme is one named palette.
type Theme struct {
	Name   string
	Colors [slotCount]RGB
}

// Registry is the loaded theme set plus the active selection.
type Registry struct {
	themes []Theme
	active int
}

func monochromeDark() Theme {
	t := Theme{Name: "monochrome-dark"}
	set := func(s Slot, hex string) { t.Colors[s] = mustHex(hex) }
	set(UIBackground, "#101014")
	set(UIForeground, "#c8c8c2")
	set(StatusBackground, "#26262e")
	set(StatusForeground, "#c8c8c2")
	set(MessageForeground, "#a0a0a0")
	set(LineNumber, "#4c4c55")
	set(LineNumberActive, "#c8c8c2")
	set(SelectionBackground, "#30405a")
	set(MenuBackground, "#26262e")
	set(MenuForeground, "#c8c8c2")
	set(MenuSelectedBackground, "#44445a")
	set(SyntaxNormal, "#c8c8c2")
	set(SyntaxComment, "#6a737d")
	set(SyntaxKeyword1, "#e0af68")
	set(SyntaxKeyword2, "#7dcfff")
	set(SyntaxString, "#9ece6a")
	set(SyntaxNumber, "#bb9af7")
	set(SyntaxMatch, "#ffd700")
	return t
}

func monochromeLight() Theme {
	t := monochromeDark()
	t.Name = "monochrome-light"
	t.Colors[UIBackground] = mustHex("#fafaf5")
	t.Colors[UIForeground] = mustHex("#24292e")
	t.Colors[StatusBackground] = mustHex("#e1e4e8")
	t.Colors[StatusForeground] = mustHex("#24292e")
	t.Colors[LineNumber] = mustHex("#babbbd")
	t.Colors[LineNumberActive] = mustHex("#24292e")
	t.Colors[SelectionBackground] = mustHex("#c8dcf0")
	t.Colors[MenuBackground] = mustHex("#e1e4e8")
	t.Colors[MenuForeground] = mustHex("#24292e")
	t.Colors[MenuSelectedBackground] = mustHex("#c0c4c8")
	t.Colors[SyntaxNormal] = mustHex("#24292e")
	t.Colors[SyntaxComment] = mustHex("#969b9f")
	return t
}

func mustHex(s string) RGB {
	c, err := parseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(s string) (RGB, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{R: r, G: g, B: b}, nil
}

// NewRegistry registers the built-in themes, then any *.toml themes in
// <config>/themes, and activates the named theme when present.
func NewRegistry(activeName string) *Registry {
	reg := &Registry{themes: []Theme{monochromeDark(), monochromeLight()}}
	if dir, err := config.ConfigDir(); err == nil {
		reg.loadDirectory(filepath.Join(dir, "themes"))
	}
	if i := reg.indexOf(activeName); i >= 0 {
		reg.active = i
	}
	return reg
}

type themeFile struct {
	Name   string            `toml:"name"`
	Colors map[string]string `toml:"colors"`
}

func (r *Registry) loadDirectory(dir string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		_ = r.LoadFile(filepath.Join(dir, e.Name()))
	}
}

// LoadFile parses one theme file and registers it. Unknown color keys are
// ignored and unset slots keep the first built-in palette's color; an
// unparsable value rejects the whole file with an error.
func (r *Registry) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var tf themeFile
	if _, err := toml.Decode(string(data), &tf); err != nil {
		return err
	}
	if tf.Name == "" {
		tf.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	}
	t := monochromeDark()
	t.Name = tf.Name
	for key, hex := range tf.Colors {
		slot, ok := slotNames[key]
		if !ok {
			continue
		}
		c, err := parseHex(hex)
		if err != nil {
			return fmt.Errorf("theme %s: %s: %w", tf.Name, key, err)
		}
		t.Colors[slot] = c
	}
	if i := r.indexOf(t.Name); i >= 0 {
		r.themes[i] = t
	} else {
		r.themes = append(r.themes, t)
	}
	return nil
}

func (r *Registry) indexOf(name string) int {
	for i := range r.themes {
		if r.themes[i].Name == name {
			return i
		}
	}
	return -1
}

// Color returns the active theme's color for a slot.
func (r *Registry) Color(s Slot) RGB {
	return r.themes[r.active].Colors[s]
}

// Name returns the active theme's name.
func (r *Registry) Name() string {
	return r.themes[r.active].Name
}

// Cycle activates the next registered theme and returns its name.
func (r *Registry) Cycle() string {
	r.active = (r.active + 1) % len(r.themes)
	return r.Name()
}
