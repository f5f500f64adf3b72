package replay

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/nathanieltooley/gokemon-showdown/battle"
)

//go:embed replay.html.tmpl
var replayTemplate string

var page = template.Must(template.New("replay").Parse(replayTemplate))

type document struct {
	ID       string
	Tag      string
	Format   string
	Player   string
	Opponent string
	Result   string
	Log      string
}

func result(b battle.Battle) string {
	switch {
	case !b.Finished():
		return "unfinished"
	case b.Tied():
		return "tie"
	case b.Won():
		return b.Username() + " won"
	default:
		return b.OpponentUsername() + " won"
	}
}

// Write renders b as a standalone page that the Showdown replay viewer can play back.
func Write(w io.Writer, b battle.Battle) error {
	doc := document{
		ID:       uuid.NewString(),
		Tag:      b.Tag(),
		Format:   b.Format(),
		Player:   b.Username(),
		Opponent: b.OpponentUsername(),
		Result:   result(b),
		Log:      strings.Join(b.Log(), "\n"),
	}

	if err := page.Execute(w, doc); err != nil {
		return fmt.Errorf("rendering replay for %s: %w", b.Tag(), err)
	}
	return nil
}

// Save writes the replay of b to <dir>/<tag>.html and returns the path.
func Save(dir string, b battle.Battle) (string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", fmt.Errorf("creating replay dir: %w", err)
	}

	path := filepath.Join(dir, b.Tag()+".html")
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	if err := Write(file, b); err != nil {
		return "", err
	}
	return path, nil
}
