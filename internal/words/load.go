// internal/words/load.go
//
// Word list loading.
//
// Sources (Load):
//   1. answersPath and allowedPath both set: solutions from the first,
//      extra guesses from the second.
//   2. only allowedPath set: that file is used as both lists.
//   3. neither set: the embedded defaults from the assets package.
//
// Files hold one word per line; blank lines and '#' comments are skipped.
// Malformed words and duplicates within one file are errors.

package words

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/Joeltronics/wordlebot/assets"
)

// Load builds a catalog from the configured files or the embedded lists.
func Load(answersPath, allowedPath string) (*Catalog, error) {
	var ansList, allowList []string
	var err error

	switch {
	case answersPath != "" && allowedPath != "":
		if ansList, err = LoadFile(answersPath); err != nil {
			return nil, err
		}
		if allowList, err = LoadFile(allowedPath); err != nil {
			return nil, err
		}

	case answersPath == "" && allowedPath != "":
		if allowList, err = LoadFile(allowedPath); err != nil {
			return nil, err
		}
		ansList = allowList

	case answersPath != "":
		if ansList, err = LoadFile(answersPath); err != nil {
			return nil, err
		}

	default:
		if ansList, err = assets.AnswersList(); err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		if allowList, err = assets.AllowedList(); err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
	}

	cat, err := NewBuilder().AddSolutions(ansList...).AddExtras(allowList...).Build()
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("solutions", cat.NumSolutions()).
		Int("allowed", cat.Len()).
		Str("fingerprint", cat.Fingerprint()).
		Msg("word catalog loaded")
	return cat, nil
}

// LoadFile reads one word list file.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	out, err := ReadList(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ReadList parses a word list, normalizing each word to upper case.
func ReadList(r io.Reader) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		w, err := Normalize(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if _, ok := seen[w]; ok {
			return nil, fmt.Errorf("line %d: %w: %s", line, ErrDuplicateWord, w)
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out, sc.Err()
}
