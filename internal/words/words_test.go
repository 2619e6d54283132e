package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAssignsSolutionsFirst(t *testing.T) {
	cat, err := NewBuilder().
		AddSolutions("slate", "crane").
		AddExtras("zonal", "abbey", "CRANE").
		Build()
	require.NoError(t, err)

	assert.Equal(t, 2, cat.NumSolutions())
	assert.Equal(t, 4, cat.Len())

	got := make([]string, 0, cat.Len())
	for i, w := range cat.Allowed() {
		assert.Equal(t, i, w.ID())
		got = append(got, w.String())
	}
	assert.Equal(t, []string{"CRANE", "SLATE", "ABBEY", "ZONAL"}, got)

	crane, ok := cat.Lookup("crane")
	require.True(t, ok)
	assert.True(t, cat.IsSolution(crane))
	abbey, _ := cat.Lookup("ABBEY")
	assert.False(t, cat.IsSolution(abbey))
	assert.Equal(t, abbey, cat.ByID(abbey.ID()))
}

func TestBuilderErrors(t *testing.T) {
	_, err := NewBuilder().AddSolutions("crane", "CRANE").Build()
	assert.ErrorIs(t, err, ErrDuplicateWord)

	_, err = NewBuilder().AddSolutions("cranes").Build()
	assert.ErrorIs(t, err, ErrInvalidWord)

	_, err = NewBuilder().AddSolutions("cr4ne").Build()
	assert.ErrorIs(t, err, ErrInvalidWord)

	_, err = NewBuilder().AddExtras("crane").Build()
	assert.ErrorIs(t, err, ErrEmptyList)
}

func TestFingerprint(t *testing.T) {
	a, err := NewBuilder().AddSolutions("crane", "slate").Build()
	require.NoError(t, err)
	b, err := NewBuilder().AddSolutions("slate", "crane").Build()
	require.NoError(t, err)
	c, err := NewBuilder().AddSolutions("crane").AddExtras("slate").Build()
	require.NoError(t, err)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestParse(t *testing.T) {
	cat, err := NewBuilder().AddSolutions("crane").Build()
	require.NoError(t, err)

	w, err := cat.Parse(" Crane ")
	require.NoError(t, err)
	assert.Equal(t, "CRANE", w.String())

	_, err = cat.Parse("slate")
	assert.ErrorIs(t, err, ErrInvalidWord)
	_, err = cat.Parse("abc")
	assert.ErrorIs(t, err, ErrInvalidWord)
}

func TestReadList(t *testing.T) {
	got, err := ReadList(strings.NewReader("# comment\ncrane\n\n  slate \n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"CRANE", "SLATE"}, got)

	_, err = ReadList(strings.NewReader("crane\nslate\ncrane\n"))
	assert.ErrorIs(t, err, ErrDuplicateWord)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	answers := filepath.Join(dir, "answers.txt")
	allowed := filepath.Join(dir, "allowed.txt")
	require.NoError(t, os.WriteFile(answers, []byte("crane\nslate\n"), 0o644))
	require.NoError(t, os.WriteFile(allowed, []byte("abbey\ncrane\n"), 0o644))

	cat, err := Load(answers, allowed)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.NumSolutions())
	assert.Equal(t, 3, cat.Len())

	only, err := Load("", allowed)
	require.NoError(t, err)
	assert.Equal(t, 2, only.NumSolutions())
	assert.Equal(t, 2, only.Len())

	_, err = Load(filepath.Join(dir, "missing.txt"), "")
	assert.Error(t, err)
}

func TestLoadEmbedded(t *testing.T) {
	cat, err := Load("", "")
	require.NoError(t, err)
	assert.Greater(t, cat.NumSolutions(), 1000)
	assert.Greater(t, cat.Len(), cat.NumSolutions())
	_, ok := cat.Lookup("CRANE")
	assert.True(t, ok)
}
