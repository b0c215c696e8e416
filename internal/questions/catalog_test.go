package questions

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()

	cats := c.Categories()
	require.Len(t, cats, 6)
	assert.Equal(t, "General", cats[0].Name)
	assert.Equal(t, "Closing", cats[5].Name)
	assert.Equal(t, 23, c.Total())
}

func TestDefaultIsNotShared(t *testing.T) {
	a := Default()
	require.NoError(t, a.Add("General", "Extra question?"))

	b := Default()
	assert.Equal(t, a.Total()-1, b.Total())
}

func TestAddAndRemove(t *testing.T) {
	c := Default()

	require.NoError(t, c.Add("table", "  Would colors help?  "))
	q, err := c.Question("Table", 5)
	require.NoError(t, err)
	assert.Equal(t, "Would colors help?", q)

	require.NoError(t, c.Remove("Table", 0))
	q, err = c.Question("Table", 0)
	require.NoError(t, err)
	assert.Equal(t, "How clear are the numbers for making decisions?", q)

	assert.True(t, errors.Is(c.Add("Missing", "q"), ErrCategoryNotFound))
	assert.True(t, errors.Is(c.Add("Table", "   "), ErrEmptyQuestion))
	assert.True(t, errors.Is(c.Remove("Table", 99), ErrQuestionNotFound))
	assert.True(t, errors.Is(c.Remove("Nope", 0), ErrCategoryNotFound))

	_, err = c.Question("Table", -1)
	assert.True(t, errors.Is(err, ErrQuestionNotFound))
}

func TestRemoveDoesNotAliasCopies(t *testing.T) {
	c := New([]Category{{Name: "A", Questions: []string{"1", "2", "3"}}})
	before, err := c.Category("A")
	require.NoError(t, err)

	require.NoError(t, c.Remove("A", 0))
	assert.Equal(t, []string{"1", "2", "3"}, before.Questions)

	after, _ := c.Category("A")
	assert.Equal(t, []string{"2", "3"}, after.Questions)
}

func TestExportImport(t *testing.T) {
	for _, path := range []string{"/cfg/questions.json", "/cfg/questions.yaml", "/cfg/questions.yml"} {
		t.Run(path, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			src := Default()
			require.NoError(t, src.Add("Closing", "Anything else?"))
			require.NoError(t, src.Export(fs, path))

			dst := New(nil)
			require.NoError(t, dst.Import(fs, path))
			assert.Equal(t, src.Categories(), dst.Categories())
		})
	}
}

func TestLoadYAML(t *testing.T) {
	fs := afero.NewMemMapFs()
	content := `categories:
  - name: Warmup
    questions:
      - How are you?
      - Did you sleep well?
`
	require.NoError(t, afero.WriteFile(fs, "/q.yaml", []byte(content), 0644))

	c, err := Load(fs, "/q.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, c.Total())
}

func TestLoadErrors(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/bad.json", []byte("{"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/q.txt", []byte("x"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/noname.json", []byte(`{"categories":[{"questions":["a"]}]}`), 0644))

	_, err := Load(fs, "/bad.json")
	assert.Error(t, err)

	_, err = Load(fs, "/q.txt")
	assert.True(t, errors.Is(err, ErrUnsupportedFile))

	_, err = Load(fs, "/noname.json")
	assert.Error(t, err)

	_, err = Load(fs, "/missing.json")
	assert.Error(t, err)

	assert.True(t, errors.Is(Default().Export(fs, "/out.csv"), ErrUnsupportedFile))
}
