package questions

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrQuestionNotFound = errors.New("question not found")
	ErrEmptyQuestion    = errors.New("question text is empty")
	ErrUnsupportedFile  = errors.New("unsupported catalog file extension")
)

// Category groups the questions asked about one topic
type Category struct {
	Name      string   `json:"name" yaml:"name"`
	Questions []string `json:"questions" yaml:"questions"`
}

// Catalog is an ordered, categorized list of interview questions. It is safe
// for concurrent use.
type Catalog struct {
	mu         sync.RWMutex
	categories []Category
}

type catalogFile struct {
	Categories []Category `json:"categories" yaml:"categories"`
}

// New returns a catalog holding the given categories
func New(categories []Category) *Catalog {
	c := &Catalog{}
	c.categories = cloneCategories(categories)
	return c
}

// Default returns the catalog used by the field study the tool was built for
func Default() *Catalog {
	return New(defaultCategories)
}

// Categories returns a copy of all categories in order
func (c *Catalog) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return cloneCategories(c.categories)
}

// Category returns the questions of one category
func (c *Catalog) Category(name string) (Category, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(name)
	if i < 0 {
		return Category{}, fmt.Errorf("%w: %s", ErrCategoryNotFound, name)
	}
	return cloneCategories(c.categories[i : i+1])[0], nil
}

// Question returns a single question by category and zero-based index
func (c *Catalog) Question(category string, index int) (string, error) {
	cat, err := c.Category(category)
	if err != nil {
		return "", err
	}
	if index < 0 || index >= len(cat.Questions) {
		return "", fmt.Errorf("%w: %s #%d", ErrQuestionNotFound, category, index)
	}
	return cat.Questions[index], nil
}

// Total returns the number of questions across all categories
func (c *Catalog) Total() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	n := 0
	for _, cat := range c.categories {
		n += len(cat.Questions)
	}
	return n
}

// Add appends a question to an existing category
func (c *Catalog) Add(category, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return ErrEmptyQuestion
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(category)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	c.categories[i].Questions = append(c.categories[i].Questions, question)
	return nil
}

// Remove deletes a question by category and zero-based index
func (c *Catalog) Remove(category string, index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(category)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrCategoryNotFound, category)
	}
	qs := c.categories[i].Questions
	if index < 0 || index >= len(qs) {
		return fmt.Errorf("%w: %s #%d", ErrQuestionNotFound, category, index)
	}
	c.categories[i].Questions = append(qs[:index:index], qs[index+1:]...)
	return nil
}

// Export writes the catalog as JSON or YAML depending on the extension
func (c *Catalog) Export(fs afero.Fs, path string) error {
	file := catalogFile{Categories: c.Categories()}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err = json.MarshalIndent(file, "", "  ")
	case ".yaml", ".yml":
		data, err = yaml.Marshal(file)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, data, 0644)
}

// Import replaces the catalog with the contents of a JSON or YAML file
func (c *Catalog) Import(fs afero.Fs, path string) error {
	loaded, err := Load(fs, path)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.categories = loaded.categories
	return nil
}

// Load reads a catalog file
func Load(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}

	var file catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &file)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, path)
	}
	if err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	for _, cat := range file.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return nil, fmt.Errorf("decoding catalog: category without a name")
		}
	}
	return New(file.Categories), nil
}

func (c *Catalog) indexOf(name string) int {
	for i, cat := range c.categories {
		if strings.EqualFold(cat.Name, name) {
			return i
		}
	}
	return -1
}

func cloneCategories(in []Category) []Category {
	out := make([]Category, len(in))
	for i, cat := range in {
		out[i] = Category{
			Name:      cat.Name,
			Questions: append([]string(nil), cat.Questions...),
		}
	}
	return out
}
