// Package registry is the single source of truth for the studio's tool and
// blog catalog: add an entry to the JSON files and it shows up in every
// projection.
package registry

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"
)

// Category is one tools-grid section.
type Category struct {
	Label string `json:"label"`
	Order int    `json:"order"`
}

// Tool is one playable tool or game page.
type Tool struct {
	URL             string `json:"url"`
	Emoji           string `json:"emoji"`
	Title           string `json:"title"`
	AgeRange        string `json:"ageRange"`
	FullDescription string `json:"fullDescription"`
	CTA             string `json:"cta"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Order           int    `json:"order"`
	Featured        bool   `json:"featured"`
}

// BlogPost is one published article.
type BlogPost struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	Title         string `json:"title"`
	Excerpt       string `json:"excerpt"`
	Date          string `json:"date"`
	DisplayDate   string `json:"displayDate"`
	Category      string `json:"category"`
	CategoryClass string `json:"categoryClass"`
	Emoji         string `json:"emoji"`
	ReadTime      string `json:"readTime"`

	parsedDate time.Time
}

type toolsFile struct {
	Categories map[string]Category `json:"categories"`
	Tools      []Tool              `json:"tools"`
}

type blogsFile struct {
	Posts []BlogPost `json:"posts"`
}

// Registry holds the loaded catalog. Both files load exactly once, on the
// first projection that needs them; a load failure logs a warning and leaves
// the collections empty, so every projection degrades to rendering nothing.
type Registry struct {
	logger    runtime.Logger
	toolsPath string
	blogsPath string

	once       sync.Once
	categories map[string]Category
	tools      []Tool
	posts      []BlogPost
}

// New builds a registry over the given data files. Nothing is read until the
// first projection call.
func New(logger runtime.Logger, toolsPath, blogsPath string) *Registry {
	return &Registry{logger: logger, toolsPath: toolsPath, blogsPath: blogsPath}
}

func (r *Registry) load() {
	r.once.Do(func() {
		tf, err := readJSON[toolsFile](r.toolsPath)
		if err != nil {
			r.logger.Warn("registry: failed to load tools data: %v", err)
			return
		}
		bf, err := readJSON[blogsFile](r.blogsPath)
		if err != nil {
			r.logger.Warn("registry: failed to load blog data: %v", err)
			return
		}

		for _, t := range tf.Tools {
			if _, ok := tf.Categories[t.Category]; !ok {
				r.logger.Warn("registry: tool %q references unknown category %q", t.Title, t.Category)
			}
		}
		for i := range bf.Posts {
			parsed, err := time.Parse("2006-01-02", bf.Posts[i].Date)
			if err != nil {
				r.logger.Warn("registry: post %q has unparseable date %q", bf.Posts[i].ID, bf.Posts[i].Date)
			}
			bf.Posts[i].parsedDate = parsed
		}

		r.categories = tf.Categories
		r.tools = tf.Tools
		r.posts = bf.Posts
	})
}

func readJSON[T any](path string) (T, error) {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, err
	}
	return out, nil
}

// ToolCount returns how many tools the catalog lists.
func (r *Registry) ToolCount() int {
	r.load()
	return len(r.tools)
}
