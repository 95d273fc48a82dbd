package registry

import (
	"sort"
	"strings"
)

// CategorySection is one block of the full tools grid.
type CategorySection struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Tools []Tool `json:"tools"`
}

// ToolsGrid groups every tool by category, orders the sections by category
// order and the tools inside each by tool order. Empty categories are
// dropped; no tool is dropped or duplicated.
func (r *Registry) ToolsGrid() []CategorySection {
	r.load()

	groups := map[string][]Tool{}
	for _, t := range r.tools {
		groups[t.Category] = append(groups[t.Category], t)
	}

	keys := make([]string, 0, len(r.categories))
	for key := range r.categories {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if r.categories[keys[i]].Order != r.categories[keys[j]].Order {
			return r.categories[keys[i]].Order < r.categories[keys[j]].Order
		}
		return keys[i] < keys[j]
	})

	var sections []CategorySection
	for _, key := range keys {
		tools := groups[key]
		if len(tools) == 0 {
			continue
		}
		sort.SliceStable(tools, func(i, j int) bool { return tools[i].Order < tools[j].Order })
		sections = append(sections, CategorySection{Key: key, Label: r.categories[key].Label, Tools: tools})
	}
	return sections
}

// ToolsPreview returns the featured tools ordered by category order then tool
// order, truncated to max (12 when max is not positive).
func (r *Registry) ToolsPreview(max int) []Tool {
	if max <= 0 {
		max = 12
	}
	r.load()

	catOrder := func(t Tool) int {
		if c, ok := r.categories[t.Category]; ok {
			return c.Order
		}
		return 99
	}

	var featured []Tool
	for _, t := range r.tools {
		if t.Featured {
			featured = append(featured, t)
		}
	}
	sort.SliceStable(featured, func(i, j int) bool {
		if catOrder(featured[i]) != catOrder(featured[j]) {
			return catOrder(featured[i]) < catOrder(featured[j])
		}
		return featured[i].Order < featured[j].Order
	})
	if len(featured) > max {
		featured = featured[:max]
	}
	return featured
}

// byDateDesc returns the posts newest first.
func (r *Registry) byDateDesc() []BlogPost {
	posts := make([]BlogPost, len(r.posts))
	copy(posts, r.posts)
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].parsedDate.After(posts[j].parsedDate) })
	return posts
}

// BlogPreview returns the newest posts, truncated to max (3 when max is not
// positive).
func (r *Registry) BlogPreview(max int) []BlogPost {
	if max <= 0 {
		max = 3
	}
	r.load()
	posts := r.byDateDesc()
	if len(posts) > max {
		posts = posts[:max]
	}
	return posts
}

// BlogGrid returns every post, newest first.
func (r *Registry) BlogGrid() []BlogPost {
	r.load()
	return r.byDateDesc()
}

// PostNav is the prev/next navigation of one post page. Prev is the newer
// post, Next the older one; either may be nil at the ends of the list.
type PostNav struct {
	Prev *BlogPost `json:"prev,omitempty"`
	Next *BlogPost `json:"next,omitempty"`
}

// PostNavFor locates the post whose id appears in the page path and returns
// its neighbours on the newest-first list. An unknown path returns nil.
func (r *Registry) PostNavFor(path string) *PostNav {
	r.load()
	posts := r.byDateDesc()

	current := -1
	for i := range posts {
		if posts[i].ID != "" && strings.Contains(path, posts[i].ID) {
			current = i
			break
		}
	}
	if current == -1 {
		return nil
	}

	nav := &PostNav{}
	if current > 0 {
		nav.Prev = &posts[current-1]
	}
	if current < len(posts)-1 {
		nav.Next = &posts[current+1]
	}
	return nav
}

// RelatedPosts returns up to max posts for the page at path: same-category
// posts first in catalog order, then the rest newest first. The current post
// is never included. An unknown path returns nil.
func (r *Registry) RelatedPosts(path string, max int) []BlogPost {
	if max <= 0 {
		max = 3
	}
	r.load()

	var current *BlogPost
	for i := range r.posts {
		if r.posts[i].ID != "" && strings.Contains(path, r.posts[i].ID) {
			current = &r.posts[i]
			break
		}
	}
	if current == nil {
		return nil
	}

	var same, others []BlogPost
	for _, p := range r.posts {
		if p.ID == current.ID {
			continue
		}
		if p.Category == current.Category {
			same = append(same, p)
		} else {
			others = append(others, p)
		}
	}
	sort.SliceStable(others, func(i, j int) bool { return others[i].parsedDate.After(others[j].parsedDate) })

	related := append(same, others...)
	if len(related) > max {
		related = related[:max]
	}
	return related
}

// ListItem is one entry of the ItemList structured data block.
type ListItem struct {
	Type     string `json:"@type"`
	Position int    `json:"position"`
	Name     string `json:"name"`
	URL      string `json:"url"`
}

// ItemList is the schema.org structured data for the tools listing.
type ItemList struct {
	Context         string     `json:"@context"`
	Type            string     `json:"@type"`
	NumberOfItems   int        `json:"numberOfItems"`
	ItemListElement []ListItem `json:"itemListElement"`
}

const siteOrigin = "https://otterlygames.com"

// ToolsItemList builds the ItemList structured data over the whole catalog.
func (r *Registry) ToolsItemList() ItemList {
	r.load()

	items := make([]ListItem, 0, len(r.tools))
	for i, t := range r.tools {
		items = append(items, ListItem{
			Type:     "ListItem",
			Position: i + 1,
			Name:     t.Title,
			URL:      siteOrigin + t.URL,
		})
	}
	return ItemList{
		Context:         "https://schema.org",
		Type:            "ItemList",
		NumberOfItems:   len(r.tools),
		ItemListElement: items,
	}
}
