package novela

import (
	"path/filepath"
	"strings"

	"github.com/jordyvandomselaar/novela/content"
)

// maxNextPosts is how many articles a post page suggests reading next.
const maxNextPosts = 2

// pageCount returns the number of listing pages; an empty site still has one.
func pageCount(total, size int) int {
	if total == 0 || size <= 0 {
		return 1
	}
	return (total + size - 1) / size
}

// pageSlice returns the posts shown on 1-based page n.
func pageSlice(posts []content.Post, n, size int) []content.Post {
	start := (n - 1) * size
	if start >= len(posts) || start < 0 {
		return nil
	}
	end := min(start+size, len(posts))
	return posts[start:end]
}

// nextPosts picks the posts that follow current in listing order, wrapping
// around to the newest ones.
func nextPosts(current content.Post, listed []content.Post) []content.Post {
	idx := -1
	for i, p := range listed {
		if p.Slug == current.Slug {
			idx = i
			break
		}
	}
	var out []content.Post
	for step := 1; step <= len(listed) && len(out) < maxNextPosts; step++ {
		p := listed[(idx+step+len(listed))%len(listed)]
		if p.Slug != current.Slug {
			out = append(out, p)
		}
	}
	return out
}

// safeJoin resolves the URL path rel inside root. It reports false when rel
// would escape root.
func safeJoin(root, rel string) (string, bool) {
	if root == "" {
		return "", false
	}
	clean := filepath.Clean("/" + filepath.FromSlash(rel))
	full := filepath.Join(root, clean)
	r := filepath.Clean(root)
	if full != r && !strings.HasPrefix(full, r+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}

func isMarkdownFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".md" || ext == ".mdx"
}
