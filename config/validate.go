package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/silas/dag"
)

// ValidationError collects every problem found in a config.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "config: " + strings.Join(e.Problems, "; ")
}

func (e *ValidationError) add(format string, args ...any) {
	e.Problems = append(e.Problems, fmt.Sprintf(format, args...))
}

func (e *ValidationError) has() bool {
	return len(e.Problems) > 0
}

// Validate checks metadata invariants, each plugin's own options, and plugin
// ordering. It returns a *ValidationError listing all problems.
func (c *Config) Validate() error {
	verr := &ValidationError{}

	if c.Site.SiteURL != "" {
		if err := absoluteURL(c.Site.SiteURL); err != nil {
			verr.add("siteMetadata.siteUrl: %v", err)
		}
	}
	if c.Site.Hero.MaxWidth < 0 {
		verr.add("siteMetadata.hero.maxWidth must not be negative")
	}

	seen := make(map[string]bool, len(c.Site.Social))
	for i, s := range c.Site.Social {
		name := strings.ToLower(strings.TrimSpace(s.Name))
		if name == "" {
			verr.add("siteMetadata.social[%d]: name is required", i)
		} else if seen[name] {
			verr.add("siteMetadata.social[%d]: duplicate platform %q", i, s.Name)
		}
		seen[name] = true
		if err := absoluteURL(s.URL); err != nil {
			verr.add("siteMetadata.social[%d] %q: %v", i, s.Name, err)
		}
	}

	if _, ok := Lookup[*ThemeOptions](c); !ok {
		verr.add("plugins: %s must be activated", ThemePlugin)
	}
	for i, p := range c.Plugins {
		if err := p.Validate(); err != nil {
			verr.add("plugins[%d] %q: %v", i, p.Resolve(), err)
		}
	}
	checkOrder(c.Plugins, verr)

	if verr.has() {
		return verr
	}
	return nil
}

func absoluteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL", raw)
	}
	return nil
}

const orderRoot = "<root>"

// checkOrder builds the plugin dependency graph and reports cycles, missing
// requirements and requirements that are activated too late.
func checkOrder(plugins []Plugin, verr *ValidationError) {
	index := make(map[string]int, len(plugins))
	var g dag.AcyclicGraph
	g.Add(orderRoot)
	for i, p := range plugins {
		name := p.Resolve()
		if _, dup := index[name]; dup {
			verr.add("plugins[%d]: %q is activated more than once", i, name)
			continue
		}
		index[name] = i
		g.Add(name)
	}

	for name := range index {
		p := plugins[index[name]]
		connected := false
		for _, req := range p.Requires() {
			if _, ok := index[req]; !ok {
				verr.add("plugins: %q requires %q, which is not activated", name, req)
				continue
			}
			g.Connect(dag.BasicEdge(req, name))
			connected = true
		}
		if !connected {
			g.Connect(dag.BasicEdge(orderRoot, name))
		}
	}

	if err := g.Validate(); err != nil {
		verr.add("plugins: dependency graph: %v", err)
		return
	}

	// Edges point from a requirement to the plugin needing it, so the
	// requirements of a plugin are its descendents in silas/dag terms.
	for name, i := range index {
		required, err := g.Descendents(name)
		if err != nil {
			verr.add("plugins: %q: %v", name, err)
			continue
		}
		for _, v := range required.List() {
			dep, _ := v.(string)
			if dep == orderRoot {
				continue
			}
			if index[dep] > i {
				verr.add("plugins: %q must be activated before %q", dep, name)
			}
		}
	}
}
