// Package install formats the commands that add a block to a project.
// It only builds strings; nothing here touches the network.
package install

import (
	"fmt"
	"strings"
)

// Tool is a package manager
type Tool string

const (
	NPM  Tool = "npm"
	PNPM Tool = "pnpm"
	Yarn Tool = "yarn"
	Bun  Tool = "bun"
)

// DefaultTool is used for unknown or missing choices
const DefaultTool = NPM

var runners = map[Tool]string{
	NPM:  "npx shadcn@latest",
	PNPM: "pnpm dlx shadcn@latest",
	Yarn: "yarn dlx shadcn@latest",
	Bun:  "bunx --bun shadcn@latest",
}

// Tools returns the supported tools in display order
func Tools() []Tool {
	return []Tool{NPM, PNPM, Yarn, Bun}
}

// ParseTool normalises cookie or query input, falling back to npm
func ParseTool(s string) Tool {
	t := Tool(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := runners[t]; ok {
		return t
	}
	return DefaultTool
}

// Valid reports whether t is a supported tool
func (t Tool) Valid() bool {
	_, ok := runners[t]
	return ok
}

// Runner returns the command prefix that invokes the registry CLI
func (t Tool) Runner() string {
	if r, ok := runners[t]; ok {
		return r
	}
	return runners[DefaultTool]
}

// ItemURL returns the registry item URL of a block
func ItemURL(baseURL, name string) string {
	return fmt.Sprintf("%s/r/%s.json", strings.TrimRight(baseURL, "/"), name)
}

// Command returns "{runner} add {base}/r/{name}.json"
func Command(tool Tool, baseURL, name string) string {
	return fmt.Sprintf("%s add %s", tool.Runner(), ItemURL(baseURL, name))
}

// Option is one entry of the install command picker
type Option struct {
	Tool     Tool   `json:"tool"`
	Command  string `json:"command"`
	Selected bool   `json:"selected"`
}

// Options returns the command for every tool, marking the selected one
func Options(selected Tool, baseURL, name string) []Option {
	selected = ParseTool(string(selected))
	out := make([]Option, 0, len(runners))
	for _, t := range Tools() {
		out = append(out, Option{
			Tool:     t,
			Command:  Command(t, baseURL, name),
			Selected: t == selected,
		})
	}
	return out
}
