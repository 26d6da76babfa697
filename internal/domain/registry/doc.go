// Package registry installs blocks from a remote registry into a project.
//
// Components:
//   - Client: fetches registry items over HTTP with retries and a circuit breaker
//   - Installer: resolves registry dependencies and writes item files to disk
//
// Remote Layout:
//   - Items: {base}/r/{name}.json
//   - Index: {base}/r/registry.json
//
// Dependencies that the remote registry does not serve (for example
// upstream UI primitives) are reported as external rather than failing
// the install.
//
// Example Usage:
//
//	client := registry.NewClient(registry.ClientOptions{BaseURL: "https://blocks.example.com"})
//	installer := registry.NewInstaller(client, "./my-app", logger)
//	report, err := installer.Install(ctx, []string{"hero-01"})
package registry
