// Package main is the blockhub command.
//
// blockhub serves the block gallery and its registry, publishes the
// registry as static JSON, audits a registry source tree and installs
// blocks from a remote registry into a project.
//
// Commands:
//
//	blockhub serve                      # gallery + /r/{name}.json on $PORT
//	blockhub build --out dist           # static registry to a directory
//	blockhub build --s3-bucket blocks   # static registry to S3
//	blockhub check --dir ./registry     # audit sources against the manifest
//	blockhub add hero-01 faq-01         # install blocks into the current project
//	blockhub version
//
// Configuration:
//   - Environment variables (12-factor), see internal/infrastructure/config
//   - Flags override the environment for the command they belong to
//
// Signals:
//   - SIGINT, SIGTERM: graceful shutdown of serve
package main
