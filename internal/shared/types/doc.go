// Package types provides shared data structures for blockhub.
//
// Core Types:
//   - Category: Display metadata for a group of blocks
//   - Block: A page section with files, dependencies and a live preview
//   - RegistryItem: The serializable shape served to installers
//   - RegistryIndex: Every registry item under one document
//
// Theme Types:
//   - ThemeMode: light or dark
//   - Preset: Named colour tokens for both modes
//   - ThemeState: Mode plus preset owned by a block page
//
// Request Types:
//   - WaitlistRequest, SignInRequest: Demo stack forms
//   - WSMessage: Live search socket messages
//   - Result: Structured form outcome
package types
