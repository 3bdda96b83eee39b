// Package pipeline implements the Markdown-to-HTML stages of a policy document conversion.
//
// Stages, in the order the converter runs them:
//   - Markdown preprocessing (line endings)
//   - Markdown to HTML conversion via Goldmark, wrapped in the document shell
//   - Relative path rewriting for images and links
//   - [TOC] marker replacement
//   - CSS injection
//
// PDF rendering is handled by the root policypdf package using headless
// Chrome (go-rod).
package pipeline
