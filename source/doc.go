// Package source loads design-token documents from disk: nested YAML or
// JSON token trees are flattened into canonical token records, document
// sets are discovered via glob patterns, and a debounced watcher
// re-emits changed files for watch-mode validation.
package source
