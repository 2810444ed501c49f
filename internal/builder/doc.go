// Package builder drives packer to produce a machine image preloaded with
// an installer script fetched from cloud storage.
//
// A [Builder] runs a fixed prepare/build/cleanup lifecycle: it downloads the
// installer to a temporary file, merges leftover command-line tokens into a
// packer variable map, invokes packer with those variables, and removes the
// temporary file again. Specialized flows plug into the lifecycle through
// [Hooks]; every hook is optional and defaults to the standard behavior.
package builder
