// Package block parses the key:value mini-language of embedded task
// blocks into a filter for one render pass.
//
// Recognized keys are list, date, from, to and completed. Unknown lines
// are ignored for forward compatibility, and the last occurrence of a
// repeated key wins.
package block
