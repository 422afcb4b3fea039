// Package labels provides consistent tagging utilities for stack resources.
//
// Every taggable resource carries the stack name and the managing tool under
// the ecsdisco.io domain prefix, plus any user tags from the configuration.
package labels
