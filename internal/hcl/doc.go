// Package hcl decodes descriptor and parameter-definition documents from
// their HCL interchange form. It is a pure format adapter: it produces the
// keyword mapping and parameter tree the core packages consume, and leaves
// all domain validation to them.
package hcl
