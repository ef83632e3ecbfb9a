// Package assetlib loads libraries of hand and tool descriptors.
//
// A library file lists tools and hands with their anchor points in sprite
// pixel space. The format follows the file extension:
//
//	.yaml, .yml   YAML
//	.toml         TOML
//	.json         JSON
//
// Unknown fields are rejected so that typos in anchor names do not
// silently leave an anchor at the origin.
package assetlib
