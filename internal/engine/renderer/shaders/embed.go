// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SlabVertexShader transforms polygon slabs and window quads.
//
//go:embed slab.vert
var SlabVertexShader string

// SlabFragmentShader textures, clips and shades slab faces.
//
//go:embed slab.frag
var SlabFragmentShader string
