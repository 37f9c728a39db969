package shading

import (
	_ "embed"
)

//go:embed object.wgsl
var ObjectWGSL string
