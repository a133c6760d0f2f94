package main

import (
	// Register output formats via side-effects
	_ "subclash/internal/render/clash"
	_ "subclash/internal/render/xray"
)

func main() {
	Execute()
}
