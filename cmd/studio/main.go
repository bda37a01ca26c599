// studio serves a design studio's website and portfolio.
//
// Portfolio data is read from a Coda table; each project page is themed from
// the colours of its thumbnail.
package main

import "github.com/jmylchreest/studio/internal/cli"

func main() {
	cli.Execute()
}
