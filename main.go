// Command splint lints source files against token pattern rules.
package main

import "github.com/mouse-blink/splint/cmd"

func main() {
	cmd.Execute()
}
