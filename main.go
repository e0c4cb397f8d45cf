package main

import "github.com/soocke/rect-select-go/cmd"

func main() {
	cmd.Execute(NewLogger)
}
