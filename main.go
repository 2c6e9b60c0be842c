package main

import "github.com/minitoml/minitoml/cmd"

func main() {
	cmd.Execute()
}
