package main

import "stormquest/cmd/sq/root"

func main() {
	root.Execute()
}
