package main

import "github.com/AijingLI-KCLLP/find-path-ratp/cmd"

func main() {
	cmd.Execute()
}
