package main

import "github.com/MeKo-Tech/proctex/internal/cmd"

func main() {
	cmd.Execute()
}
