package main

import "github.com/OpenTraceLab/xschem-go/cmd/xschem/cmd"

func main() {
	cmd.Execute()
}
