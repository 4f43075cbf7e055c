package main

import "autocatalog/cmd"

func main() {
	cmd.Execute()
}
