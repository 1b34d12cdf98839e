package main

import "sitesmith/cmd/sitesmith-cli/cmd"

func main() {
	cmd.Execute()
}
