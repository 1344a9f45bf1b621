package main

import "github.com/tristendillon/create-common-app/cmd"

func main() {
	cmd.Execute()
}
