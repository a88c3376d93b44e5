package main

import "github.com/clickgrow/growcore/cmd/clickgrow/root"

func main() {
	root.Execute()
}
