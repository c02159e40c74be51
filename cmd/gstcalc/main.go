package main

import "github.com/jhoicas/gstbooks-api/internal/cli"

func main() {
	cli.Execute()
}
