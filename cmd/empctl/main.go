package main

import (
	"github.com/ogurasousui/employee-directory/internal/client/cli"
)

func main() {
	cli.Execute()
}
