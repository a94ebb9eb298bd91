package main

import (
	"github.com/sibinaravind/lead-management-back-sub001/cmd"
)

func main() {
	cmd.Execute()
}
