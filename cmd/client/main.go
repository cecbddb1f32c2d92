package main

import (
	_ "time/tzdata"

	"shiftbill/cmd/client/cmd"
)

func main() {
	cmd.Execute()
}
