package main

import (
	_ "time/tzdata"

	"github.com/yeremiapane/table-booking/cmd"
)

func main() {
	cmd.Execute()
}
