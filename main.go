package main

import "github.com/Tiliavir/caregiver-hours/cmd"

func main() {
	cmd.Execute()
}
