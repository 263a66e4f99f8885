package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/mailinject/cmd/mailinject/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
