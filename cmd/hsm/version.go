package main

import (
	"fmt"

	"github.com/aretw0/hsm"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of hsm",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hsm version %s\n", hsm.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
