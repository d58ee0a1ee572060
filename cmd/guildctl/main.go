package main

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func main() {
	cobra.CheckErr(newRootCmd(afero.NewOsFs(), nil).Execute())
}
