package main

import (
	"os"

	restfulcmder "github.com/papercomputeco/restful/cmd/restful"
)

func main() {
	cmd := restfulcmder.NewRestfulCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
