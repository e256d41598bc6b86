package main

import (
	"os"

	"github.com/acme/salescrm/pkg/errexit"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(errexit.Code(err))
	}
}
