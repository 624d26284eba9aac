package main

import (
	"os"

	"github.com/masbusiness/business-os/cmd/seed/seed"
)

func main() {
	os.Exit(seed.Execute())
}
