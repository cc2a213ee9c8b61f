package main

import (
	"shipment/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
