package main

import (
	"log"
	"os"

	"github.com/Moomken/deploy-frappe/cmd"
	"github.com/Moomken/deploy-frappe/config"
)

func main() {
	cnf, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration " + err.Error())
	}
	if err := cmd.Execute(cnf); err != nil {
		os.Exit(1)
	}
}
