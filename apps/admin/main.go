package main

import (
	"log"
	"os"

	"github.com/trezcool/phoebuz/core"
	"github.com/trezcool/phoebuz/storage/database"
)

var logger *log.Logger

func main() {
	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	cli := commandLine{
		conf:   core.NewConfig(),
		openDB: database.Open,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
