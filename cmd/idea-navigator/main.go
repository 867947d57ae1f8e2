package main

import (
	"log"

	"github.com/MVVYSHNAV/idea-generator/internal/builder"
)

func main() {
	app, err := builder.Build()
	if err != nil {
		log.Fatal("failed to build application: ", err)
	}

	if err := app.Run(); err != nil {
		log.Fatal("application error: ", err)
	}
}
