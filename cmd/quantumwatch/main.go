package main

import (
	"quantumwatch/cmd/handlers"
)

func main() {
	handlers.Execute()
}
