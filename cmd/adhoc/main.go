package main

import (
	"os"
)

func main() {
	if err := Execute(); err != nil {
		os.Stderr.WriteString("Erro: " + err.Error() + "\n")
		os.Exit(1)
	}
}
