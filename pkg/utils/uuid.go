package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera identificadores curtos para recomendações sem id
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 10)
}
