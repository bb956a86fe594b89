package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera um identificador curto para entidades persistidas
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}

// GenerateAnalysisID gera o identificador público de uma análise. Mais longo
// que GenerateID porque uma análise nova é criada a cada upload.
func GenerateAnalysisID() (string, error) {
	return gonanoid.Generate(characters, 12)
}
