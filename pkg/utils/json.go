package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var prettyEncoder = jsoniter.ConfigCompatibleWithStandardLibrary

// PrettyJson serializa o valor com indentação para uso em logs de depuração.
// Aceita um []byte já serializado ou qualquer valor serializável.
func PrettyJson(in any) string {
	if raw, ok := in.([]byte); ok {
		var decoded any
		if err := prettyEncoder.Unmarshal(raw, &decoded); err != nil {
			return string(raw)
		}
		in = decoded
	}

	out, err := prettyEncoder.MarshalIndent(in, "", "\t")
	if err != nil {
		logrus.WithError(err).Warn("Erro ao serializar valor para log")
		return ""
	}

	return string(out)
}
