package postgres

import "database/sql"

// Queryer é o recorte de *sql.DB que os repositórios de consulta recebem.
// *sql.Tx também satisfaz a interface, então um repositório pode rodar dentro
// de uma transação sem mudar de tipo.
type Queryer interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}
