package database

import (
	"github.com/huandu/go-sqlbuilder"
)

// Builders returned here are pre-set to the PostgreSQL flavor so that Build()
// produces $N placeholders. Repositories must never interpolate values into
// query strings directly.

func NewSelectBuilder() *sqlbuilder.SelectBuilder {
	return sqlbuilder.PostgreSQL.NewSelectBuilder()
}

func NewInsertBuilder() *sqlbuilder.InsertBuilder {
	return sqlbuilder.PostgreSQL.NewInsertBuilder()
}

func NewUpdateBuilder() *sqlbuilder.UpdateBuilder {
	return sqlbuilder.PostgreSQL.NewUpdateBuilder()
}

func NewDeleteBuilder() *sqlbuilder.DeleteBuilder {
	return sqlbuilder.PostgreSQL.NewDeleteBuilder()
}

// Struct wraps sqlbuilder.Struct with the PostgreSQL flavor applied.
type Struct struct {
	*sqlbuilder.Struct
}

func NewStruct(v any) *Struct {
	builder := sqlbuilder.NewStruct(v).For(sqlbuilder.PostgreSQL)
	return &Struct{builder}
}

func (s *Struct) SelectFrom(table string) *sqlbuilder.SelectBuilder {
	return s.Struct.SelectFrom(table)
}

func (s *Struct) InsertInto(table string, v ...any) *sqlbuilder.InsertBuilder {
	return s.Struct.InsertInto(table, v...)
}

func (s *Struct) Update(table string, v any) *sqlbuilder.UpdateBuilder {
	return s.Struct.Update(table, v)
}

func (s *Struct) DeleteFrom(table string) *sqlbuilder.DeleteBuilder {
	return s.Struct.DeleteFrom(table)
}
