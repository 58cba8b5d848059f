package language

import "github.com/vektah/gqlparser/v2/ast"

type (
	SchemaDocument  = ast.SchemaDocument
	Schema          = ast.Schema
	Definition      = ast.Definition
	DefinitionList  = ast.DefinitionList
	FieldDefinition = ast.FieldDefinition
	Source          = ast.Source
)

type DefinitionKind = ast.DefinitionKind

const (
	Object      DefinitionKind = ast.Object
	Interface   DefinitionKind = ast.Interface
	Union       DefinitionKind = ast.Union
	Scalar      DefinitionKind = ast.Scalar
	Enum        DefinitionKind = ast.Enum
	InputObject DefinitionKind = ast.InputObject
)
