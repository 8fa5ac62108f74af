// Package filter parses AIP-160 filter expressions for catalog listings.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ajmonfue/poke-explorer/internal/services/catalog/domain"
	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// ErrInvalidFilter wraps every parse or translation failure.
var ErrInvalidFilter = errors.New("invalid filter")

// Field names accepted in filter expressions.
const (
	FieldName       = "name"
	FieldType       = "type"
	FieldGeneration = "generation"
)

// PokemonDeclarations returns the field declarations for listing filters.
func PokemonDeclarations() (*filtering.Declarations, error) {
	return filtering.NewDeclarations(
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent(FieldName, filtering.TypeString),
		filtering.DeclareIdent(FieldType, filtering.TypeString),
		filtering.DeclareIdent(FieldGeneration, filtering.TypeString),
	)
}

// Terms are the equality constraints found in a filter.
type Terms struct {
	Name       string
	Type       string
	Generation string
}

// Apply overlays the terms onto filter. Terms win over fields already set.
func (t Terms) Apply(filter domain.ListFilter) domain.ListFilter {
	if t.Name != "" {
		filter.Name = t.Name
	}
	if t.Type != "" {
		filter.Type = t.Type
	}
	if t.Generation != "" {
		filter.Generation = t.Generation
	}
	return filter
}

// Parse parses an expression such as `type = "fire" AND generation = "generation-i"`.
// An empty string yields empty terms.
func Parse(filterStr string) (Terms, error) {
	if strings.TrimSpace(filterStr) == "" {
		return Terms{}, nil
	}

	decls, err := PokemonDeclarations()
	if err != nil {
		return Terms{}, fmt.Errorf("create declarations: %w", err)
	}

	parsed, err := filtering.ParseFilterString(filterStr, decls)
	if err != nil {
		return Terms{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}

	var terms Terms
	if err := collect(parsed.CheckedExpr.GetExpr(), &terms); err != nil {
		return Terms{}, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return terms, nil
}

// Apply parses filterStr and overlays it onto filter.
func Apply(filterStr string, filter domain.ListFilter) (domain.ListFilter, error) {
	terms, err := Parse(filterStr)
	if err != nil {
		return filter, err
	}
	return terms.Apply(filter), nil
}

func collect(e *expr.Expr, terms *Terms) error {
	if e == nil {
		return nil
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok {
		return fmt.Errorf("unsupported expression type: %T", e.ExprKind)
	}
	switch call.CallExpr.Function {
	case filtering.FunctionAnd, "_&&_":
		if len(call.CallExpr.Args) != 2 {
			return fmt.Errorf("AND requires 2 arguments")
		}
		if err := collect(call.CallExpr.Args[0], terms); err != nil {
			return err
		}
		return collect(call.CallExpr.Args[1], terms)
	case filtering.FunctionEquals, "_==_":
		return collectEquals(call.CallExpr.Args, terms)
	default:
		return fmt.Errorf("unsupported function: %s", call.CallExpr.Function)
	}
}

func collectEquals(args []*expr.Expr, terms *Terms) error {
	if len(args) != 2 {
		return fmt.Errorf("comparison requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return err
	}
	value, err := extractString(args[1])
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	var target *string
	switch field {
	case FieldName:
		target = &terms.Name
	case FieldType:
		target = &terms.Type
	case FieldGeneration:
		target = &terms.Generation
	default:
		return fmt.Errorf("unknown field: %s", field)
	}
	if *target != "" && *target != value {
		return fmt.Errorf("conflicting values for %s", field)
	}
	*target = value
	return nil
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected identifier, got %T", kind)
	}
}

func extractString(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	constant, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return "", fmt.Errorf("expected constant, got %T", e.ExprKind)
	}
	str, ok := constant.ConstExpr.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return "", fmt.Errorf("expected string constant, got %T", constant.ConstExpr.ConstantKind)
	}
	return str.StringValue, nil
}
