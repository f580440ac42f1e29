package ast

// Children returns the direct children of n in document order.
// Absent optional children are omitted.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if !isNil(c) {
			out = append(out, c)
		}
	}
	stmts := func(list []Stmt) {
		for _, s := range list {
			add(s)
		}
	}
	exprs := func(list []Expr) {
		for _, e := range list {
			add(e)
		}
	}

	switch n := n.(type) {
	case *Program:
		stmts(n.Statements)
	case *BrokerSchemaStatement:
		add(n.Schema)
	case *PathStatement:
		for _, s := range n.Schemas {
			add(s)
		}
	case *CreateModuleStatement:
		add(n.Name)
		stmts(n.Body)
	case *CreateFunctionStatement:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Returns)
		add(n.Language)
		add(n.ExternalName)
		add(n.Body)
	case *CreateProcedureStatement:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
		add(n.Returns)
		add(n.Language)
		add(n.ExternalName)
		add(n.Body)
	case *ParameterDeclaration:
		add(n.Name)
		add(n.Type)
	case *BeginEndStatement:
		stmts(n.Statements)
	case *DeclareStatement:
		for _, name := range n.Names {
			add(name)
		}
		add(n.Type)
		add(n.Value)
	case *SetStatement:
		add(n.Target)
		add(n.Value)
	case *ReturnStatement:
		add(n.Value)
	case *IfStatement:
		add(n.Condition)
		stmts(n.Then)
		for _, c := range n.ElseIfs {
			add(c)
		}
		stmts(n.Else)
	case *ElseIfClause:
		add(n.Condition)
		stmts(n.Then)
	case *WhileStatement:
		add(n.Condition)
		stmts(n.Body)
	case *CallStatement:
		add(n.Schema)
		add(n.RoutineName)
		exprs(n.Args)
		add(n.Into)
	case *PathExpression:
		for _, el := range n.Elements {
			add(el)
		}
	case *PathElement:
		add(n.Name)
		add(n.Index)
	case *CallExpression:
		add(n.Function)
		exprs(n.Args)
	case *BinaryExpression:
		add(n.Left)
		add(n.Right)
	case *UnaryExpression:
		add(n.Operand)
	case *IsExpression:
		add(n.Expr)
		add(n.Target)
	case *ParenExpression:
		add(n.Expr)
	case *CastExpression:
		add(n.Expr)
		add(n.Type)
	case *DataType:
		add(n.Name)
	}
	return out
}
