package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"lev/internal/ast"
	"lev/internal/source"
)

type treeNode struct {
	label    string
	children []*treeNode
}

// FormatASTPretty печатает дерево операторов с ветками ├─ └─.
func FormatASTPretty(w io.Writer, builder *ast.Builder, stmts []ast.StmtID, fs *source.FileSet) error {
	fmt.Fprintln(w, "Program")
	for i, id := range stmts {
		node := buildStmtTreeNode(builder, id, fs)
		if err := writeTree(w, node, "", i == len(stmts)-1); err != nil {
			return err
		}
	}
	return nil
}

func writeTree(w io.Writer, node *treeNode, prefix string, last bool) error {
	branch, next := "├─ ", "│  "
	if last {
		branch, next = "└─ ", "   "
	}
	if _, err := fmt.Fprintf(w, "%s%s%s\n", prefix, branch, node.label); err != nil {
		return err
	}
	for i, child := range node.children {
		if err := writeTree(w, child, prefix+next, i == len(node.children)-1); err != nil {
			return err
		}
	}
	return nil
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if _, _, ok := locate(fs, span); !ok {
		return span.String()
	}
	start, end := fs.Resolve(span)
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
}

func buildStmtTreeNode(builder *ast.Builder, id ast.StmtID, fs *source.FileSet) *treeNode {
	st := builder.Stmts.Get(id)
	if st == nil {
		return &treeNode{label: "<nil>"}
	}
	node := &treeNode{label: fmt.Sprintf("%s (span: %s)", st.Kind, formatSpan(st.Span, fs))}
	leaf := func(format string, args ...any) {
		node.children = append(node.children, &treeNode{label: fmt.Sprintf(format, args...)})
	}

	switch st.Kind {
	case ast.StmtVarDecl:
		d, _ := builder.Stmts.VarDecl(id)
		leaf("Name: %s", d.Name.Text)
		leaf("Mutable: %v", d.Mutable)
		if !d.Type.IsInferred() {
			leaf("Type: %s", d.Type)
		}
		leaf("Value: %s", formatExprInline(builder, d.Init))
	case ast.StmtFnDecl:
		fn, _ := builder.Stmts.FnDecl(id)
		leaf("Name: %s", fn.Name.Text)
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = fmt.Sprintf("%s: %s", p.Name.Text, p.Type)
		}
		leaf("Params: (%s)", strings.Join(params, ", "))
		leaf("Return: %s", fn.Result)
		node.children = append(node.children, buildStmtTreeNode(builder, fn.Body, fs))
	case ast.StmtBlock:
		blk, _ := builder.Stmts.Block(id)
		for _, child := range blk.Stmts {
			node.children = append(node.children, buildStmtTreeNode(builder, child, fs))
		}
	case ast.StmtReturn:
		ret, _ := builder.Stmts.Return(id)
		if ret.Value.IsValid() {
			leaf("Value: %s", formatExprInline(builder, ret.Value))
		}
	case ast.StmtAssign:
		as, _ := builder.Stmts.Assign(id)
		leaf("Target: %s", as.Name.Text)
		leaf("Value: %s", formatExprInline(builder, as.Value))
	case ast.StmtControl:
		c, _ := builder.Stmts.Control(id)
		for i, br := range c.Branches() {
			kw := "If"
			if i > 0 {
				kw = "ElseIf"
			}
			brNode := &treeNode{label: fmt.Sprintf("%s: %s", kw, formatExprInline(builder, br.Cond))}
			brNode.children = append(brNode.children, buildStmtTreeNode(builder, br.Body, fs))
			node.children = append(node.children, brNode)
		}
		if c.Else.IsValid() {
			elseNode := &treeNode{label: "Else"}
			elseNode.children = append(elseNode.children, buildStmtTreeNode(builder, c.Else, fs))
			node.children = append(node.children, elseNode)
		}
	}
	return node
}

// FormatASTSexpr печатает программу S-выражениями, по одному верхнеуровневому оператору на строку.
func FormatASTSexpr(w io.Writer, builder *ast.Builder, stmts []ast.StmtID) error {
	for _, id := range stmts {
		if _, err := fmt.Fprintln(w, stmtSexpr(builder, id)); err != nil {
			return err
		}
	}
	return nil
}

func stmtSexpr(builder *ast.Builder, id ast.StmtID) string {
	st := builder.Stmts.Get(id)
	if st == nil {
		return "nil"
	}
	switch st.Kind {
	case ast.StmtVarDecl:
		d, _ := builder.Stmts.VarDecl(id)
		kw := "let"
		if d.Mutable {
			kw = "mut"
		}
		return fmt.Sprintf("(%s %s %s %s)", kw, d.Name.Text, d.Type, formatExprSexpr(builder, d.Init))
	case ast.StmtFnDecl:
		fn, _ := builder.Stmts.FnDecl(id)
		params := make([]string, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = fmt.Sprintf("(%s %s)", p.Name.Text, p.Type)
		}
		return fmt.Sprintf("(fn %s (%s) %s %s)", fn.Name.Text, strings.Join(params, " "), fn.Result, stmtSexpr(builder, fn.Body))
	case ast.StmtBlock:
		blk, _ := builder.Stmts.Block(id)
		parts := []string{"block"}
		for _, child := range blk.Stmts {
			parts = append(parts, stmtSexpr(builder, child))
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ast.StmtReturn:
		ret, _ := builder.Stmts.Return(id)
		if !ret.Value.IsValid() {
			return "(return)"
		}
		return fmt.Sprintf("(return %s)", formatExprSexpr(builder, ret.Value))
	case ast.StmtAssign:
		as, _ := builder.Stmts.Assign(id)
		return fmt.Sprintf("(= %s %s)", as.Name.Text, formatExprSexpr(builder, as.Value))
	case ast.StmtControl:
		c, _ := builder.Stmts.Control(id)
		parts := []string{"if"}
		for _, br := range c.Branches() {
			parts = append(parts, fmt.Sprintf("(%s %s)", formatExprSexpr(builder, br.Cond), stmtSexpr(builder, br.Body)))
		}
		if c.Else.IsValid() {
			parts = append(parts, fmt.Sprintf("(else %s)", stmtSexpr(builder, c.Else)))
		}
		return "(" + strings.Join(parts, " ") + ")"
	default:
		return "?"
	}
}

// ASTNodeOutput — JSON-представление узла.
type ASTNodeOutput struct {
	Type     string          `json:"type"`
	Kind     string          `json:"kind,omitempty"`
	Line     uint32          `json:"line"`
	Text     string          `json:"text,omitempty"`
	Children []ASTNodeOutput `json:"children,omitempty"`
}

// FormatASTJSON выводит дерево операторов в JSON.
func FormatASTJSON(w io.Writer, builder *ast.Builder, stmts []ast.StmtID) error {
	out := make([]ASTNodeOutput, 0, len(stmts))
	for _, id := range stmts {
		out = append(out, stmtJSON(builder, id))
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

func stmtJSON(builder *ast.Builder, id ast.StmtID) ASTNodeOutput {
	st := builder.Stmts.Get(id)
	node := ASTNodeOutput{Type: "Stmt", Kind: st.Kind.String(), Line: st.Span.Line}
	switch st.Kind {
	case ast.StmtVarDecl:
		d, _ := builder.Stmts.VarDecl(id)
		node.Text = d.Name.Text
	case ast.StmtFnDecl:
		fn, _ := builder.Stmts.FnDecl(id)
		node.Text = fn.Name.Text
	case ast.StmtAssign:
		as, _ := builder.Stmts.Assign(id)
		node.Text = as.Name.Text
	}
	stmts, exprs := builder.StmtChildren(id)
	for _, e := range exprs {
		node.Children = append(node.Children, exprJSON(builder, e))
	}
	for _, s := range stmts {
		node.Children = append(node.Children, stmtJSON(builder, s))
	}
	return node
}

func exprJSON(builder *ast.Builder, id ast.ExprID) ASTNodeOutput {
	expr := builder.Exprs.Get(id)
	node := ASTNodeOutput{Type: "Expr", Kind: expr.Kind.String(), Line: expr.Span.Line}
	switch expr.Kind {
	case ast.ExprLit, ast.ExprIdent:
		node.Text = formatExprInline(builder, id)
	case ast.ExprUnary:
		u, _ := builder.Exprs.Unary(id)
		node.Text = u.Op.String()
	case ast.ExprBinary:
		bin, _ := builder.Exprs.Binary(id)
		node.Text = bin.Op.String()
	case ast.ExprCall:
		call, _ := builder.Exprs.Call(id)
		node.Text = call.Callee.Text
	}
	for _, child := range builder.ExprChildren(id) {
		node.Children = append(node.Children, exprJSON(builder, child))
	}
	return node
}
