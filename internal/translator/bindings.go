package translator

import "pyviz/internal/pysrc"

// ParamBindings maps a function name to its parameter-to-argument-name
// map. A parameter with no resolvable argument name maps to "".
type ParamBindings map[string]map[string]string

// CollectParamBindings resolves parameter names back to the argument
// names supplied at top-level call sites, propagated exactly one level
// into functions called from a bound function's body with simple name
// arguments. Deeper or ambiguous flows stay unbound.
func CollectParamBindings(mod *pysrc.Module) ParamBindings {
	funcParams := map[string][]string{}
	funcBodies := map[string][]pysrc.Stmt{}

	for _, stmt := range mod.Body {
		if fn, ok := stmt.(*pysrc.FunctionDef); ok {
			funcParams[fn.Name] = fn.Params
			funcBodies[fn.Name] = fn.Body
		}
	}

	bindings := ParamBindings{}

	for _, stmt := range mod.Body {
		call := callee(stmt)
		if call == nil {
			continue
		}
		fname, ok := calleeName(call)
		if !ok {
			continue
		}
		params, known := funcParams[fname]
		if !known {
			continue
		}
		if _, seen := bindings[fname]; seen {
			continue
		}
		m := map[string]string{}
		for i, p := range params {
			m[p] = ""
			if i < len(call.Args) {
				if arg, ok := call.Args[i].(*pysrc.Name); ok {
					m[p] = arg.ID
				}
			}
		}
		bindings[fname] = m
	}

	// One level of propagation: calls made inside an already-bound
	// function map their name arguments through the outer binding.
	for fname, paramMap := range copyBindings(bindings) {
		for _, stmt := range funcBodies[fname] {
			call := callee(stmt)
			if call == nil {
				continue
			}
			gname, ok := calleeName(call)
			if !ok {
				continue
			}
			gparams, known := funcParams[gname]
			if !known {
				continue
			}
			if _, seen := bindings[gname]; seen {
				continue
			}
			gm := map[string]string{}
			for i, gp := range gparams {
				gm[gp] = ""
				if i < len(call.Args) {
					if arg, ok := call.Args[i].(*pysrc.Name); ok {
						gm[gp] = paramMap[arg.ID]
					}
				}
			}
			bindings[gname] = gm
		}
	}

	return bindings
}

// Resolve maps a parameter name inside fn to its caller-visible name,
// or returns name unchanged when no binding exists.
func (b ParamBindings) Resolve(fn, name string) string {
	if m, ok := b[fn]; ok {
		if arg := m[name]; arg != "" {
			return arg
		}
	}
	return name
}

func callee(stmt pysrc.Stmt) *pysrc.Call {
	expr, ok := stmt.(*pysrc.ExprStmt)
	if !ok {
		return nil
	}
	call, ok := expr.Value.(*pysrc.Call)
	if !ok {
		return nil
	}
	return call
}

func calleeName(call *pysrc.Call) (string, bool) {
	name, ok := call.Func.(*pysrc.Name)
	if !ok {
		return "", false
	}
	return name.ID, true
}

func copyBindings(b ParamBindings) ParamBindings {
	out := make(ParamBindings, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
